package checkout_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/app/cart"
	"github.com/shashiranjanraj/lanchonete/app/catalog"
	"github.com/shashiranjanraj/lanchonete/app/checkout"
	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/app/orders"
	"github.com/shashiranjanraj/lanchonete/pkg/event"
	"github.com/shashiranjanraj/lanchonete/pkg/kv"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
)

func init() { logger.Discard() }

type fixture struct {
	svc    *checkout.Service
	log    *orders.Log
	bus    *event.Bus
	cart   *cart.Store
	placed []models.Order
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{bus: event.New(), cart: cart.New()}
	f.log = orders.New(kv.NewMemory())
	f.svc = checkout.New(f.log, f.bus)
	f.bus.Listen(event.OrderPlaced, func(e event.Event) {
		f.placed = append(f.placed, e.Payload.(models.Order))
	})
	return f
}

func (f *fixture) fill(t *testing.T) {
	t.Helper()
	burger, ok := catalog.Find(1)
	require.True(t, ok)
	soda, ok := catalog.Find(6)
	require.True(t, ok)
	f.cart.AddItem(burger, 2)
	f.cart.AddItem(soda, 1)
}

func TestPlace(t *testing.T) {
	f := setup(t)
	f.fill(t)
	ctx := context.Background()

	o, err := f.svc.Place(ctx, f.cart, checkout.Input{Customer: "  Ana  ", Payment: "pix", Note: "sem cebola"})
	require.NoError(t, err)

	assert.Equal(t, "Ana", o.Customer)
	assert.Equal(t, models.PaymentPix, o.Payment)
	assert.Equal(t, "56.3", o.Total.String())
	assert.Equal(t, "sem cebola", o.Note)
	assert.Equal(t, models.StatusAwaiting, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 2, o.Items[0].Quantity)

	assert.True(t, f.cart.Empty(), "cart is cleared after checkout")

	stored, err := f.log.Find(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Customer, stored.Customer)

	require.Len(t, f.placed, 1)
	assert.Equal(t, o.ID, f.placed[0].ID)
}

func TestPlaceAcceptsLegacyPaymentLabels(t *testing.T) {
	f := setup(t)
	f.fill(t)

	o, err := f.svc.Place(context.Background(), f.cart, checkout.Input{Customer: "Ana", Payment: "dinheiro"})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentCash, o.Payment)
	assert.Empty(t, o.Note)
}

func TestPlaceEmptyCart(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Place(context.Background(), f.cart, checkout.Input{Customer: "Ana", Payment: "pix"})
	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Empty(t, f.placed)
}

func TestPlaceValidation(t *testing.T) {
	cases := map[string]struct {
		in     checkout.Input
		fields []string
	}{
		"missing name":    {checkout.Input{Customer: "   ", Payment: "pix"}, []string{"customer"}},
		"missing payment": {checkout.Input{Customer: "Ana"}, []string{"payment"}},
		"bad payment":     {checkout.Input{Customer: "Ana", Payment: "boleto"}, []string{"payment"}},
		"long note":       {checkout.Input{Customer: "Ana", Payment: "card", Note: strings.Repeat("x", 281)}, []string{"note"}},
		"long name":       {checkout.Input{Customer: strings.Repeat("a", 81), Payment: "card"}, []string{"customer"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := setup(t)
			f.fill(t)

			_, err := f.svc.Place(context.Background(), f.cart, tc.in)
			var verr *checkout.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.fields, verr.Fields.Fields())

			assert.Equal(t, 3, f.cart.TotalQuantity(), "cart untouched")
			assert.Empty(t, f.log.List(context.Background()))
			assert.Empty(t, f.placed)
		})
	}
}

// addOnSave adds an item to the cart while the order log is being written.
type addOnSave struct {
	kv.Store
	onSet func()
}

func (s *addOnSave) Set(ctx context.Context, key string, value []byte) error {
	if s.onSet != nil {
		s.onSet()
	}
	return s.Store.Set(ctx, key, value)
}

func TestPlaceKeepsItemsAddedDuringSave(t *testing.T) {
	burger, _ := catalog.Find(1)
	soda, _ := catalog.Find(6)
	c := cart.New()
	c.AddItem(burger, 2)

	store := &addOnSave{Store: kv.NewMemory()}
	store.onSet = func() {
		c.AddItem(soda, 1)
		c.Increment(burger.ID)
	}
	svc := checkout.New(orders.New(store), event.New())

	o, err := svc.Place(context.Background(), c, checkout.Input{Customer: "Ana", Payment: "pix"})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 2, o.Items[0].Quantity)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, burger.ID, lines[0].ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, soda.ID, lines[1].ID)
	assert.Equal(t, 1, lines[1].Quantity)
}
