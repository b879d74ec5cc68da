// Package checkout turns a cart into a saved order.
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/shashiranjanraj/lanchonete/app/cart"
	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/app/orders"
	"github.com/shashiranjanraj/lanchonete/pkg/event"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/validate"
)

// ErrEmptyCart is returned when there is nothing to order.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// ValidationError lists the rejected input fields.
type ValidationError struct {
	Fields validate.Errors
}

func (e *ValidationError) Error() string {
	return "checkout: " + e.Fields.Error()
}

// Input is what the customer fills in on the checkout form. Payment also
// accepts the Portuguese labels "dinheiro" and "cartao".
type Input struct {
	Customer string `json:"customer" validate:"required,max=80"`
	Payment  string `json:"payment"  validate:"required,in=pix,cash,card"`
	Note     string `json:"note"     validate:"nullable,max=280"`
}

// Service places orders into a Log.
type Service struct {
	log    *orders.Log
	events *event.Bus
}

func New(log *orders.Log, events *event.Bus) *Service {
	return &Service{log: log, events: events}
}

// Place validates in, saves the cart contents as a new order and takes the
// ordered units out of the cart. Units added while the save runs stay in
// the cart. Nothing is mutated when validation or the save fails.
func (s *Service) Place(ctx context.Context, c *cart.Store, in Input) (models.Order, error) {
	st := c.State()
	if st.Len() == 0 {
		return models.Order{}, ErrEmptyCart
	}

	in.Customer = strings.TrimSpace(in.Customer)
	if p, err := models.ParsePayment(in.Payment); err == nil {
		in.Payment = string(p)
	}
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Order{}, &ValidationError{Fields: errs}
	}

	o := models.Order{
		Customer: in.Customer,
		Payment:  models.Payment(in.Payment),
		Total:    st.TotalPrice(),
		Items:    st.Snapshot(),
		Note:     in.Note,
		Status:   models.StatusAwaiting,
	}
	if strings.TrimSpace(o.Note) == "" {
		o.Note = ""
	}

	saved, err := s.log.Save(ctx, o)
	if err != nil {
		return models.Order{}, err
	}

	c.Settle(o.Items)
	logger.WithCtx(ctx).Info("checkout complete", "order_id", saved.ID, "customer", saved.Customer, "payment", saved.Payment)
	s.events.Fire(event.OrderPlaced, saved)
	return saved, nil
}
