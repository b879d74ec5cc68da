package graphql_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/app/orders"
	"github.com/shashiranjanraj/lanchonete/pkg/graphql"
	"github.com/shashiranjanraj/lanchonete/pkg/kv"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
)

func init() { logger.Discard() }

func setup(t *testing.T) (gql.Schema, *orders.Log, models.Order) {
	t.Helper()
	log := orders.New(kv.NewMemory())
	o, err := log.Save(context.Background(), models.Order{
		Customer: "Ana",
		Payment:  models.PaymentCash,
		Total:    decimal.RequireFromString("56.30"),
		Items: []models.OrderItem{
			{ID: 1, Name: "Hambúrguer Clássico", Price: decimal.RequireFromString("24.90"), Quantity: 2},
			{ID: 6, Name: "Refrigerante Lata", Price: decimal.RequireFromString("6.50"), Quantity: 1},
		},
	})
	require.NoError(t, err)

	schema, err := graphql.NewSchema(log)
	require.NoError(t, err)
	return schema, log, o
}

func run(t *testing.T, schema gql.Schema, query string, vars map[string]any) map[string]any {
	t.Helper()
	res := gql.Do(gql.Params{Schema: schema, RequestString: query, VariableValues: vars, Context: context.Background()})
	require.False(t, res.HasErrors(), "%v", res.Errors)
	raw, err := json.Marshal(res.Data)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestMenuQuery(t *testing.T) {
	schema, _, _ := setup(t)

	data := run(t, schema, `{ menu(category: "bebidas") { id name price priceLabel category } }`, nil)
	menu := data["menu"].([]any)
	require.NotEmpty(t, menu)
	for _, it := range menu {
		assert.Equal(t, "bebidas", it.(map[string]any)["category"])
	}

	data = run(t, schema, `{ categories }`, nil)
	cats := data["categories"].([]any)
	assert.Equal(t, "todos", cats[0])
}

func TestOrdersQuery(t *testing.T) {
	schema, _, o := setup(t)

	data := run(t, schema, `query($id: String!) {
		order(id: $id) { id customer payment total totalLabel status statusLabel items { name quantity subtotal } }
	}`, map[string]any{"id": o.ID})

	got := data["order"].(map[string]any)
	assert.Equal(t, o.ID, got["id"])
	assert.Equal(t, "cash", got["payment"])
	assert.InDelta(t, 56.30, got["total"], 0.001)
	assert.Equal(t, "R$ 56,30", got["totalLabel"])
	assert.Equal(t, "Aguardando", got["statusLabel"])
	items := got["items"].([]any)
	require.Len(t, items, 2)
	assert.InDelta(t, 49.80, items[0].(map[string]any)["subtotal"], 0.001)

	data = run(t, schema, `{ order(id: "000000-000") { id } }`, nil)
	assert.Nil(t, data["order"])

	data = run(t, schema, `{ orders(newestFirst: true) { id } }`, nil)
	assert.Len(t, data["orders"], 1)
}

func TestStatusMutations(t *testing.T) {
	schema, log, o := setup(t)
	vars := map[string]any{"id": o.ID}

	data := run(t, schema, `mutation($id: String!) { advanceOrder(id: $id) { status } }`, vars)
	assert.Equal(t, "preparing", data["advanceOrder"].(map[string]any)["status"])

	data = run(t, schema, `mutation($id: String!) { updateOrderStatus(id: $id, status: "finalizado") { status statusLabel } }`, vars)
	assert.Equal(t, "Finalizado", data["updateOrderStatus"].(map[string]any)["statusLabel"])

	got, err := log.Find(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)

	data = run(t, schema, `mutation { updateOrderStatus(id: "000000-000", status: "completed") { id } }`, nil)
	assert.Nil(t, data["updateOrderStatus"])

	res := gql.Do(gql.Params{Schema: schema, RequestString: `mutation { updateOrderStatus(id: "x", status: "lost") { id } }`, Context: context.Background()})
	assert.True(t, res.HasErrors())
}

func TestHandler(t *testing.T) {
	schema, _, _ := setup(t)
	h := graphql.Handler(schema)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ orders { customer } }"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"orders":[{"customer":"Ana"}]}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/graphql?query=%7B%20categories%20%7D", nil))
	assert.Contains(t, rec.Body.String(), `"todos"`)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
