package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/app/models"
)

func TestParsePaymentAliases(t *testing.T) {
	cases := map[string]models.Payment{
		"pix":      models.PaymentPix,
		" PIX ":    models.PaymentPix,
		"dinheiro": models.PaymentCash,
		"cash":     models.PaymentCash,
		"cartao":   models.PaymentCard,
		"Cartão":   models.PaymentCard,
		"card":     models.PaymentCard,
	}
	for in, want := range cases {
		got, err := models.ParsePayment(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := models.ParsePayment("boleto")
	assert.Error(t, err)
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, models.StatusAwaiting, models.NormalizeStatus(""))
	assert.Equal(t, models.StatusAwaiting, models.NormalizeStatus("lido"))
	assert.Equal(t, models.StatusAwaiting, models.NormalizeStatus("whatever"))
	assert.Equal(t, models.StatusPreparing, models.NormalizeStatus("Em Processo"))
	assert.Equal(t, models.StatusPreparing, models.NormalizeStatus("preparando"))
	assert.Equal(t, models.StatusCompleted, models.NormalizeStatus("concluído"))
	assert.Equal(t, models.StatusCompleted, models.NormalizeStatus("entregue"))

	_, ok := models.ParseStatus("whatever")
	assert.False(t, ok)
}

func TestStatusNext(t *testing.T) {
	assert.Equal(t, models.StatusPreparing, models.StatusAwaiting.Next())
	assert.Equal(t, models.StatusCompleted, models.StatusPreparing.Next())
	assert.Equal(t, models.StatusCompleted, models.StatusCompleted.Next())
}

func TestOrderJSONShape(t *testing.T) {
	created := time.UnixMilli(1717000000123)
	o := models.Order{
		ID:        "000123-456",
		CreatedAt: models.NewTimestamp(created),
		Customer:  "Ana",
		Payment:   models.PaymentPix,
		Total:     decimal.RequireFromString("56.3"),
		Items: []models.OrderItem{
			{ID: 1, Name: "Hambúrguer Clássico", Price: decimal.RequireFromString("24.9"), Quantity: 2},
			{ID: 6, Name: "Refrigerante Lata", Price: decimal.RequireFromString("6.5"), Quantity: 1},
		},
		Status: models.StatusAwaiting,
	}

	raw, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "000123-456",
		"createdAt": 1717000000123,
		"customer": "Ana",
		"payment": "pix",
		"total": 56.3,
		"items": [
			{"id": 1, "name": "Hambúrguer Clássico", "price": 24.9, "quantity": 2},
			{"id": 6, "name": "Refrigerante Lata", "price": 6.5, "quantity": 1}
		],
		"status": "awaiting"
	}`, string(raw))

	var back models.Order
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, o.Total.Equal(back.Total))
	assert.True(t, back.CreatedAt.Equal(created))
	assert.True(t, back.ItemsTotal().Equal(back.Total))
	assert.Equal(t, 3, back.Quantity())
}

func TestOrderReadsLegacyRecord(t *testing.T) {
	raw := `{
		"id": "1",
		"createdAt": "2024-05-01T12:30:00.000Z",
		"customer": "Bruno",
		"payment": "dinheiro",
		"total": 12,
		"items": [{"id": 4, "name": "Batata Frita", "price": 12, "quantity": 1}]
	}`

	var o models.Order
	require.NoError(t, json.Unmarshal([]byte(raw), &o))
	o.Normalize()

	assert.Equal(t, models.StatusAwaiting, o.Status)
	assert.Equal(t, models.PaymentCash, o.Payment)
	assert.Equal(t, 2024, o.CreatedAt.Year())
}

func TestOrderReadsLegacyStatusLabel(t *testing.T) {
	var o models.Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","status":"pronto"}`), &o))
	assert.Equal(t, models.StatusCompleted, o.Status)
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts models.Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Aguardando", models.StatusAwaiting.Label())
	assert.Equal(t, "Preparando", models.StatusPreparing.Label())
	assert.Equal(t, "Finalizado", models.StatusCompleted.Label())
}
