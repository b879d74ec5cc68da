package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/app/models"
)

func TestBRL(t *testing.T) {
	cases := map[string]string{
		"0":       "R$ 0,00",
		"6.5":     "R$ 6,50",
		"56.3":    "R$ 56,30",
		"1234.5":  "R$ 1.234,50",
		"1000000": "R$ 1.000.000,00",
		"-12":     "-R$ 12,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, models.BRL(decimal.RequireFromString(in)), in)
	}
}

func TestDecimalsEncodeAsNumbers(t *testing.T) {
	raw, err := json.Marshal(struct {
		Price decimal.Decimal `json:"price"`
	}{decimal.RequireFromString("24.90")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":24.9}`, string(raw))
}
