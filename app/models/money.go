// Package models holds the menu, order and account records.
//
// Importing it sets decimal.MarshalJSONWithoutQuotes for the whole process,
// so every decimal.Decimal (stored orders, API responses, GraphQL results)
// encodes as a JSON number rather than a quoted string. Stored logs from
// earlier builds carry plain numbers and decode either way.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// BRL formats d as Brazilian reais: "R$ 1.234,50".
func BRL(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sign + "R$ " + b.String() + "," + frac
}
