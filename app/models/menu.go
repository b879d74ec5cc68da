package models

import "github.com/shopspring/decimal"

// Category groups menu items on the menu screen.
type Category string

const (
	CategoryAll      Category = "todos"
	CategorySalgados Category = "salgados"
	CategoryBebidas  Category = "bebidas"
	CategoryDoces    Category = "doces"
	CategoryCombos   Category = "combos"
	CategorySides    Category = "acompanhamentos"
)

// MenuItem is one immutable catalog entry.
type MenuItem struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Image       string          `json:"image,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}
