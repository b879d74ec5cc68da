// Package catalog is the static, compiled-in menu.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/pkg/collection"
)

var menu = []models.MenuItem{
	{
		ID:          1,
		Name:        "Hambúrguer Clássico",
		Description: "Pão brioche, blend artesanal, queijo prato e molho especial.",
		Price:       decimal.RequireFromString("24.90"),
		Category:    models.CategorySalgados,
		Tags:        []string{"lanche", "carne"},
	},
	{
		ID:          2,
		Name:        "Cheeseburger da Autoescola",
		Description: "Hambúrguer com queijo duplo, bacon crocante e maionese da casa.",
		Price:       decimal.RequireFromString("28.50"),
		Category:    models.CategorySalgados,
		Tags:        []string{"lanche", "favorito"},
	},
	{
		ID:          3,
		Name:        "Combo Aluno Expert",
		Description: "Hambúrguer clássico + batata frita média + refrigerante lata.",
		Price:       decimal.RequireFromString("36.00"),
		Category:    models.CategoryCombos,
		Tags:        []string{"combo", "lanche"},
	},
	{
		ID:          4,
		Name:        "Batata Frita",
		Description: "Porção generosa com tempero especial da Habilite.",
		Price:       decimal.RequireFromString("12.00"),
		Category:    models.CategorySides,
		Tags:        []string{"vegetariano"},
	},
	{
		ID:          5,
		Name:        "Nuggets de Frango",
		Description: "10 unidades com molho barbecue artesanal.",
		Price:       decimal.RequireFromString("18.50"),
		Category:    models.CategorySides,
		Tags:        []string{"frango"},
	},
	{
		ID:          6,
		Name:        "Refrigerante Lata",
		Description: "Escolha o seu sabor favorito: cola, guaraná ou laranja.",
		Price:       decimal.RequireFromString("6.50"),
		Category:    models.CategoryBebidas,
		Tags:        []string{"gelado"},
	},
	{
		ID:          7,
		Name:        "Suco Natural",
		Description: "Suco de laranja ou limão preparado na hora, sem conservantes.",
		Price:       decimal.RequireFromString("9.00"),
		Category:    models.CategoryBebidas,
		Tags:        []string{"natural", "sem açúcar"},
	},
	{
		ID:          8,
		Name:        "Milk-shake",
		Description: "Opções chocolate, morango ou baunilha com cobertura.",
		Price:       decimal.RequireFromString("14.50"),
		Category:    models.CategoryDoces,
		Tags:        []string{"gelado", "cremoso"},
	},
	{
		ID:          9,
		Name:        "Brownie com Sorvete",
		Description: "Brownie quentinho com bola de sorvete de creme.",
		Price:       decimal.RequireFromString("16.90"),
		Category:    models.CategoryDoces,
		Tags:        []string{"sobremesa"},
	},
	{
		ID:          10,
		Name:        "Combo Revisão",
		Description: "Cheeseburger da Autoescola + nuggets + refrigerante.",
		Price:       decimal.RequireFromString("42.00"),
		Category:    models.CategoryCombos,
		Tags:        []string{"combo", "especial"},
	},
}

// ListItems returns a copy of the full menu in id order.
func ListItems() []models.MenuItem {
	out := make([]models.MenuItem, len(menu))
	copy(out, menu)
	return out
}

// ListCategories returns "todos" followed by the distinct categories of
// items in first-seen order.
func ListCategories(items []models.MenuItem) []models.Category {
	cats := collection.Distinct(items, func(i models.MenuItem) models.Category { return i.Category })
	return append([]models.Category{models.CategoryAll}, cats...)
}

// Find looks an item up by id.
func Find(id int) (models.MenuItem, bool) {
	return collection.First(menu, func(i models.MenuItem) bool { return i.ID == id })
}

// Filter keeps the items of category; "todos" or "" keeps everything.
func Filter(items []models.MenuItem, category models.Category) []models.MenuItem {
	if category == "" || category == models.CategoryAll {
		return collection.Filter(items, func(models.MenuItem) bool { return true })
	}
	return collection.Filter(items, func(i models.MenuItem) bool { return i.Category == category })
}

// Search keeps the items whose name, description or any tag contains
// query, ignoring case. An empty query keeps everything.
func Search(items []models.MenuItem, query string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	return collection.Filter(items, func(i models.MenuItem) bool {
		if q == "" {
			return true
		}
		return strings.Contains(strings.ToLower(i.Name), q) ||
			strings.Contains(strings.ToLower(i.Description), q) ||
			collection.Contains(i.Tags, func(t string) bool { return strings.Contains(strings.ToLower(t), q) })
	})
}
