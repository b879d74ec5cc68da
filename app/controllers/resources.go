package controllers

import (
	"time"

	"github.com/shashiranjanraj/lanchonete/app/cart"
	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/pkg/resource"
)

var MenuItemResource resource.Transformer[models.MenuItem] = func(it models.MenuItem) resource.Map {
	tags := it.Tags
	if tags == nil {
		tags = []string{}
	}
	return resource.Map{
		"id":          it.ID,
		"name":        it.Name,
		"description": it.Description,
		"price":       it.Price,
		"priceLabel":  models.BRL(it.Price),
		"category":    it.Category,
		"image":       it.Image,
		"tags":        tags,
	}
}

var CartLineResource resource.Transformer[cart.Line] = func(l cart.Line) resource.Map {
	return resource.Map{
		"id":            l.ID,
		"name":          l.Name,
		"price":         l.Price,
		"quantity":      l.Quantity,
		"subtotal":      l.Subtotal(),
		"subtotalLabel": models.BRL(l.Subtotal()),
	}
}

var CartResource resource.Transformer[cart.State] = func(s cart.State) resource.Map {
	return resource.Map{
		"items":         resource.Many(CartLineResource, s.Lines()),
		"totalQuantity": s.TotalQuantity(),
		"totalPrice":    s.TotalPrice(),
		"totalLabel":    models.BRL(s.TotalPrice()),
	}
}

var OrderItemResource resource.Transformer[models.OrderItem] = func(it models.OrderItem) resource.Map {
	return resource.Map{
		"id":       it.ID,
		"name":     it.Name,
		"price":    it.Price,
		"quantity": it.Quantity,
		"subtotal": it.Subtotal(),
	}
}

var OrderResource resource.Transformer[models.Order] = func(o models.Order) resource.Map {
	var created any
	if !o.CreatedAt.IsZero() {
		created = o.CreatedAt.UTC().Format(time.RFC3339)
	}
	m := resource.Map{
		"id":          o.ID,
		"createdAt":   created,
		"customer":    o.Customer,
		"payment":     o.Payment,
		"total":       o.Total,
		"totalLabel":  models.BRL(o.Total),
		"items":       resource.Many(OrderItemResource, o.Items),
		"status":      o.Status,
		"statusLabel": o.Status.Label(),
	}
	if o.Note != "" {
		m["note"] = o.Note
	}
	return m
}

// AccountResource never exposes the password hash.
var AccountResource resource.Transformer[models.Account] = func(a models.Account) resource.Map {
	m := resource.Map{"name": a.Name, "email": a.Email}
	if a.PostalCode != "" {
		m["cep"] = a.PostalCode
	}
	return m
}
