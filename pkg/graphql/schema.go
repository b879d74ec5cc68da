// Package graphql exposes the menu and the order log over GraphQL using
// graphql-go.
//
//	schema, _ := graphql.NewSchema(log)
//	r.Post("/graphql", "graphql", graphql.Handler(schema))
//
// Example:
//
//	{ orders(newestFirst: true) { id customer totalLabel status statusLabel } }
//	mutation { advanceOrder(id: "123456-789") { id status } }
package graphql

import (
	"errors"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/lanchonete/app/catalog"
	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/app/orders"
)

// money resolves a decimal field as a Float.
func money(get func(any) decimal.Decimal) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		return get(p.Source).InexactFloat64(), nil
	}
}

// label resolves a decimal field as a formatted BRL string.
func label(get func(any) decimal.Decimal) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		return models.BRL(get(p.Source)), nil
	}
}

func str(get func(any) string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) { return get(p.Source), nil }
}

func itemPrice(src any) decimal.Decimal  { return src.(models.MenuItem).Price }
func linePrice(src any) decimal.Decimal  { return src.(models.OrderItem).Price }
func lineTotal(src any) decimal.Decimal  { return src.(models.OrderItem).Subtotal() }
func orderTotal(src any) decimal.Decimal { return src.(models.Order).Total }

var menuItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MenuItem",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.NewNonNull(graphql.Float), Resolve: money(itemPrice)},
		"priceLabel":  &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: label(itemPrice)},
		"category": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: str(func(src any) string {
			return string(src.(models.MenuItem).Category)
		})},
		"image": &graphql.Field{Type: graphql.String},
		"tags":  &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

var orderItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderItem",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"price":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float), Resolve: money(linePrice)},
		"quantity": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"subtotal": &graphql.Field{Type: graphql.NewNonNull(graphql.Float), Resolve: money(lineTotal)},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"customer": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
			ts := p.Source.(models.Order).CreatedAt
			if ts.IsZero() {
				return nil, nil
			}
			return ts.UTC().Format(time.RFC3339), nil
		}},
		"payment": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: str(func(src any) string {
			return string(src.(models.Order).Payment)
		})},
		"total":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float), Resolve: money(orderTotal)},
		"totalLabel": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: label(orderTotal)},
		"items": &graphql.Field{Type: graphql.NewList(orderItemType), Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(models.Order).Items, nil
		}},
		"note": &graphql.Field{Type: graphql.String},
		"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: str(func(src any) string {
			return string(src.(models.Order).Status)
		})},
		"statusLabel": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: str(func(src any) string {
			return src.(models.Order).Status.Label()
		})},
	},
})

// NewSchema builds the schema over log.
func NewSchema(log *orders.Log) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"menu": &graphql.Field{
				Type: graphql.NewList(menuItemType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					category, _ := p.Args["category"].(string)
					search, _ := p.Args["search"].(string)
					items := catalog.Filter(catalog.ListItems(), models.Category(category))
					return catalog.Search(items, search), nil
				},
			},
			"categories": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(graphql.ResolveParams) (any, error) {
					cats := catalog.ListCategories(catalog.ListItems())
					out := make([]string, len(cats))
					for i, c := range cats {
						out[i] = string(c)
					}
					return out, nil
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"newestFirst": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if newest, _ := p.Args["newestFirst"].(bool); newest {
						return log.Recent(p.Context), nil
					}
					return log.List(p.Context), nil
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					o, err := log.Find(p.Context, p.Args["id"].(string))
					if errors.Is(err, orders.ErrNotFound) {
						return nil, nil
					}
					return o, err
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"updateOrderStatus": &graphql.Field{
				Type:        orderType,
				Description: "Sets the status; returns null for an unknown id.",
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id := p.Args["id"].(string)
					st, ok := models.ParseStatus(p.Args["status"].(string))
					if !ok {
						return nil, orders.ErrInvalidStatus
					}
					updated, err := log.UpdateStatus(p.Context, id, st)
					if err != nil || !updated {
						return nil, err
					}
					return log.Find(p.Context, id)
				},
			},
			"advanceOrder": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return log.Advance(p.Context, p.Args["id"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
