// Package routes maps the HTTP API onto the controllers.
package routes

import (
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/lanchonete/app/account"
	"github.com/shashiranjanraj/lanchonete/app/cart"
	"github.com/shashiranjanraj/lanchonete/app/checkout"
	"github.com/shashiranjanraj/lanchonete/app/controllers"
	"github.com/shashiranjanraj/lanchonete/app/orders"
	"github.com/shashiranjanraj/lanchonete/pkg/auth"
	"github.com/shashiranjanraj/lanchonete/pkg/graphql"
	"github.com/shashiranjanraj/lanchonete/pkg/middleware"
	"github.com/shashiranjanraj/lanchonete/pkg/router"
	"github.com/shashiranjanraj/lanchonete/pkg/session"
	"github.com/shashiranjanraj/lanchonete/pkg/sse"
	"github.com/shashiranjanraj/lanchonete/pkg/ws"
)

// Deps are the services the routes dispatch to.
type Deps struct {
	Orders   *orders.Log
	Checkout *checkout.Service
	Accounts *account.Service
	Issuer   *auth.Issuer
	Carts    *cart.Registry
	Limiter  *middleware.RateLimiter
	Hub      *ws.Hub
	Streams  *sse.Broker
	Schema   gql.Schema
	Session  session.Options
}

func RegisterAPI(r *router.Router, d Deps) {
	menu := controllers.NewMenuController()
	carts := controllers.NewCartController()
	checkouts := controllers.NewCheckoutController(d.Checkout)
	orderCtl := controllers.NewOrderController(d.Orders)
	accounts := controllers.NewAccountController(d.Accounts, d.Issuer)

	withSession := session.Middleware(d.Session, d.Carts)
	limited := d.Limiter.Middleware
	authed := middleware.Auth(d.Issuer)

	api := r.Group("/api")

	api.Get("/menu", "menu.index", menu.Index)
	api.Get("/menu/categories", "menu.categories", menu.Categories)
	api.Get("/menu/{id}", "menu.show", menu.Show)

	c := api.Group("/cart", withSession)
	c.Get("", "cart.show", carts.Show)
	c.Delete("", "cart.clear", carts.Clear)
	c.Post("/items", "cart.add", carts.Add)
	c.Post("/items/{id}/increment", "cart.increment", carts.Increment)
	c.Post("/items/{id}/decrement", "cart.decrement", carts.Decrement)
	c.Delete("/items/{id}", "cart.remove", carts.Remove)

	api.Post("/checkout", "checkout.place", checkouts.Place, limited, withSession)

	o := api.Group("/orders")
	o.Get("", "orders.index", orderCtl.Index)
	o.Delete("", "orders.clear", orderCtl.Clear)
	o.Get("/{id}", "orders.show", orderCtl.Show)
	o.Put("/{id}/status", "orders.status", orderCtl.UpdateStatus)
	o.Post("/{id}/advance", "orders.advance", orderCtl.Advance)

	a := api.Group("/account")
	a.Post("/register", "account.register", accounts.Register, limited)
	a.Post("/login", "account.login", accounts.Login, limited)
	a.Get("", "account.show", accounts.Show, authed)
	a.Post("/logout", "account.logout", accounts.Logout, authed, withSession)

	gh := graphql.Handler(d.Schema)
	r.Get("/graphql", "graphql.query", gh)
	r.Post("/graphql", "graphql.execute", gh)

	r.Handle(http.MethodGet, "/ws/orders", "ws.orders", d.Hub)
	r.Handle(http.MethodGet, "/sse/orders", "sse.orders", d.Streams)
}
