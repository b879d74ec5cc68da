package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/lanchonete/app/cart"
	"github.com/shashiranjanraj/lanchonete/app/catalog"
	"github.com/shashiranjanraj/lanchonete/pkg/bind"
	"github.com/shashiranjanraj/lanchonete/pkg/resource"
	"github.com/shashiranjanraj/lanchonete/pkg/response"
)

// CartController works on the session cart installed by session.Middleware.
type CartController struct{}

func NewCartController() *CartController {
	return &CartController{}
}

type addItemRequest struct {
	ID       int `json:"id"       validate:"required,min=1"`
	Quantity int `json:"quantity" validate:"nullable,min=0,max=99"`
}

func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	response.Success(w, resource.One(CartResource, cart.FromContext(r.Context()).State()))
}

// Add puts a menu item in the cart. A missing quantity adds one.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var body addItemRequest
	errs, err := bind.JSON(w, r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, ok := catalog.Find(body.ID)
	if !ok {
		response.ValidationError(w, map[string]string{"id": "id does not match a menu item"})
		return
	}
	st := cart.FromContext(r.Context()).AddItem(item, body.Quantity)
	response.Success(w, resource.One(CartResource, st))
}

func (c *CartController) Increment(w http.ResponseWriter, r *http.Request) {
	c.line(w, r, (*cart.Store).Increment)
}

func (c *CartController) Decrement(w http.ResponseWriter, r *http.Request) {
	c.line(w, r, (*cart.Store).Decrement)
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	c.line(w, r, (*cart.Store).Remove)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	response.Success(w, resource.One(CartResource, cart.FromContext(r.Context()).Clear()))
}

// line applies op to the {id} line. Ids not in the cart are a no-op, so the
// response is always the resulting cart.
func (c *CartController) line(w http.ResponseWriter, r *http.Request, op func(*cart.Store, int) cart.State) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}
	st := op(cart.FromContext(r.Context()), id)
	response.Success(w, resource.One(CartResource, st))
}
