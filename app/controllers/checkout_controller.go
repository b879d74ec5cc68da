package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/lanchonete/app/cart"
	"github.com/shashiranjanraj/lanchonete/app/checkout"
	"github.com/shashiranjanraj/lanchonete/pkg/bind"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/resource"
	"github.com/shashiranjanraj/lanchonete/pkg/response"
)

type CheckoutController struct {
	service *checkout.Service
}

func NewCheckoutController(service *checkout.Service) *CheckoutController {
	return &CheckoutController{service: service}
}

// Place turns the session cart into an order.
func (c *CheckoutController) Place(w http.ResponseWriter, r *http.Request) {
	var in checkout.Input
	if err := bind.Decode(w, r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	order, err := c.service.Place(r.Context(), cart.FromContext(r.Context()), in)
	var verr *checkout.ValidationError
	switch {
	case err == nil:
		response.Created(w, resource.One(OrderResource, order))
	case errors.Is(err, checkout.ErrEmptyCart):
		response.Error(w, http.StatusUnprocessableEntity, "Cart is empty")
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	default:
		logger.WithCtx(r.Context()).Error("checkout failed", "error", err)
		response.ServerError(w)
	}
}
