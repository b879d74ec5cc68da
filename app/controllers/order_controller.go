package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/lanchonete/app/models"
	"github.com/shashiranjanraj/lanchonete/app/orders"
	"github.com/shashiranjanraj/lanchonete/pkg/bind"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/resource"
	"github.com/shashiranjanraj/lanchonete/pkg/response"
)

type OrderController struct {
	log *orders.Log
}

func NewOrderController(log *orders.Log) *OrderController {
	return &OrderController{log: log}
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Index lists orders oldest first, or newest first with ?newest_first=true.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	list := c.log.List(r.Context())
	if newest, _ := strconv.ParseBool(r.URL.Query().Get("newest_first")); newest {
		list = c.log.Recent(r.Context())
	}
	response.Success(w, resource.Collection(OrderResource, list).
		WithMeta(resource.Map{"count": len(list)}))
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	o, err := c.log.Find(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	response.Success(w, resource.One(OrderResource, o))
}

// UpdateStatus accepts the canonical statuses and their Portuguese labels.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body statusRequest
	errs, err := bind.JSON(w, r, &body)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	status, ok := models.ParseStatus(body.Status)
	if !ok {
		response.ValidationError(w, map[string]string{"status": "status must be one of: awaiting, preparing, completed"})
		return
	}

	id := chi.URLParam(r, "id")
	updated, err := c.log.UpdateStatus(r.Context(), id, status)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	if !updated {
		response.NotFound(w)
		return
	}
	o, err := c.log.Find(r.Context(), id)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	response.Success(w, resource.One(OrderResource, o))
}

func (c *OrderController) Advance(w http.ResponseWriter, r *http.Request) {
	o, err := c.log.Advance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	response.Success(w, resource.One(OrderResource, o))
}

func (c *OrderController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.log.Clear(r.Context()); err != nil {
		c.fail(w, r, err)
		return
	}
	response.Message(w, "Orders cleared")
}

func (c *OrderController) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, orders.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, orders.ErrInvalidStatus):
		response.ValidationError(w, map[string]string{"status": err.Error()})
	default:
		logger.WithCtx(r.Context()).Error("order log failure", "error", err)
		response.ServerError(w)
	}
}
