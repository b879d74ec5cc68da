package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/lanchonete/pkg/router"
)

func TestGroupsAndNamedRoutes(t *testing.T) {
	r := router.New()
	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	api := r.Group("/api/", mw("api"))
	orders := api.Group("orders", mw("orders"))
	orders.Put("/{id}/status", "orders.status", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(req, "id")))
	}, mw("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/orders/123456-001/status", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "123456-001", rec.Body.String())
	assert.Equal(t, []string{"api", "orders", "route"}, order)
	assert.Equal(t, []router.Route{
		{Method: http.MethodPut, Path: "/api/orders/{id}/status", Name: "orders.status"},
	}, r.Routes())
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	h := func(http.ResponseWriter, *http.Request) {}
	r.Get("/healthz", "health", h)
	api := r.Group("/api")
	api.Delete("/cart", "cart.clear", h)
	api.Get("/cart", "cart.show", h)
	r.Handle(http.MethodGet, "/metrics", "", http.HandlerFunc(h))

	assert.Equal(t, []router.Route{
		{Method: http.MethodDelete, Path: "/api/cart", Name: "cart.clear"},
		{Method: http.MethodGet, Path: "/api/cart", Name: "cart.show"},
		{Method: http.MethodGet, Path: "/healthz", Name: "health"},
		{Method: http.MethodGet, Path: "/metrics"},
	}, r.Routes())
}

func TestNotFoundHandler(t *testing.T) {
	r := router.New()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
