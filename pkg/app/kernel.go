package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/lanchonete/app/orders"
	"github.com/shashiranjanraj/lanchonete/app/routes"
	"github.com/shashiranjanraj/lanchonete/config"
	"github.com/shashiranjanraj/lanchonete/pkg/graphql"
	"github.com/shashiranjanraj/lanchonete/pkg/kv"
	"github.com/shashiranjanraj/lanchonete/pkg/metrics"
	"github.com/shashiranjanraj/lanchonete/pkg/middleware"
	"github.com/shashiranjanraj/lanchonete/pkg/reqid"
	"github.com/shashiranjanraj/lanchonete/pkg/response"
	"github.com/shashiranjanraj/lanchonete/pkg/router"
	"github.com/shashiranjanraj/lanchonete/pkg/session"
)

// Router builds the HTTP router with the global middleware and every route.
func (a *Application) Router() (*router.Router, error) {
	schema, err := graphql.NewSchema(a.Orders)
	if err != nil {
		return nil, err
	}

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, for total latency
	//  2. Request ID, before anything logs
	//  3. Logger, tagged with the request ID
	//  4. Recovery, so panics are logged with the request ID
	//  5. CORS
	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigins())))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "health", a.health)

	routes.RegisterAPI(r, routes.Deps{
		Orders:   a.Orders,
		Checkout: a.Checkout,
		Accounts: a.Accounts,
		Issuer:   a.Issuer,
		Carts:    a.Carts,
		Limiter:  a.Limiter,
		Hub:      a.Hub,
		Streams:  a.Streams,
		Schema:   schema,
		Session:  session.DefaultOptions(),
	})
	return r, nil
}

// Probe reports whether the store answers. A missing order log is fine.
func (a *Application) Probe(ctx context.Context) error {
	_, err := a.Store.Get(ctx, orders.Key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	return err
}

func (a *Application) health(w http.ResponseWriter, r *http.Request) {
	if err := a.Probe(r.Context()); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	response.Success(w, map[string]string{"status": "ok"})
}
