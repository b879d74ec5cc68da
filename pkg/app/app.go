// Package app wires the lanchonete services together and runs them.
//
//	a, err := app.Open(ctx)
//	defer a.Close()
//	err = a.Serve(ctx)
//
// The CLI uses the same Application for its one-shot commands, so the
// terminal and the HTTP API share storage and events.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/lanchonete/app/account"
	"github.com/shashiranjanraj/lanchonete/app/cart"
	"github.com/shashiranjanraj/lanchonete/app/checkout"
	"github.com/shashiranjanraj/lanchonete/app/orders"
	"github.com/shashiranjanraj/lanchonete/config"
	"github.com/shashiranjanraj/lanchonete/pkg/auth"
	"github.com/shashiranjanraj/lanchonete/pkg/event"
	"github.com/shashiranjanraj/lanchonete/pkg/kv"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/middleware"
	"github.com/shashiranjanraj/lanchonete/pkg/sse"
	"github.com/shashiranjanraj/lanchonete/pkg/ws"
)

// Application holds every long-lived service.
type Application struct {
	Store    kv.Store
	Events   *event.Bus
	Orders   *orders.Log
	Checkout *checkout.Service
	Accounts *account.Service
	Issuer   *auth.Issuer
	Carts    *cart.Registry
	Limiter  *middleware.RateLimiter
	Hub      *ws.Hub
	Streams  *sse.Broker

	logSink *logger.MongoSink
}

// Open loads config and builds the Application on the configured store.
func Open(ctx context.Context) (*Application, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	store, err := kv.Open(ctx)
	if err != nil {
		return nil, err
	}
	a, err := New(store)
	if err != nil {
		_ = kv.Close(store)
		return nil, err
	}
	if uri := config.LogMongoURI(); uri != "" {
		sink, err := logger.NewMongoSink(ctx, uri, config.MongoDatabase(), config.LogMongoCollection(),
			logger.ParseLevel(config.LogMongoLevel()))
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			logger.Tee(sink)
			a.logSink = sink
		}
	}
	return a, nil
}

// New builds the Application on store.
func New(store kv.Store) (*Application, error) {
	issuer, err := auth.NewIssuer(config.JWTSecret(), config.JWTTTL())
	if err != nil {
		return nil, err
	}

	bus := event.New()
	log := orders.New(store, orders.WithEvents(bus))

	hub := ws.NewHub(config.CORSOrigins())
	hub.Attach(bus)
	streams := sse.NewBroker()
	streams.Attach(bus)

	return &Application{
		Store:    store,
		Events:   bus,
		Orders:   log,
		Checkout: checkout.New(log, bus),
		Accounts: account.New(store),
		Issuer:   issuer,
		Carts:    cart.NewRegistry(),
		Limiter:  middleware.NewRateLimiter(config.RateLimit(), time.Minute),
		Hub:      hub,
		Streams:  streams,
	}, nil
}

// Close flushes the log sink and releases the store.
func (a *Application) Close() error {
	if a.logSink != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.logSink.Close(ctx); err != nil {
			logger.Warn("mongo log sink close", "error", err)
		}
	}
	return kv.Close(a.Store)
}
