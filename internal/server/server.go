// Package server owns the listen and graceful-shutdown lifecycle of the
// HTTP and gRPC servers.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shashiranjanraj/lanchonete/pkg/grpc"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
)

// Config is what Run serves.
type Config struct {
	HTTP            *http.Server
	HTTPListener    net.Listener
	GRPC            *grpc.Server
	GRPCListener    net.Listener
	ShutdownTimeout time.Duration

	// Background tasks run until shutdown begins.
	Background []func(context.Context)
}

// Run serves until ctx is done or a server fails, then stops everything.
// A clean shutdown returns nil.
func Run(ctx context.Context, cfg Config) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", cfg.HTTPListener.Addr().String())
		if err := cfg.HTTP.Serve(cfg.HTTPListener); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.GRPC != nil {
		g.Go(func() error { return cfg.GRPC.Serve(cfg.GRPCListener) })
		g.Go(func() error {
			cfg.GRPC.Watch(gctx, 15*time.Second)
			return nil
		})
	}

	for _, task := range cfg.Background {
		g.Go(func() error {
			task(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		if cfg.GRPC != nil {
			cfg.GRPC.Stop(shutdownCtx)
		}
		return cfg.HTTP.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
