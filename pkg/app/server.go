package app

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/shashiranjanraj/lanchonete/config"
	"github.com/shashiranjanraj/lanchonete/internal/server"
	"github.com/shashiranjanraj/lanchonete/pkg/grpc"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
)

const sweepInterval = time.Minute

// Serve runs the HTTP and gRPC servers until ctx is done, then shuts both
// down within SHUTDOWN_TIMEOUT.
func (a *Application) Serve(ctx context.Context) error {
	r, err := a.Router()
	if err != nil {
		return err
	}

	httpLis, err := net.Listen("tcp", ":"+config.AppPort())
	if err != nil {
		return err
	}
	grpcLis, err := net.Listen("tcp", ":"+config.GRPCPort())
	if err != nil {
		httpLis.Close()
		return err
	}

	return server.Run(ctx, server.Config{
		HTTP: &http.Server{
			Handler:           r.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		HTTPListener:    httpLis,
		GRPC:            grpc.New(a.Probe),
		GRPCListener:    grpcLis,
		ShutdownTimeout: config.ShutdownTimeout(),
		Background: []func(context.Context){
			a.Hub.Run,
			a.Streams.Run,
			a.sweep,
		},
	})
}

// sweep drops idle carts and finished rate-limit windows.
func (a *Application) sweep(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	ttl := config.SessionTTL()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			carts := a.Carts.Expire(ttl)
			clients := a.Limiter.Sweep()
			if carts > 0 || clients > 0 {
				logger.Debug("swept idle state", "carts", carts, "rate_buckets", clients)
			}
		}
	}
}
