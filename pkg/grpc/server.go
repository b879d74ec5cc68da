// Package grpc runs the gRPC side of lanchonete: the standard health
// service (grpc.health.v1.Health) plus reflection, behind recovery, logging
// and Prometheus interceptors.
//
//	srv := grpc.New(func(ctx context.Context) error { return probeStore(ctx) })
//	lis, _ := net.Listen("tcp", ":"+config.GRPCPort())
//	go srv.Serve(lis)
//	go srv.Watch(ctx, 15*time.Second)
//	// ...run until signal...
//	srv.Stop(shutdownCtx)
package grpc

import (
	"context"
	"net"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/metrics"
)

// OrdersService is the health service name that tracks the order store.
const OrdersService = "lanchonete.orders"

// Probe reports whether the order store is reachable.
type Probe func(ctx context.Context) error

// Server wraps a grpc.Server and its health state.
type Server struct {
	srv    *grpc.Server
	health *health.Server
	probe  Probe
}

// New builds the server. A nil probe always reports SERVING.
func New(probe Probe) *Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(recoveryInterceptor, loggingInterceptor, metricsInterceptor),
		grpc.MaxRecvMsgSize(4*1024*1024),
		grpc.MaxSendMsgSize(4*1024*1024),
	)

	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	s := &Server{srv: srv, health: hs, probe: probe}
	s.Check(context.Background())
	return s
}

// Check runs the probe once and publishes the result.
func (s *Server) Check(ctx context.Context) {
	st := grpc_health_v1.HealthCheckResponse_SERVING
	if s.probe != nil {
		if err := s.probe(ctx); err != nil {
			logger.Warn("grpc: store probe failed", "error", err)
			st = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(OrdersService, st)
}

// Watch re-runs Check every interval until ctx is done.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval)
			s.Check(probeCtx)
			cancel()
		}
	}
}

// Serve blocks accepting connections on lis.
func (s *Server) Serve(lis net.Listener) error {
	logger.Info("gRPC server starting", "addr", lis.Addr().String())
	return s.srv.Serve(lis)
}

// Stop marks every service NOT_SERVING and waits for in-flight RPCs until
// ctx is done, then closes the remaining connections.
func (s *Server) Stop(ctx context.Context) {
	logger.Info("gRPC server shutting down")
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.srv.Stop()
	}
}

func recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("grpc: panic recovered",
				"method", info.FullMethod,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = status.Errorf(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

func loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	logger.Debug("grpc: request",
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"code", status.Code(err).String(),
	)
	return resp, err
}

func metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	metrics.GRPCHandled.WithLabelValues(info.FullMethod, status.Code(err).String()).Inc()
	metrics.GRPCDuration.WithLabelValues(info.FullMethod).Observe(time.Since(start).Seconds())
	return resp, err
}
