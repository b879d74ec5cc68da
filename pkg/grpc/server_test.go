package grpc_test

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/shashiranjanraj/lanchonete/pkg/grpc"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
)

func init() { logger.Discard() }

func dial(t *testing.T, srv *grpc.Server) grpc_health_v1.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	go srv.Serve(lis) //nolint:errcheck
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Stop(ctx)
	})

	conn, err := grpclib.NewClient("passthrough:///bufnet",
		grpclib.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpclib.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return grpc_health_v1.NewHealthClient(conn)
}

func check(t *testing.T, c grpc_health_v1.HealthClient, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := c.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthFollowsProbe(t *testing.T) {
	var failing atomic.Bool
	srv := grpc.New(func(context.Context) error {
		if failing.Load() {
			return errors.New("store down")
		}
		return nil
	})
	client := dial(t, srv)

	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, client, ""))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, client, grpc.OrdersService))

	failing.Store(true)
	srv.Check(context.Background())
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, check(t, client, grpc.OrdersService))
}

func TestNilProbeServes(t *testing.T) {
	client := dial(t, grpc.New(nil))
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, check(t, client, grpc.OrdersService))
}
