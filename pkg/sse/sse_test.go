package sse_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/lanchonete/pkg/event"
	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/sse"
)

func init() { logger.Discard() }

func TestBrokerStreamsOrderEvents(t *testing.T) {
	bus := event.New()
	b := sse.NewBroker()
	b.Attach(bus)

	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))
	require.Eventually(t, func() bool { return b.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	bus.Fire(event.OrderStatusChanged, map[string]string{"id": "123456-001"})

	sc := bufio.NewScanner(res.Body)
	var lines []string
	for sc.Scan() {
		line := sc.Text()
		if line == "" && len(lines) > 0 {
			break
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "event: order.status_changed", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "data: "))
	assert.Contains(t, lines[1], `"id":"123456-001"`)

	cancel()
	require.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestRunEndsStreams(t *testing.T) {
	b := sse.NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)

	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		b.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sse/orders", nil))
		close(done)
	}()
	require.Eventually(t, func() bool { return b.Subscribers() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stream still open after Run returned")
	}
	assert.Zero(t, b.Subscribers())
}

func TestPublishWithoutSubscribers(t *testing.T) {
	b := sse.NewBroker()
	assert.NotPanics(t, func() { b.Publish(event.Event{Name: event.OrdersCleared}) })
	assert.Zero(t, b.Subscribers())
}

type plainWriter struct {
	header http.Header
	code   int
}

func (p *plainWriter) Header() http.Header { return p.header }

func (p *plainWriter) Write(b []byte) (int, error) { return len(b), nil }

func (p *plainWriter) WriteHeader(code int) { p.code = code }

func TestNewStreamNeedsFlusher(t *testing.T) {
	w := &plainWriter{header: http.Header{}}
	assert.Nil(t, sse.NewStream(w))
	assert.Equal(t, http.StatusInternalServerError, w.code)
}
