// Package metrics provides Prometheus instrumentation for lanchonete.
//
// Wire it once in the HTTP kernel:
//
//	r.Use(metrics.Middleware())
//	r.HandleFunc("/metrics", metrics.Handler())
package metrics

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lanchonete"

var (
	// RequestDuration tracks HTTP latency by method, path and status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being served.",
	})

	// StoreDuration tracks key-value store latency.
	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Duration of key-value store operations in seconds.",
			Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .5, 1},
		},
		[]string{"driver", "op", "result"}, // result: ok | miss | error
	)

	// OrdersPlaced counts saved orders by payment method.
	OrdersPlaced = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "placed_total",
			Help:      "Total orders placed.",
		},
		[]string{"payment"},
	)

	// OrderRevenue sums order totals in the menu currency.
	OrderRevenue = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "revenue_total",
		Help:      "Sum of placed order totals.",
	})

	// StatusChanges counts order status updates by target status.
	StatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_changes_total",
			Help:      "Total order status updates.",
		},
		[]string{"status"},
	)

	// CartCommands counts dispatched cart commands by kind.
	CartCommands = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "commands_total",
			Help:      "Total cart commands dispatched.",
		},
		[]string{"command"},
	)

	// GRPCHandled counts completed gRPC calls by method and code.
	GRPCHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "handled_total",
			Help:      "Total gRPC calls completed by method and code.",
		},
		[]string{"method", "code"},
	)

	GRPCDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "handling_seconds",
			Help:      "gRPC response latency in seconds.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method"},
	)

	// WSClients is the number of connected order-event screens.
	WSClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ws",
		Name:      "clients",
		Help:      "Connected WebSocket clients.",
	})
)

// Registry is the registry served on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	Registry.MustRegister(
		RequestDuration,
		RequestInFlight,
		StoreDuration,
		OrdersPlaced,
		OrderRevenue,
		StatusChanges,
		CartCommands,
		GRPCHandled,
		GRPCDuration,
		WSClients,
	)
}

// ObserveStore records one store operation:
//
//	start := time.Now()
//	v, err := s.Get(ctx, key)
//	metrics.ObserveStore("redis", "get", "ok", start)
func ObserveStore(driver, op, result string, start time.Time) {
	StoreDuration.WithLabelValues(driver, op, result).Observe(time.Since(start).Seconds())
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Hijack lets the WebSocket upgrade through.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	r.status = http.StatusSwitchingProtocols
	return http.NewResponseController(r.ResponseWriter).Hijack()
}

// Middleware records duration and in-flight count for every request. The
// path label is the chi route pattern, so /api/orders/{id} is one series.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			RequestDuration.
				WithLabelValues(r.Method, routePattern(r), strconv.Itoa(rec.status)).
				Observe(time.Since(start).Seconds())
		})
	}
}

// Handler exposes Registry in the Prometheus text and OpenMetrics formats.
func Handler() http.HandlerFunc {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{EnableOpenMetrics: true}).ServeHTTP
}

func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
