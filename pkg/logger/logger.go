// Package logger provides the structured logger used across lanchonete.
//
// It is a thin layer over log/slog. Production builds log JSON, every other
// environment logs human-readable text. Request handlers should use WithCtx
// so lines carry the request_id injected by the Logger middleware:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order placed", "order_id", o.ID, "total", o.Total)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/lanchonete/config"
)

// L is the base logger. It is replaced by Setup.
var L *slog.Logger

func init() {
	Setup(os.Stdout, config.IsProduction())
}

// Setup rebuilds the base logger writing to w and makes it the slog default.
func Setup(w io.Writer, production bool) {
	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	L = slog.New(handler)
	slog.SetDefault(L)
}

// Discard silences the base logger. Useful in tests and CLI output.
func Discard() {
	L = slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(L)
}

type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return L
}

// InjectLogger stores log in ctx. Called by middleware.Logger.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
