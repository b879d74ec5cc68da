package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/lanchonete/pkg/logger"
	"github.com/shashiranjanraj/lanchonete/pkg/response"
)

// Recovery turns a handler panic into a logged 500. Contract violations
// such as using a cart outside the session middleware end up here.
//
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Logger)
//	r.Use(middleware.Recovery)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger.WithCtx(r.Context()).Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.ServerError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
