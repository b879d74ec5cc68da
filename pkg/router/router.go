// Package router wraps chi with named routes and prefix groups.
//
//	r := router.New()
//	api := r.Group("/api")
//	api.Get("/orders/{id}", "orders.show", h.Show)
//	for _, rt := range r.Routes() { ... }
package router

import (
	"cmp"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// Route describes one registered endpoint.
type Route struct {
	Method string
	Path   string
	Name   string
}

type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	routes []Route
}

type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

func New() *Router {
	return &Router{mux: chi.NewRouter()}
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// Use adds global middleware. It must be called before any route is added.
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// NotFound sets the handler for unmatched paths.
func (r *Router) NotFound(h http.HandlerFunc) {
	r.mux.NotFound(h)
}

// MethodNotAllowed sets the handler for a known path with the wrong method.
func (r *Router) MethodNotAllowed(h http.HandlerFunc) {
	r.mux.MethodNotAllowed(h)
}

func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      r,
		prefix:      normalizePath(prefix),
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

func (r *Router) Get(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.mount(http.MethodGet, normalizePath(path), name, handler, middlewares)
}

func (r *Router) Post(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	r.mount(http.MethodPost, normalizePath(path), name, handler, middlewares)
}

// Handle mounts an http.Handler for method on path.
func (r *Router) Handle(method, path, name string, handler http.Handler, middlewares ...Middleware) {
	r.mount(method, normalizePath(path), name, handler, middlewares)
}

// Routes lists every registered route ordered by path then method.
func (r *Router) Routes() []Route {
	r.mu.RLock()
	out := slices.Clone(r.routes)
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Route) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Method, b.Method))
	})
	return out
}

func (r *Router) mount(method, fullPath, name string, handler http.Handler, middlewares []Middleware) {
	r.mux.Method(method, fullPath, chain(handler, middlewares...))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, Route{Method: method, Path: fullPath, Name: name})
}

func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: append(append([]Middleware(nil), g.middlewares...), middlewares...),
	}
}

func (g *Group) Get(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodGet, path, name, handler, middlewares)
}

func (g *Group) Post(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodPost, path, name, handler, middlewares)
}

func (g *Group) Put(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodPut, path, name, handler, middlewares)
}

func (g *Group) Delete(path, name string, handler http.HandlerFunc, middlewares ...Middleware) {
	g.mount(http.MethodDelete, path, name, handler, middlewares)
}

func (g *Group) mount(method, path, name string, handler http.Handler, middlewares []Middleware) {
	combined := append(append([]Middleware(nil), g.middlewares...), middlewares...)
	g.router.mount(method, joinPath(g.prefix, path), name, handler, combined)
}

func chain(handler http.Handler, middlewares ...Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func joinPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.Trim(part, "/"); trimmed != "" {
			segments = append(segments, trimmed)
		}
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

func normalizePath(path string) string {
	return joinPath(path)
}
