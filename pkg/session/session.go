// Package session ties a browser cookie to the cart of that visitor.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions(), carts))
//
// Usage (handler):
//
//	store := cart.FromContext(r.Context())
//	session.FromCtx(r).Invalidate(w)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/shashiranjanraj/lanchonete/app/cart"
	"github.com/shashiranjanraj/lanchonete/config"
)

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions reads the TTL and Secure flag from config.
func DefaultOptions() Options {
	return Options{
		CookieName: "lanchonete_session",
		TTL:        config.SessionTTL(),
		HTTPOnly:   true,
		Secure:     config.SessionSecure(),
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is the per-request handle on a visitor's session.
type Session struct {
	id       string
	opts     Options
	registry *cart.Registry
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Cart returns the session's cart.
func (s *Session) Cart() *cart.Store { return s.registry.Get(s.id) }

// Invalidate drops the cart and expires the cookie. The next request starts
// a fresh session.
func (s *Session) Invalidate(w http.ResponseWriter) {
	s.registry.Drop(s.id)
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     s.opts.Path,
		MaxAge:   -1,
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
}

func (s *Session) writeCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})
}

// newID generates a random 32-byte hex session ID.
func newID() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func validID(id string) bool {
	if len(id) != 64 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// Middleware resolves the session from its cookie, or starts one, and
// installs the session's cart with cart.WithContext. The cookie is refreshed
// on every request so the TTL slides.
func Middleware(opts Options, registry *cart.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts, registry: registry}
			if c, err := r.Cookie(opts.CookieName); err == nil && validID(c.Value) {
				sess.id = c.Value
			} else {
				sess.id = newID()
			}
			sess.writeCookie(w)

			store, release := registry.Acquire(sess.id)
			defer release()

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			ctx = cart.WithContext(ctx, store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx returns the session installed by Middleware. It panics when the
// route is not behind Middleware.
func FromCtx(r *http.Request) *Session {
	s, ok := r.Context().Value(ctxKey{}).(*Session)
	if !ok {
		panic("session: request is not behind session.Middleware")
	}
	return s
}
