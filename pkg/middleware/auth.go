package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/lanchonete/pkg/auth"
	"github.com/shashiranjanraj/lanchonete/pkg/response"
)

type claimsKey struct{}

// Auth requires a valid "Authorization: Bearer <token>" header and stores
// the token claims in the request context.
func Auth(issuer *auth.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				response.Unauthorized(w)
				return
			}

			claims, err := issuer.Validate(strings.TrimSpace(token))
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}
