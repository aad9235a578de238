package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal is the authenticated caller, as asserted by the identity
// provider that signed the token. No credential verification happens
// beyond signature and expiry checks.
type Principal struct {
	UserID uuid.UUID
	Role   string
}

type contextKey struct{}

var ErrNoPrincipal = errors.New("no authenticated principal in context")

// FromContext returns the principal stored by Middleware.
func FromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}

	return p, nil
}

type claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Middleware validates the bearer token and injects the principal into
// the request context. Requests without a valid token get a 401.
func Middleware(secret string) func(http.Handler) http.Handler {
	keyFunc := func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			var c claims

			token, err := jwt.ParseWithClaims(raw, &c, keyFunc,
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			userID, err := uuid.Parse(c.Subject)
			if err != nil {
				http.Error(w, "invalid token subject", http.StatusUnauthorized)
				return
			}

			p := Principal{UserID: userID, Role: c.Role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, p)))
		})
	}
}
