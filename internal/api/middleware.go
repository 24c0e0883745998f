package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/trogers1052/stock-analysis-service/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// Authenticate verifies the bearer token and resolves the acting user from
// the database, so revoked or deleted accounts are rejected even with a
// valid token.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, "authorization header must be a bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := h.tokens.Verify(token)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		user, err := h.db.GetUserByID(claims.UserID)
		if err != nil {
			http.Error(w, "unknown user", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userFrom returns the authenticated user stored by Authenticate. Handlers
// behind the middleware can rely on it being present.
func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}
