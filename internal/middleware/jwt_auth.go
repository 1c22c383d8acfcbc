package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"charity/internal/models"
	"charity/internal/repository"
	"charity/internal/services"
)

type ctxKey string

const ctxUser ctxKey = "user"

// UserFromContext returns the credential record attached by RequireAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxUser).(*models.User)
	return u, ok
}

// WithUser attaches a user to the context the way RequireAuth does.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxUser, user)
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not authorized"})
}

// RequireAuth extracts a bearer token, verifies it and resolves it to a
// stored user, one lookup per request. Every failure is the same generic
// 401; the client never learns which check tripped.
func RequireAuth(tokens *services.TokenService, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeUnauthorized(w)
				return
			}

			userID, err := tokens.VerifySessionToken(parts[1])
			if err != nil {
				writeUnauthorized(w)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
