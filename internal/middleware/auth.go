package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"votepulse/internal/domain"
	"votepulse/internal/service"
	"votepulse/pkg/logger"
)

type contextKey string

// UserContextKey is the request context key holding the authenticated profile
const UserContextKey contextKey = "user"

// Authenticator returns middleware that requires a valid bearer token and
// places the resolved profile in the request context
func Authenticator(auth service.AuthService, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w, "Missing or malformed Authorization header")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			profile, err := auth.VerifyToken(r.Context(), token)
			if err != nil {
				log.WithError(err).Debug("Token verification failed")
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the authenticated profile, nil when absent
func UserFromContext(ctx context.Context) *domain.Profile {
	profile, _ := ctx.Value(UserContextKey).(*domain.Profile)
	return profile
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
