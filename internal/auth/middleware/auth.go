package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sero63211/daye-course-builder/internal/auth/service"
)

type contextKey string

const authorIDKey contextKey = "authorID"

// AuthMiddleware validates JWT access token and extracts authorID
func AuthMiddleware(tokenGenerator *service.TokenGenerator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header or cookie
			var token string

			// Try Authorization header first
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				// Expected format: "Bearer <token>"
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}

			// If not in header, try cookie
			if token == "" {
				cookie, err := r.Cookie("access_token")
				if err == nil {
					token = cookie.Value
				}
			}

			// If no token found, return 401
			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}

			// Validate token and extract authorID
			authorID, err := tokenGenerator.ValidateAccessToken(token)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid or expired token"}`))
				return
			}

			// Add authorID to context
			ctx := context.WithValue(r.Context(), authorIDKey, authorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthorID retrieves the author ID from context
func GetAuthorID(ctx context.Context) (int, bool) {
	authorID, ok := ctx.Value(authorIDKey).(int)
	return authorID, ok
}
