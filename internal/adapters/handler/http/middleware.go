package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

// UserIDKey holds the authenticated user's uuid.UUID in the request context.
const UserIDKey contextKey = "user_id"

type Authenticator interface {
	Authenticate(accessToken string) (uuid.UUID, error)
}

// RequireAuth rejects requests without a valid access token, read from the
// access_token cookie or an Authorization: Bearer header.
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessToken(r)
			if token == "" {
				http.Error(w, "Unauthorized: missing access token", http.StatusUnauthorized)
				return
			}

			userID, err := auth.Authenticate(token)
			if err != nil {
				http.Error(w, "Unauthorized: invalid access token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessToken(r *http.Request) string {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func userIDFrom(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
