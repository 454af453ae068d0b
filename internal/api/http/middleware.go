package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"campus-canteen/internal/service"
)

type contextKey string

const userIDKey contextKey = "userID"

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		userID, err := h.Auth.Identity(token)
		if err != nil {
			// A pending password reset suspends the identity entirely.
			if errors.Is(err, service.ErrPasswordResetPending) {
				http.Error(w, err.Error(), http.StatusForbidden)
				return
			}
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFrom(r *http.Request) int {
	id, _ := r.Context().Value(userIDKey).(int)
	return id
}
