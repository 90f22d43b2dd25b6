package rest

import (
	"net/http"

	"real-estate-marketplace/internal/contextkeys"

	"github.com/google/uuid"
)

// AuthMiddleware извлекает userID из заголовка, который проставляет API Gateway.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			WriteJSONError(w, http.StatusUnauthorized, "X-User-ID header is missing")
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			WriteJSONError(w, http.StatusUnauthorized, "Invalid X-User-ID header format")
			return
		}

		next.ServeHTTP(w, r.WithContext(contextkeys.ContextWithUserID(r.Context(), userID)))
	})
}
