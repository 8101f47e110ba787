package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/immunitrack/vaccine-tracker-api/internal/models"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AuthMiddleware gates every entity route. Two credentials are accepted:
// an API key in X-API-KEY, or a JWT in "Authorization: Bearer <token>".
// Either way the resolved user id ends up in the request context.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. API key header
		apiKey := r.Header.Get("X-API-KEY")
		if apiKey != "" && h.db != nil {
			var keyModel models.APIKey
			if err := h.db.Where("key = ?", apiKey).First(&keyModel).Error; err == nil {
				if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
					writeUnauthorized(w, "API key expired")
					return
				}

				h.db.Model(&keyModel).Update("last_used_at", time.Now())

				ctx := context.WithValue(r.Context(), UserIDKey, keyModel.UserID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		// 2. Bearer token
		header := r.Header.Get("Authorization")
		if header == "" {
			writeUnauthorized(w, "Not authorized to access this route")
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			writeUnauthorized(w, "Not authorized to access this route")
			return
		}

		userID, err := h.ParseToken(tokenString)
		if err != nil {
			writeUnauthorized(w, "Not authorized to access this route")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Auth failures happen before huma sees the request, so the envelope is
// written by hand here.
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
