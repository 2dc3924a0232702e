package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"learnhub/internal/api/v1/dto"
	"learnhub/internal/util"

	"github.com/rs/zerolog"
)

// Injected key type to avoid context collisions
type contextKey string

const UserContextKey = contextKey("user")

// TokenCookie is the cookie set by the auth service on login.
const TokenCookie = "token"

// AuthMiddleware verifies the caller's JWT, taken from a Bearer Authorization
// header or the token cookie, and stores the user ID on the request context.
func AuthMiddleware(jwtSecret string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := tokenFromRequest(r)
			if !ok {
				logger.Warn().Str("path", r.URL.Path).Msg("Token missing")
				unauthorized(w, "Token is missing", "")
				return
			}
			claims, err := util.ValidateJWT(tokenString, jwtSecret)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Invalid token")
				unauthorized(w, "Token is invalid", err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.UserID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user ID stored by AuthMiddleware.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserContextKey).(string)
	return id, ok && id != ""
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}

func unauthorized(w http.ResponseWriter, message, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(dto.Envelope{Success: false, Message: message, Error: detail})
}
