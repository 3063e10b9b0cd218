package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/matrimony/backend/internal/models"
)

type contextKey string

const UserEmailKey contextKey = "userEmail"

// RoleResolver looks up an account's role. Satisfied by both user service
// implementations.
type RoleResolver interface {
	GetRole(ctx context.Context, email string) (string, error)
}

// JWTAuth validates the bearer token and stores the email claim in the
// request context. The 401 message strings are part of the wire contract.
func JWTAuth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("unauthorized access"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("unauthorized access"))
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("unauthorized access"))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("unauthorized access"))
				return
			}

			email, ok := claims["email"].(string)
			if !ok || email == "" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("unauthorized access"))
				return
			}

			ctx := context.WithValue(r.Context(), UserEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin resolves the authenticated email to a role and rejects
// non-admins. Must be stacked after JWTAuth.
func RequireAdmin(roles RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := GetUserEmail(r.Context())
			if email == "" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("unauthorized access"))
				return
			}

			role, err := roles.GetRole(r.Context(), email)
			if err != nil || role != models.RoleAdmin {
				writeJSON(w, http.StatusForbidden, models.NewErrorResponse("forbidden access"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserEmail extracts the authenticated email from context.
func GetUserEmail(ctx context.Context) string {
	email, ok := ctx.Value(UserEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
