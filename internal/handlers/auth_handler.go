package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/services"
)

type AuthHandler struct {
	users         services.UserStore
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthHandler(users services.UserStore, jwtSecret string, jwtExpiration time.Duration) *AuthHandler {
	return &AuthHandler{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// IssueToken signs a short-lived bearer token for a registered account.
// Accounts that registered with a password must present it.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Email is required"))
		return
	}

	user, err := h.users.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		if err == services.ErrUserNotFound || err == services.ErrInvalidPassword {
			writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("unauthorized access"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to issue token"))
		return
	}

	token, err := h.generateToken(user.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to issue token"))
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

func (h *AuthHandler) generateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(h.jwtExpiration).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
