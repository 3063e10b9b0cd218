package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matrimony/backend/internal/middleware"
	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/services"
)

type UserHandler struct {
	users services.UserStore
}

func NewUserHandler(users services.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers an account at signup. A repeat signup for the same email
// responds {"insertedId": null} with a 200, the sentinel the client branches
// on.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	result, err := h.users.Create(r.Context(), &req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create user"))
		return
	}

	var insertedID *string
	if result.Inserted {
		insertedID = &result.InsertedID
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]*string{"insertedId": insertedID}))
}

// CheckAdmin reports whether the given account is an admin. Members may only
// ask about themselves.
func (h *UserHandler) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email != middleware.GetUserEmail(r.Context()) {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("forbidden access"))
		return
	}

	role, err := h.users.GetRole(r.Context(), email)
	if err != nil && err != services.ErrUserNotFound {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load user"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]bool{"admin": role == models.RoleAdmin}))
}

// List is the admin user table, optionally filtered by a name search.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list users"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(users))
}

// ChangeRole applies an admin-granted role: premium or admin. The transition
// is unconditional; a pending premium request is not required.
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req models.RoleChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	if err := h.users.SetRole(r.Context(), email, req.Role); err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to change role"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"email": email, "role": req.Role}))
}

// RequestPremium lets a member ask for the premium tier; an admin grants it
// later through ChangeRole.
func (h *UserHandler) RequestPremium(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email != middleware.GetUserEmail(r.Context()) {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("forbidden access"))
		return
	}

	if err := h.users.RequestPremium(r.Context(), email); err != nil {
		if err == services.ErrUserNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to request premium"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"email": email, "role": models.RolePremiumRequested}))
}
