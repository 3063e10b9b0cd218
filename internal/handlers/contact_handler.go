package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matrimony/backend/internal/middleware"
	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/services"
)

type ContactHandler struct {
	contacts services.ContactRequestStore
	fee      int64
}

func NewContactHandler(contacts services.ContactRequestStore, feeCents int64) *ContactHandler {
	return &ContactHandler{contacts: contacts, fee: feeCents}
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	selfEmail := middleware.GetUserEmail(r.Context())
	cr, err := h.contacts.Create(r.Context(), selfEmail, &req, h.fee)
	if err != nil {
		if err == services.ErrAlreadyRequested {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Contact already requested"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create contact request"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(cr))
}

// ListByEmail returns the member's own requests; approved entries carry the
// revealed contact details.
func (h *ContactHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email != middleware.GetUserEmail(r.Context()) {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("forbidden access"))
		return
	}

	requests, err := h.contacts.ListByEmail(r.Context(), email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list contact requests"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(requests))
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	selfEmail := middleware.GetUserEmail(r.Context())

	err := h.contacts.Delete(r.Context(), id, selfEmail)
	if err != nil {
		switch err {
		case services.ErrContactNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Contact request not found"))
		case services.ErrContactForbidden:
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("forbidden access"))
		default:
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to delete contact request"))
		}
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Contact request removed"}))
}

// ListPending is the admin moderation queue.
func (h *ContactHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.contacts.ListPending(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list contact requests"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(requests))
}

// Approve marks a request approved. The notify worker picks it up and emails
// the requester out of band.
func (h *ContactHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.contacts.Approve(r.Context(), id); err != nil {
		if err == services.ErrContactNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Contact request not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to approve contact request"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"id": id, "status": models.ContactRequestApproved}))
}
