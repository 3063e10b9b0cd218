package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matrimony/backend/internal/middleware"
	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/services"
)

type BiodataHandler struct {
	directory services.BiodataDirectory
}

func NewBiodataHandler(directory services.BiodataDirectory) *BiodataHandler {
	return &BiodataHandler{directory: directory}
}

// List is the public directory query: filter + pagination, with the premium
// slice blended in. Malformed numeric params are a 400; an out-of-range page
// is an empty page, not an error.
func (h *BiodataHandler) List(w http.ResponseWriter, r *http.Request) {
	ageMin, okMin := queryInt(r, "ageMin")
	ageMax, okMax := queryInt(r, "ageMax")
	if !okMin || !okMax {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid age bounds"))
		return
	}

	filter := &models.BiodataFilter{
		BiodataType: r.URL.Query().Get("biodataType"),
		Division:    r.URL.Query().Get("division"),
	}
	// Age bounds only constrain when both are present.
	if ageMin != nil && ageMax != nil {
		filter.AgeMin = ageMin
		filter.AgeMax = ageMax
	}

	page := queryIntDefault(r, "page", models.DefaultPage)
	pageSize := queryIntDefault(r, "pageSize", models.DefaultPageSize)

	result, err := h.directory.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list biodatas"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}

func (h *BiodataHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid biodata id"))
		return
	}

	b, err := h.directory.GetByID(r.Context(), id)
	if err != nil {
		if err == services.ErrBiodataNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Biodata not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load biodata"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(b))
}

// GetSimilar returns up to three biodatas of the same type, excluding the
// viewer's own. Plain type match in store order; no ranking.
func (h *BiodataHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	biodataType := r.URL.Query().Get("biodataType")
	excludeEmail := r.URL.Query().Get("email")
	if biodataType == "" {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Missing biodataType"))
		return
	}

	similar, err := h.directory.GetSimilar(r.Context(), biodataType, excludeEmail)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load similar biodatas"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(similar))
}

// Submit creates the caller's biodata. Submitting twice for the same email is
// a no-op: the response carries {"biodataId": null}, the sentinel the client
// has always branched on.
func (h *BiodataHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitBiodataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	// The biodata belongs to the authenticated member.
	req.ContactEmail = middleware.GetUserEmail(r.Context())

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	result, err := h.directory.Submit(r.Context(), &req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to submit biodata"))
		return
	}

	var assigned *int
	if result.Inserted {
		assigned = &result.BiodataID
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]*int{"biodataId": assigned}))
}

func (h *BiodataHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitBiodataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	email := middleware.GetUserEmail(r.Context())
	req.ContactEmail = email

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	b, err := h.directory.Update(r.Context(), email, &req)
	if err != nil {
		if err == services.ErrBiodataNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Biodata not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update biodata"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(b))
}

// GetOwn returns the caller's biodata, used by the edit form.
func (h *BiodataHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r.Context())

	b, err := h.directory.GetByEmail(r.Context(), email)
	if err != nil {
		if err == services.ErrBiodataNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Biodata not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load biodata"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(b))
}
