package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/services"
)

type StoryHandler struct {
	stories services.StoryStore
}

func NewStoryHandler(stories services.StoryStore) *StoryHandler {
	return &StoryHandler{stories: stories}
}

func (h *StoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	story, err := h.stories.Create(r.Context(), &req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create success story"))
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(story))
}

// List is public: the home page carousel, newest marriages first.
func (h *StoryHandler) List(w http.ResponseWriter, r *http.Request) {
	stories, err := h.stories.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list success stories"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(stories))
}

// GetByID serves the admin dashboard's full-story view.
func (h *StoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	story, err := h.stories.GetByID(r.Context(), id)
	if err != nil {
		if err == services.ErrStoryNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Success story not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load success story"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(story))
}
