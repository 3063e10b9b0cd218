package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matrimony/backend/internal/middleware"
	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/services"
)

type FavoriteHandler struct {
	favorites services.FavoriteStore
}

func NewFavoriteHandler(favorites services.FavoriteStore) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req models.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if req.BiodataID <= 0 {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Biodata id is required"))
		return
	}

	userEmail := middleware.GetUserEmail(r.Context())
	fav, err := h.favorites.Add(r.Context(), userEmail, req.BiodataID)
	if err != nil {
		switch err {
		case services.ErrAlreadyFavorited:
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Biodata already favorited"))
		case services.ErrBiodataNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Biodata not found"))
		default:
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to add favorite"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(fav))
}

func (h *FavoriteHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email != middleware.GetUserEmail(r.Context()) {
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse("forbidden access"))
		return
	}

	favorites, err := h.favorites.ListByEmail(r.Context(), email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to list favorites"))
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(favorites))
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userEmail := middleware.GetUserEmail(r.Context())

	err := h.favorites.Remove(r.Context(), id, userEmail)
	if err != nil {
		switch err {
		case services.ErrFavoriteNotFound:
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Favorite not found"))
		case services.ErrFavoriteForbidden:
			writeJSON(w, http.StatusForbidden, models.NewErrorResponse("forbidden access"))
		default:
			writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to remove favorite"))
		}
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]string{"message": "Favorite removed"}))
}
