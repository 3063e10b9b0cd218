package handlers

import (
	"net/http"

	"github.com/matrimony/backend/internal/models"
	"github.com/matrimony/backend/internal/services"
)

type AdminHandler struct {
	directory services.BiodataDirectory
	users     services.UserStore
	contacts  services.ContactRequestStore
}

func NewAdminHandler(directory services.BiodataDirectory, users services.UserStore, contacts services.ContactRequestStore) *AdminHandler {
	return &AdminHandler{directory: directory, users: users, contacts: contacts}
}

// Stats assembles the dashboard summary: biodata counts, premium membership,
// and revenue collected from contact requests.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	total, male, female, err := h.directory.Counts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load stats"))
		return
	}

	premium, err := h.users.CountByRole(r.Context(), models.RolePremium)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load stats"))
		return
	}

	revenue, err := h.contacts.TotalRevenue(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load stats"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(models.AdminStats{
		TotalBiodata:   total,
		MaleBiodata:    male,
		FemaleBiodata:  female,
		PremiumBiodata: premium,
		TotalRevenue:   revenue,
	}))
}
