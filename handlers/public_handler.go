package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/opikzxx/ad-catering/models"
	"github.com/opikzxx/ad-catering/repository"
)

type PublicHandler struct {
	Repo repository.MenuRepository
}

type publicMenuResponse struct {
	Categories []*models.CategoryWithMenus `json:"categories"`
}

// Menu serves the public catalogue: every category with its PUBLISHED menus.
// A category filter matching nothing returns an empty list, not 404.
func (h *PublicHandler) Menu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	catalog, err := h.Repo.PublicCatalog(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalogue")
		return
	}
	if catalog == nil {
		catalog = []*models.CategoryWithMenus{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, s-maxage=300")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(publicMenuResponse{Categories: catalog})
}
