package handlers

import (
	"net/http"

	"github.com/opikzxx/ad-catering/repository"
	"github.com/opikzxx/ad-catering/utils"
)

type CatalogPDFHandler struct {
	Repo         *repository.CatalogRepository
	BusinessName string

	Generate func(repo *repository.CatalogRepository, businessName string) ([]byte, error)
	Upload   func(data []byte, filename, contentType string) (url, key string, err error)
}

func NewCatalogPDFHandler(repo *repository.CatalogRepository, businessName string) *CatalogPDFHandler {
	return &CatalogPDFHandler{
		Repo:         repo,
		BusinessName: businessName,
		Generate:     utils.GenerateCatalogPDF,
		Upload: func(data []byte, filename, contentType string) (string, string, error) {
			return utils.UploadToR2(data, "catalog", filename, contentType)
		},
	}
}

// CatalogPDF renders the published catalogue to PDF, stores it, and returns
// the public URL.
func (h *CatalogPDFHandler) CatalogPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Invalid request method")
		return
	}

	pdfBytes, err := h.Generate(h.Repo, h.BusinessName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate PDF: "+err.Error())
		return
	}
	if len(pdfBytes) == 0 {
		writeError(w, http.StatusNotFound, "no published menus to export")
		return
	}

	url, key, err := h.Upload(pdfBytes, "catalog.pdf", "application/pdf")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store PDF: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Message: "Catalogue PDF generated",
		Data: map[string]string{
			"url": url,
			"key": key,
		},
	})
}
