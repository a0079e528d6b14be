package repository

import "github.com/opikzxx/ad-catering/models"

// CatalogRepository provides the data needed to render the catalogue PDF
type CatalogRepository struct {
	MenuRepo MenuRepository
}

func NewCatalogRepository(menuRepo MenuRepository) *CatalogRepository {
	return &CatalogRepository{MenuRepo: menuRepo}
}

// GetCatalogForPDF fetches all categories with their published menus
func (r *CatalogRepository) GetCatalogForPDF() ([]*models.CategoryWithMenus, error) {
	return r.MenuRepo.PublicCatalog("")
}
