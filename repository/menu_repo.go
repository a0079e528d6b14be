package repository

import "github.com/opikzxx/ad-catering/models"

type MenuListParams struct {
	Page       int
	Limit      int
	Search     string
	CategoryID int64
	Status     string
}

type MenuRepository interface {
	CreateMenu(menu *models.Menu) error
	// ListMenus returns the page slice plus the unpaginated total.
	ListMenus(params MenuListParams) ([]*models.Menu, int, error)
	GetMenuByID(id int64) (*models.Menu, error)
	UpdateMenu(menu *models.Menu) error
	DeleteMenu(id int64) error
	// PublicCatalog groups PUBLISHED menus by category. An optional category
	// name narrows the result; no match means an empty slice, not an error.
	PublicCatalog(categoryName string) ([]*models.CategoryWithMenus, error)
}
