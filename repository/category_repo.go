package repository

import "github.com/opikzxx/ad-catering/models"

type CategoryListParams struct {
	Page   int
	Limit  int
	Search string
}

type CategoryRepository interface {
	CreateCategory(category *models.Category) error
	// ListCategories returns the page slice plus the unpaginated total.
	ListCategories(params CategoryListParams) ([]*models.Category, int, error)
	GetCategoryByID(id int64) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	UpdateCategory(category *models.Category) error
	// DeleteCategory fails with ErrCategoryNotEmpty while menus reference it.
	DeleteCategory(id int64) error
	CountMenus(categoryID int64) (int, error)
}
