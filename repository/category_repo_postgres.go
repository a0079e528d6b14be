package repository

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/opikzxx/ad-catering/models"

	"github.com/lib/pq"
)

type PostgresCategoryRepo struct {
	DB *sql.DB
}

func NewPostgresCategoryRepo(db *sql.DB) *PostgresCategoryRepo {
	return &PostgresCategoryRepo{DB: db}
}

func (r *PostgresCategoryRepo) CreateCategory(category *models.Category) error {
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	err := r.DB.QueryRow(`
		INSERT INTO categories (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, category.Name, category.CreatedAt, category.UpdatedAt).Scan(&category.ID)

	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

func (r *PostgresCategoryRepo) ListCategories(params CategoryListParams) ([]*models.Category, int, error) {
	where := ""
	args := []interface{}{}
	if params.Search != "" {
		where = "WHERE c.name ILIKE $1"
		args = append(args, "%"+params.Search+"%")
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM categories c `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	query := `
		SELECT c.id, c.name, COUNT(m.id), c.created_at, c.updated_at
		FROM categories c
		LEFT JOIN menus m ON m.category_id = c.id
		` + where + `
		GROUP BY c.id
		ORDER BY c.name ASC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, params.Limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.MenuCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r *PostgresCategoryRepo) GetCategoryByID(id int64) (*models.Category, error) {
	c := &models.Category{}
	err := r.DB.QueryRow(`
		SELECT c.id, c.name, COUNT(m.id), c.created_at, c.updated_at
		FROM categories c
		LEFT JOIN menus m ON m.category_id = c.id
		WHERE c.id=$1
		GROUP BY c.id
	`, id).Scan(&c.ID, &c.Name, &c.MenuCount, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *PostgresCategoryRepo) GetCategoryByName(name string) (*models.Category, error) {
	c := &models.Category{}
	err := r.DB.QueryRow(`
		SELECT id, name, created_at, updated_at
		FROM categories
		WHERE name=$1
	`, name).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *PostgresCategoryRepo) UpdateCategory(category *models.Category) error {
	category.UpdatedAt = time.Now().UTC()
	res, err := r.DB.Exec(`
		UPDATE categories SET name=$1, updated_at=$2 WHERE id=$3
	`, category.Name, category.UpdatedAt, category.ID)

	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

func (r *PostgresCategoryRepo) DeleteCategory(id int64) error {
	count, err := r.CountMenus(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}

	res, err := r.DB.Exec(`DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		// The FK is RESTRICT, so a concurrent menu insert still surfaces here.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrCategoryNotEmpty
		}
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

func (r *PostgresCategoryRepo) CountMenus(categoryID int64) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM menus WHERE category_id=$1`, categoryID).Scan(&count)
	return count, err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

