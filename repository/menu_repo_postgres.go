package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/opikzxx/ad-catering/models"
)

type PostgresMenuRepo struct {
	DB *sql.DB
}

func NewPostgresMenuRepo(db *sql.DB) *PostgresMenuRepo {
	return &PostgresMenuRepo{DB: db}
}

const menuColumns = `m.id, m.name, m.description, m.price, m.discounted_price, m.discount_percent,
	m.status, m.image_url, m.image_key, m.image_alt, m.category_id, c.name, m.created_at, m.updated_at`

func scanMenu(row interface{ Scan(...interface{}) error }) (*models.Menu, error) {
	m := &models.Menu{}
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.DiscountedPrice, &m.DiscountPercent,
		&m.Status, &m.ImageURL, &m.ImageKey, &m.ImageAlt, &m.CategoryID, &m.CategoryName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresMenuRepo) CreateMenu(menu *models.Menu) error {
	now := time.Now().UTC()
	if menu.CreatedAt.IsZero() {
		menu.CreatedAt = now
	}
	menu.UpdatedAt = now
	if menu.Status == "" {
		menu.Status = models.MenuStatusDraft
	}

	return r.DB.QueryRow(`
		INSERT INTO menus (name, description, price, discounted_price, discount_percent,
			status, image_url, image_key, image_alt, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, menu.Name, menu.Description, menu.Price, menu.DiscountedPrice, menu.DiscountPercent,
		menu.Status, menu.ImageURL, menu.ImageKey, menu.ImageAlt, menu.CategoryID,
		menu.CreatedAt, menu.UpdatedAt).Scan(&menu.ID)
}

func (r *PostgresMenuRepo) ListMenus(params MenuListParams) ([]*models.Menu, int, error) {
	var conds []string
	var args []interface{}

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if params.Search != "" {
		add("m.name ILIKE $%d", "%"+params.Search+"%")
	}
	if params.CategoryID != 0 {
		add("m.category_id = $%d", params.CategoryID)
	}
	if params.Status != "" {
		add("m.status = $%d", params.Status)
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM menus m `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	args = append(args, params.Limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM menus m
		JOIN categories c ON c.id = m.category_id
		%s
		ORDER BY m.created_at DESC
		LIMIT $%d OFFSET $%d
	`, menuColumns, where, len(args)-1, len(args))

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*models.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

func (r *PostgresMenuRepo) GetMenuByID(id int64) (*models.Menu, error) {
	row := r.DB.QueryRow(fmt.Sprintf(`
		SELECT %s
		FROM menus m
		JOIN categories c ON c.id = m.category_id
		WHERE m.id=$1
	`, menuColumns), id)

	m, err := scanMenu(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

func (r *PostgresMenuRepo) UpdateMenu(menu *models.Menu) error {
	menu.UpdatedAt = time.Now().UTC()
	res, err := r.DB.Exec(`
		UPDATE menus SET name=$1, description=$2, price=$3, discounted_price=$4,
			discount_percent=$5, status=$6, image_url=$7, image_key=$8, image_alt=$9,
			category_id=$10, updated_at=$11
		WHERE id=$12
	`, menu.Name, menu.Description, menu.Price, menu.DiscountedPrice, menu.DiscountPercent,
		menu.Status, menu.ImageURL, menu.ImageKey, menu.ImageAlt, menu.CategoryID,
		menu.UpdatedAt, menu.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

func (r *PostgresMenuRepo) DeleteMenu(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM menus WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}

func (r *PostgresMenuRepo) PublicCatalog(categoryName string) ([]*models.CategoryWithMenus, error) {
	where := "WHERE m.status = $1"
	args := []interface{}{models.MenuStatusPublished}
	if categoryName != "" {
		where += " AND c.name ILIKE $2"
		args = append(args, categoryName)
	}

	rows, err := r.DB.Query(fmt.Sprintf(`
		SELECT %s
		FROM menus m
		JOIN categories c ON c.id = m.category_id
		%s
		ORDER BY c.name ASC, m.name ASC
	`, menuColumns, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalog := []*models.CategoryWithMenus{}
	index := map[int64]*models.CategoryWithMenus{}
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		entry, ok := index[m.CategoryID]
		if !ok {
			entry = &models.CategoryWithMenus{ID: m.CategoryID, Name: m.CategoryName}
			index[m.CategoryID] = entry
			catalog = append(catalog, entry)
		}
		entry.Menus = append(entry.Menus, m)
	}
	return catalog, rows.Err()
}
