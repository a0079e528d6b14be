package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/opikzxx/ad-catering/models"

	"golang.org/x/crypto/bcrypt"
)

type PostgresUserRepo struct {
	DB *sql.DB
}

func NewPostgresUserRepo(db *sql.DB) *PostgresUserRepo {
	return &PostgresUserRepo{DB: db}
}

// CreateUser creates a user after validating email uniqueness and hashing password
func (r *PostgresUserRepo) CreateUser(user *models.User) error {
	existing, err := r.GetUserByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	if user.Password == "" {
		return errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	return r.DB.QueryRow(`
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, user.Name, user.Email, user.Password, user.Role, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
}

// GetUserByEmail fetches user by email, nil when absent
func (r *PostgresUserRepo) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email=$1
	`, email).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

func (r *PostgresUserRepo) GetUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	err := r.DB.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE id=$1
	`, id).Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}
