package repository

import "github.com/opikzxx/ad-catering/models"

// UserRepository defines the interface for user operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id int64) (*models.User, error)
}
