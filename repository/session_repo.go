package repository

import "github.com/opikzxx/ad-catering/models"

type SessionRepository interface {
	CreateSession(session *models.Session) error
	// GetSession returns nil, nil for unknown or expired tokens.
	GetSession(token string) (*models.Session, error)
	DeleteSession(token string) error
	DeleteSessionsForUser(userID int64) error
}
