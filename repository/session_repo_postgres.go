package repository

import (
	"database/sql"
	"time"

	"github.com/opikzxx/ad-catering/models"
)

type PostgresSessionRepo struct {
	DB *sql.DB
}

func NewPostgresSessionRepo(db *sql.DB) *PostgresSessionRepo {
	return &PostgresSessionRepo{DB: db}
}

func (r *PostgresSessionRepo) CreateSession(session *models.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.Exec(`
		INSERT INTO sessions (token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, session.Token, session.UserID, session.ExpiresAt, session.CreatedAt)
	return err
}

func (r *PostgresSessionRepo) GetSession(token string) (*models.Session, error) {
	session := &models.Session{}
	err := r.DB.QueryRow(`
		SELECT token, user_id, expires_at, created_at
		FROM sessions
		WHERE token=$1 AND expires_at > NOW()
	`, token).Scan(&session.Token, &session.UserID, &session.ExpiresAt, &session.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return session, nil
}

func (r *PostgresSessionRepo) DeleteSession(token string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE token=$1`, token)
	return err
}

func (r *PostgresSessionRepo) DeleteSessionsForUser(userID int64) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE user_id=$1`, userID)
	return err
}
