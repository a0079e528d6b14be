package models

import "time"

// Session is the opaque browser credential consumed by the edge gate.
// The admin API uses bearer JWTs instead; the two never mix.
type Session struct {
	Token     string    `json:"token" bson:"_id" db:"token"`
	UserID    int64     `json:"user_id" bson:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
