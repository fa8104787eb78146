package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session links a request to an authenticated account after sign-in
type Session struct {
	Token     string    `json:"-"`
	AccountID uuid.UUID `json:"accountId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionRepository defines the interface for session persistence operations
type SessionRepository interface {
	Create(session *Session) (*Session, error)
	GetByToken(token string) (*Session, error)
	Delete(token string) error
	DeleteExpired() (int64, error)
}
