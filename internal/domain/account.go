package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account represents an authenticated user owning budget records
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByID(id uuid.UUID) (*Account, error)
	GetByUsername(username string) (*Account, error)
}
