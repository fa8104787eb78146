package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseCategory is a user-defined label grouping expenses
type ExpenseCategory struct {
	ID        int32     `json:"id"`
	AccountID uuid.UUID `json:"accountId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ExpenseCategoryRepository defines the interface for category persistence operations
type ExpenseCategoryRepository interface {
	Create(category *ExpenseCategory) (*ExpenseCategory, error)
	GetByID(accountID uuid.UUID, id int32) (*ExpenseCategory, error)
	GetAllByAccount(accountID uuid.UUID) ([]*ExpenseCategory, error)
}
