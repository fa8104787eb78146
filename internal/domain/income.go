package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Income is a dated inflow record with an amount and optional source label
type Income struct {
	ID        int32           `json:"id"`
	AccountID uuid.UUID       `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Source    *string         `json:"source,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UpdateIncomeData holds the replacement values for an income edit
type UpdateIncomeData struct {
	Amount decimal.Decimal
	Date   time.Time
	Source *string
}

// IncomeRepository defines the interface for income persistence operations
type IncomeRepository interface {
	Create(income *Income) (*Income, error)
	GetByID(accountID uuid.UUID, id int32) (*Income, error)
	GetByYear(accountID uuid.UUID, year int) ([]*Income, error)
	SumByYear(accountID uuid.UUID, year int) (decimal.Decimal, error)
	DistinctYears(accountID uuid.UUID) ([]int, error)
	Update(accountID uuid.UUID, id int32, data *UpdateIncomeData) (*Income, error)
}
