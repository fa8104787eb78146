package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a dated outflow record with an amount, name, category and
// optional description
type Expense struct {
	ID           int32           `json:"id"`
	AccountID    uuid.UUID       `json:"accountId"`
	CategoryID   int32           `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ExpenseFilter narrows an expense query to a year and optionally a month.
// A zero Month means no month restriction.
type ExpenseFilter struct {
	Year  int
	Month time.Month
}

// YearMonth identifies a calendar month that has at least one expense
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// ExpenseRepository defines the interface for expense persistence operations
type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetFiltered(accountID uuid.UUID, filter ExpenseFilter) ([]*Expense, error)
	SumFiltered(accountID uuid.UUID, filter ExpenseFilter) (decimal.Decimal, error)
	DistinctYears(accountID uuid.UUID) ([]int, error)
	DistinctYearMonths(accountID uuid.UUID) ([]YearMonth, error)
	MonthsInYear(accountID uuid.UUID, year int) ([]time.Month, error)
}
