package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

// IncomeService handles income business logic
type IncomeService struct {
	incomeRepo domain.IncomeRepository
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(incomeRepo domain.IncomeRepository) *IncomeService {
	return &IncomeService{incomeRepo: incomeRepo}
}

// IncomeListResult is the view model for the income list
type IncomeListResult struct {
	Incomes        []*domain.Income
	AvailableYears []int
	Total          decimal.Decimal
	SelectedYear   int
}

// ListByYear returns the caller's income rows for a year together with the
// exact decimal total and the distinct years that have any income.
func (s *IncomeService) ListByYear(accountID uuid.UUID, year int) (*IncomeListResult, error) {
	incomes, err := s.incomeRepo.GetByYear(accountID, year)
	if err != nil {
		return nil, err
	}

	total, err := s.incomeRepo.SumByYear(accountID, year)
	if err != nil {
		return nil, err
	}

	years, err := s.incomeRepo.DistinctYears(accountID)
	if err != nil {
		return nil, err
	}

	return &IncomeListResult{
		Incomes:        incomes,
		AvailableYears: years,
		Total:          total,
		SelectedYear:   year,
	}, nil
}

// CreateIncomeInput holds the parsed income creation form
type CreateIncomeInput struct {
	Amount decimal.Decimal
	Date   time.Time
	Source string
}

// CreateIncome inserts an income row owned by the caller
func (s *IncomeService) CreateIncome(accountID uuid.UUID, input CreateIncomeInput) (*domain.Income, error) {
	income := &domain.Income{
		AccountID: accountID,
		Amount:    input.Amount,
		Date:      input.Date,
		Source:    optionalText(input.Source),
	}
	return s.incomeRepo.Create(income)
}

// GetIncome loads an income row by id scoped to the caller
func (s *IncomeService) GetIncome(accountID uuid.UUID, id int32) (*domain.Income, error) {
	return s.incomeRepo.GetByID(accountID, id)
}

// UpdateIncome replaces amount, date and source of the caller's income row.
// If all three submitted values equal the stored ones no write is performed
// and the stored row is returned with changed=false.
func (s *IncomeService) UpdateIncome(accountID uuid.UUID, id int32, input CreateIncomeInput) (*domain.Income, bool, error) {
	existing, err := s.incomeRepo.GetByID(accountID, id)
	if err != nil {
		return nil, false, err
	}

	source := optionalText(input.Source)
	if existing.Amount.Equal(input.Amount) &&
		sameDay(existing.Date, input.Date) &&
		equalOptionalText(existing.Source, source) {
		return existing, false, nil
	}

	updated, err := s.incomeRepo.Update(accountID, id, &domain.UpdateIncomeData{
		Amount: input.Amount,
		Date:   input.Date,
		Source: source,
	})
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

func optionalText(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func equalOptionalText(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
