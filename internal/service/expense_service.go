package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patrickmillerson/budget-app/internal/domain"
	"github.com/patrickmillerson/budget-app/internal/util"
)

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo  domain.ExpenseRepository
	categoryRepo domain.ExpenseCategoryRepository
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, categoryRepo domain.ExpenseCategoryRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// ExpenseListResult is the view model for the expense list
type ExpenseListResult struct {
	Expenses       []*domain.Expense
	Total          decimal.Decimal
	AvailableYears []int
	Months         []domain.YearMonth
	SelectedYear   int
	SelectedMonth  string
}

// List returns the caller's expenses for a year, optionally narrowed to a
// month given by its full English name. An unparseable month name is
// ignored and the query stays year-scoped.
func (s *ExpenseService) List(accountID uuid.UUID, year int, monthName string) (*ExpenseListResult, error) {
	filter := domain.ExpenseFilter{Year: year}
	selectedMonth := ""
	if monthName != "" {
		if month, err := util.ParseMonthName(monthName); err == nil {
			filter.Month = month
			selectedMonth = month.String()
		}
	}

	expenses, err := s.expenseRepo.GetFiltered(accountID, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.expenseRepo.SumFiltered(accountID, filter)
	if err != nil {
		return nil, err
	}

	years, err := s.expenseRepo.DistinctYears(accountID)
	if err != nil {
		return nil, err
	}

	months, err := s.expenseRepo.DistinctYearMonths(accountID)
	if err != nil {
		return nil, err
	}

	return &ExpenseListResult{
		Expenses:       expenses,
		Total:          total,
		AvailableYears: years,
		Months:         months,
		SelectedYear:   year,
		SelectedMonth:  selectedMonth,
	}, nil
}

// CreateExpenseInput holds the parsed expense creation form
type CreateExpenseInput struct {
	Name        string
	CategoryID  int32
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

// CreateExpense resolves the category scoped to the caller and inserts an
// expense row owned by the caller.
func (s *ExpenseService) CreateExpense(accountID uuid.UUID, input CreateExpenseInput) (*domain.Expense, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	category, err := s.categoryRepo.GetByID(accountID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		AccountID:    accountID,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Name:         name,
		Description:  optionalText(input.Description),
		Amount:       input.Amount,
		Date:         input.Date,
	}
	return s.expenseRepo.Create(expense)
}

// MonthOption is one selectable month in the dependent month selector
type MonthOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// MonthOptions returns the months of a year that have at least one expense,
// descending by month number, prefixed with an empty-value "All" option.
func (s *ExpenseService) MonthOptions(accountID uuid.UUID, year int) ([]MonthOption, error) {
	months, err := s.expenseRepo.MonthsInYear(accountID, year)
	if err != nil {
		return nil, err
	}
	if len(months) == 0 {
		return []MonthOption{}, nil
	}

	options := make([]MonthOption, 0, len(months)+1)
	options = append(options, MonthOption{Value: "", Label: "All"})
	for _, month := range months {
		name := month.String()
		options = append(options, MonthOption{Value: name, Label: name})
	}
	return options, nil
}
