package testutil

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

// MockAccountRepository is a mock implementation of domain.AccountRepository
type MockAccountRepository struct {
	ByUsername map[string]*domain.Account
	ByID       map[uuid.UUID]*domain.Account
	CreateFn   func(account *domain.Account) (*domain.Account, error)
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		ByUsername: make(map[string]*domain.Account),
		ByID:       make(map[uuid.UUID]*domain.Account),
	}
}

// Create creates a new account, rejecting duplicate usernames
func (m *MockAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	if m.CreateFn != nil {
		return m.CreateFn(account)
	}
	if _, ok := m.ByUsername[account.Username]; ok {
		return nil, domain.ErrUsernameTaken
	}
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	m.ByUsername[account.Username] = account
	m.ByID[account.ID] = account
	return account, nil
}

// GetByID retrieves an account by ID
func (m *MockAccountRepository) GetByID(id uuid.UUID) (*domain.Account, error) {
	if account, ok := m.ByID[id]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// GetByUsername retrieves an account by username
func (m *MockAccountRepository) GetByUsername(username string) (*domain.Account, error) {
	if account, ok := m.ByUsername[username]; ok {
		return account, nil
	}
	return nil, domain.ErrAccountNotFound
}

// AddAccount adds an account to the mock repository (helper for tests)
func (m *MockAccountRepository) AddAccount(account *domain.Account) {
	m.ByUsername[account.Username] = account
	m.ByID[account.ID] = account
}

// MockSessionRepository is a mock implementation of domain.SessionRepository
type MockSessionRepository struct {
	Sessions map[string]*domain.Session
}

// NewMockSessionRepository creates a new MockSessionRepository
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		Sessions: make(map[string]*domain.Session),
	}
}

// Create stores a new session
func (m *MockSessionRepository) Create(session *domain.Session) (*domain.Session, error) {
	session.CreatedAt = time.Now()
	m.Sessions[session.Token] = session
	return session, nil
}

// GetByToken retrieves a session by token
func (m *MockSessionRepository) GetByToken(token string) (*domain.Session, error) {
	if session, ok := m.Sessions[token]; ok {
		return session, nil
	}
	return nil, domain.ErrSessionNotFound
}

// Delete removes a session by token
func (m *MockSessionRepository) Delete(token string) error {
	delete(m.Sessions, token)
	return nil
}

// DeleteExpired removes all expired sessions
func (m *MockSessionRepository) DeleteExpired() (int64, error) {
	var purged int64
	now := time.Now()
	for token, session := range m.Sessions {
		if session.ExpiresAt.Before(now) {
			delete(m.Sessions, token)
			purged++
		}
	}
	return purged, nil
}

// MockIncomeRepository is a mock implementation of domain.IncomeRepository
type MockIncomeRepository struct {
	Incomes map[int32]*domain.Income
	NextID  int32
}

// NewMockIncomeRepository creates a new MockIncomeRepository
func NewMockIncomeRepository() *MockIncomeRepository {
	return &MockIncomeRepository{
		Incomes: make(map[int32]*domain.Income),
		NextID:  1,
	}
}

// Create creates a new income record
func (m *MockIncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	income.ID = m.NextID
	m.NextID++
	income.CreatedAt = time.Now()
	income.UpdatedAt = income.CreatedAt
	m.Incomes[income.ID] = income
	return income, nil
}

// GetByID retrieves an income by ID, scoped to the owning account
func (m *MockIncomeRepository) GetByID(accountID uuid.UUID, id int32) (*domain.Income, error) {
	income, ok := m.Incomes[id]
	if !ok || income.AccountID != accountID {
		return nil, domain.ErrIncomeNotFound
	}
	return income, nil
}

// GetByYear retrieves an account's incomes for a year, newest first
func (m *MockIncomeRepository) GetByYear(accountID uuid.UUID, year int) ([]*domain.Income, error) {
	var incomes []*domain.Income
	for _, income := range m.Incomes {
		if income.AccountID == accountID && income.Date.Year() == year {
			incomes = append(incomes, income)
		}
	}
	sort.Slice(incomes, func(i, j int) bool {
		if !incomes[i].Date.Equal(incomes[j].Date) {
			return incomes[i].Date.After(incomes[j].Date)
		}
		return incomes[i].ID > incomes[j].ID
	})
	return incomes, nil
}

// SumByYear sums an account's income amounts for a year
func (m *MockIncomeRepository) SumByYear(accountID uuid.UUID, year int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, income := range m.Incomes {
		if income.AccountID == accountID && income.Date.Year() == year {
			total = total.Add(income.Amount)
		}
	}
	return total, nil
}

// DistinctYears lists the years with income records, descending
func (m *MockIncomeRepository) DistinctYears(accountID uuid.UUID) ([]int, error) {
	seen := make(map[int]bool)
	for _, income := range m.Incomes {
		if income.AccountID == accountID {
			seen[income.Date.Year()] = true
		}
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// Update replaces an income's editable fields
func (m *MockIncomeRepository) Update(accountID uuid.UUID, id int32, data *domain.UpdateIncomeData) (*domain.Income, error) {
	income, ok := m.Incomes[id]
	if !ok || income.AccountID != accountID {
		return nil, domain.ErrIncomeNotFound
	}
	income.Amount = data.Amount
	income.Date = data.Date
	income.Source = data.Source
	income.UpdatedAt = time.Now()
	return income, nil
}

// AddIncome adds an income to the mock repository (helper for tests)
func (m *MockIncomeRepository) AddIncome(income *domain.Income) {
	if income.ID == 0 {
		income.ID = m.NextID
		m.NextID++
	} else if income.ID >= m.NextID {
		m.NextID = income.ID + 1
	}
	m.Incomes[income.ID] = income
}

// MockExpenseCategoryRepository is a mock implementation of
// domain.ExpenseCategoryRepository
type MockExpenseCategoryRepository struct {
	Categories map[int32]*domain.ExpenseCategory
	NextID     int32
}

// NewMockExpenseCategoryRepository creates a new MockExpenseCategoryRepository
func NewMockExpenseCategoryRepository() *MockExpenseCategoryRepository {
	return &MockExpenseCategoryRepository{
		Categories: make(map[int32]*domain.ExpenseCategory),
		NextID:     1,
	}
}

// Create creates a new expense category
func (m *MockExpenseCategoryRepository) Create(category *domain.ExpenseCategory) (*domain.ExpenseCategory, error) {
	category.ID = m.NextID
	m.NextID++
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	m.Categories[category.ID] = category
	return category, nil
}

// GetByID retrieves a category by ID, scoped to the owning account
func (m *MockExpenseCategoryRepository) GetByID(accountID uuid.UUID, id int32) (*domain.ExpenseCategory, error) {
	category, ok := m.Categories[id]
	if !ok || category.AccountID != accountID {
		return nil, domain.ErrCategoryNotFound
	}
	return category, nil
}

// GetAllByAccount lists an account's categories in creation order
func (m *MockExpenseCategoryRepository) GetAllByAccount(accountID uuid.UUID) ([]*domain.ExpenseCategory, error) {
	var categories []*domain.ExpenseCategory
	for _, category := range m.Categories {
		if category.AccountID == accountID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockExpenseCategoryRepository) AddCategory(category *domain.ExpenseCategory) {
	if category.ID == 0 {
		category.ID = m.NextID
		m.NextID++
	} else if category.ID >= m.NextID {
		m.NextID = category.ID + 1
	}
	m.Categories[category.ID] = category
}

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[int32]*domain.Expense
	NextID   int32
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[int32]*domain.Expense),
		NextID:   1,
	}
}

// Create creates a new expense record
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	expense.ID = m.NextID
	m.NextID++
	expense.CreatedAt = time.Now()
	expense.UpdatedAt = expense.CreatedAt
	m.Expenses[expense.ID] = expense
	return expense, nil
}

func matchesFilter(expense *domain.Expense, accountID uuid.UUID, filter domain.ExpenseFilter) bool {
	if expense.AccountID != accountID || expense.Date.Year() != filter.Year {
		return false
	}
	if filter.Month != 0 && expense.Date.Month() != filter.Month {
		return false
	}
	return true
}

// GetFiltered retrieves an account's expenses for a year and optional month
func (m *MockExpenseRepository) GetFiltered(accountID uuid.UUID, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	for _, expense := range m.Expenses {
		if matchesFilter(expense, accountID, filter) {
			expenses = append(expenses, expense)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].ID > expenses[j].ID
	})
	return expenses, nil
}

// SumFiltered sums the amounts of the expenses GetFiltered would return
func (m *MockExpenseRepository) SumFiltered(accountID uuid.UUID, filter domain.ExpenseFilter) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, expense := range m.Expenses {
		if matchesFilter(expense, accountID, filter) {
			total = total.Add(expense.Amount)
		}
	}
	return total, nil
}

// DistinctYears lists the years with expense records, descending
func (m *MockExpenseRepository) DistinctYears(accountID uuid.UUID) ([]int, error) {
	seen := make(map[int]bool)
	for _, expense := range m.Expenses {
		if expense.AccountID == accountID {
			seen[expense.Date.Year()] = true
		}
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// DistinctYearMonths lists the year-month pairs with expenses, newest first
func (m *MockExpenseRepository) DistinctYearMonths(accountID uuid.UUID) ([]domain.YearMonth, error) {
	seen := make(map[domain.YearMonth]bool)
	for _, expense := range m.Expenses {
		if expense.AccountID == accountID {
			seen[domain.YearMonth{Year: expense.Date.Year(), Month: expense.Date.Month()}] = true
		}
	}
	months := make([]domain.YearMonth, 0, len(seen))
	for ym := range seen {
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool {
		if months[i].Year != months[j].Year {
			return months[i].Year > months[j].Year
		}
		return months[i].Month > months[j].Month
	})
	return months, nil
}

// MonthsInYear lists the months of a year that have expenses, descending
func (m *MockExpenseRepository) MonthsInYear(accountID uuid.UUID, year int) ([]time.Month, error) {
	seen := make(map[time.Month]bool)
	for _, expense := range m.Expenses {
		if expense.AccountID == accountID && expense.Date.Year() == year {
			seen[expense.Date.Month()] = true
		}
	}
	months := make([]time.Month, 0, len(seen))
	for month := range seen {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i] > months[j]
	})
	return months, nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) {
	if expense.ID == 0 {
		expense.ID = m.NextID
		m.NextID++
	} else if expense.ID >= m.NextID {
		m.NextID = expense.ID + 1
	}
	m.Expenses[expense.ID] = expense
}
