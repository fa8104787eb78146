package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

// Create inserts a new expense row owned by the given account
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO expenses (account_id, category_id, name, description, amount, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, account_id, category_id, name, description, amount, date, created_at, updated_at`,
		pgtype.UUID{Bytes: expense.AccountID, Valid: true},
		expense.CategoryID,
		expense.Name,
		stringPtrToPgText(expense.Description),
		amount,
		pgtype.Date{Time: expense.Date, Valid: true})

	created, err := scanExpense(row)
	if err != nil {
		return nil, err
	}
	created.CategoryName = expense.CategoryName
	return created, nil
}

// GetFiltered retrieves expenses for a year, optionally narrowed to a month,
// joined with their category name, newest first
func (r *ExpenseRepository) GetFiltered(accountID uuid.UUID, filter domain.ExpenseFilter) ([]*domain.Expense, error) {
	query := `
		SELECT e.id, e.account_id, e.category_id, e.name, e.description,
		       e.amount, e.date, e.created_at, e.updated_at, c.name
		FROM expenses e
		JOIN expense_categories c ON c.id = e.category_id
		WHERE e.account_id = $1 AND EXTRACT(YEAR FROM e.date) = $2`
	args := []any{pgtype.UUID{Bytes: accountID, Valid: true}, filter.Year}

	if filter.Month != 0 {
		query += ` AND EXTRACT(MONTH FROM e.date) = $3`
		args = append(args, int(filter.Month))
	}
	query += ` ORDER BY e.date DESC, e.id DESC`

	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpenseWithCategory(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// SumFiltered returns the exact decimal sum of amounts matching the filter
func (r *ExpenseRepository) SumFiltered(accountID uuid.UUID, filter domain.ExpenseFilter) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE account_id = $1 AND EXTRACT(YEAR FROM date) = $2`
	args := []any{pgtype.UUID{Bytes: accountID, Valid: true}, filter.Year}

	if filter.Month != 0 {
		query += ` AND EXTRACT(MONTH FROM date) = $3`
		args = append(args, int(filter.Month))
	}

	var total pgtype.Numeric
	if err := r.pool.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

// DistinctYears returns the years with at least one expense row, descending
func (r *ExpenseRepository) DistinctYears(accountID uuid.UUID) ([]int, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS year FROM expenses
		WHERE account_id = $1
		ORDER BY year DESC`,
		pgtype.UUID{Bytes: accountID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int32
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years = append(years, int(year))
	}
	return years, rows.Err()
}

// DistinctYearMonths returns every year/month with at least one expense row,
// descending by year then month
func (r *ExpenseRepository) DistinctYearMonths(accountID uuid.UUID) ([]domain.YearMonth, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS year,
		                EXTRACT(MONTH FROM date)::int AS month
		FROM expenses
		WHERE account_id = $1
		ORDER BY year DESC, month DESC`,
		pgtype.UUID{Bytes: accountID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []domain.YearMonth
	for rows.Next() {
		var year, month int32
		if err := rows.Scan(&year, &month); err != nil {
			return nil, err
		}
		months = append(months, domain.YearMonth{Year: int(year), Month: time.Month(month)})
	}
	return months, rows.Err()
}

// MonthsInYear returns the months of the given year with at least one
// expense row, descending by month number
func (r *ExpenseRepository) MonthsInYear(accountID uuid.UUID, year int) ([]time.Month, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT DISTINCT EXTRACT(MONTH FROM date)::int AS month FROM expenses
		WHERE account_id = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY month DESC`,
		pgtype.UUID{Bytes: accountID, Valid: true}, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []time.Month
	for rows.Next() {
		var month int32
		if err := rows.Scan(&month); err != nil {
			return nil, err
		}
		months = append(months, time.Month(month))
	}
	return months, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		id          int32
		accountID   pgtype.UUID
		categoryID  int32
		name        string
		description pgtype.Text
		amount      pgtype.Numeric
		date        pgtype.Date
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(&id, &accountID, &categoryID, &name, &description, &amount, &date, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	expense := &domain.Expense{
		ID:         id,
		AccountID:  uuid.UUID(accountID.Bytes),
		CategoryID: categoryID,
		Name:       name,
		Amount:     pgNumericToDecimal(amount),
		Date:       date.Time,
		CreatedAt:  createdAt.Time,
		UpdatedAt:  updatedAt.Time,
	}
	if description.Valid {
		expense.Description = &description.String
	}
	return expense, nil
}

func scanExpenseWithCategory(row pgx.Row) (*domain.Expense, error) {
	var (
		id           int32
		accountID    pgtype.UUID
		categoryID   int32
		name         string
		description  pgtype.Text
		amount       pgtype.Numeric
		date         pgtype.Date
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
		categoryName string
	)
	if err := row.Scan(&id, &accountID, &categoryID, &name, &description, &amount, &date, &createdAt, &updatedAt, &categoryName); err != nil {
		return nil, err
	}
	expense := &domain.Expense{
		ID:           id,
		AccountID:    uuid.UUID(accountID.Bytes),
		CategoryID:   categoryID,
		CategoryName: categoryName,
		Name:         name,
		Amount:       pgNumericToDecimal(amount),
		Date:         date.Time,
		CreatedAt:    createdAt.Time,
		UpdatedAt:    updatedAt.Time,
	}
	if description.Valid {
		expense.Description = &description.String
	}
	return expense, nil
}
