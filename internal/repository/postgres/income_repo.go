package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

// IncomeRepository implements domain.IncomeRepository using PostgreSQL
type IncomeRepository struct {
	pool *pgxpool.Pool
}

// NewIncomeRepository creates a new IncomeRepository
func NewIncomeRepository(pool *pgxpool.Pool) *IncomeRepository {
	return &IncomeRepository{pool: pool}
}

const incomeColumns = "id, account_id, amount, date, source, created_at, updated_at"

// Create inserts a new income row owned by the given account
func (r *IncomeRepository) Create(income *domain.Income) (*domain.Income, error) {
	amount, err := decimalToPgNumeric(income.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO incomes (account_id, amount, date, source)
		VALUES ($1, $2, $3, $4)
		RETURNING `+incomeColumns,
		pgtype.UUID{Bytes: income.AccountID, Valid: true},
		amount,
		pgtype.Date{Time: income.Date, Valid: true},
		stringPtrToPgText(income.Source))

	return scanIncome(row)
}

// GetByID retrieves an income row by id scoped to the owning account
func (r *IncomeRepository) GetByID(accountID uuid.UUID, id int32) (*domain.Income, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+incomeColumns+` FROM incomes
		WHERE account_id = $1 AND id = $2`,
		pgtype.UUID{Bytes: accountID, Valid: true}, id)

	income, err := scanIncome(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIncomeNotFound
		}
		return nil, err
	}
	return income, nil
}

// GetByYear retrieves all income rows for a calendar year, newest first
func (r *IncomeRepository) GetByYear(accountID uuid.UUID, year int) ([]*domain.Income, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+incomeColumns+` FROM incomes
		WHERE account_id = $1 AND EXTRACT(YEAR FROM date) = $2
		ORDER BY date DESC, id DESC`,
		pgtype.UUID{Bytes: accountID, Valid: true}, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incomes []*domain.Income
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}
	return incomes, rows.Err()
}

// SumByYear returns the exact decimal sum of amounts for a calendar year
func (r *IncomeRepository) SumByYear(accountID uuid.UUID, year int) (decimal.Decimal, error) {
	var total pgtype.Numeric
	err := r.pool.QueryRow(context.Background(), `
		SELECT COALESCE(SUM(amount), 0) FROM incomes
		WHERE account_id = $1 AND EXTRACT(YEAR FROM date) = $2`,
		pgtype.UUID{Bytes: accountID, Valid: true}, year).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(total), nil
}

// DistinctYears returns the years with at least one income row, descending
func (r *IncomeRepository) DistinctYears(accountID uuid.UUID) ([]int, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS year FROM incomes
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

// Update replaces amount, date and source of an income row scoped to the
// owning account
func (r *IncomeRepository) Update(accountID uuid.UUID, id int32, data *domain.UpdateIncomeData) (*domain.Income, error) {
	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE incomes
		SET amount = $3, date = $4, source = $5, updated_at = now()
		WHERE account_id = $1 AND id = $2
		RETURNING `+incomeColumns,
		pgtype.UUID{Bytes: accountID, Valid: true}, id,
		amount,
		pgtype.Date{Time: data.Date, Valid: true},
		stringPtrToPgText(data.Source))

	income, err := scanIncome(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIncomeNotFound
		}
		return nil, err
	}
	return income, nil
}

func scanIncome(row pgx.Row) (*domain.Income, error) {
	var (
		id        int32
		accountID pgtype.UUID
		amount    pgtype.Numeric
		date      pgtype.Date
		source    pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &accountID, &amount, &date, &source, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	income := &domain.Income{
		ID:        id,
		AccountID: uuid.UUID(accountID.Bytes),
		Amount:    pgNumericToDecimal(amount),
		Date:      date.Time,
		CreatedAt: createdAt.Time,
		UpdatedAt: updatedAt.Time,
	}
	if source.Valid {
		income.Source = &source.String
	}
	return income, nil
}

// Helper functions

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
