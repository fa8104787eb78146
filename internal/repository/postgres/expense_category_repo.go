package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

// ExpenseCategoryRepository implements domain.ExpenseCategoryRepository
// using PostgreSQL
type ExpenseCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseCategoryRepository creates a new ExpenseCategoryRepository
func NewExpenseCategoryRepository(pool *pgxpool.Pool) *ExpenseCategoryRepository {
	return &ExpenseCategoryRepository{pool: pool}
}

const categoryColumns = "id, account_id, name, created_at, updated_at"

// Create inserts a new expense category owned by the given account
func (r *ExpenseCategoryRepository) Create(category *domain.ExpenseCategory) (*domain.ExpenseCategory, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO expense_categories (account_id, name)
		VALUES ($1, $2)
		RETURNING `+categoryColumns,
		pgtype.UUID{Bytes: category.AccountID, Valid: true}, category.Name)

	return scanCategory(row)
}

// GetByID retrieves a category by id scoped to the owning account
func (r *ExpenseCategoryRepository) GetByID(accountID uuid.UUID, id int32) (*domain.ExpenseCategory, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+categoryColumns+` FROM expense_categories
		WHERE account_id = $1 AND id = $2`,
		pgtype.UUID{Bytes: accountID, Valid: true}, id)

	category, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAllByAccount retrieves all categories owned by the given account
func (r *ExpenseCategoryRepository) GetAllByAccount(accountID uuid.UUID) ([]*domain.ExpenseCategory, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+categoryColumns+` FROM expense_categories
		WHERE account_id = $1
		ORDER BY id`,
		pgtype.UUID{Bytes: accountID, Valid: true})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.ExpenseCategory
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func scanCategory(row pgx.Row) (*domain.ExpenseCategory, error) {
	var (
		id        int32
		accountID pgtype.UUID
		name      string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &accountID, &name, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return &domain.ExpenseCategory{
		ID:        id,
		AccountID: uuid.UUID(accountID.Bytes),
		Name:      name,
		CreatedAt: createdAt.Time,
		UpdatedAt: updatedAt.Time,
	}, nil
}
