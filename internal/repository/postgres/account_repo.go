package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = "id, username, email, password_hash, created_at, updated_at"

// Create inserts a new account
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO accounts (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+accountColumns,
		account.Username, account.Email, account.PasswordHash)

	created, err := scanAccount(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves an account by its UUID
func (r *AccountRepository) GetByID(id uuid.UUID) (*domain.Account, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+accountColumns+` FROM accounts WHERE id = $1`,
		pgtype.UUID{Bytes: id, Valid: true})

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// GetByUsername retrieves an account by its unique username
func (r *AccountRepository) GetByUsername(username string) (*domain.Account, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+accountColumns+` FROM accounts WHERE username = $1`, username)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		id                 pgtype.UUID
		username, email    string
		passwordHash       string
		createdAt, updated pgtype.Timestamptz
	)
	if err := row.Scan(&id, &username, &email, &passwordHash, &createdAt, &updated); err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:           uuid.UUID(id.Bytes),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt.Time,
		UpdatedAt:    updated.Time,
	}, nil
}

// isPgUniqueViolation checks if an error is a PostgreSQL unique constraint violation
func isPgUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// PostgreSQL unique violation error code is 23505
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// stringPtrToPgText converts an optional string to pgtype.Text
func stringPtrToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}
