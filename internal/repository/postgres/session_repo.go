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

// SessionRepository implements domain.SessionRepository using PostgreSQL
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create inserts a new session
func (r *SessionRepository) Create(session *domain.Session) (*domain.Session, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO sessions (token, account_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING token, account_id, expires_at, created_at`,
		session.Token,
		pgtype.UUID{Bytes: session.AccountID, Valid: true},
		pgtype.Timestamptz{Time: session.ExpiresAt, Valid: true})

	return scanSession(row)
}

// GetByToken retrieves a session by its token
func (r *SessionRepository) GetByToken(token string) (*domain.Session, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT token, account_id, expires_at, created_at
		FROM sessions WHERE token = $1`, token)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (r *SessionRepository) Delete(token string) error {
	_, err := r.pool.Exec(context.Background(),
		`DELETE FROM sessions WHERE token = $1`, token)
	return err
}

// DeleteExpired purges all sessions past their expiry
func (r *SessionRepository) DeleteExpired() (int64, error) {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var (
		token     string
		accountID pgtype.UUID
		expiresAt pgtype.Timestamptz
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&token, &accountID, &expiresAt, &createdAt); err != nil {
		return nil, err
	}
	return &domain.Session{
		Token:     token,
		AccountID: uuid.UUID(accountID.Bytes),
		ExpiresAt: expiresAt.Time,
		CreatedAt: createdAt.Time,
	}, nil
}
