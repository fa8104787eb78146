package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

const (
	bcryptCost        = 12
	sessionTokenBytes = 32
)

// AuthService handles signup, signin and session lifecycle
type AuthService struct {
	accountRepo domain.AccountRepository
	sessionRepo domain.SessionRepository
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(accountRepo domain.AccountRepository, sessionRepo domain.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// SignUpInput holds the signup form fields
type SignUpInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// SignUp validates the input and creates a new account. The new account is
// not signed in; the caller is expected to go through SignIn.
func (s *AuthService) SignUp(input SignUpInput) (*domain.Account, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domain.ErrUsernameRequired
	}
	if len(username) < domain.MinUsernameLength || len(username) > domain.MaxUsernameLength {
		return nil, domain.ErrUsernameLength
	}

	if err := checkmail.ValidateFormat(input.Email); err != nil {
		return nil, domain.ErrInvalidEmail
	}

	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if isEntirelyNumeric(input.Password) {
		return nil, domain.ErrPasswordNumeric
	}
	if input.Password != input.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	return s.accountRepo.Create(account)
}

// SignIn verifies the credentials and starts a new session. A missing
// account and a wrong password both surface as ErrInvalidCredentials so the
// response cannot reveal which field failed.
func (s *AuthService) SignIn(username, password string) (*domain.Session, error) {
	account, err := s.accountRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.Create(&domain.Session{
		Token:     token,
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	})
	if err != nil {
		return nil, err
	}

	// Opportunistic purge; sign-in is the only write path that always runs
	// so expired rows cannot accumulate without bound.
	_, _ = s.sessionRepo.DeleteExpired()

	return session, nil
}

// SignOut terminates the session. Unknown or empty tokens are not an error.
func (s *AuthService) SignOut(token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(token)
}

// GetSession resolves a token to a live session. Expired sessions are
// deleted and reported as not found.
func (s *AuthService) GetSession(token string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if session.Expired() {
		_ = s.sessionRepo.Delete(session.Token)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func generateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func isEntirelyNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
