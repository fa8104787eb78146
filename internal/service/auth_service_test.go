package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickmillerson/budget-app/internal/domain"
	"github.com/patrickmillerson/budget-app/internal/testutil"
)

func newAuthService() (*AuthService, *testutil.MockAccountRepository, *testutil.MockSessionRepository) {
	accountRepo := testutil.NewMockAccountRepository()
	sessionRepo := testutil.NewMockSessionRepository()
	return NewAuthService(accountRepo, sessionRepo, 24*time.Hour), accountRepo, sessionRepo
}

func validSignUp() SignUpInput {
	return SignUpInput{
		Username:        "patrick",
		Email:           "patrick@example.com",
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
	}
}

func TestSignUp_Success(t *testing.T) {
	authService, _, _ := newAuthService()

	account, err := authService.SignUp(validSignUp())
	require.NoError(t, err)

	assert.Equal(t, "patrick", account.Username)
	assert.Equal(t, "patrick@example.com", account.Email)
	assert.NotEmpty(t, account.PasswordHash)
	assert.NotEqual(t, "correct-horse", account.PasswordHash)
}

func TestSignUp_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignUpInput)
		wantErr error
	}{
		{"missing username", func(in *SignUpInput) { in.Username = "  " }, domain.ErrUsernameRequired},
		{"username too short", func(in *SignUpInput) { in.Username = "ab" }, domain.ErrUsernameLength},
		{"bad email", func(in *SignUpInput) { in.Email = "not-an-email" }, domain.ErrInvalidEmail},
		{"short password", func(in *SignUpInput) { in.Password = "abc"; in.PasswordConfirm = "abc" }, domain.ErrPasswordTooShort},
		{"numeric password", func(in *SignUpInput) { in.Password = "12345678"; in.PasswordConfirm = "12345678" }, domain.ErrPasswordNumeric},
		{"confirmation mismatch", func(in *SignUpInput) { in.PasswordConfirm = "something-else" }, domain.ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService, _, _ := newAuthService()
			input := validSignUp()
			tt.mutate(&input)

			_, err := authService.SignUp(input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	authService, _, _ := newAuthService()

	_, err := authService.SignUp(validSignUp())
	require.NoError(t, err)

	input := validSignUp()
	input.Email = "other@example.com"
	_, err = authService.SignUp(input)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestSignIn_AfterSignUp(t *testing.T) {
	authService, _, sessionRepo := newAuthService()

	account, err := authService.SignUp(validSignUp())
	require.NoError(t, err)

	session, err := authService.SignIn("patrick", "correct-horse")
	require.NoError(t, err)

	assert.Equal(t, account.ID, session.AccountID)
	assert.Len(t, session.Token, 64)
	assert.True(t, session.ExpiresAt.After(time.Now()))
	assert.Len(t, sessionRepo.Sessions, 1)
}

func TestSignIn_WrongPassword(t *testing.T) {
	authService, _, _ := newAuthService()

	_, err := authService.SignUp(validSignUp())
	require.NoError(t, err)

	_, err = authService.SignIn("patrick", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignIn_UnknownUsername(t *testing.T) {
	authService, _, _ := newAuthService()

	// Unknown users get the same error as bad passwords
	_, err := authService.SignIn("nobody", "whatever123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignIn_PurgesExpiredSessions(t *testing.T) {
	authService, _, sessionRepo := newAuthService()

	_, err := authService.SignUp(validSignUp())
	require.NoError(t, err)

	session, err := authService.SignIn("patrick", "correct-horse")
	require.NoError(t, err)
	session.ExpiresAt = time.Now().Add(-time.Minute)

	fresh, err := authService.SignIn("patrick", "correct-horse")
	require.NoError(t, err)

	assert.Len(t, sessionRepo.Sessions, 1)
	_, ok := sessionRepo.Sessions[fresh.Token]
	assert.True(t, ok)
}

func TestSignOut(t *testing.T) {
	authService, _, sessionRepo := newAuthService()

	_, err := authService.SignUp(validSignUp())
	require.NoError(t, err)
	session, err := authService.SignIn("patrick", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, authService.SignOut(session.Token))
	assert.Empty(t, sessionRepo.Sessions)

	// Repeated and unknown-token sign-outs are no-ops
	assert.NoError(t, authService.SignOut(session.Token))
	assert.NoError(t, authService.SignOut(""))
}

func TestGetSession(t *testing.T) {
	authService, _, _ := newAuthService()

	_, err := authService.SignUp(validSignUp())
	require.NoError(t, err)
	session, err := authService.SignIn("patrick", "correct-horse")
	require.NoError(t, err)

	got, err := authService.GetSession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.AccountID, got.AccountID)

	_, err = authService.GetSession("bogus")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGetSession_Expired(t *testing.T) {
	authService, _, sessionRepo := newAuthService()

	_, err := authService.SignUp(validSignUp())
	require.NoError(t, err)
	session, err := authService.SignIn("patrick", "correct-horse")
	require.NoError(t, err)
	session.ExpiresAt = time.Now().Add(-time.Minute)

	_, err = authService.GetSession(session.Token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Empty(t, sessionRepo.Sessions)
}
