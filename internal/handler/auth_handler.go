package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/patrickmillerson/budget-app/internal/domain"
	"github.com/patrickmillerson/budget-app/internal/middleware"
	"github.com/patrickmillerson/budget-app/internal/service"
)

// AuthHandler handles signup, sign-in and logout requests
type AuthHandler struct {
	authService   *service.AuthService
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

// SignUpRequest represents the signup form fields
type SignUpRequest struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	PasswordConfirm string `json:"passwordConfirm" form:"password_confirm"`
}

// SignInRequest represents the sign-in form fields
type SignInRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// SignUpFormResponse is the empty signup form view model
type SignUpFormResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ShowSignUp handles GET /signup/
func (h *AuthHandler) ShowSignUp(c echo.Context) error {
	return c.JSON(http.StatusOK, SignUpFormResponse{})
}

// SignUp handles POST /signup/
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.authService.SignUp(service.SignUpInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		if fieldErr, ok := signUpFieldError(err); ok {
			return NewValidationError(c, "Validation failed", []ValidationError{fieldErr})
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to sign up")
		return NewInternalError(c, "Failed to create account")
	}

	log.Info().Str("account_id", account.ID.String()).Str("username", account.Username).Msg("Account created")

	return c.Redirect(http.StatusSeeOther, "/signin/")
}

func signUpFieldError(err error) (ValidationError, bool) {
	switch {
	case errors.Is(err, domain.ErrUsernameRequired):
		return ValidationError{Field: "username", Message: "Username is required"}, true
	case errors.Is(err, domain.ErrUsernameLength):
		return ValidationError{Field: "username", Message: "Username must be between 3 and 150 characters"}, true
	case errors.Is(err, domain.ErrUsernameTaken):
		return ValidationError{Field: "username", Message: "A user with that username already exists"}, true
	case errors.Is(err, domain.ErrInvalidEmail):
		return ValidationError{Field: "email", Message: "Enter a valid email address"}, true
	case errors.Is(err, domain.ErrPasswordTooShort):
		return ValidationError{Field: "password", Message: "Password must be at least 8 characters"}, true
	case errors.Is(err, domain.ErrPasswordNumeric):
		return ValidationError{Field: "password", Message: "Password cannot be entirely numeric"}, true
	case errors.Is(err, domain.ErrPasswordMismatch):
		return ValidationError{Field: "password_confirm", Message: "Passwords do not match"}, true
	}
	return ValidationError{}, false
}

// ShowSignIn handles GET /signin/
func (h *AuthHandler) ShowSignIn(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"username": ""})
}

// SignIn handles POST /signin/
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	session, err := h.authService.SignIn(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// One generic message, no hint at which field was wrong
			return NewUnauthorizedError(c, "Invalid username or password")
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to sign in")
		return NewInternalError(c, "Failed to sign in")
	}

	c.SetCookie(h.sessionCookie(session.Token, session.ExpiresAt))

	log.Info().Str("account_id", session.AccountID.String()).Msg("Signed in")

	return c.Redirect(http.StatusSeeOther, "/expense/")
}

// Logout handles GET and POST /logout/
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.authService.SignOut(cookie.Value); err != nil {
			log.Error().Err(err).Msg("Failed to delete session")
		}
	}

	expired := h.sessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	c.SetCookie(expired)

	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
