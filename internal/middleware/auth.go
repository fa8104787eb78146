package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

// SessionCookieName is the cookie the browser carries between requests
const SessionCookieName = "sessionid"

type contextKey string

const (
	// AccountIDKey is the context key for the authenticated account ID
	AccountIDKey contextKey = "account_id"
	// SessionTokenKey is the context key for the session token
	SessionTokenKey contextKey = "session_token"
)

// SessionResolver resolves a raw session token to a live session
type SessionResolver interface {
	GetSession(token string) (*domain.Session, error)
}

// AuthMiddleware guards routes behind a session cookie
type AuthMiddleware struct {
	sessions   SessionResolver
	signInPath string
}

// NewAuthMiddleware creates an AuthMiddleware backed by the given resolver
func NewAuthMiddleware(sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		signInPath: "/signin/",
	}
}

// RequireSession redirects requests without a live session to the sign-in page
func (m *AuthMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, m.signInPath)
			}

			session, err := m.sessions.GetSession(cookie.Value)
			if err != nil {
				log.Debug().Err(err).Msg("Session lookup failed")
				return c.Redirect(http.StatusFound, m.signInPath)
			}

			ctx := context.WithValue(c.Request().Context(), AccountIDKey, session.AccountID)
			ctx = context.WithValue(ctx, SessionTokenKey, session.Token)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetAccountID extracts the authenticated account ID from the request context
func GetAccountID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(AccountIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetSessionToken extracts the session token from the request context
func GetSessionToken(c echo.Context) string {
	if token, ok := c.Request().Context().Value(SessionTokenKey).(string); ok {
		return token
	}
	return ""
}
