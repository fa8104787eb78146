package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/patrickmillerson/budget-app/internal/domain"
)

type stubSessionResolver struct {
	sessions map[string]*domain.Session
}

func (s *stubSessionResolver) GetSession(token string) (*domain.Session, error) {
	session, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func TestRequireSession_NoCookie(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(&stubSessionResolver{sessions: map[string]*domain.Session{}})

	req := httptest.NewRequest(http.MethodGet, "/income/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		t.Error("Handler should not be called without a session")
		return nil
	}

	err := m.RequireSession()(handler)(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("Expected status 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/signin/" {
		t.Errorf("Expected redirect to /signin/, got %q", loc)
	}
}

func TestRequireSession_UnknownToken(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(&stubSessionResolver{sessions: map[string]*domain.Session{}})

	req := httptest.NewRequest(http.MethodGet, "/income/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bogus"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		t.Error("Handler should not be called with an unknown token")
		return nil
	}

	err := m.RequireSession()(handler)(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("Expected status 302, got %d", rec.Code)
	}
}

func TestRequireSession_ValidSession(t *testing.T) {
	e := echo.New()
	accountID := uuid.New()
	resolver := &stubSessionResolver{sessions: map[string]*domain.Session{
		"tok123": {
			Token:     "tok123",
			AccountID: accountID,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}
	m := NewAuthMiddleware(resolver)

	req := httptest.NewRequest(http.MethodGet, "/income/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "tok123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		if got := GetAccountID(c); got != accountID {
			t.Errorf("Expected account ID %s in context, got %s", accountID, got)
		}
		if got := GetSessionToken(c); got != "tok123" {
			t.Errorf("Expected session token in context, got %q", got)
		}
		return c.String(http.StatusOK, "OK")
	}

	err := m.RequireSession()(handler)(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !handlerCalled {
		t.Error("Handler should be called for a valid session")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}
