package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/patrickmillerson/budget-app/internal/middleware"
)

// setupAuthContext injects a signed-in account into the request context the
// way the session middleware would.
func setupAuthContext(c echo.Context, accountID uuid.UUID) {
	req := c.Request()
	ctx := context.WithValue(req.Context(), middleware.AccountIDKey, accountID)
	ctx = context.WithValue(ctx, middleware.SessionTokenKey, "test-session-token")
	c.SetRequest(req.WithContext(ctx))
}

// newFormRequest builds a POST request carrying url-encoded form fields
func newFormRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}
