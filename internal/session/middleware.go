package session

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"magicstore/internal/errors"
)

// Context keys under which the gates stash the request-scoped identity.
const (
	ContextKeyUserID  = "session.user_id"
	ContextKeyIsAdmin = "session.is_admin"
)

const (
	// StorefrontLoginURL is where denied buyers land; the flag tells the
	// storefront to open the login prompt.
	StorefrontLoginURL = "/?login=1"
	// AdminLoginURL is where denied admin navigations land.
	AdminLoginURL = "/admin/login"
)

// RequireUser gates buyer operations. Browser navigations are redirected to
// the storefront with the login prompt flag; API callers get a structured
// 401 instead.
func (m *Manager) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := m.Current(c)
		if !state.HasUser {
			if wantsJSON(c) {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "login required",
					Code:  "UNAUTHORIZED",
				})
			}
			return c.Redirect(http.StatusFound, StorefrontLoginURL)
		}
		c.Set(ContextKeyUserID, state.UserID)
		return next(c)
	}
}

// RequireAdmin gates admin operations behind the shared-secret session flag.
func (m *Manager) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		state := m.Current(c)
		if !state.IsAdmin {
			if wantsJSON(c) {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "admin authentication required",
					Code:  "UNAUTHORIZED",
				})
			}
			return c.Redirect(http.StatusFound, AdminLoginURL)
		}
		c.Set(ContextKeyIsAdmin, true)
		return next(c)
	}
}

// UserID returns the buyer identity stashed by RequireUser.
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(ContextKeyUserID).(uuid.UUID)
	return id, ok
}

// wantsJSON distinguishes data-API calls from browser navigations by the
// request's expected response type.
func wantsJSON(c echo.Context) bool {
	if c.Request().Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	accept := c.Request().Header.Get(echo.HeaderAccept)
	if strings.Contains(accept, echo.MIMEApplicationJSON) {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
