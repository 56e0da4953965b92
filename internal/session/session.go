package session

import (
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

const (
	cookieName = "magicstore_session"
	cookieAge  = 24 * 60 * 60 // 24 hours, matching the storefront login window

	keyUserID    = "user_id"
	keyUserName  = "user_name"
	keyUserEmail = "user_email"
	keyIsAdmin   = "is_admin"
)

// State carries the two role flags the access gate checks, plus the
// attached buyer identity when HasUser is set.
type State struct {
	UserID    uuid.UUID
	UserName  string
	UserEmail string
	HasUser   bool
	IsAdmin   bool
}

// Manager reads and writes the cookie-backed session.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager creates a session manager keyed with the given secret.
func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cookieAge,
		HttpOnly: true,
	}
	return &Manager{store: store}
}

// Current returns the session state for the request. A missing or
// undecodable cookie yields the zero state.
func (m *Manager) Current(c echo.Context) State {
	sess, err := m.store.Get(c.Request(), cookieName)
	if err != nil {
		return State{}
	}

	var state State
	if raw, ok := sess.Values[keyUserID].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			state.UserID = id
			state.HasUser = true
		}
	}
	if name, ok := sess.Values[keyUserName].(string); ok {
		state.UserName = name
	}
	if email, ok := sess.Values[keyUserEmail].(string); ok {
		state.UserEmail = email
	}
	if admin, ok := sess.Values[keyIsAdmin].(bool); ok {
		state.IsAdmin = admin
	}
	return state
}

// SetUser attaches a logged-in buyer identity to the session.
func (m *Manager) SetUser(c echo.Context, id uuid.UUID, name, email string) error {
	sess, _ := m.store.Get(c.Request(), cookieName)
	sess.Values[keyUserID] = id.String()
	sess.Values[keyUserName] = name
	sess.Values[keyUserEmail] = email
	return sess.Save(c.Request(), c.Response())
}

// SetAdmin flips the separately authenticated admin flag.
func (m *Manager) SetAdmin(c echo.Context, admin bool) error {
	sess, _ := m.store.Get(c.Request(), cookieName)
	sess.Values[keyIsAdmin] = admin
	return sess.Save(c.Request(), c.Response())
}

// ClearUser removes the buyer identity, keeping any admin flag.
func (m *Manager) ClearUser(c echo.Context) error {
	sess, _ := m.store.Get(c.Request(), cookieName)
	delete(sess.Values, keyUserID)
	delete(sess.Values, keyUserName)
	delete(sess.Values, keyUserEmail)
	return sess.Save(c.Request(), c.Response())
}

// Destroy drops the whole session unconditionally.
func (m *Manager) Destroy(c echo.Context) error {
	sess, _ := m.store.Get(c.Request(), cookieName)
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}
