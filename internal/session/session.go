package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/avoronin/go-blog/internal/config"
	"github.com/avoronin/go-blog/internal/logger"
	"github.com/gorilla/sessions"
)

const (
	// sessionName is the cookie name the session rides in.
	sessionName = "go-blog-session"

	// userIDKey is the session value holding the signed-in account id.
	userIDKey = "user_id"
)

// Flash is a one-shot message rendered on the next page view.
// Category selects the alert style ("success", "info", "danger").
type Flash struct {
	Category string
	Message  string
}

func init() {
	// session values are gob-encoded into the cookie
	gob.Register(Flash{})
}

// Manager wraps a signed cookie store with the session operations the
// handlers need: sign-in/sign-out, current-user lookup, and flash messages.
//
// Sessions are stateless on the server: all values live in the cookie,
// authenticated with HMAC using the application secret key.
type Manager struct {
	store          *sessions.CookieStore
	rememberMaxAge int
	logger         *logger.Logger
}

// NewManager constructs a session Manager signing cookies with the
// application secret key. Cookies are HTTP-only and scoped to the whole
// site; the remember-me lifetime comes from cfg.RememberDuration.
func NewManager(cfg config.App, logger *logger.Logger) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.SecretKey))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		store:          store,
		rememberMaxAge: int(cfg.RememberDuration.Seconds()),
		logger:         logger,
	}
}

// SignIn binds the session to userID. With remember set the cookie persists
// for the configured remember-me lifetime; otherwise it expires with the
// browser session.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, userID int64, remember bool) error {
	session, _ := m.store.Get(r, sessionName)

	session.Values[userIDKey] = userID
	if remember {
		session.Options.MaxAge = m.rememberMaxAge
	} else {
		session.Options.MaxAge = 0
	}

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}

	return nil
}

// SignOut drops the session by expiring the cookie immediately.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)

	delete(session.Values, userIDKey)
	session.Options.MaxAge = -1

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("error dropping session: %w", err)
	}

	return nil
}

// CurrentUserID returns the signed-in account id carried by the request's
// session cookie. The second return value is false for anonymous requests
// and for cookies that fail authentication.
func (m *Manager) CurrentUserID(r *http.Request) (int64, bool) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		// a tampered or stale cookie is an anonymous request
		return 0, false
	}

	userID, ok := session.Values[userIDKey].(int64)
	return userID, ok
}

// AddFlash queues a one-shot message for the next rendered page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	session, _ := m.store.Get(r, sessionName)

	session.AddFlash(Flash{Category: category, Message: message})

	if err := session.Save(r, w); err != nil {
		m.logger.Err(err).Msg("error saving flash message")
	}
}

// Flashes returns and consumes all queued flash messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return nil
	}

	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}

	// reading flashes removes them; persist the removal
	if err := session.Save(r, w); err != nil {
		m.logger.Err(err).Msg("error consuming flash messages")
	}

	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}

	return flashes
}
