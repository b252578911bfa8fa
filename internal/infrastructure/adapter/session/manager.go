package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// Session keys
const (
	CookieName = "ecom_sid"

	keyUserID     = "user_id"
	keyAdminToken = "admin_token"
	keyFlash      = "flash"
)

// Config represents session cookie configuration
type Config struct {
	Secret string `mapstructure:"secret"`
	Secure bool   `mapstructure:"secure"`
	MaxAge int    `mapstructure:"max_age"`
}

// Manager wraps a gorilla cookie store with the storefront's session
// vocabulary: the logged-in user, the admin capability token and one-shot
// flash messages.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager creates a session manager backed by signed cookies
func NewManager(cfg Config) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	maxAge := cfg.MaxAge
	if maxAge == 0 {
		maxAge = 86400
	}
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

func (m *Manager) get(r *http.Request) *sessions.Session {
	// Get never fails fatally for cookie stores; a bad cookie yields a
	// fresh session.
	s, _ := m.store.Get(r, CookieName)
	return s
}

// UserID returns the logged-in user's ID, if any
func (m *Manager) UserID(r *http.Request) (uint64, bool) {
	s := m.get(r)
	id, ok := s.Values[keyUserID].(uint64)
	return id, ok
}

// LogIn stores the user's ID in the session
func (m *Manager) LogIn(w http.ResponseWriter, r *http.Request, userID uint64) error {
	s := m.get(r)
	s.Values[keyUserID] = userID
	return s.Save(r, w)
}

// LogOut drops the whole session, including any admin token
func (m *Manager) LogOut(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

// AdminToken returns the stored admin capability token, if any
func (m *Manager) AdminToken(r *http.Request) (string, bool) {
	s := m.get(r)
	token, ok := s.Values[keyAdminToken].(string)
	return token, ok && token != ""
}

// SetAdminToken stores a freshly minted admin capability token
func (m *Manager) SetAdminToken(w http.ResponseWriter, r *http.Request, token string) error {
	s := m.get(r)
	s.Values[keyAdminToken] = token
	return s.Save(r, w)
}

// Flash queues a one-shot message shown on the next page load
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, message string) error {
	s := m.get(r)
	s.AddFlash(message, keyFlash)
	return s.Save(r, w)
}

// TakeFlashes returns and clears any queued flash messages
func (m *Manager) TakeFlashes(w http.ResponseWriter, r *http.Request) []string {
	s := m.get(r)
	raw := s.Flashes(keyFlash)
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save(r, w)

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
