package session

import (
	"net/http"
	"strings"
	"time"

	"helicharter-portal/internal/config"
)

// Manager keeps the backend bearer token in an HttpOnly cookie
type Manager struct {
	cookieName string
	secure     bool
	maxAge     time.Duration
	now        func() time.Time
}

func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
		maxAge:     time.Duration(cfg.MaxAgeHours) * time.Hour,
		now:        time.Now,
	}
}

// Set stores the token. The cookie never outlives the token's own expiry.
func (m *Manager) Set(w http.ResponseWriter, s *Session) {
	age := m.maxAge
	if !s.ExpiresAt.IsZero() {
		if left := s.ExpiresAt.Sub(m.now()); left < age {
			age = left
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    s.Token,
		Path:     "/",
		MaxAge:   int(age.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Token returns the session cookie, or the Authorization bearer token for API clients
func (m *Manager) Token(r *http.Request) string {
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// Load inspects the request's token
func (m *Manager) Load(r *http.Request) (*Session, error) {
	return Inspect(m.Token(r), m.now())
}

// Inspect checks a freshly issued token against the manager's clock
func (m *Manager) Inspect(token string) (*Session, error) {
	return Inspect(token, m.now())
}
