package session

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"helicharter-portal/internal/domain"
)

var (
	ErrNoSession = errors.New("not signed in")
	ErrMalformed = errors.New("session token is malformed")
	ErrExpired   = errors.New("session has expired")
)

// Claims are the fields read from a backend-issued JWT. Backends disagree on where the
// user id and role live, so the common spellings are all accepted.
type Claims struct {
	UserID  domain.ID   `json:"user_id,omitempty"`
	AltID   domain.ID   `json:"id,omitempty"`
	Role    domain.Role `json:"role,omitempty"`
	Roles   []string    `json:"roles,omitempty"`
	IsAdmin bool        `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// Session is what the portal knows about a bearer token without asking the backend.
// Role is empty and ExpiresAt zero for opaque tokens.
type Session struct {
	Token     string
	UserID    domain.ID
	Role      domain.Role
	ExpiresAt time.Time
}

func (s *Session) IsAdmin() bool { return s != nil && s.Role == domain.RoleAdmin }

// RoleKnown is false when the token carried no role; the backend then decides
func (s *Session) RoleKnown() bool { return s != nil && s.Role != "" }

// Inspect reads a token's claims. The signature is not checked: the portal holds no
// key and the backend verifies every call. Expiry is checked so a stale session is
// logged out before a round trip.
func Inspect(token string, now time.Time) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoSession
	}
	if strings.Count(token, ".") != 2 {
		return &Session{Token: token}, nil
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, ErrMalformed
	}

	s := &Session{Token: token, UserID: claims.UserID, Role: claims.Role}
	if s.UserID == "" {
		s.UserID = claims.AltID
	}
	if s.UserID == "" && claims.Subject != "" {
		s.UserID = domain.ID(claims.Subject)
	}
	if s.Role == "" {
		switch {
		case claims.IsAdmin || slices.Contains(claims.Roles, string(domain.RoleAdmin)):
			s.Role = domain.RoleAdmin
		case len(claims.Roles) > 0:
			s.Role = domain.RoleClient
		}
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
		if !now.Before(s.ExpiresAt) {
			return nil, ErrExpired
		}
	}
	return s, nil
}
