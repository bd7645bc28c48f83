package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store is the single source of truth for "is a user logged in". It is
// written only on login success and logout; everything else reads. An
// RWMutex guards it because the command goroutine and the poller
// goroutine both consult it.
type Store struct {
	mu      sync.RWMutex
	token   string
	isAdmin bool
	expiry  time.Time
}

// NewStore returns an unauthenticated store.
func NewStore() *Store {
	return &Store{}
}

// Set records a fresh session. When the token is a JWT carrying an exp
// claim the expiry is remembered so a stale token reads as logged out.
func (s *Store) Set(token string, isAdmin bool) {
	expiry := tokenExpiry(token)
	s.mu.Lock()
	s.token = token
	s.isAdmin = isAdmin
	s.expiry = expiry
	s.mu.Unlock()
}

// Clear drops the session.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.isAdmin = false
	s.expiry = time.Time{}
	s.mu.Unlock()
}

// CurrentToken returns the session token, or "" when logged out or the
// token has expired.
func (s *Store) CurrentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.expired() {
		return ""
	}
	return s.token
}

// IsAuthenticated reports whether a usable session exists.
func (s *Store) IsAuthenticated() bool {
	return s.CurrentToken() != ""
}

// IsAdmin reports the role flag; meaningful only while authenticated.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && !s.expired() && s.isAdmin
}

func (s *Store) expired() bool {
	return !s.expiry.IsZero() && time.Now().After(s.expiry)
}

// tokenExpiry extracts exp from a JWT without verifying the signature;
// the token is otherwise opaque to this client. Tokens that are not
// JWTs, or carry no exp claim, have no known expiry.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
