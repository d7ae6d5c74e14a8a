// Package session holds the signed-in staff member for the lifetime of the
// process. It is the bearer token source of the transport client.
package session

import (
	"sync"
	"time"

	"evrental-staff-core/internal/domain"
	"evrental-staff-core/internal/security"
)

// Store is changed only through AddAuth, RemoveAuth and UpdateUser.
type Store struct {
	mu     sync.RWMutex
	tokens domain.AuthTokens
	user   *domain.User
	expiry time.Time
	now    func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// AddAuth records a successful login. The access token's exp claim, when
// present, overrides tokens.ExpiresAt.
func (s *Store) AddAuth(tokens domain.AuthTokens, user domain.User) {
	expiry := tokens.ExpiresAt
	if exp, ok := security.ExpiryUnverified(tokens.AccessToken); ok {
		expiry = exp
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
	s.user = &user
	s.expiry = expiry
}

func (s *Store) RemoveAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = domain.AuthTokens{}
	s.user = nil
	s.expiry = time.Time{}
}

// UpdateUser replaces the profile of the signed-in user. It does nothing when
// nobody is signed in.
func (s *Store) UpdateUser(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.user = &user
}

// Token returns the access token, or "" when signed out or expired.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens.AccessToken == "" || s.expiredLocked() {
		return ""
	}
	return s.tokens.AccessToken
}

func (s *Store) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Tokens returns the raw token pair, expired or not.
func (s *Store) Tokens() domain.AuthTokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *Store) expiredLocked() bool {
	return !s.expiry.IsZero() && !s.now().Before(s.expiry)
}
