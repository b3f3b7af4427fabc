// Package auth is a demo authentication store. It recognises a fixed set
// of demo accounts and persists the signed-in user to a JSON file; it is
// not a security boundary.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Role is a user's role
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// User is a signed-in account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	LastLogin time.Time `json:"lastLogin"`
}

// Credentials are what a user submits to sign in
type Credentials struct {
	Email    string
	Password string
}

// demoPasswords are accepted for every demo account
var demoPasswords = []string{"demo123", "password"}

// DemoUsers are the accounts the store accepts
var DemoUsers = []User{
	{ID: "1", Email: "demo@medar.com", Name: "Sairam", Role: RoleStudent},
	{ID: "2", Email: "instructor@medar.com", Name: "Dr. Smith", Role: RoleInstructor},
	{ID: "3", Email: "admin@medar.com", Name: "Saravana Sairam C", Role: RoleAdmin},
}

// ErrNotSignedIn is returned by Save when nobody is signed in and the
// session file would be empty
var ErrNotSignedIn = errors.New("no user signed in")

// Store holds the current user
type Store struct {
	mu      sync.RWMutex
	user    *User
	nowFunc func() time.Time
}

// NewStore creates a store with nobody signed in
func NewStore() *Store {
	return &Store{nowFunc: time.Now}
}

// CurrentUser returns the signed-in user
func (s *Store) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Login signs in a demo account. Email matching ignores case.
func (s *Store) Login(c Credentials) bool {
	if !validPassword(c.Password) {
		log.Debug().Str("email", c.Email).Msg("login rejected")
		return false
	}

	for _, u := range DemoUsers {
		if strings.EqualFold(u.Email, strings.TrimSpace(c.Email)) {
			u.LastLogin = s.nowFunc().UTC()
			s.mu.Lock()
			s.user = &u
			s.mu.Unlock()
			log.Info().Str("user", u.ID).Str("role", string(u.Role)).Msg("signed in")
			return true
		}
	}

	log.Debug().Str("email", c.Email).Msg("login rejected")
	return false
}

func validPassword(p string) bool {
	for _, ok := range demoPasswords {
		if p == ok {
			return true
		}
	}
	return false
}

// Logout signs out
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

type sessionFile struct {
	User *User `json:"user"`
}

// Save writes the signed-in user to path
func (s *Store) Save(path string) error {
	s.mu.RLock()
	user := s.user
	s.mu.RUnlock()

	if user == nil {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return ErrNotSignedIn
	}

	data, err := json.MarshalIndent(sessionFile{User: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Load restores a saved session. A missing file leaves the store signed out.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to decode session: %w", err)
	}

	s.mu.Lock()
	s.user = f.User
	s.mu.Unlock()
	return nil
}
