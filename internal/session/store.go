package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Session errors
var (
	ErrNoToken = errors.New("no session token stored")
)

// Store is the single source of truth for the persisted bearer token.
// Every component that makes authenticated calls reads the token through
// a Store instead of consulting ambient storage on its own.
type Store struct {
	path   string
	logger zerolog.Logger

	mu        sync.RWMutex
	token     string
	loaded    bool
	observers []func()
}

// NewStore creates a Store persisting the token at path
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Token returns the current bearer token, or "" when not authenticated
func (s *Store) Token() string {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.token
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.load()
	}
	return s.token
}

// Authenticated reports whether a token is present
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores and persists a new bearer token
func (s *Store) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNoToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	s.token = token
	s.loaded = true
	return nil
}

// Clear removes the token and notifies observers. This is the single
// logout/invalidate operation for the whole client (used both for explicit
// logout and forced logout on an authorization failure).
func (s *Store) Clear() {
	s.mu.Lock()
	hadToken := s.token != ""
	s.token = ""
	s.loaded = true
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to remove persisted token")
	}
	observers := make([]func(), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	if hadToken {
		for _, fn := range observers {
			fn()
		}
	}
}

// OnInvalidate registers a callback invoked whenever the session is cleared
func (s *Store) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Expired reports whether the stored token carries an exp claim in the past.
// Tokens that do not parse as JWTs are treated as opaque and never expire
// locally; the server remains the authority.
func (s *Store) Expired() bool {
	token := s.Token()
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// load reads the persisted token; absence is simply "not authenticated"
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Failed to read persisted token")
		}
		s.token = ""
		s.loaded = true
		return
	}
	s.token = strings.TrimSpace(string(data))
	s.loaded = true
}
