// Package session holds the bearer token for the running client. One Store
// is created at process start and passed explicitly into every component
// that needs it.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store holds the session token. A Store may be purely in-memory, or backed
// by a token file so the session survives across CLI invocations. The token
// is never validated client-side; whether it is still accepted is decided by
// the next authenticated call.
type Store struct {
	mu    sync.Mutex
	token string
	path  string
}

// NewStore returns an in-memory store with no token.
func NewStore() *Store {
	return &Store{}
}

// NewFileStore returns a store backed by the token file at path. An existing
// token is loaded eagerly; Login and Logout write through to the file.
func NewFileStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("token file path is empty")
	}
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// DefaultTokenPath returns the token file location under the user config
// directory.
func DefaultTokenPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, "talentlens", "token"), nil
}

// Login stores the token and marks the session active.
func (s *Store) Login(token string) error {
	if token == "" {
		return fmt.Errorf("cannot log in with an empty token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Logout clears the session.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// CurrentToken returns the stored token, and whether a session is active.
func (s *Store) CurrentToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}
