// Package session owns the operator's authenticated session: the bearer
// token obtained at login, persisted in a single named slot on disk, and
// surfaced as the Authorization header for API requests. The slot is read
// on every authenticated operation rather than cached, so a session cleared
// from outside the process is noticed on the next call.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/liftdesk/liftdesk/internal/errors"
)

// Session is the persisted contents of the session slot.
type Session struct {
	Token   string    `json:"token"`
	Email   string    `json:"email"`
	SavedAt time.Time `json:"saved_at"`
}

// Store persists the session slot as a JSON file with owner-only
// permissions. It is safe for concurrent use.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the slot file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the session to the slot atomically. The token is a credential,
// so the file is written 0600.
func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewSessionError("failed to create session directory", err).WithPath(s.path)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.NewSessionError("failed to encode session", err).WithPath(s.path)
	}

	if err := atomicWriteFile(s.path, data, 0600); err != nil {
		return errors.NewSessionError("failed to write session", err).WithPath(s.path)
	}
	return nil
}

// Load reads the session from the slot. An absent slot (or one with no
// token) returns (nil, nil); an unreadable or undecodable slot returns a
// *errors.SessionError wrapping errors.ErrSessionCorrupted.
func (s *Store) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewSessionError("failed to read session", err).WithPath(s.path)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		cause := fmt.Errorf("%w: %v", errors.ErrSessionCorrupted, err)
		return nil, errors.NewSessionError("failed to decode session", cause).WithPath(s.path)
	}

	if sess.Token == "" {
		return nil, nil
	}

	return &sess, nil
}

// Clear removes the slot. Clearing an absent slot is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.NewSessionError("failed to remove session", err).WithPath(s.path)
	}
	return nil
}

// atomicWriteFile writes data to path via a temp file and rename, so a
// crash mid-write never leaves a partial slot behind.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Create temp file in same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
