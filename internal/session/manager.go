package session

import (
	"context"
	"time"

	"github.com/liftdesk/liftdesk/internal/errors"
	"github.com/liftdesk/liftdesk/internal/logging"
)

// Authenticator performs the credential exchange against the backend and
// returns the bearer token. *api.Client satisfies this.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Manager owns the session lifecycle. Login persists the token returned by
// the backend, Logout destroys it, and AuthHeader derives the Authorization
// header from whatever the slot currently holds.
type Manager struct {
	store  *Store
	logger *logging.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for session events.
func WithLogger(logger *logging.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given slot store.
func NewManager(store *Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.NopLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Login exchanges the operator's credentials for a bearer token via auth and
// persists it in the slot. The token is returned on success. Auth failures
// pass through untouched so callers keep the distinction between a
// server-rejected login and an unreachable server.
func (m *Manager) Login(ctx context.Context, auth Authenticator, email, password string) (string, error) {
	token, err := auth.Login(ctx, email, password)
	if err != nil {
		m.logger.Warn("login failed", "email", email, "error", err.Error())
		return "", err
	}

	sess := &Session{
		Token:   token,
		Email:   email,
		SavedAt: time.Now(),
	}
	if err := m.store.Save(sess); err != nil {
		return "", errors.Wrap(err, "persist session")
	}

	m.logger.Info("session established", "email", email)
	return token, nil
}

// Current returns the persisted session, or nil when none is stored. The
// slot is read fresh on every call.
func (m *Manager) Current() (*Session, error) {
	return m.store.Load()
}

// AuthHeader derives the Authorization header value from the current
// credential. When no session is stored it fails fast with
// errors.ErrMissingCredential, before any network attempt.
func (m *Manager) AuthHeader() (string, error) {
	sess, err := m.store.Load()
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", errors.ErrMissingCredential
	}
	return "Bearer " + sess.Token, nil
}

// Logout removes the persisted session. Logging out with no session stored
// is not an error.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.logger.Info("session cleared")
	return nil
}
