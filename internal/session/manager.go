// Package session owns the authentication token lifecycle: loading a
// persisted token at startup, decoding it into a typed identity,
// exposing the token to the API client, and tearing the session down
// on logout or when the server rejects the token.
package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Tuammar/seatplace-cli/internal/domain"
	"github.com/Tuammar/seatplace-cli/internal/logger"
)

// Manager holds the current session state
type Manager struct {
	store TokenStore
	log   *logger.Logger

	mu       sync.RWMutex
	token    string
	identity *domain.Identity
}

// NewManager creates a session manager over the given token store
func NewManager(store TokenStore, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Get()
	}
	return &Manager{store: store, log: log}
}

// Initialize loads any persisted token and decodes it. An undecodable
// token is fatal for the session only: the store is cleared, the
// failure is logged, and Initialize still returns nil. Store I/O
// failures are returned.
func (m *Manager) Initialize() error {
	token, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session token: %w", err)
	}
	if token == "" {
		return nil
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		m.log.Warn("Discarding undecodable session token", zap.Error(err))
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Error("Failed to clear token store", zap.Error(clearErr))
		}
		return nil
	}

	identity := claims.Identity()
	m.mu.Lock()
	m.token = token
	m.identity = &identity
	m.mu.Unlock()
	return nil
}

// Login persists the token and decodes it into the session identity.
// A token that fails decode is revoked: the store is cleared and the
// session stays absent.
func (m *Manager) Login(token string) error {
	if err := m.store.Save(token); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		m.log.Warn("Revoking undecodable login token", zap.Error(err))
		if clearErr := m.store.Clear(); clearErr != nil {
			m.log.Error("Failed to clear token store", zap.Error(clearErr))
		}
		m.mu.Lock()
		m.token = ""
		m.identity = nil
		m.mu.Unlock()
		return err
	}

	identity := claims.Identity()
	m.mu.Lock()
	m.token = token
	m.identity = &identity
	m.mu.Unlock()
	m.log.Info("Logged in", zap.String("alias", identity.Alias))
	return nil
}

// Logout clears the persisted token and the in-memory session.
// Safe to call when already logged out.
func (m *Manager) Logout() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.mu.Lock()
	m.token = ""
	m.identity = nil
	m.mu.Unlock()
	return nil
}

// IsAuthenticated derives purely from token presence. Expiry is the
// server's call, an expired token stays "authenticated" until a
// request is rejected.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token != ""
}

// Token returns the current bearer token, empty when logged out.
// Implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Identity returns the decoded identity, if a session exists
func (m *Manager) Identity() (domain.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.identity == nil {
		return domain.Identity{}, false
	}
	return *m.identity, true
}

// HandleAuthFailure forces a logout after the server rejected the
// session. Wired as the API client's 401 handler.
func (m *Manager) HandleAuthFailure() {
	m.log.Warn("Session rejected by server, logging out")
	if err := m.Logout(); err != nil {
		m.log.Error("Failed to clear rejected session", zap.Error(err))
	}
}
