package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/models"
	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultTTL applies when NewManager is given a non-positive ttl.
const DefaultTTL = 12 * time.Hour

// Manager owns the session lifecycle. Login and Logout are the only
// operations that write to the store.
type Manager struct {
	store  Store
	api    AuthAPI
	sealer *utils.Sealer
	ttl    time.Duration
	logger *zap.Logger
	newID  func() string
}

// NewManager creates a Manager.
func NewManager(store Store, api AuthAPI, sealer *utils.Sealer, ttl time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		api:    api,
		sealer: sealer,
		ttl:    ttl,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
}

// TTL is how long a stored session lives server-side.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Bootstrap restores the session for id. A missing record yields (nil, nil).
// A stored token that fails validation is cleared and also yields (nil, nil).
// Only store failures are returned as errors.
func (m *Manager) Bootstrap(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	rec, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	token, err := m.sealer.Open(rec.SealedToken)
	if err != nil {
		m.logger.Warn("Discarding unreadable session", zap.String("sessionID", id), zap.Error(err))
		m.clear(ctx, id)
		return nil, nil
	}

	user, err := m.api.Me(ctx, token)
	if err != nil {
		m.logger.Info("Stored token rejected, clearing session",
			zap.String("sessionID", id),
			zap.String("tokenHash", utils.HashToken(token)[:12]),
			zap.Error(err))
		m.clear(ctx, id)
		return nil, nil
	}
	if _, ok := models.ParseRole(string(user.Role)); !ok {
		m.logger.Warn("Stored session has unknown role, clearing session",
			zap.String("sessionID", id),
			zap.String("role", string(user.Role)))
		m.clear(ctx, id)
		return nil, nil
	}

	return &Session{ID: id, Token: token, User: user, CreatedAt: rec.CreatedAt}, nil
}

// Login authenticates against the API, fetches the profile and stores a new
// session. When expectedRole is set and the profile's role differs, the
// token is discarded and a *RoleMismatchError is returned.
func (m *Manager) Login(ctx context.Context, email, password string, expectedRole models.Role) (*Session, error) {
	token, err := m.api.Login(ctx, models.LoginRequest{
		Email:        email,
		Password:     password,
		ExpectedRole: expectedRole,
	})
	if err != nil {
		return nil, err
	}

	user, err := m.api.Me(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, ok := models.ParseRole(string(user.Role)); !ok {
		m.logger.Warn("Login with unknown role",
			zap.String("email", email),
			zap.String("role", string(user.Role)))
		return nil, ErrUnknownRole
	}
	if expectedRole != "" && user.Role != expectedRole {
		m.logger.Info("Login role mismatch",
			zap.String("email", email),
			zap.String("expected", string(expectedRole)),
			zap.String("actual", string(user.Role)))
		return nil, &RoleMismatchError{Expected: expectedRole, Actual: user.Role}
	}

	sealed, err := m.sealer.Seal(token)
	if err != nil {
		return nil, fmt.Errorf("failed to seal token: %w", err)
	}
	sess := &Session{ID: m.newID(), Token: token, User: user, CreatedAt: time.Now()}
	if err := m.store.Save(ctx, sess.ID, Record{SealedToken: sealed, CreatedAt: sess.CreatedAt}, m.ttl); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	m.logger.Info("User logged in", zap.String("userID", user.ID), zap.String("role", string(user.Role)))
	return sess, nil
}

// Register creates the account and then logs in with the same credentials.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*Session, error) {
	if err := m.api.Register(ctx, req); err != nil {
		return nil, err
	}
	return m.Login(ctx, req.Email, req.Password, req.Role)
}

// Logout deletes the stored session. The API is not called.
func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Ping checks the backing store.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}

func (m *Manager) clear(ctx context.Context, id string) {
	if err := m.store.Delete(ctx, id); err != nil {
		m.logger.Warn("Failed to clear session", zap.String("sessionID", id), zap.Error(err))
	}
}
