package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/ramadhanarif/storefront-client/pkg/enums"
	"github.com/ramadhanarif/storefront-client/pkg/logger"
)

// Manager owns the authenticated session for the process lifetime. Other
// components read it to attach bearer tokens and to gate admin surfaces;
// a 401 from any endpoint funnels through Invalidate, which clears the
// store and notifies every subscriber.
type Manager struct {
	store Store
	logg  *logger.Logger

	mu      sync.RWMutex
	current *Snapshot
	subs    map[int]func()
	nextSub int
}

func NewManager(store Store, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	m := &Manager{
		store: store,
		logg:  logg,
		subs:  map[int]func(){},
	}

	snapshot, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	m.current = snapshot
	return m, nil
}

// Set persists a fresh session after login or register.
func (m *Manager) Set(ctx context.Context, snapshot Snapshot) error {
	if snapshot.Token == "" {
		return fmt.Errorf("session token required")
	}
	if err := m.store.Save(&snapshot); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = &snapshot
	m.mu.Unlock()

	m.logg.Info(m.logg.WithUserID(ctx, snapshot.User.ID), "session stored")
	return nil
}

// Clear drops the session on explicit logout. Subscribers are not notified;
// the caller initiated this.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		return err
	}
	m.logg.Info(ctx, "session cleared")
	return nil
}

// Invalidate handles a server-side 401: clear everything and broadcast to
// subscribers so the app treats the user as logged out. Repeat calls while
// already logged out are no-ops, so one invalidation produces one round of
// notifications.
func (m *Manager) Invalidate(ctx context.Context) {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return
	}
	m.current = nil
	subs := make([]func(), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		m.logg.Error(ctx, "clearing invalidated session", err)
	}
	m.logg.Warn(ctx, "session invalidated by server")

	for _, fn := range subs {
		fn()
	}
}

// SubscribeUnauthorized registers a callback fired on session invalidation.
// The returned function unsubscribes.
func (m *Manager) SubscribeUnauthorized(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Token returns the current bearer token, empty when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

// User returns the cached user snapshot.
func (m *Manager) User() (User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return User{}, false
	}
	return m.current.User, true
}

func (m *Manager) IsLoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

func (m *Manager) IsAdmin() bool {
	user, ok := m.User()
	return ok && user.Role == enums.UserRoleAdmin
}

// TokenExpired peeks at the JWT expiry claim without verifying the
// signature; the client has no signing secret, and the server stays
// authoritative either way.
func (m *Manager) TokenExpired(now time.Time) bool {
	token := m.Token()
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return now.After(expiry.Time)
}
