// Package session tracks the signed-in user for one client and enforces the session lifetime.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"neocommerce.in/storefront/pkg/cart"
	"neocommerce.in/storefront/pkg/models"
	"neocommerce.in/storefront/pkg/notify"
	"neocommerce.in/storefront/pkg/storage"
)

const DefaultTTL = 24 * time.Hour

// CartClearer is the part of the cart a logout touches.
type CartClearer interface {
	Clear(ctx context.Context, confirm cart.Confirmer) (bool, error)
}

type Options struct {
	TTL    time.Duration
	Now    func() time.Time
	Logger *zap.Logger
}

type Manager struct {
	mu       sync.Mutex
	store    storage.Store
	cart     CartClearer
	notifier notify.Notifier
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
	user     *models.UserSession
}

// New returns a logged-out manager. Call Load to pick up a stored session.
func New(store storage.Store, cartClearer CartClearer, notifier notify.Notifier, opts Options) *Manager {
	m := &Manager{
		store:    store,
		cart:     cartClearer,
		notifier: notifier,
		ttl:      opts.TTL,
		now:      opts.Now,
		logger:   opts.Logger,
	}
	if m.notifier == nil {
		m.notifier = notify.Nop
	}
	if m.ttl <= 0 {
		m.ttl = DefaultTTL
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	return m
}

// Load reads the stored session. A corrupt record is dropped silently; an expired one is logged
// out, which also empties the cart.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = nil
	raw, err := m.store.Get(ctx, storage.UserKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	var user models.UserSession
	err = json.Unmarshal(raw, &user)
	if err == nil && !user.WellFormed() {
		err = errors.New("not a session record")
	}
	if err != nil {
		m.logger.Warn("Discarding unreadable session", zap.Error(err))
		if err := m.store.Delete(ctx, storage.UserKey); err != nil {
			return fmt.Errorf("failed to remove session: %w", err)
		}
		return nil
	}

	if !user.ValidAt(m.now(), m.ttl) {
		m.logger.Info("Session expired", zap.String("user_id", user.UserID))
		return m.logoutLocked(ctx, cart.AlwaysConfirm)
	}

	m.user = &user
	name := user.FirstName
	if name == "" {
		name = "there"
	}
	m.notifier.Notify(notify.Notification{
		Severity: notify.Success,
		Title:    fmt.Sprintf("Welcome back, %s!", name),
		Message:  "Ready to explore the future of shopping?",
	})
	return nil
}

// Logout removes the session and asks confirm before emptying the cart.
func (m *Manager) Logout(ctx context.Context, confirm cart.Confirmer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logoutLocked(ctx, confirm)
}

func (m *Manager) logoutLocked(ctx context.Context, confirm cart.Confirmer) error {
	if err := m.store.Delete(ctx, storage.UserKey); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	m.user = nil
	if m.cart != nil {
		if _, err := m.cart.Clear(ctx, confirm); err != nil {
			return err
		}
	}
	m.notifier.Notify(notify.Notification{
		Severity: notify.Success,
		Title:    "Logged Out",
		Message:  "You have been successfully logged out.",
	})
	return nil
}

// TouchActivity stamps LastActivity on the stored session. It is a no-op when logged out.
func (m *Manager) TouchActivity(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return nil
	}
	next := *m.user
	next.LastActivity = m.now().UTC()
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := m.store.Set(ctx, storage.UserKey, raw); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	m.user = &next
	return nil
}

// Current returns a copy of the signed-in user, or nil.
func (m *Manager) Current() *models.UserSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	u.Interests = append([]string(nil), u.Interests...)
	return &u
}

func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != nil
}

func (m *Manager) DisplayName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return ""
	}
	return m.user.DisplayName()
}

func (m *Manager) Initial() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return ""
	}
	return m.user.Initial()
}
