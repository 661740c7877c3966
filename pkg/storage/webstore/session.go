package webstore

import (
	"fmt"
	"sync"

	"github.com/yndnr/proxystore/pkg/omap"
	"github.com/yndnr/proxystore/pkg/storage"
)

// DefaultSessionQuota is the default byte quota of a SessionStore (5 MiB,
// the usual per-origin Web Storage limit).
const DefaultSessionQuota = 5 << 20

// SessionStore is an in-process store scoped to one tab. Its content lives
// as long as the process and is never shared between tabs.
type SessionStore struct {
	tabID string
	items *omap.Map[string, string]

	// Configuration
	quota int

	// Guards used together with items for quota accounting
	mu   sync.Mutex
	used int
}

// SessionOption configures the SessionStore.
type SessionOption func(*SessionStore)

// WithQuota sets the maximum number of bytes (keys plus values) the store
// accepts. A value <= 0 disables the quota.
func WithQuota(bytes int) SessionOption {
	return func(s *SessionStore) {
		s.quota = bytes
	}
}

// NewSessionStore creates an empty store for the given tab.
func NewSessionStore(tabID string, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		tabID: tabID,
		items: omap.New[string, string](),
		quota: DefaultSessionQuota,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// TabID returns the tab the store belongs to.
func (s *SessionStore) TabID() string {
	return s.tabID
}

// SetItem stores value under key. It fails with storage.ErrQuotaExceeded
// when the write would take the store over its quota.
func (s *SessionStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.used + len(key) + len(value)
	if old, ok := s.items.Get(key); ok {
		used -= len(key) + len(old)
	}
	if s.quota > 0 && used > s.quota {
		return storage.ErrQuotaExceeded.WithDetails(
			fmt.Sprintf("session store %s: %d bytes over a quota of %d", s.tabID, used, s.quota))
	}

	s.items.Set(key, value)
	s.used = used
	return nil
}

// GetItem retrieves the value stored under key.
func (s *SessionStore) GetItem(key string) (string, bool, error) {
	v, ok := s.items.Get(key)
	return v, ok, nil
}

// RemoveItem deletes key.
func (s *SessionStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.items.Get(key); ok {
		s.items.Delete(key)
		s.used -= len(key) + len(old)
	}
	return nil
}

// Clear removes every key.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items.Clear()
	s.used = 0
	return nil
}

// Keys lists the keys in insertion order.
func (s *SessionStore) Keys() ([]string, error) {
	return s.items.Keys(), nil
}

// Used returns the number of bytes currently accounted against the quota.
func (s *SessionStore) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used
}
