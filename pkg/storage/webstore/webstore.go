package webstore

import "github.com/yndnr/proxystore/pkg/storage"

// Mechanism passes every call through to a native store.
type Mechanism struct {
	native storage.NativeStore
}

// New wraps native as a storage.Mechanism.
func New(native storage.NativeStore) *Mechanism {
	return &Mechanism{native: native}
}

// SetItem stores value under key. opts is ignored.
func (m *Mechanism) SetItem(key, value string, _ *storage.Options) error {
	return m.native.SetItem(key, value)
}

// GetItem retrieves the value stored under key.
func (m *Mechanism) GetItem(key string) (string, bool, error) {
	return m.native.GetItem(key)
}

// RemoveItem deletes key. opts is ignored.
func (m *Mechanism) RemoveItem(key string, _ *storage.Options) error {
	return m.native.RemoveItem(key)
}

// Clear removes every key.
func (m *Mechanism) Clear() error {
	return m.native.Clear()
}

// Keys lists the stored keys.
func (m *Mechanism) Keys() ([]string, error) {
	return m.native.Keys()
}
