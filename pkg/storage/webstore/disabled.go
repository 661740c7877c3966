package webstore

import "github.com/yndnr/proxystore/pkg/storage"

// Disabled is a native store that fails every call with
// storage.ErrStorageDisabled, the way browsers behave when storage is blocked
// by policy or private browsing.
type Disabled struct {
	reason string
}

// NewDisabled returns a store that always fails, reporting reason.
func NewDisabled(reason string) *Disabled {
	return &Disabled{reason: reason}
}

func (d *Disabled) err() error {
	if d.reason == "" {
		return storage.ErrStorageDisabled
	}
	return storage.ErrStorageDisabled.WithDetails(d.reason)
}

// SetItem always fails.
func (d *Disabled) SetItem(string, string) error { return d.err() }

// GetItem always fails.
func (d *Disabled) GetItem(string) (string, bool, error) { return "", false, d.err() }

// RemoveItem always fails.
func (d *Disabled) RemoveItem(string) error { return d.err() }

// Clear always fails.
func (d *Disabled) Clear() error { return d.err() }

// Keys always fails.
func (d *Disabled) Keys() ([]string, error) { return nil, d.err() }
