package storage

import "time"

// Mechanism is the uniform contract every backing store satisfies.
//
// GetItem returns exactly the raw string previously given to SetItem for
// that key until the key is removed or the store cleared; ok is false when
// the key is absent.
type Mechanism interface {
	// SetItem stores value under key. opts is only meaningful for cookies
	// and may be nil.
	SetItem(key, value string, opts *Options) error

	// GetItem retrieves the raw string stored under key.
	GetItem(key string) (value string, ok bool, err error)

	// RemoveItem deletes key. opts is only meaningful for cookies and may be nil.
	RemoveItem(key string, opts *Options) error

	// Clear removes every key.
	Clear() error

	// Keys lists the keys currently present in the backing store.
	Keys() ([]string, error)
}

// Options carries the per-call settings understood by the cookie mechanism.
// Every other mechanism ignores them.
type Options struct {
	// Path is the cookie path. Empty means "/".
	Path string
	// Domain is the cookie domain. Empty means host-only.
	Domain string
	// Expires is the expiration of the cookie. Nil means a session cookie.
	Expires *Expiration
	// Secure restricts the cookie to secure transports.
	Secure bool
}

// Clone returns a copy of o that shares nothing with it.
func (o *Options) Clone() *Options {
	if o == nil {
		return nil
	}
	c := *o
	if o.Expires != nil {
		e := *o.Expires
		c.Expires = &e
	}
	return &c
}

// Expiration describes a point in time as a base date shifted by calendar
// deltas. A zero Date means "now". Negative deltas move into the past.
type Expiration struct {
	Date    time.Time
	Minutes int
	Hours   int
	Days    int
	Months  int
	Years   int
}

// At returns an Expiration pinned to t.
func At(t time.Time) *Expiration {
	return &Expiration{Date: t}
}

// In returns an Expiration relative to now.
func In(days, hours, minutes int) *Expiration {
	return &Expiration{Days: days, Hours: hours, Minutes: minutes}
}

// CookieMetadata is what the cookie mechanism remembers about each cookie it
// wrote, since deleting a cookie requires its original path and domain.
type CookieMetadata struct {
	Path    string
	Domain  string
	Expires string // HTTP-date
	Secure  bool
}

// NativeStore is a key-value primitive with the Web Storage shape but no
// options: the browser's localStorage/sessionStorage or a Go stand-in.
type NativeStore interface {
	SetItem(key, value string) error
	GetItem(key string) (string, bool, error)
	RemoveItem(key string) error
	Clear() error
	Keys() ([]string, error)
}
