package cookie

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/yndnr/proxystore/pkg/keycodec"
	"github.com/yndnr/proxystore/pkg/storage"
)

// DefaultPath is the path used when a write does not specify one.
const DefaultPath = "/"

// Document is the cookie string of the current document.
type Document interface {
	// Cookie returns every cookie visible to the document as "k=v; k2=v2".
	Cookie() string
	// SetCookie merges one serialized cookie into the jar.
	SetCookie(cookie string) error
}

// Mechanism stores values as document cookies.
type Mechanism struct {
	doc Document
	now func() time.Time

	mu   sync.Mutex
	meta map[string]storage.CookieMetadata
}

// Option configures the Mechanism.
type Option func(*Mechanism)

// WithClock sets the clock used to compute expiration dates.
func WithClock(now func() time.Time) Option {
	return func(m *Mechanism) {
		m.now = now
	}
}

// New creates a cookie mechanism over doc. Cookies already present in the
// document are registered with the default path.
func New(doc Document, opts ...Option) *Mechanism {
	m := &Mechanism{
		doc:  doc,
		now:  time.Now,
		meta: make(map[string]storage.CookieMetadata),
	}

	for _, opt := range opts {
		opt(m)
	}

	for _, key := range parseKeys(doc.Cookie()) {
		m.meta[key] = storage.CookieMetadata{Path: DefaultPath}
	}

	return m
}

// SetItem writes the cookie key=value with the attributes in opts.
func (m *Mechanism) SetItem(key, value string, opts *storage.Options) error {
	o := storage.Options{Path: DefaultPath}
	if opts != nil {
		o = *opts
		if o.Path == "" {
			o.Path = DefaultPath
		}
	}

	meta := storage.CookieMetadata{Path: o.Path, Secure: o.Secure}
	if o.Expires != nil {
		meta.Expires = keycodec.ExpirationString(*o.Expires, m.now())
	}
	if d := strings.TrimSpace(o.Domain); d != "" {
		meta.Domain = d
	}

	m.mu.Lock()
	prev, hadPrev := m.meta[key]
	m.meta[key] = meta
	m.mu.Unlock()

	if err := m.doc.SetCookie(Format(key, value, meta)); err != nil {
		m.mu.Lock()
		if hadPrev {
			m.meta[key] = prev
		} else {
			delete(m.meta, key)
		}
		m.mu.Unlock()
		return err
	}
	return nil
}

// GetItem returns the decoded value of the first cookie named key. When the
// cookie is gone (for example because it expired) its metadata is dropped.
func (m *Mechanism) GetItem(key string) (string, bool, error) {
	nameEQ := key + "="
	for _, c := range strings.Split(m.doc.Cookie(), ";") {
		c = strings.TrimSpace(c)
		if strings.HasPrefix(c, nameEQ) {
			return keycodec.DecodeURIComponent(c[len(nameEQ):]), true, nil
		}
	}

	m.mu.Lock()
	delete(m.meta, key)
	m.mu.Unlock()
	return "", false, nil
}

// RemoveItem expires the cookie named key. The path, domain and secure flag
// recorded when the cookie was written are reused, overridden by any
// non-empty field of opts; the expiration is always one day in the past.
func (m *Mechanism) RemoveItem(key string, opts *storage.Options) error {
	m.mu.Lock()
	meta, ok := m.meta[key]
	m.mu.Unlock()

	o := storage.Options{Path: meta.Path, Domain: meta.Domain, Secure: meta.Secure}
	if !ok {
		o.Path = DefaultPath
	}
	if opts != nil {
		if opts.Path != "" {
			o.Path = opts.Path
		}
		if opts.Domain != "" {
			o.Domain = opts.Domain
		}
		if opts.Secure {
			o.Secure = true
		}
	}
	o.Expires = &storage.Expiration{Days: -1}

	err := m.SetItem(key, "", &o)

	m.mu.Lock()
	delete(m.meta, key)
	m.mu.Unlock()
	return err
}

// Clear expires every cookie visible to the document, each one with its own
// recorded metadata so that cookies on non-default paths are removed too.
func (m *Mechanism) Clear() error {
	var errs []error
	for _, key := range parseKeys(m.doc.Cookie()) {
		if err := m.RemoveItem(key, nil); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Keys lists the names of the cookies visible to the document.
func (m *Mechanism) Keys() ([]string, error) {
	return parseKeys(m.doc.Cookie()), nil
}

// Metadata returns the metadata recorded for key.
func (m *Mechanism) Metadata(key string) (storage.CookieMetadata, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meta, ok := m.meta[key]
	return meta, ok
}

// Format serializes a cookie in the document wire format:
//
//	<key>=<value>[; expires=<HTTP-date>][; domain=<domain>]; path=<path>[; secure]
//
// value is URI-component encoded.
func Format(key, value string, meta storage.CookieMetadata) string {
	var b strings.Builder
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(keycodec.EncodeURIComponent(value))
	if meta.Expires != "" {
		b.WriteString("; expires=")
		b.WriteString(meta.Expires)
	}
	if meta.Domain != "" {
		b.WriteString("; domain=")
		b.WriteString(meta.Domain)
	}
	if meta.Path != "" {
		b.WriteString("; path=")
		b.WriteString(meta.Path)
	}
	if meta.Secure {
		b.WriteString("; secure")
	}
	return b.String()
}

// parseKeys extracts the distinct cookie names of a document cookie string,
// in order of appearance.
func parseKeys(cookies string) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, c := range strings.Split(cookies, ";") {
		idx := strings.IndexByte(c, '=')
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(c[:idx])
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
