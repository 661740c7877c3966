package proxystorage

import (
	"log/slog"
	"regexp"
	"sync"

	"github.com/yndnr/proxystore/pkg/keycodec"
	"github.com/yndnr/proxystore/pkg/omap"
	"github.com/yndnr/proxystore/pkg/storage"
)

// reservedCookieKeys are cookie attribute names that can not be used as keys
// of the cookie facade.
var reservedCookieKeys = regexp.MustCompile(`(?i)^(?:expires|max-age|path|domain|secure)$`)

// WebStorage is the facade over one storage mechanism. Values are stored as
// JSON (strings verbatim) and decoded on read. The facade keeps a shadow
// copy of the decoded values so that Len, Keys and Snapshot do not touch
// the mechanism.
type WebStorage struct {
	kind    storage.Kind
	mech    storage.Mechanism
	chain   *Chain
	logger  *slog.Logger
	metrics *Metrics

	// mu serializes operations on the facade.
	mu     sync.Mutex
	shadow *omap.Map[string, any]
}

func newWebStorage(kind storage.Kind, mech storage.Mechanism, chain *Chain, logger *slog.Logger, metrics *Metrics) *WebStorage {
	s := &WebStorage{
		kind:    kind,
		mech:    mech,
		chain:   chain,
		logger:  logger,
		metrics: metrics,
		shadow:  omap.New[string, any](),
	}
	s.resync()
	return s
}

// Kind returns the kind of the mechanism behind the facade.
func (s *WebStorage) Kind() storage.Kind {
	return s.kind
}

// SetItem stores value under key. Strings are written verbatim, any other
// value is JSON encoded. opts only matter to the cookie mechanism.
//
// For the cookie facade, keys naming a cookie attribute are rejected with
// storage.ErrReservedKey, and a cookie the document refused (wrong domain
// or path) is dropped from the shadow copy.
func (s *WebStorage) SetItem(key string, value any, opts *storage.Options) (err error) {
	defer func() { s.metrics.observe(s.kind, CommandSetItem, err) }()

	if err := keycodec.CheckEmpty(key); err != nil {
		return err
	}
	if s.kind == storage.Cookie && reservedCookieKeys.MatchString(key) {
		return storage.ErrReservedKey.WithDetails(key)
	}

	if v := s.chain.Run(CommandSetItem, key, value, opts); v != nil {
		value = v
	}

	raw, err := keycodec.Serialize(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, hadPrev := s.shadow.Get(key)
	s.shadow.Set(key, value)

	if err := s.mech.SetItem(key, raw, opts); err != nil {
		if hadPrev {
			s.shadow.Set(key, prev)
		} else {
			s.shadow.Delete(key)
		}
		return err
	}

	if s.kind == storage.Cookie {
		if _, ok, gerr := s.mech.GetItem(key); gerr == nil && !ok {
			s.shadow.Delete(key)
			s.logger.Debug("cookie rejected by document", "key", key)
		}
	}

	s.metrics.setShadowKeys(s.kind, s.shadow.Len())
	return nil
}

// GetItem returns the decoded value stored under key, or nil when the key
// is absent. Values that are not valid JSON are returned as strings.
func (s *WebStorage) GetItem(key string) (any, error) {
	return s.getItem(key, true)
}

// GetItemRaw is GetItem without JSON decoding: present values are returned
// as the stored string.
func (s *WebStorage) GetItemRaw(key string) (any, error) {
	return s.getItem(key, false)
}

func (s *WebStorage) getItem(key string, parse bool) (value any, err error) {
	defer func() { s.metrics.observe(s.kind, CommandGetItem, err) }()

	if err := keycodec.CheckEmpty(key); err != nil {
		return nil, err
	}

	s.mu.Lock()
	raw, ok, err := s.mech.GetItem(key)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if !ok {
		s.shadow.Delete(key)
	} else {
		if parse {
			value = keycodec.TryParse(raw).Value()
		} else {
			value = raw
		}
		s.shadow.Set(key, value)
	}
	s.metrics.setShadowKeys(s.kind, s.shadow.Len())
	s.mu.Unlock()

	if v := s.chain.Run(CommandGetItem, key, value); v != nil {
		value = v
	}
	return value, nil
}

// RemoveItem deletes key. For the cookie facade, opts override the path,
// domain and secure flag recorded when the cookie was written.
func (s *WebStorage) RemoveItem(key string, opts *storage.Options) (err error) {
	defer func() { s.metrics.observe(s.kind, CommandRemoveItem, err) }()

	if err := keycodec.CheckEmpty(key); err != nil {
		return err
	}

	var options any
	if opts != nil {
		options = opts
	}
	s.chain.Run(CommandRemoveItem, key, options)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.shadow.Delete(key)
	s.metrics.setShadowKeys(s.kind, s.shadow.Len())
	return s.mech.RemoveItem(key, opts)
}

// Clear deletes every key of the mechanism.
func (s *WebStorage) Clear() (err error) {
	defer func() { s.metrics.observe(s.kind, CommandClear, err) }()

	s.chain.Run(CommandClear, "", nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.shadow.Clear()
	s.metrics.setShadowKeys(s.kind, 0)
	return s.mech.Clear()
}

// Len returns the number of keys in the shadow copy.
func (s *WebStorage) Len() int {
	return s.shadow.Len()
}

// Keys returns the keys of the shadow copy in insertion order.
func (s *WebStorage) Keys() []string {
	return s.shadow.Keys()
}

// Snapshot returns a copy of the shadow copy.
func (s *WebStorage) Snapshot() map[string]any {
	return s.shadow.ToMap()
}

// resync rebuilds the shadow copy from the mechanism content. On failure
// the shadow copy is left untouched.
func (s *WebStorage) resync() {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.mech.Keys()
	if err != nil {
		s.logger.Warn("shadow copy sync failed",
			"kind", s.kind,
			"error", err)
		return
	}

	values := make([]any, 0, len(keys))
	present := make([]string, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := s.mech.GetItem(key)
		if err != nil || !ok {
			continue
		}
		present = append(present, key)
		values = append(values, keycodec.TryParse(raw).Value())
	}

	s.shadow.Replace(present, values)
	s.metrics.setShadowKeys(s.kind, len(present))
}
