package proxystorage

import (
	"log/slog"
	"sync"

	"github.com/yndnr/proxystore/pkg/storage"
)

// Proxy owns the mechanisms, their availability, the interceptor chains and
// the facade of each kind. It selects the default facade when it is built.
type Proxy struct {
	registry  *storage.Registry
	available storage.Availability
	chain     *Chain
	logger    *slog.Logger
	metrics   *Metrics

	mu        sync.Mutex
	instances map[storage.Kind]*WebStorage
	def       *WebStorage
	current   storage.Kind
}

// Option configures a Proxy.
type Option func(*Proxy)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Proxy) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics records facade activity in m.
func WithMetrics(m *Metrics) Option {
	return func(p *Proxy) {
		p.metrics = m
	}
}

// WithChain shares an existing interceptor chain.
func WithChain(c *Chain) Option {
	return func(p *Proxy) {
		if c != nil {
			p.chain = c
		}
	}
}

// New probes the mechanisms of reg and activates the first available kind
// in the order local, session, cookie, memory.
func New(reg *storage.Registry, opts ...Option) *Proxy {
	p := &Proxy{
		registry:  reg,
		chain:     NewChain(),
		logger:    slog.Default(),
		instances: make(map[storage.Kind]*WebStorage, 4),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.available = storage.ProbeAll(reg)
	p.metrics.setAvailability(p.available)

	for _, kind := range reg.Kinds() {
		if !p.available[kind] {
			continue
		}
		if err := p.Set(kind); err == nil {
			break
		}
	}

	p.logger.Debug("storage selected",
		"default", p.current,
		"local", p.available[storage.Local],
		"session", p.available[storage.Session],
		"cookie", p.available[storage.Cookie])

	return p
}

// Default returns the default facade.
func (p *Proxy) Default() *WebStorage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.def
}

// Get returns the kind last passed to Set. When that kind was unavailable
// the default facade is of the fallback kind; see Default().Kind().
func (p *Proxy) Get() storage.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Set makes the facade of kind the default.
func (p *Proxy) Set(kind storage.Kind) error {
	ws, err := p.Storage(kind)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.def = ws
	p.current = kind
	p.mu.Unlock()
	return nil
}

// IsAvailable returns a copy of the probe results taken when the Proxy was
// built.
func (p *Proxy) IsAvailable() storage.Availability {
	return p.available.Clone()
}

// Interceptors registers fn to run on cmd for every facade of the Proxy.
// Unknown commands and nil functions are ignored.
func (p *Proxy) Interceptors(cmd Command, fn Interceptor) {
	p.chain.Register(cmd, fn)
}

// Storage returns the facade of kind. An unavailable session storage falls
// back to memory and any other unavailable kind to the default kind, with a
// warning. A facade already handed out is returned again after its shadow
// copy is re-synchronized.
func (p *Proxy) Storage(kind storage.Kind) (*WebStorage, error) {
	if !kind.Valid() {
		return nil, storage.ErrInvalidMechanism.WithDetails(string(kind))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	resolved := p.resolveLocked(kind)

	if ws, ok := p.instances[resolved]; ok {
		ws.resync()
		return ws, nil
	}

	mech, err := p.registry.Mechanism(resolved)
	if err != nil {
		return nil, err
	}

	ws := newWebStorage(resolved, mech, p.chain, p.logger, p.metrics)
	p.instances[resolved] = ws
	return ws, nil
}

func (p *Proxy) resolveLocked(kind storage.Kind) storage.Kind {
	if p.available[kind] {
		return kind
	}

	fallback := storage.Memory
	if kind != storage.Session && p.def != nil {
		fallback = p.def.Kind()
	}

	p.logger.Warn("storage mechanism not available, falling back",
		"code", storage.ErrMechanismUnavailable.Code,
		"requested", kind,
		"fallback", fallback)
	p.metrics.fallback(kind, fallback)

	return fallback
}
