package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/yndnr/proxystore/internal/config"
	"github.com/yndnr/proxystore/internal/infra/shutdown"
	"github.com/yndnr/proxystore/internal/telemetry/logger"
	"github.com/yndnr/proxystore/internal/telemetry/metric"
	"github.com/yndnr/proxystore/pkg/proxystorage"
	"github.com/yndnr/proxystore/pkg/storage"
	"github.com/yndnr/proxystore/pkg/storage/cookie"
	"github.com/yndnr/proxystore/pkg/storage/kvstore"
	"github.com/yndnr/proxystore/pkg/storage/memory"
	"github.com/yndnr/proxystore/pkg/storage/webstore"
)

// Env is one opened tab: the mechanisms, the Proxy over them and the
// resources released by Close.
type Env struct {
	Config *config.Config
	TabID  string
	Proxy  *proxystorage.Proxy

	// Registry holds the mechanisms behind Proxy.
	Registry *storage.Registry

	// Metrics is nil unless metrics.enabled is set.
	Metrics *metric.Registry

	// Local is nil when local storage is disabled.
	Local   kvstore.Store
	Session *webstore.SessionStore
	Jar     *cookie.Jar
	Slot    memory.Slot

	logger   logger.Logger
	shutdown *shutdown.Handler
}

// Open builds the mechanisms described by cfg and a Proxy over them.
// On error everything opened so far is released.
func Open(cfg *config.Config, log logger.Logger) (env *Env, err error) {
	if log == nil {
		log = logger.Default()
	}

	tabID := cfg.Storage.TabID
	if tabID == "" {
		if tabID, err = NewTabID(); err != nil {
			return nil, fmt.Errorf("generate tab id: %w", err)
		}
	}

	env = &Env{
		Config:   cfg,
		TabID:    tabID,
		logger:   log.With("tab_id", tabID),
		shutdown: shutdown.NewHandler(10 * time.Second),
	}
	defer func() {
		if err != nil {
			_ = env.Close()
			env = nil
		}
	}()

	if err := os.MkdirAll(cfg.Storage.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	var metricsOpt []proxystorage.Option
	if cfg.Metrics.Enabled {
		env.Metrics = metric.NewRegistry(metric.WithRuntimeCollectors())
		metricsOpt = append(metricsOpt, proxystorage.WithMetrics(proxystorage.NewMetrics(env.Metrics.Registerer())))
	}

	local, err := env.openLocal()
	if err != nil {
		return nil, err
	}
	session := env.openSession()
	cookies, err := env.openCookie()
	if err != nil {
		return nil, err
	}
	mem, err := env.openMemory()
	if err != nil {
		return nil, err
	}

	reg, err := storage.NewRegistry(local, session, cookies, mem)
	if err != nil {
		return nil, err
	}
	env.Registry = reg

	opts := append([]proxystorage.Option{proxystorage.WithLogger(env.logger.Slog())}, metricsOpt...)
	env.Proxy = proxystorage.New(reg, opts...)

	if cfg.Storage.Default != "" {
		kind, err := storage.ParseKind(cfg.Storage.Default)
		if err != nil {
			return nil, err
		}
		if err := env.Proxy.Set(kind); err != nil {
			return nil, err
		}
	}

	env.logger.Debug("tab opened",
		"default", env.Proxy.Get(),
		"resolved", env.Proxy.Default().Kind(),
		"data_dir", cfg.Storage.DataDir)
	return env, nil
}

func (e *Env) openLocal() (storage.Mechanism, error) {
	sc := &e.Config.Storage
	if !sc.Local.Enabled {
		return webstore.New(webstore.NewDisabled("local storage disabled by configuration")), nil
	}

	kv := kvstore.DefaultConfig(sc.ResolvePath("local"))
	kv.Engine = sc.Local.Engine
	kv.Badger = kvstore.BadgerConfig{
		GCInterval:       sc.Local.Badger.GCInterval,
		GCThreshold:      sc.Local.Badger.GCThreshold,
		CacheSize:        sc.Local.Badger.CacheSize,
		ValueLogFileSize: sc.Local.Badger.ValueLogFileSize,
		SyncWrites:       sc.Local.Badger.SyncWrites,
	}

	store, err := kvstore.Open(kv, e.logger.Slog())
	if err != nil {
		// A locked or corrupt store behaves like blocked storage: the probe
		// fails and the Proxy falls back.
		e.logger.Warn("local store unavailable", "dir", kv.Dir, "error", err)
		return webstore.New(webstore.NewDisabled(err.Error())), nil
	}
	if b, ok := store.(*kvstore.BadgerStore); ok && e.Metrics != nil {
		b.RegisterMetrics(e.Metrics.Registerer())
	}

	e.Local = store
	e.shutdown.OnClose("local", store.Close)
	return webstore.New(store), nil
}

func (e *Env) openSession() storage.Mechanism {
	sc := &e.Config.Storage
	if !sc.Session.Enabled {
		return webstore.New(webstore.NewDisabled("session storage disabled by configuration"))
	}

	e.Session = webstore.NewSessionStore(e.TabID, webstore.WithQuota(sc.Session.QuotaBytes))

	// Only a named tab can be reloaded; generated tabs start empty.
	if sc.TabID != "" {
		path := sessionPath(sc.DataDir, e.TabID)
		if err := restoreSession(e.Session, path); err != nil {
			e.logger.Warn("session not restored", "path", path, "error", err)
		}
		e.shutdown.OnClose("session", func() error {
			return persistSession(e.Session, path)
		})
	}
	return webstore.New(e.Session)
}

func (e *Env) openCookie() (storage.Mechanism, error) {
	sc := &e.Config.Storage

	rawURL := sc.Cookie.URL
	var opts []cookie.JarOption
	if !sc.Cookie.Enabled {
		opts = append(opts, cookie.WithCookiesDisabled())
		if rawURL == "" {
			rawURL = config.DefaultCookieURL
		}
	}
	jar, err := cookie.NewJar(rawURL, opts...)
	if err != nil {
		return nil, err
	}
	e.Jar = jar

	if path := sc.ResolvePath(sc.Cookie.JarFile); path != "" && sc.Cookie.Enabled {
		if err := jar.Load(path); err != nil {
			e.logger.Warn("cookie jar not loaded", "path", path, "error", err)
		}
		e.shutdown.OnClose("cookies", func() error {
			return jar.Save(path)
		})
	}
	return cookie.New(jar), nil
}

func (e *Env) openMemory() (storage.Mechanism, error) {
	sc := &e.Config.Storage

	dir := sc.ResolvePath(sc.Memory.SlotDir)
	if dir == "" {
		e.Slot = memory.NewVarSlot("")
		return memory.New(e.Slot), nil
	}

	var opts []memory.FileSlotOption
	if key := sc.Memory.EncryptionKey; key != "" {
		sealer, err := memory.NewSealer([]byte(key))
		if err != nil {
			return nil, err
		}
		opts = append(opts, memory.WithSealer(sealer))
	}

	slot, err := memory.NewFileSlot(dir, e.TabID, opts...)
	if err != nil {
		return nil, err
	}
	e.Slot = slot
	return memory.New(slot), nil
}

// Logger returns the tab-scoped logger.
func (e *Env) Logger() logger.Logger {
	return e.logger
}

// OnClose registers an extra cleanup to run before the tab's own resources
// are released.
func (e *Env) OnClose(name string, fn func() error) {
	e.shutdown.OnClose(name, fn)
}

// Close persists session items and cookies and closes the local store.
// It is safe to call more than once.
func (e *Env) Close() error {
	return e.shutdown.Run()
}
