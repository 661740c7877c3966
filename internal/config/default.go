package config

import (
	"os"
	"path/filepath"
)

// Default configuration values.
const (
	DefaultEngine       = "badger"
	DefaultSessionQuota = 5 << 20
	DefaultCookieURL    = "https://localhost/"
	DefaultJarFile      = "cookies.json"
	DefaultSlotDir      = "slots"

	DefaultGCInterval       = "10m"
	DefaultGCThreshold      = 0.5
	DefaultCacheSize        = 16 << 20
	DefaultValueLogFileSize = 64 << 20

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// DefaultDataDir returns the default data directory, under the user
// configuration directory when one is known.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "proxystore")
	}
	return filepath.Join(os.TempDir(), "proxystore")
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageSection{
			DataDir: DefaultDataDir(),
			Local: LocalConfig{
				Enabled: true,
				Engine:  DefaultEngine,
				Badger: BadgerConfig{
					GCInterval:       DefaultGCInterval,
					GCThreshold:      DefaultGCThreshold,
					CacheSize:        DefaultCacheSize,
					ValueLogFileSize: DefaultValueLogFileSize,
					SyncWrites:       true,
				},
			},
			Session: SessionConfig{
				Enabled:    true,
				QuotaBytes: DefaultSessionQuota,
			},
			Cookie: CookieConfig{
				Enabled: true,
				URL:     DefaultCookieURL,
				JarFile: DefaultJarFile,
			},
			Memory: MemoryConfig{
				SlotDir: DefaultSlotDir,
			},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// defaultMap returns Default() as dotted keys for the loader.
func defaultMap() map[string]any {
	return Flatten(Default())
}

// Flatten returns cfg as dotted koanf keys.
func Flatten(cfg *Config) map[string]any {
	return map[string]any{
		"storage.default":                          cfg.Storage.Default,
		"storage.data_dir":                         cfg.Storage.DataDir,
		"storage.tab_id":                           cfg.Storage.TabID,
		"storage.local.enabled":                    cfg.Storage.Local.Enabled,
		"storage.local.engine":                     cfg.Storage.Local.Engine,
		"storage.local.badger.gc_interval":         cfg.Storage.Local.Badger.GCInterval,
		"storage.local.badger.gc_threshold":        cfg.Storage.Local.Badger.GCThreshold,
		"storage.local.badger.cache_size":          cfg.Storage.Local.Badger.CacheSize,
		"storage.local.badger.value_log_file_size": cfg.Storage.Local.Badger.ValueLogFileSize,
		"storage.local.badger.sync_writes":         cfg.Storage.Local.Badger.SyncWrites,
		"storage.session.enabled":                  cfg.Storage.Session.Enabled,
		"storage.session.quota_bytes":              cfg.Storage.Session.QuotaBytes,
		"storage.cookie.enabled":                   cfg.Storage.Cookie.Enabled,
		"storage.cookie.url":                       cfg.Storage.Cookie.URL,
		"storage.cookie.jar_file":                  cfg.Storage.Cookie.JarFile,
		"storage.memory.slot_dir":                  cfg.Storage.Memory.SlotDir,
		"storage.memory.encryption_key":            cfg.Storage.Memory.EncryptionKey,
		"log.level":                                cfg.Log.Level,
		"log.format":                               cfg.Log.Format,
		"metrics.enabled":                          cfg.Metrics.Enabled,
	}
}
