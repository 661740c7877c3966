package config

// Config is the root configuration of proxystore.
type Config struct {
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
	Metrics MetricsSection `koanf:"metrics"`
}

// StorageSection configures the storage mechanisms.
type StorageSection struct {
	// Default is the preferred storage kind. Empty selects the first
	// available one.
	Default string `koanf:"default"`

	// DataDir is the root directory of the persistent stores.
	DataDir string `koanf:"data_dir"`

	// TabID scopes session storage and the memory slot. Empty generates a
	// new tab per run.
	TabID string `koanf:"tab_id"`

	Local   LocalConfig   `koanf:"local"`
	Session SessionConfig `koanf:"session"`
	Cookie  CookieConfig  `koanf:"cookie"`
	Memory  MemoryConfig  `koanf:"memory"`
}

// LocalConfig configures the persistent local store.
type LocalConfig struct {
	Enabled bool         `koanf:"enabled"`
	Engine  string       `koanf:"engine"`
	Badger  BadgerConfig `koanf:"badger"`
}

// BadgerConfig tunes the badger engine.
type BadgerConfig struct {
	GCInterval       string  `koanf:"gc_interval"`
	GCThreshold      float64 `koanf:"gc_threshold"`
	CacheSize        int64   `koanf:"cache_size"`
	ValueLogFileSize int64   `koanf:"value_log_file_size"`
	SyncWrites       bool    `koanf:"sync_writes"`
}

// SessionConfig configures the tab-scoped session store.
type SessionConfig struct {
	Enabled    bool `koanf:"enabled"`
	QuotaBytes int  `koanf:"quota_bytes"`
}

// CookieConfig configures the cookie jar.
type CookieConfig struct {
	Enabled bool `koanf:"enabled"`

	// URL is the location of the document the cookies belong to.
	URL string `koanf:"url"`

	// JarFile persists cookies between runs. Relative paths are resolved
	// against DataDir; empty keeps cookies in memory only.
	JarFile string `koanf:"jar_file"`
}

// MemoryConfig configures the memory slot.
type MemoryConfig struct {
	// SlotDir holds one slot file per tab. Relative paths are resolved
	// against DataDir; empty keeps the slot in memory only.
	SlotDir string `koanf:"slot_dir"`

	// EncryptionKey seals slot files when set.
	EncryptionKey string `koanf:"encryption_key"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsSection configures metrics collection.
type MetricsSection struct {
	Enabled bool `koanf:"enabled"`
}
