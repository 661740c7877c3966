package kvstore

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/yndnr/proxystore/pkg/storage"
)

// Engine names accepted by Open.
const (
	EngineBadger = "badger"
	EngineBolt   = "bbolt"
)

// itemPrefix namespaces stored items inside the engine keyspace.
var itemPrefix = []byte("item/")

// Store is a persistent storage.NativeStore.
type Store interface {
	storage.NativeStore

	// Stats returns engine statistics.
	Stats() Stats

	// Close releases the engine.
	Close() error
}

// Stats contains engine statistics.
type Stats struct {
	Engine string

	// Keys is the number of stored items.
	Keys int

	// TotalSize is the disk usage in bytes.
	TotalSize int64

	// LSMSize and ValueLogSize are only reported by Badger.
	LSMSize      int64
	ValueLogSize int64

	// LastGCTime is the last value-log GC run (Unix milliseconds).
	LastGCTime int64
}

// Config configures the local store.
type Config struct {
	// Engine is "badger" or "bbolt".
	// Default: "badger"
	Engine string

	// Dir is the storage directory.
	Dir string

	Badger BadgerConfig
}

// BadgerConfig contains Badger tuning parameters.
type BadgerConfig struct {
	// GCInterval is the interval between automatic value-log GC runs.
	// Default: 10m
	GCInterval string

	// GCThreshold is the discard ratio that triggers a rewrite (0.0-1.0).
	// Default: 0.5
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 16MB
	CacheSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 64MB
	ValueLogFileSize int64

	// SyncWrites enables fsync after each write.
	// Default: true
	SyncWrites bool

	// InMemory keeps everything in memory. Dir is ignored.
	InMemory bool
}

// DefaultConfig returns the default configuration rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Engine: EngineBadger,
		Dir:    dir,
		Badger: DefaultBadgerConfig(),
	}
}

// DefaultBadgerConfig returns the default Badger configuration.
func DefaultBadgerConfig() BadgerConfig {
	return BadgerConfig{
		GCInterval:       "10m",
		GCThreshold:      0.5,
		CacheSize:        16 << 20,
		ValueLogFileSize: 64 << 20,
		SyncWrites:       true,
	}
}

// Open opens the engine selected by cfg.Engine.
func Open(cfg Config, logger *slog.Logger) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Engine)) {
	case "", EngineBadger:
		s, err := OpenBadger(cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case EngineBolt:
		s, err := OpenBolt(filepath.Join(cfg.Dir, "local.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("kvstore: unknown engine %q", cfg.Engine)
	}
}

func itemKey(key string) []byte {
	k := make([]byte, 0, len(itemPrefix)+len(key))
	k = append(k, itemPrefix...)
	return append(k, key...)
}
