package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/yndnr/proxystore/pkg/storage"
)

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.Default != "" {
		if _, err := storage.ParseKind(cfg.Default); err != nil {
			return fmt.Errorf("storage.default: %w", err)
		}
	}

	if cfg.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}

	if cfg.TabID != "" && strings.ContainsAny(cfg.TabID, `/\`) {
		return fmt.Errorf("storage.tab_id %q must not contain path separators", cfg.TabID)
	}

	switch strings.ToLower(cfg.Local.Engine) {
	case "", "badger", "bbolt":
	default:
		return fmt.Errorf("storage.local.engine %q is not supported (badger, bbolt)", cfg.Local.Engine)
	}

	if t := cfg.Local.Badger.GCThreshold; t < 0 || t >= 1 {
		return fmt.Errorf("storage.local.badger.gc_threshold must be in [0, 1), got %v", t)
	}

	if cfg.Cookie.Enabled {
		u, err := url.Parse(cfg.Cookie.URL)
		if err != nil || u.Hostname() == "" {
			return fmt.Errorf("storage.cookie.url %q must be an absolute URL", cfg.Cookie.URL)
		}
	}

	if k := cfg.Memory.EncryptionKey; k != "" && len(k) < 16 {
		return errors.New("storage.memory.encryption_key must be at least 16 bytes")
	}

	return nil
}

func verifyLog(cfg *LogSection) error {
	if !validLevels[strings.ToLower(cfg.Level)] {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}
