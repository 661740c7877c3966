package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yndnr/proxystore/pkg/storage"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Storage.Local.Enabled || cfg.Storage.Local.Engine != DefaultEngine {
		t.Fatalf("Local = %+v, want enabled %s", cfg.Storage.Local, DefaultEngine)
	}
	if cfg.Storage.Session.QuotaBytes != DefaultSessionQuota {
		t.Fatalf("Session.QuotaBytes = %d, want %d", cfg.Storage.Session.QuotaBytes, DefaultSessionQuota)
	}
	if cfg.Storage.Cookie.URL != DefaultCookieURL {
		t.Fatalf("Cookie.URL = %q, want %q", cfg.Storage.Cookie.URL, DefaultCookieURL)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Fatalf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify(Default()) error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proxystore.yaml")
	content := `
storage:
  default: cookie
  data_dir: ` + dir + `
  local:
    engine: bbolt
  cookie:
    url: https://example.com/app/
log:
  level: info
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("PROXYSTORE_STORAGE__SESSION__QUOTA_BYTES", "2048")

	cfg, err := Load(path, map[string]any{"log.level": "debug"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Default != "cookie" {
		t.Fatalf("Storage.Default = %q, want cookie", cfg.Storage.Default)
	}
	if cfg.Storage.Local.Engine != "bbolt" {
		t.Fatalf("Local.Engine = %q, want bbolt", cfg.Storage.Local.Engine)
	}
	if !cfg.Storage.Local.Enabled {
		t.Fatalf("Local.Enabled = false, want default true")
	}
	if cfg.Storage.Session.QuotaBytes != 2048 {
		t.Fatalf("Session.QuotaBytes = %d, want 2048", cfg.Storage.Session.QuotaBytes)
	}
	if cfg.Storage.Cookie.JarFile != DefaultJarFile {
		t.Fatalf("Cookie.JarFile = %q, want %q", cfg.Storage.Cookie.JarFile, DefaultJarFile)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if got := cfg.Storage.ResolvePath(cfg.Storage.Cookie.JarFile); got != filepath.Join(dir, DefaultJarFile) {
		t.Fatalf("ResolvePath() = %q", got)
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Storage.Local.Engine != DefaultEngine {
		t.Fatalf("Local.Engine = %q, want %q", cfg.Storage.Local.Engine, DefaultEngine)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "unknown default", modify: func(c *Config) { c.Storage.Default = "indexedDB" }},
		{name: "empty data dir", modify: func(c *Config) { c.Storage.DataDir = "" }},
		{name: "tab id with slash", modify: func(c *Config) { c.Storage.TabID = "a/b" }},
		{name: "unknown engine", modify: func(c *Config) { c.Storage.Local.Engine = "pebble" }},
		{name: "gc threshold", modify: func(c *Config) { c.Storage.Local.Badger.GCThreshold = 1.5 }},
		{name: "relative cookie url", modify: func(c *Config) { c.Storage.Cookie.URL = "/page" }},
		{name: "short key", modify: func(c *Config) { c.Storage.Memory.EncryptionKey = "short" }},
		{name: "log level", modify: func(c *Config) { c.Log.Level = "verbose" }},
		{name: "log format", modify: func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := Verify(cfg); err == nil {
				t.Fatalf("Verify() error = nil, want error")
			}
		})
	}

	cfg := Default()
	cfg.Storage.Default = "bogus"
	if err := Verify(cfg); !errors.Is(err, storage.ErrInvalidMechanism) {
		t.Fatalf("Verify() error = %v, want ErrInvalidMechanism", err)
	}

	cfg = Default()
	cfg.Storage.Cookie.Enabled = false
	cfg.Storage.Cookie.URL = ""
	if err := Verify(cfg); err != nil {
		t.Fatalf("Verify() with cookies disabled error = %v", err)
	}
}

func TestSanitize(t *testing.T) {
	cfg := Default()
	cfg.Storage.Memory.EncryptionKey = "super-secret-key-1234567890"

	sanitized := Sanitize(cfg)

	if cfg.Storage.Memory.EncryptionKey != "super-secret-key-1234567890" {
		t.Fatalf("original config was modified")
	}
	got := sanitized.Storage.Memory.EncryptionKey
	if got == cfg.Storage.Memory.EncryptionKey || got[:2] != "su" || got[len(got)-2:] != "90" {
		t.Fatalf("masked key = %q", got)
	}
	if maskSecret("abc") != "****" {
		t.Fatalf("maskSecret(short) = %q, want ****", maskSecret("abc"))
	}
}

func TestFlatten(t *testing.T) {
	cfg := Default()
	cfg.Storage.Default = "session"
	cfg.Storage.Memory.EncryptionKey = "0123456789abcdef"

	flat := Flatten(Sanitize(cfg))

	if got := flat["storage.default"]; got != "session" {
		t.Fatalf("storage.default = %v, want session", got)
	}
	if got := flat["storage.memory.encryption_key"]; got == cfg.Storage.Memory.EncryptionKey {
		t.Fatalf("storage.memory.encryption_key not masked: %v", got)
	}
	if got := flat["storage.session.quota_bytes"]; got != DefaultSessionQuota {
		t.Fatalf("storage.session.quota_bytes = %v, want %d", got, DefaultSessionQuota)
	}
}
