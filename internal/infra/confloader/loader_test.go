package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Storage struct {
		Default string `koanf:"default"`
		DataDir string `koanf:"data_dir"`
		Session struct {
			QuotaBytes int  `koanf:"quota_bytes"`
			Enabled    bool `koanf:"enabled"`
		} `koanf:"session"`
	} `koanf:"storage"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proxystore.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestNewLoader_WithOptions(t *testing.T) {
	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile("/path/to/config.yaml"),
	)

	if l.envPrefix != "TEST_" {
		t.Fatalf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/path/to/config.yaml" {
		t.Fatalf("filePath = %q, want %q", l.filePath, "/path/to/config.yaml")
	}
	if NewLoader().envPrefix != DefaultEnvPrefix {
		t.Fatalf("default envPrefix = %q, want %q", NewLoader().envPrefix, DefaultEnvPrefix)
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeFile(t, `
storage:
  default: cookie
  data_dir: /from/file
  session:
    quota_bytes: 100
log:
  level: warn
`)

	t.Setenv("PSTEST_STORAGE__DATA_DIR", "/from/env")
	t.Setenv("PSTEST_STORAGE__SESSION__ENABLED", "true")

	l := NewLoader(
		WithEnvPrefix("PSTEST_"),
		WithConfigFile(path),
		WithDefaults(map[string]any{
			"storage.default":             "local",
			"storage.session.quota_bytes": 5,
			"log.level":                   "info",
		}),
		WithOverrides(map[string]any{
			"log.level": "debug",
		}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage.Default != "cookie" {
		t.Fatalf("Storage.Default = %q, want cookie (file over default)", cfg.Storage.Default)
	}
	if cfg.Storage.DataDir != "/from/env" {
		t.Fatalf("Storage.DataDir = %q, want /from/env (env over file)", cfg.Storage.DataDir)
	}
	if cfg.Storage.Session.QuotaBytes != 100 {
		t.Fatalf("Session.QuotaBytes = %d, want 100", cfg.Storage.Session.QuotaBytes)
	}
	if !cfg.Storage.Session.Enabled {
		t.Fatalf("Session.Enabled = false, want true from env")
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug (override)", cfg.Log.Level)
	}

	all := l.All()
	if all["storage.data_dir"] != "/from/env" {
		t.Fatalf("All()[storage.data_dir] = %v, want /from/env", all["storage.data_dir"])
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	l := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")))

	var cfg testConfig
	if err := l.Load(&cfg); err == nil {
		t.Fatalf("Load() error = nil, want error for missing file")
	}
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	path := writeFile(t, "storage: [unclosed")

	var cfg testConfig
	if err := NewLoader(WithConfigFile(path)).Load(&cfg); err == nil {
		t.Fatalf("Load() error = nil, want parse error")
	}
}

func TestMapProvider(t *testing.T) {
	p := mapProvider{"a.b": 1, "c": "x"}

	if _, err := p.ReadBytes(); err != ErrReadBytesNotSupported {
		t.Fatalf("ReadBytes() error = %v, want ErrReadBytesNotSupported", err)
	}

	got, err := p.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	nested, ok := got["a"].(map[string]any)
	if !ok || nested["b"] != 1 {
		t.Fatalf("Read()[a] = %v, want map with b=1", got["a"])
	}
}
