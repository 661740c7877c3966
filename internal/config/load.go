package config

import (
	"path/filepath"

	"github.com/yndnr/proxystore/internal/infra/confloader"
)

// Load reads the configuration from defaults, the YAML file at path (when
// not empty), PROXYSTORE_ environment variables and overrides, in that
// order, and verifies it.
func Load(path string, overrides map[string]any) (*Config, error) {
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithDefaults(defaultMap()),
		confloader.WithOverrides(overrides),
	)

	cfg := &Config{}
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolvePath resolves p against the data directory. Empty stays empty.
func (s *StorageSection) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(s.DataDir, p)
}
