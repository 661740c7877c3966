package config

import "strings"

// Sanitize returns a copy of the config with sensitive fields masked.
func Sanitize(cfg *Config) *Config {
	sanitized := *cfg

	if sanitized.Storage.Memory.EncryptionKey != "" {
		sanitized.Storage.Memory.EncryptionKey = maskSecret(sanitized.Storage.Memory.EncryptionKey)
	}

	return &sanitized
}

// maskSecret masks a secret value for safe display.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
