// Package config defines the proxystore configuration.
//
//   - spec.go: Config struct definition
//   - default.go: default values
//   - load.go: loading through internal/infra/confloader
//   - verify.go: validation
//   - sanitize.go: masking of secrets for display
package config
