// Package confloader loads configuration with koanf.
//
// Sources, later ones overriding earlier ones:
//
//  1. Defaults (a flat map of dotted keys)
//  2. A YAML file
//  3. Environment variables with the PROXYSTORE_ prefix
//  4. Explicit overrides, usually command-line flags
//
// Environment variable names map to keys by lowercasing and turning a
// double underscore into a dot, so PROXYSTORE_STORAGE__DATA_DIR sets
// storage.data_dir.
//
// Watcher notifies callbacks when a watched file is written.
package confloader
