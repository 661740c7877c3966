// Package logger provides structured logging for proxystore.
//
// It wraps log/slog:
//
//   - logger.go: handler construction, dynamic level, package-level logger
//   - context.go: logger and tab id propagation through context.Context
//   - redact.go: masking of sensitive attributes
//
// Library packages take a plain *slog.Logger; Logger.Slog bridges the two.
package logger
