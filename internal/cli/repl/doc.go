// Package repl provides the interactive shell of proxystore-cli.
//
//   - repl.go: read loop, line splitting and dispatch to an Executor
//   - completer.go: prefix completion over the known commands
//   - history.go: command history, optionally persisted to a file
//
// The shell keeps no storage state itself; the Executor owns the open tab
// so every line shares one Proxy.
package repl
