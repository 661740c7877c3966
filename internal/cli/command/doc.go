// Package command defines the proxystore-cli commands on urfave/cli/v2.
//
//   - root.go: application, global flags, configuration and logger setup
//   - state.go: per-invocation state shared by the commands
//   - storage.go: set, get, remove, clear, keys, length
//   - system.go: probe, config show, metrics, version
//   - shell.go: the repl command and its line executor
//
// Every invocation behaves like a page load: the configured mechanisms are
// opened for one tab, probed, and released when the command returns. The
// repl keeps a single tab open for the whole session.
package command
