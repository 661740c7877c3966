// Package shutdown runs cleanup hooks when a proxystore process exits.
//
// Hooks run once, in reverse order of registration, so resources opened
// later are released before the ones they depend on:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown("local", store.Close)
//	defer h.Run()
//
// Wait blocks until SIGINT, SIGTERM or context cancellation and then runs
// the hooks.
package shutdown
