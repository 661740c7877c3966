// Package proxystorage exposes one Web Storage style facade over the four
// storage mechanisms (local, session, cookie, memory).
//
// A Proxy probes every mechanism once when it is built and activates the
// first available one in the order local, session, cookie, memory. Memory
// is always available, so selection never fails.
//
// Facades are cached per kind: asking the Proxy for the same kind twice
// returns the same *WebStorage, whose shadow copy is re-synchronized with
// the backing mechanism on each request. Asking for an unavailable kind
// falls back (session to memory, anything else to the default kind) and
// logs a warning.
//
// Interceptors registered on the Proxy run around every facade operation:
//
//	p.Interceptors(proxystorage.CommandSetItem, func(key string, value any, _ ...any) any {
//		if n, ok := value.(float64); ok {
//			return n * 2
//		}
//		return nil // keep value
//	})
package proxystorage
