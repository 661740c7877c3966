// Package omap provides a concurrent-safe map that remembers insertion order.
//
// It backs the facade's shadow copy, the in-process session store and the
// memory mechanism, where enumeration must follow the order in which keys
// were first written, like the Web Storage key order.
//
// Usage:
//
//	m := omap.New[string, any]()
//	m.Set("key", value)
//	val, ok := m.Get("key")
//
// Overwriting an existing key keeps its position. All operations are
// thread-safe: reads take a read lock, writes take the write lock.
package omap
