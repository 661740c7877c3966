// Package storage defines the contracts shared by every storage mechanism.
//
// A Mechanism is one concrete backing store (persistent local storage,
// per-tab session storage, document cookies or the in-memory fallback)
// exposing the same four operations as the Web Storage interface, plus key
// enumeration so that callers can mirror its contents.
//
// The package also holds the fixed mechanism Registry, the availability
// Probe used to pick a working mechanism at startup, and the coded errors
// returned across the module.
package storage
