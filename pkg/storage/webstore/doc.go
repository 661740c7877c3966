// Package webstore adapts Web Storage style primitives (localStorage,
// sessionStorage or a Go stand-in) to the storage.Mechanism contract.
//
// The adapter is a thin pass-through: options are ignored and errors from
// the primitive are returned unchanged. The package also provides two
// native stores: SessionStore, a tab-scoped in-process store with a byte
// quota, and Disabled, a store that refuses every call.
package webstore
