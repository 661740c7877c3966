// Package kvstore provides persistent native stores for the local storage
// mechanism.
//
// Two embedded engines are available: Badger (default), which keeps a
// background value-log GC loop and optional Prometheus gauges, and bbolt, a
// single-file B+tree. Both implement storage.NativeStore and are wrapped by
// webstore.New to become a storage.Mechanism.
package kvstore
