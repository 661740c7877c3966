package omap

import (
	"container/list"
	"sync"
)

// Map is a concurrent-safe insertion-ordered map.
type Map[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*list.Element
	order *list.List
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an empty map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		items: make(map[K]*list.Element),
		order: list.New(),
	}
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if el, ok := m.items[key]; ok {
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Set stores a key-value pair. A new key is appended at the end; an
// existing key keeps its position.
func (m *Map[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set(key, value)
}

func (m *Map[K, V]) set(key K, value V) {
	if el, ok := m.items[key]; ok {
		el.Value.(*entry[K, V]).value = value
		return
	}
	m.items[key] = m.order.PushBack(&entry[K, V]{key: key, value: value})
}

// Delete removes a key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	el, ok := m.items[key]
	if !ok {
		return false
	}
	m.order.Remove(el)
	delete(m.items, key)
	return true
}

// Has checks if a key exists.
func (m *Map[K, V]) Has(key K) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Len returns the number of items.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Clear removes all items.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[K]*list.Element)
	m.order.Init()
}

// Replace atomically swaps the whole content for the given pairs, in order.
func (m *Map[K, V]) Replace(keys []K, values []V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[K]*list.Element, len(keys))
	m.order.Init()
	for i, k := range keys {
		m.set(k, values[i])
	}
}
