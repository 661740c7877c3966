package omap

// Range iterates over all key-value pairs in insertion order.
//
// The callback returns false to stop iteration. The read lock is held for
// the whole iteration, so fn must not modify the map.
func (m *Map[K, V]) Range(fn func(key K, value V) bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for el := m.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[K, V])
		if !fn(e.key, e.value) {
			return
		}
	}
}

// Keys returns all keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Range(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns all values in insertion order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Len())
	m.Range(func(_ K, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

// ToMap copies the content into a plain map.
func (m *Map[K, V]) ToMap() map[K]V {
	out := make(map[K]V, m.Len())
	m.Range(func(key K, value V) bool {
		out[key] = value
		return true
	})
	return out
}
