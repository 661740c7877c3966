package memory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/yndnr/proxystore/pkg/omap"
	"github.com/yndnr/proxystore/pkg/storage"
)

// Mechanism is a storage.Mechanism backed by an ordered map and a Slot.
type Mechanism struct {
	slot  Slot
	items *omap.Map[string, string]

	// mu serializes mutations so that the slot always sees the latest map.
	mu sync.Mutex
}

// New creates a memory mechanism and restores its content from slot. An
// empty or invalid slot yields an empty mechanism.
func New(slot Slot) *Mechanism {
	m := &Mechanism{
		slot:  slot,
		items: omap.New[string, string](),
	}

	blob, err := slot.Load()
	if err != nil {
		return m
	}
	if keys, values, ok := decodeObject(blob); ok {
		m.items.Replace(keys, values)
	}
	return m
}

// SetItem stores value under key.
func (m *Mechanism) SetItem(key, value string, _ *storage.Options) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items.Set(key, value)
	return m.flushLocked()
}

// GetItem returns the value stored under key.
func (m *Mechanism) GetItem(key string) (string, bool, error) {
	v, ok := m.items.Get(key)
	return v, ok, nil
}

// RemoveItem deletes key.
func (m *Mechanism) RemoveItem(key string, _ *storage.Options) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items.Delete(key)
	return m.flushLocked()
}

// Clear deletes every key.
func (m *Mechanism) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items.Clear()
	return m.flushLocked()
}

// Keys returns the stored keys in insertion order.
func (m *Mechanism) Keys() ([]string, error) {
	return m.items.Keys(), nil
}

func (m *Mechanism) flushLocked() error {
	blob, err := encodeObject(m.items)
	if err != nil {
		return err
	}
	if err := m.slot.Store(blob); err != nil {
		return fmt.Errorf("memory: store slot: %w", err)
	}
	return nil
}

// encodeObject writes the map as a JSON object, keeping insertion order.
func encodeObject(items *omap.Map[string, string]) (string, error) {
	var (
		b   strings.Builder
		err error
	)
	b.WriteByte('{')
	first := true
	items.Range(func(key, value string) bool {
		var k, v []byte
		if k, err = json.Marshal(key); err != nil {
			return false
		}
		if v, err = json.Marshal(value); err != nil {
			return false
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
		return true
	})
	if err != nil {
		return "", storage.ErrSerialize.WithCause(err)
	}
	b.WriteByte('}')
	return b.String(), nil
}

// decodeObject reads a JSON object of strings in document order. Values that
// are not strings are kept in their JSON form.
func decodeObject(blob string) (keys, values []string, ok bool) {
	if strings.TrimSpace(blob) == "" {
		return nil, nil, false
	}

	dec := json.NewDecoder(strings.NewReader(blob))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, nil, false
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, false
		}
		key, isKey := tok.(string)
		if !isKey {
			return nil, nil, false
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, false
		}

		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			value = string(bytes.TrimSpace(raw))
		}

		keys = append(keys, key)
		values = append(values, value)
	}

	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, nil, false
	}
	return keys, values, true
}
