package bootstrap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yndnr/proxystore/pkg/storage/webstore"
)

// sessionItem is one entry of a persisted session file. Entries are stored
// as a list to keep insertion order.
type sessionItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func sessionPath(dataDir, tabID string) string {
	return filepath.Join(dataDir, "sessions", tabID+".json")
}

// restoreSession refills s from path. A missing file leaves s empty.
func restoreSession(s *webstore.SessionStore, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var items []sessionItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decode session %s: %w", path, err)
	}
	for _, it := range items {
		if err := s.SetItem(it.Key, it.Value); err != nil {
			return fmt.Errorf("restore session key %q: %w", it.Key, err)
		}
	}
	return nil
}

// persistSession writes the items of s to path. An empty store removes the
// file.
func persistSession(s *webstore.SessionStore, path string) error {
	keys, _ := s.Keys()
	if len(keys) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session: %w", err)
		}
		return nil
	}

	items := make([]sessionItem, 0, len(keys))
	for _, k := range keys {
		v, ok, _ := s.GetItem(k)
		if ok {
			items = append(items, sessionItem{Key: k, Value: v})
		}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
