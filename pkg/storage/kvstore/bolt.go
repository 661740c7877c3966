package kvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const itemBucket = "items"

// BoltStore is a Store backed by a single bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens a bbolt store at path.
func OpenBolt(path string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("bbolt: path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("bbolt: create dir: %w", err)
	}

	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt: open db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(itemBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bbolt: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// SetItem stores value under key.
func (s *BoltStore) SetItem(key, value string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(itemBucket)).Put([]byte(key), []byte(value))
	})
}

// GetItem returns the value stored under key.
func (s *BoltStore) GetItem(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(itemBucket)).Get([]byte(key))
		if v != nil {
			value, found = string(v), true
		}
		return nil
	})
	return value, found, err
}

// RemoveItem deletes key.
func (s *BoltStore) RemoveItem(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(itemBucket)).Delete([]byte(key))
	})
}

// Clear deletes every item.
func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(itemBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(itemBucket))
		return err
	})
}

// Keys returns the stored keys in byte order.
func (s *BoltStore) Keys() ([]string, error) {
	keys := make([]string, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(itemBucket)).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Stats returns engine statistics.
func (s *BoltStore) Stats() Stats {
	st := Stats{Engine: EngineBolt}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		st.Keys = tx.Bucket([]byte(itemBucket)).Stats().KeyN
		st.TotalSize = tx.Size()
		return nil
	})
	return st
}

// Close closes the database.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
