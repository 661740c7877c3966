package keycodec

import "github.com/yndnr/proxystore/pkg/storage"

// CheckEmpty returns storage.ErrEmptyKey when key is empty.
func CheckEmpty(key string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}
	return nil
}
