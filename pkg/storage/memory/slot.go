package memory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Slot is a tab-scoped string that survives the mechanism holding it, like
// window.name in a browser tab.
type Slot interface {
	Load() (string, error)
	Store(blob string) error
}

// VarSlot is a Slot held in process memory.
type VarSlot struct {
	mu   sync.RWMutex
	blob string
}

// NewVarSlot creates a slot holding blob.
func NewVarSlot(blob string) *VarSlot {
	return &VarSlot{blob: blob}
}

// Load returns the current content.
func (s *VarSlot) Load() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.blob, nil
}

// Store replaces the content.
func (s *VarSlot) Store(blob string) error {
	s.mu.Lock()
	s.blob = blob
	s.mu.Unlock()
	return nil
}

// FileSlot is a Slot persisted as one file per tab under a directory.
// With a Sealer the file content is encrypted.
type FileSlot struct {
	path   string
	sealer *Sealer

	mu sync.Mutex
}

// FileSlotOption configures a FileSlot.
type FileSlotOption func(*FileSlot)

// WithSealer encrypts the slot content with s.
func WithSealer(s *Sealer) FileSlotOption {
	return func(f *FileSlot) {
		f.sealer = s
	}
}

// NewFileSlot creates the slot of tabID under dir.
func NewFileSlot(dir, tabID string, opts ...FileSlotOption) (*FileSlot, error) {
	tabID = strings.TrimSpace(tabID)
	if tabID == "" || strings.ContainsAny(tabID, `/\`) || tabID == "." || tabID == ".." {
		return nil, fmt.Errorf("memory: invalid tab id %q", tabID)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("memory: create slot dir: %w", err)
	}

	f := &FileSlot{path: filepath.Join(dir, tabID+".slot")}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Path returns the file backing the slot.
func (f *FileSlot) Path() string {
	return f.path
}

// Load reads the slot. A missing file is an empty slot.
func (f *FileSlot) Load() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("memory: read slot: %w", err)
	}

	if f.sealer != nil {
		data, err = f.sealer.Open(data, f.ad())
		if err != nil {
			return "", err
		}
	}
	return string(data), nil
}

// Store writes the slot atomically.
func (f *FileSlot) Store(blob string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := []byte(blob)
	if f.sealer != nil {
		var err error
		data, err = f.sealer.Seal(data, f.ad())
		if err != nil {
			return err
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("memory: write slot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("memory: replace slot: %w", err)
	}
	return nil
}

// ad binds sealed content to its file name so slots cannot be swapped.
func (f *FileSlot) ad() []byte {
	return []byte(filepath.Base(f.path))
}
