package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_NotifiesWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "proxystore.yaml")
	otherFile := filepath.Join(dir, "other.yaml")

	if err := os.WriteFile(configFile, []byte("log:\n  level: info\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if err := w.Watch(configFile); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	changed := make(chan string, 16)
	w.OnChange(func(path string) { changed <- path })
	w.StartAsync()

	if err := os.WriteFile(otherFile, []byte("x: 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile(other) error = %v", err)
	}
	if err := os.WriteFile(configFile, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatalf("WriteFile(config) error = %v", err)
	}

	select {
	case path := <-changed:
		if filepath.Base(path) != "proxystore.yaml" {
			t.Fatalf("OnChange path = %q, want proxystore.yaml", path)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no change notification within 5s")
	}
}

func TestWatcher_Watch_NonexistentDir(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	if err := w.Watch("/nonexistent/path/config.yaml"); err == nil {
		t.Fatalf("Watch() error = nil, want error for nonexistent directory")
	}
}

func TestWatcher_StopTwice(t *testing.T) {
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.StartAsync()

	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
}
