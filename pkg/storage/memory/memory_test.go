package memory

import (
	"bytes"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMechanism_RoundTrip(t *testing.T) {
	slot := NewVarSlot("")
	m := New(slot)

	if err := m.SetItem("b", "2", nil); err != nil {
		t.Fatalf("SetItem(b) error = %v", err)
	}
	if err := m.SetItem("a", `{"x":1}`, nil); err != nil {
		t.Fatalf("SetItem(a) error = %v", err)
	}

	v, ok, err := m.GetItem("a")
	if err != nil || !ok || v != `{"x":1}` {
		t.Fatalf("GetItem(a) = %q, %v, %v", v, ok, err)
	}
	if _, ok, _ := m.GetItem("missing"); ok {
		t.Fatalf("GetItem(missing) ok = true, want false")
	}

	blob, _ := slot.Load()
	if want := `{"b":"2","a":"{\"x\":1}"}`; blob != want {
		t.Fatalf("slot = %s, want %s", blob, want)
	}

	if err := m.RemoveItem("b", nil); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	keys, _ := m.Keys()
	if diff := cmp.Diff([]string{"a"}, keys); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if blob, _ := slot.Load(); blob != "{}" {
		t.Fatalf("slot after Clear = %s, want {}", blob)
	}
}

func TestNew_RestoresFromSlot(t *testing.T) {
	tests := []struct {
		name string
		blob string
		keys []string
	}{
		{name: "empty", blob: "", keys: []string{}},
		{name: "invalid", blob: "not json", keys: []string{}},
		{name: "array", blob: "[1,2]", keys: []string{}},
		{name: "ordered", blob: `{"z":"1","a":"2"}`, keys: []string{"z", "a"}},
		{name: "non string value", blob: `{"n":5}`, keys: []string{"n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(NewVarSlot(tt.blob))
			keys, _ := m.Keys()
			if diff := cmp.Diff(tt.keys, keys); diff != "" {
				t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	m := New(NewVarSlot(`{"n":5}`))
	if v, _, _ := m.GetItem("n"); v != "5" {
		t.Fatalf("GetItem(n) = %q, want 5", v)
	}
}

func TestFileSlot_Persists(t *testing.T) {
	dir := t.TempDir()

	slot, err := NewFileSlot(dir, "tab-1")
	if err != nil {
		t.Fatalf("NewFileSlot() error = %v", err)
	}
	m := New(slot)
	if err := m.SetItem("k", "v", nil); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}

	reopened, _ := NewFileSlot(dir, "tab-1")
	if v, ok, _ := New(reopened).GetItem("k"); !ok || v != "v" {
		t.Fatalf("GetItem() after reopen = %q, %v", v, ok)
	}

	other, _ := NewFileSlot(dir, "tab-2")
	if keys, _ := New(other).Keys(); len(keys) != 0 {
		t.Fatalf("other tab Keys() = %v, want empty", keys)
	}
}

func TestFileSlot_InvalidTabID(t *testing.T) {
	for _, id := range []string{"", "..", "a/b", `a\b`} {
		if _, err := NewFileSlot(t.TempDir(), id); err == nil {
			t.Fatalf("NewFileSlot(%q) error = nil, want error", id)
		}
	}
}

func TestFileSlot_Sealed(t *testing.T) {
	dir := t.TempDir()
	sealer, err := NewSealer([]byte("0123456789abcdef0123"))
	if err != nil {
		t.Fatalf("NewSealer() error = %v", err)
	}

	slot, _ := NewFileSlot(dir, "tab", WithSealer(sealer))
	if err := slot.Store(`{"secret":"value"}`); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	raw, err := os.ReadFile(slot.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if bytes.Contains(raw, []byte("secret")) {
		t.Fatalf("slot file contains plaintext")
	}

	got, err := slot.Load()
	if err != nil || got != `{"secret":"value"}` {
		t.Fatalf("Load() = %q, %v", got, err)
	}

	wrong, _ := NewSealer([]byte("another-secret-of-length"))
	bad, _ := NewFileSlot(dir, "tab", WithSealer(wrong))
	if _, err := bad.Load(); err == nil {
		t.Fatalf("Load() with wrong key error = nil, want error")
	}
	// A slot that cannot be opened starts empty.
	if keys, _ := New(bad).Keys(); len(keys) != 0 {
		t.Fatalf("Keys() = %v, want empty", keys)
	}
}

func TestNewSealer_ShortSecret(t *testing.T) {
	if _, err := NewSealer([]byte("short")); err != ErrSecretTooShort {
		t.Fatalf("NewSealer() error = %v, want ErrSecretTooShort", err)
	}
}

func TestSealer_Open(t *testing.T) {
	s, _ := NewSealer([]byte("0123456789abcdef"))
	if _, err := s.Open([]byte{1, 2}, nil); err != ErrSealedTooShort {
		t.Fatalf("Open() error = %v, want ErrSealedTooShort", err)
	}

	sealed, _ := s.Seal([]byte("x"), []byte("a"))
	if _, err := s.Open(sealed, []byte("b")); err == nil {
		t.Fatalf("Open() with other additional data error = nil, want error")
	}
}
