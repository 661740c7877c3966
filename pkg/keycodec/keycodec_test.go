package keycodec

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/proxystore/pkg/storage"
)

func TestCheckEmpty(t *testing.T) {
	if err := CheckEmpty(""); !errors.Is(err, storage.ErrEmptyKey) {
		t.Fatalf("CheckEmpty(\"\") err = %v, want %v", err, storage.ErrEmptyKey)
	}
	if err := CheckEmpty("k"); err != nil {
		t.Fatalf("CheckEmpty(\"k\") err = %v, want nil", err)
	}
}

func TestTryParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantParsed bool
		want       any
	}{
		{"number", "42", true, float64(42)},
		{"object", `{"a":[1,true,null]}`, true, map[string]any{"a": []any{float64(1), true, nil}}},
		{"quoted string", `"hi"`, true, "hi"},
		{"plain string", "hello world", false, "hello world"},
		{"empty", "", false, ""},
		{"boolean", "false", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := TryParse(tt.raw)
			if _, ok := r.Parsed(); ok != tt.wantParsed {
				t.Fatalf("Parsed() ok = %v, want %v", ok, tt.wantParsed)
			}
			if diff := cmp.Diff(tt.want, r.Value()); diff != "" {
				t.Errorf("Value() mismatch (-want +got):\n%s", diff)
			}
			if r.Raw() != tt.raw {
				t.Errorf("Raw() = %q, want %q", r.Raw(), tt.raw)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{5, "5"},
		{true, "true"},
		{nil, "null"},
		{map[string]any{"b": "<x>"}, `{"b":"<x>"}`},
		{[]int{1, 2}, "[1,2]"},
	}
	for _, tt := range tests {
		got, err := Serialize(tt.in)
		if err != nil {
			t.Fatalf("Serialize(%v) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Serialize(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	_, err := Serialize(make(chan int))
	if !errors.Is(err, storage.ErrSerialize) {
		t.Errorf("Serialize(chan) err = %v, want %v", err, storage.ErrSerialize)
	}
}

func TestClone(t *testing.T) {
	orig := map[string]any{"list": []any{"a"}}
	cloned := Clone(orig).(map[string]any)
	cloned["list"] = "changed"
	if _, ok := orig["list"].([]any); !ok {
		t.Fatal("Clone() result shares state with the original")
	}

	big := Clone(map[string]any{"n": int64(9007199254740993)})
	raw, err := Serialize(big)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if raw != `{"n":9007199254740993}` {
		t.Errorf("Serialize(Clone(big)) = %s, want {\"n\":9007199254740993}", raw)
	}

	if got := Clone(7); got != 7 {
		t.Errorf("Clone(7) = %v, want 7", got)
	}
	if got := Clone(nil); got != nil {
		t.Errorf("Clone(nil) = %v, want nil", got)
	}
}

func TestAlterDate(t *testing.T) {
	base := time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		e    storage.Expiration
		want time.Time
	}{
		{"minutes", storage.Expiration{Date: base, Minutes: 90}, base.Add(90 * time.Minute)},
		{"negative day", storage.Expiration{Date: base, Days: -1}, base.AddDate(0, 0, -1)},
		{"month overflow", storage.Expiration{Date: base, Months: 1}, time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC)},
		{"years", storage.Expiration{Date: base, Years: 2}, base.AddDate(2, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlterDate(tt.e, time.Now()); !got.Equal(tt.want) {
				t.Errorf("AlterDate() = %v, want %v", got, tt.want)
			}
		})
	}

	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	if got := AlterDate(storage.Expiration{Hours: 1}, now); !got.Equal(now.Add(time.Hour)) {
		t.Errorf("AlterDate(zero date) = %v, want %v", got, now.Add(time.Hour))
	}
}

func TestExpirationString(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 30, 0, 0, time.UTC)
	got := ExpirationString(storage.Expiration{Days: 1}, now)
	if want := "Tue, 20 Oct 2026 12:30:00 GMT"; got != want {
		t.Fatalf("ExpirationString() = %q, want %q", got, want)
	}

	parsed, err := ParseHTTPDate(got)
	if err != nil {
		t.Fatalf("ParseHTTPDate() error = %v", err)
	}
	if !parsed.Equal(now.AddDate(0, 0, 1)) {
		t.Errorf("ParseHTTPDate() = %v, want %v", parsed, now.AddDate(0, 0, 1))
	}
}

func TestURIComponent(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc", "abc"},
		{"a b", "a%20b"},
		{"a;b=c", "a%3Bb%3Dc"},
		{"-_.!~*'()", "-_.!~*'()"},
		{"ñ", "%C3%B1"},
		{`{"x":1}`, "%7B%22x%22%3A1%7D"},
	}
	for _, tt := range tests {
		got := EncodeURIComponent(tt.in)
		if got != tt.want {
			t.Errorf("EncodeURIComponent(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if back := DecodeURIComponent(got); back != tt.in {
			t.Errorf("DecodeURIComponent(%q) = %q, want %q", got, back, tt.in)
		}
	}

	if got := DecodeURIComponent("100%"); got != "100%" {
		t.Errorf("DecodeURIComponent(malformed) = %q, want %q", got, "100%")
	}
	if got := DecodeURIComponent("a+b"); got != "a+b" {
		t.Errorf("DecodeURIComponent(plus) = %q, want %q", got, "a+b")
	}
}
