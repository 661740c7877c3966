package cookie

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/yndnr/proxystore/pkg/storage"
)

var fixedNow = time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newJar(t *testing.T, rawURL string, opts ...JarOption) *Jar {
	t.Helper()
	opts = append([]JarOption{WithJarClock(clock)}, opts...)
	j, err := NewJar(rawURL, opts...)
	if err != nil {
		t.Fatalf("NewJar(%q) error = %v", rawURL, err)
	}
	return j
}

// recordingDoc captures every serialized cookie passed to SetCookie.
type recordingDoc struct {
	*Jar
	writes []string
}

func (d *recordingDoc) SetCookie(cookie string) error {
	d.writes = append(d.writes, cookie)
	return d.Jar.SetCookie(cookie)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		meta storage.CookieMetadata
		want string
	}{
		{
			name: "path only",
			key:  "a",
			val:  "1",
			meta: storage.CookieMetadata{Path: "/"},
			want: "a=1; path=/",
		},
		{
			name: "all attributes",
			key:  "sid",
			val:  "x y",
			meta: storage.CookieMetadata{
				Path:    "/app",
				Domain:  "example.com",
				Expires: "Tue, 20 Oct 2026 12:30:00 GMT",
				Secure:  true,
			},
			want: "sid=x%20y; expires=Tue, 20 Oct 2026 12:30:00 GMT; domain=example.com; path=/app; secure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.key, tt.val, tt.meta); got != tt.want {
				t.Fatalf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMechanism_SetGetRemove(t *testing.T) {
	doc := &recordingDoc{Jar: newJar(t, "https://example.com/app/page")}
	m := New(doc, WithClock(clock))

	err := m.SetItem("lang", "en us", &storage.Options{Path: "/app", Expires: &storage.Expiration{Days: 1}})
	if err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}

	want := "lang=en%20us; expires=Tue, 20 Oct 2026 12:30:00 GMT; path=/app"
	if got := doc.writes[0]; got != want {
		t.Fatalf("write = %q, want %q", got, want)
	}

	v, ok, err := m.GetItem("lang")
	if err != nil || !ok || v != "en us" {
		t.Fatalf("GetItem() = %q, %v, %v, want %q, true, nil", v, ok, err, "en us")
	}

	meta, ok := m.Metadata("lang")
	if !ok || meta.Path != "/app" {
		t.Fatalf("Metadata() = %+v, %v, want path /app", meta, ok)
	}

	if err := m.RemoveItem("lang", nil); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	last := doc.writes[len(doc.writes)-1]
	wantRemove := "lang=; expires=Sun, 18 Oct 2026 12:30:00 GMT; path=/app"
	if last != wantRemove {
		t.Fatalf("remove write = %q, want %q", last, wantRemove)
	}
	if got := doc.Cookie(); got != "" {
		t.Fatalf("Cookie() after remove = %q, want empty", got)
	}
	if _, ok := m.Metadata("lang"); ok {
		t.Fatalf("Metadata() still present after remove")
	}
}

func TestMechanism_RemoveOptionsOverride(t *testing.T) {
	doc := &recordingDoc{Jar: newJar(t, "https://example.com/")}
	m := New(doc, WithClock(clock))

	if err := m.SetItem("k", "v", nil); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}
	if err := m.RemoveItem("k", &storage.Options{Domain: "example.com"}); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}

	last := doc.writes[len(doc.writes)-1]
	want := "k=; expires=Sun, 18 Oct 2026 12:30:00 GMT; domain=example.com; path=/"
	if last != want {
		t.Fatalf("remove write = %q, want %q", last, want)
	}
}

func TestMechanism_ClearUsesOwnPaths(t *testing.T) {
	doc := newJar(t, "https://example.com/app/page")
	m := New(doc, WithClock(clock))

	if err := m.SetItem("root", "1", nil); err != nil {
		t.Fatalf("SetItem(root) error = %v", err)
	}
	if err := m.SetItem("scoped", "2", &storage.Options{Path: "/app"}); err != nil {
		t.Fatalf("SetItem(scoped) error = %v", err)
	}

	keys, _ := m.Keys()
	if diff := cmp.Diff([]string{"scoped", "root"}, keys); diff != "" {
		t.Fatalf("Keys() mismatch (-want +got):\n%s", diff)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := doc.Cookie(); got != "" {
		t.Fatalf("Cookie() after Clear = %q, want empty", got)
	}
	if doc.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", doc.Len())
	}
}

func TestMechanism_ExpiredCookieDropsMetadata(t *testing.T) {
	now := fixedNow
	tick := func() time.Time { return now }

	doc := newJar(t, "https://example.com/", WithJarClock(tick))
	m := New(doc, WithClock(tick))

	if err := m.SetItem("short", "v", &storage.Options{Expires: &storage.Expiration{Minutes: 1}}); err != nil {
		t.Fatalf("SetItem() error = %v", err)
	}

	now = now.Add(2 * time.Minute)

	if _, ok, _ := m.GetItem("short"); ok {
		t.Fatalf("GetItem() found expired cookie")
	}
	if _, ok := m.Metadata("short"); ok {
		t.Fatalf("Metadata() kept for expired cookie")
	}
}

func TestMechanism_ExistingCookiesGetDefaultMetadata(t *testing.T) {
	doc := newJar(t, "https://example.com/")
	if err := doc.SetCookie("pre=1; path=/"); err != nil {
		t.Fatalf("SetCookie() error = %v", err)
	}

	m := New(doc)
	meta, ok := m.Metadata("pre")
	if !ok || meta.Path != DefaultPath {
		t.Fatalf("Metadata(pre) = %+v, %v, want default path", meta, ok)
	}
}

func TestMechanism_SetCookieErrorRestoresMetadata(t *testing.T) {
	doc := newJar(t, "https://example.com/", WithCookiesDisabled())
	m := New(doc)

	err := m.SetItem("k", "v", nil)
	if !errors.Is(err, storage.ErrCookiesDisabled) {
		t.Fatalf("SetItem() error = %v, want ErrCookiesDisabled", err)
	}
	if _, ok := m.Metadata("k"); ok {
		t.Fatalf("Metadata() recorded for failed write")
	}
}

func TestJar_RejectsForeignDomainAndInsecure(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		cookie string
	}{
		{name: "foreign domain", url: "https://example.com/", cookie: "a=1; domain=other.org; path=/"},
		{name: "secure on http", url: "http://example.com/", cookie: "a=1; path=/; secure"},
		{name: "no name", url: "https://example.com/", cookie: "=1"},
		{name: "no equals", url: "https://example.com/", cookie: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := newJar(t, tt.url)
			if err := j.SetCookie(tt.cookie); err != nil {
				t.Fatalf("SetCookie() error = %v, want silent reject", err)
			}
			if got := j.Cookie(); got != "" {
				t.Fatalf("Cookie() = %q, want empty", got)
			}
		})
	}
}

func TestJar_VisibilityAndOrder(t *testing.T) {
	j := newJar(t, "https://www.example.com/app/page")

	for _, c := range []string{
		"a=1; path=/",
		"b=2; path=/app",
		"c=3; path=/other",
		"d=4; domain=example.com; path=/",
		"a=5; path=/",
	} {
		if err := j.SetCookie(c); err != nil {
			t.Fatalf("SetCookie(%q) error = %v", c, err)
		}
	}

	if got, want := j.Cookie(), "b=2; a=5; d=4"; got != want {
		t.Fatalf("Cookie() = %q, want %q", got, want)
	}
}

func TestJar_MaxAge(t *testing.T) {
	j := newJar(t, "https://example.com/")

	if err := j.SetCookie("a=1; max-age=60; path=/"); err != nil {
		t.Fatalf("SetCookie() error = %v", err)
	}
	if got := j.Cookie(); got != "a=1" {
		t.Fatalf("Cookie() = %q, want a=1", got)
	}
	if err := j.SetCookie("a=1; max-age=0; path=/"); err != nil {
		t.Fatalf("SetCookie() error = %v", err)
	}
	if got := j.Cookie(); got != "" {
		t.Fatalf("Cookie() = %q, want empty", got)
	}
}

func TestJar_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")

	j := newJar(t, "https://example.com/")
	_ = j.SetCookie("keep=1; expires=Tue, 20 Oct 2026 12:30:00 GMT; path=/")
	_ = j.SetCookie("session=2; path=/")

	if err := j.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	restored := newJar(t, "https://example.com/")
	if err := restored.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := restored.Cookie(); got != "keep=1" {
		t.Fatalf("Cookie() after Load = %q, want keep=1", got)
	}

	missing := newJar(t, "https://example.com/")
	if err := missing.Load(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("Load(missing) error = %v, want nil", err)
	}
}

func TestNewJar_InvalidURL(t *testing.T) {
	if _, err := NewJar("not a url"); err == nil {
		t.Fatalf("NewJar() error = nil, want error")
	}
}
