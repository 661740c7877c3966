package cookie

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yndnr/proxystore/pkg/keycodec"
	"github.com/yndnr/proxystore/pkg/storage"
)

// Jar is an in-process cookie jar seen through one document location.
//
// Cookies are identified by their name, domain and path. Writes that a
// browser would refuse (domain not matching the document host, secure
// cookie on an insecure document, malformed string) are dropped silently,
// exactly like assigning document.cookie.
type Jar struct {
	host   string
	path   string
	secure bool

	now      func() time.Time
	disabled bool

	mu      sync.Mutex
	entries []*entry
	seq     uint64
}

type entry struct {
	Name       string    `json:"name"`
	Value      string    `json:"value"`
	Domain     string    `json:"domain"`
	Path       string    `json:"path"`
	HostOnly   bool      `json:"host_only"`
	Secure     bool      `json:"secure"`
	Persistent bool      `json:"persistent"`
	Expires    time.Time `json:"expires"`
	Seq        uint64    `json:"seq"`
}

// JarOption configures the Jar.
type JarOption func(*Jar)

// WithJarClock sets the clock used to evaluate expirations.
func WithJarClock(now func() time.Time) JarOption {
	return func(j *Jar) {
		j.now = now
	}
}

// WithCookiesDisabled makes every write fail with storage.ErrCookiesDisabled.
func WithCookiesDisabled() JarOption {
	return func(j *Jar) {
		j.disabled = true
	}
}

// NewJar creates an empty jar for a document located at rawURL.
func NewJar(rawURL string, opts ...JarOption) (*Jar, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: parse document url: %w", err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("cookie jar: document url %q has no host", rawURL)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	j := &Jar{
		host:   strings.ToLower(u.Hostname()),
		path:   path,
		secure: u.Scheme == "https",
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(j)
	}

	return j, nil
}

// Cookie returns the cookies visible to the document, longest path first
// and then in creation order, as "k1=v1; k2=v2".
func (j *Jar) Cookie() string {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	j.expireLocked(now)

	visible := make([]*entry, 0, len(j.entries))
	for _, e := range j.entries {
		if !j.domainMatch(e) || !pathMatch(j.path, e.Path) {
			continue
		}
		if e.Secure && !j.secure {
			continue
		}
		visible = append(visible, e)
	}

	sort.SliceStable(visible, func(a, b int) bool {
		if len(visible[a].Path) != len(visible[b].Path) {
			return len(visible[a].Path) > len(visible[b].Path)
		}
		return visible[a].Seq < visible[b].Seq
	})

	parts := make([]string, len(visible))
	for i, e := range visible {
		parts[i] = e.Name + "=" + e.Value
	}
	return strings.Join(parts, "; ")
}

// SetCookie merges one serialized cookie into the jar.
func (j *Jar) SetCookie(cookie string) error {
	if j.disabled {
		return storage.ErrCookiesDisabled
	}

	now := j.now()
	e, expired, ok := j.parse(cookie, now)
	if !ok {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	idx := j.indexLocked(e.Name, e.Domain, e.Path)
	if expired {
		if idx >= 0 {
			j.entries = append(j.entries[:idx], j.entries[idx+1:]...)
		}
		return nil
	}

	if idx >= 0 {
		// Keep the creation order of the cookie being replaced
		e.Seq = j.entries[idx].Seq
		j.entries[idx] = e
		return nil
	}

	j.seq++
	e.Seq = j.seq
	j.entries = append(j.entries, e)
	return nil
}

// Len returns the number of live cookies in the jar, visible or not.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.expireLocked(j.now())
	return len(j.entries)
}

// Save writes the persistent cookies to path as JSON. Session cookies are
// not saved: they die with the document.
func (j *Jar) Save(path string) error {
	j.mu.Lock()
	j.expireLocked(j.now())
	persistent := make([]*entry, 0, len(j.entries))
	for _, e := range j.entries {
		if e.Persistent {
			persistent = append(persistent, e)
		}
	}
	j.mu.Unlock()

	data, err := json.MarshalIndent(persistent, "", "  ")
	if err != nil {
		return fmt.Errorf("cookie jar: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("cookie jar: create dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cookie jar: write %s: %w", path, err)
	}
	return nil
}

// Load merges the cookies saved at path into the jar. A missing file is not
// an error.
func (j *Jar) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cookie jar: read %s: %w", path, err)
	}

	var saved []*entry
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("cookie jar: decode %s: %w", path, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	sort.Slice(saved, func(a, b int) bool { return saved[a].Seq < saved[b].Seq })
	for _, e := range saved {
		if idx := j.indexLocked(e.Name, e.Domain, e.Path); idx >= 0 {
			j.entries = append(j.entries[:idx], j.entries[idx+1:]...)
		}
		j.seq++
		e.Seq = j.seq
		j.entries = append(j.entries, e)
	}
	j.expireLocked(j.now())
	return nil
}

// parse turns a serialized cookie into an entry. ok is false when the
// cookie must be ignored.
func (j *Jar) parse(cookie string, now time.Time) (e *entry, expired bool, ok bool) {
	parts := strings.Split(cookie, ";")
	pair := strings.TrimSpace(parts[0])
	idx := strings.IndexByte(pair, '=')
	if idx <= 0 {
		return nil, false, false
	}

	e = &entry{
		Name:     strings.TrimSpace(pair[:idx]),
		Value:    strings.TrimSpace(pair[idx+1:]),
		Domain:   j.host,
		HostOnly: true,
	}
	if e.Name == "" {
		return nil, false, false
	}

	var (
		maxAge    *int
		expiresAt time.Time
	)
	for _, attr := range parts[1:] {
		attr = strings.TrimSpace(attr)
		name, val, _ := strings.Cut(attr, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		val = strings.TrimSpace(val)

		switch name {
		case "expires":
			t, err := keycodec.ParseHTTPDate(val)
			if err == nil {
				expiresAt = t
			}
		case "max-age":
			n, err := strconv.Atoi(val)
			if err == nil {
				maxAge = &n
			}
		case "domain":
			d := strings.ToLower(strings.TrimPrefix(val, "."))
			if d == "" {
				continue
			}
			if d != j.host && !strings.HasSuffix(j.host, "."+d) {
				return nil, false, false
			}
			e.Domain = d
			e.HostOnly = false
		case "path":
			if strings.HasPrefix(val, "/") {
				e.Path = val
			}
		case "secure":
			e.Secure = true
		}
	}

	if e.Secure && !j.secure {
		return nil, false, false
	}
	if e.Path == "" {
		e.Path = defaultPath(j.path)
	}

	switch {
	case maxAge != nil:
		e.Persistent = true
		if *maxAge <= 0 {
			return e, true, true
		}
		e.Expires = now.Add(time.Duration(*maxAge) * time.Second)
	case !expiresAt.IsZero():
		e.Persistent = true
		if !expiresAt.After(now) {
			return e, true, true
		}
		e.Expires = expiresAt
	}
	return e, false, true
}

func (j *Jar) indexLocked(name, domain, path string) int {
	for i, e := range j.entries {
		if e.Name == name && e.Domain == domain && e.Path == path {
			return i
		}
	}
	return -1
}

func (j *Jar) expireLocked(now time.Time) {
	live := j.entries[:0]
	for _, e := range j.entries {
		if e.Persistent && !e.Expires.After(now) {
			continue
		}
		live = append(live, e)
	}
	j.entries = live
}

func (j *Jar) domainMatch(e *entry) bool {
	if e.HostOnly {
		return j.host == e.Domain
	}
	return j.host == e.Domain || strings.HasSuffix(j.host, "."+e.Domain)
}

// pathMatch implements the path-match rule of RFC 6265 section 5.1.4.
func pathMatch(requestPath, cookiePath string) bool {
	if requestPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || requestPath[len(cookiePath)] == '/'
}

// defaultPath implements the default-path rule of RFC 6265 section 5.1.4.
func defaultPath(requestPath string) string {
	if requestPath == "" || requestPath[0] != '/' {
		return "/"
	}
	i := strings.LastIndexByte(requestPath, '/')
	if i == 0 {
		return "/"
	}
	return requestPath[:i]
}
