//go:build js && wasm

package browser

import (
	"fmt"
	"syscall/js"
)

// WebStorage is a Web Storage object (localStorage or sessionStorage).
type WebStorage struct {
	name string
}

// LocalStorage returns window.localStorage.
func LocalStorage() *WebStorage {
	return &WebStorage{name: "localStorage"}
}

// SessionStorage returns window.sessionStorage.
func SessionStorage() *WebStorage {
	return &WebStorage{name: "sessionStorage"}
}

// object resolves the storage object on each call: merely reading the
// property throws when storage is blocked.
func (s *WebStorage) object() (v js.Value, err error) {
	defer recoverJS(&err)
	v = js.Global().Get(s.name)
	if v.IsUndefined() || v.IsNull() {
		return js.Value{}, fmt.Errorf("browser: %s is not defined", s.name)
	}
	return v, nil
}

// SetItem calls setItem(key, value).
func (s *WebStorage) SetItem(key, value string) (err error) {
	obj, err := s.object()
	if err != nil {
		return err
	}
	defer recoverJS(&err)
	obj.Call("setItem", key, value)
	return nil
}

// GetItem calls getItem(key). A null result reports absence.
func (s *WebStorage) GetItem(key string) (value string, ok bool, err error) {
	obj, err := s.object()
	if err != nil {
		return "", false, err
	}
	defer recoverJS(&err)
	v := obj.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false, nil
	}
	return v.String(), true, nil
}

// RemoveItem calls removeItem(key).
func (s *WebStorage) RemoveItem(key string) (err error) {
	obj, err := s.object()
	if err != nil {
		return err
	}
	defer recoverJS(&err)
	obj.Call("removeItem", key)
	return nil
}

// Clear calls clear().
func (s *WebStorage) Clear() (err error) {
	obj, err := s.object()
	if err != nil {
		return err
	}
	defer recoverJS(&err)
	obj.Call("clear")
	return nil
}

// Keys enumerates key(i) for i < length.
func (s *WebStorage) Keys() (keys []string, err error) {
	obj, err := s.object()
	if err != nil {
		return nil, err
	}
	defer recoverJS(&err)
	n := obj.Get("length").Int()
	keys = make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, obj.Call("key", i).String())
	}
	return keys, nil
}

// Cookie is document.cookie.
type Cookie struct{}

// DocumentCookie returns document.cookie.
func DocumentCookie() *Cookie {
	return &Cookie{}
}

// Cookie reads document.cookie.
func (Cookie) Cookie() string {
	doc := js.Global().Get("document")
	if doc.IsUndefined() {
		return ""
	}
	return doc.Get("cookie").String()
}

// SetCookie assigns document.cookie.
func (Cookie) SetCookie(cookie string) (err error) {
	defer recoverJS(&err)
	doc := js.Global().Get("document")
	if doc.IsUndefined() {
		return fmt.Errorf("browser: document is not defined")
	}
	doc.Set("cookie", cookie)
	return nil
}

// Name is window.name, a string that outlives page loads in the same tab.
type Name struct{}

// WindowName returns window.name.
func WindowName() *Name {
	return &Name{}
}

// Load reads window.name.
func (Name) Load() (string, error) {
	return js.Global().Get("name").String(), nil
}

// Store assigns window.name.
func (Name) Store(blob string) (err error) {
	defer recoverJS(&err)
	js.Global().Set("name", blob)
	return nil
}

// recoverJS turns a thrown JavaScript exception into an error.
func recoverJS(err *error) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = fmt.Errorf("browser: %w", jsErr)
			return
		}
		*err = fmt.Errorf("browser: %v", r)
	}
}
