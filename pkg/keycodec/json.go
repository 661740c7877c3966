package keycodec

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/yndnr/proxystore/pkg/storage"
)

// Result is the outcome of TryParse: either a decoded JSON value or the raw
// string that could not be decoded.
type Result struct {
	raw    string
	value  any
	parsed bool
}

// TryParse decodes raw as JSON. Values that are not valid JSON (for example
// legacy plain strings) are kept as raw strings.
func TryParse(raw string) Result {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return Result{raw: raw}
	}
	return Result{raw: raw, value: v, parsed: true}
}

// Parsed returns the decoded value and true when raw was valid JSON.
func (r Result) Parsed() (any, bool) {
	return r.value, r.parsed
}

// Raw returns the original string.
func (r Result) Raw() string {
	return r.raw
}

// Value returns the decoded value, or the raw string when decoding failed.
func (r Result) Value() any {
	if r.parsed {
		return r.value
	}
	return r.raw
}

// Serialize converts v into its wire string. Strings pass through unchanged
// so that human-typed values are not wrapped in quotes; everything else is
// JSON encoded.
func Serialize(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", storage.ErrSerialize.WithCause(err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Clone returns a deep copy of composite values (objects, arrays) by a JSON
// round trip. Numbers in the copy are json.Number so they encode back to
// the same digits. Scalars and values that can not be encoded are returned
// as is.
func Clone(v any) any {
	if v == nil {
		return nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct, reflect.Pointer:
	default:
		return v
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return v
	}
	return out
}
