package output

import (
	"bytes"
	"strings"
	"testing"
)

type kindRow struct {
	Kind      string
	Available bool
}

func (k kindRow) Table() *Table {
	t := &Table{Headers: []string{"KIND", "AVAILABLE"}}
	t.AddRow(k.Kind, Cell(k.Available))
	return t
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTableFormatter(t *testing.T) {
	tests := []struct {
		name string
		data any
		want string
	}{
		{"string", "hello", "hello\n"},
		{"float", float64(3), "3\n"},
		{"tabular", kindRow{Kind: "localStorage", Available: true}, "KIND          AVAILABLE\nlocalStorage  true\n"},
		{
			"map sorted",
			map[string]any{"b": map[string]any{"x": 1.5}, "a": nil},
			"KEY  VALUE\na    -\nb    {\"x\":1.5}\n",
		},
		{"list", []string{"one", "two"}, "VALUE\none\ntwo\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(FormatTable).Format(&buf, tt.data); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Fatalf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTableFormatter_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{NoHeaders: true}
	if err := f.Format(&buf, []string{"a"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := buf.String(); got != "a\n" {
		t.Fatalf("Format() = %q, want %q", got, "a\n")
	}
}

func TestJSONAndYAML(t *testing.T) {
	data := map[string]any{"key": "theme", "value": map[string]any{"dark": true}}

	var js bytes.Buffer
	if err := NewFormatter(FormatJSON).Format(&js, data); err != nil {
		t.Fatalf("JSON Format() error = %v", err)
	}
	if !strings.Contains(js.String(), "\"dark\": true") {
		t.Fatalf("JSON output = %s", js.String())
	}

	var y bytes.Buffer
	if err := NewFormatter(FormatYAML).Format(&y, data); err != nil {
		t.Fatalf("YAML Format() error = %v", err)
	}
	want := "key: theme\nvalue:\n  dark: true\n"
	if got := y.String(); got != want {
		t.Fatalf("YAML output = %q, want %q", got, want)
	}
}
