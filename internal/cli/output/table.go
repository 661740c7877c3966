package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Tabular is implemented by results with a table rendering.
type Tabular interface {
	Table() *Table
}

// TableFormatter formats data as an aligned text table.
type TableFormatter struct {
	NoHeaders bool
}

// Format formats data as a table.
// Supports: *Table, Tabular, map[string]any, map[string]string, []string
// and scalars; anything else is written as JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case *Table:
		return v.RenderWithOptions(w, f.NoHeaders)
	case Tabular:
		return v.Table().RenderWithOptions(w, f.NoHeaders)
	case map[string]any:
		return mapTable(v).RenderWithOptions(w, f.NoHeaders)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return mapTable(m).RenderWithOptions(w, f.NoHeaders)
	case []string:
		t := &Table{Headers: []string{"VALUE"}}
		for _, s := range v {
			t.AddRow(s)
		}
		return t.RenderWithOptions(w, f.NoHeaders)
	case string, bool, int, int64, float64:
		_, err := fmt.Fprintln(w, Cell(v))
		return err
	default:
		return (&JSONFormatter{}).Format(w, data)
	}
}

// mapTable renders a map as KEY/VALUE rows sorted by key.
func mapTable(m map[string]any) *Table {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{Headers: []string{"KEY", "VALUE"}}
	for _, k := range keys {
		t.AddRow(k, Cell(m[k]))
	}
	return t
}

// Cell formats one value for a table cell. Strings are printed as is,
// nil as "-", other values as compact JSON.
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		if _, err := fmt.Fprintln(tw, strings.Join(t.Headers, "\t")); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
