package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table renders rows of values in aligned columns via tabwriter.
type Table struct {
	w *tabwriter.Writer
}

// NewTable creates a table writer. When headers are given they become the
// first row.
func NewTable(out io.Writer, headers ...string) *Table {
	t := &Table{w: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)}
	if len(headers) > 0 {
		cells := make([]any, len(headers))
		for i, h := range headers {
			cells[i] = h
		}
		t.Row(cells...)
	}
	return t
}

// Row appends one row. Values are formatted with %v, so bools and numbers
// print naturally.
func (t *Table) Row(values ...any) {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = fmt.Sprint(v)
	}
	_, _ = fmt.Fprintln(t.w, strings.Join(cells, "\t"))
}

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}
