// Package dataframe provides the in-memory tabular value available to
// interpreted code, seeded into every session under the alias "df".
//
// A DataFrame is a small row-major table with ordered, named columns. It is
// deliberately minimal: enough surface for interpreted snippets to build and
// return tabular results, and enough accessors for the execution engine to
// serialize them.
package dataframe

import (
	"fmt"
	"strings"
)

// DataFrame is an in-memory table with named columns and ordered rows.
//
// Contract:
// - Concurrency: not safe for concurrent use; a session serializes access.
// - Ownership: accessor results are caller-owned copies.
type DataFrame struct {
	columns []string
	rows    [][]any
}

// New creates an empty frame with the given column order.
func New(columns ...string) *DataFrame {
	d := &DataFrame{columns: make([]string, len(columns))}
	copy(d.columns, columns)
	return d
}

// Append adds one row and returns the frame for chaining. It panics when
// the cell count does not match the column count; inside a session the
// panic surfaces as an execution error for the submitted code.
func (d *DataFrame) Append(cells ...any) *DataFrame {
	if len(cells) != len(d.columns) {
		panic(fmt.Sprintf("dataframe: row has %d cells, frame has %d columns", len(cells), len(d.columns)))
	}
	row := make([]any, len(cells))
	copy(row, cells)
	d.rows = append(d.rows, row)
	return d
}

// Columns returns the column names in order.
func (d *DataFrame) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// Shape returns the row and column counts.
func (d *DataFrame) Shape() (rows, cols int) {
	return len(d.rows), len(d.columns)
}

// Records returns the rows as ordered column-name to cell mappings.
func (d *DataFrame) Records() []map[string]any {
	out := make([]map[string]any, len(d.rows))
	for i, row := range d.rows {
		rec := make(map[string]any, len(d.columns))
		for j, col := range d.columns {
			rec[col] = row[j]
		}
		out[i] = rec
	}
	return out
}

// String renders the full table without truncation.
func (d *DataFrame) String() string {
	widths := make([]int, len(d.columns))
	cells := make([][]string, len(d.rows))
	for j, col := range d.columns {
		widths[j] = len(col)
	}
	for i, row := range d.rows {
		cells[i] = make([]string, len(row))
		for j, cell := range row {
			s := fmt.Sprint(cell)
			cells[i][j] = s
			if len(s) > widths[j] {
				widths[j] = len(s)
			}
		}
	}

	var b strings.Builder
	for j, col := range d.columns {
		if j > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[j], col)
	}
	for _, row := range cells {
		b.WriteString("\n")
		for j, cell := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[j], cell)
		}
	}
	return b.String()
}
