// Package dataset provides the in-memory table used between pipeline stages:
// an ordered header plus rows of string cells, each row carrying the position
// it had in the source file.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrUnknownLabel  = errors.New("unknown row label")
)

// Row is one record. Label is the zero-based position of the record in the
// source, kept across column drops and deduplication.
type Row struct {
	Label  int
	Values []string
}

// Table is an ordered collection of rows sharing one header. Kinds holds the
// value type of each column as inferred by ReadCSV; a table built by hand
// without Kinds treats every column as strings.
type Table struct {
	Columns []string
	Kinds   []Kind
	Rows    []Row
}

// ReadCSV parses delimited text with a header row into a Table.
// Short rows are padded with empty cells, long rows are an error.
func ReadCSV(r io.Reader, sep rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty input: no header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &Table{Columns: trimHeader(header)}

	for label := 0; ; label++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", label, err)
		}

		if len(record) > len(t.Columns) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", label, len(record), len(t.Columns))
		}
		for len(record) < len(t.Columns) {
			record = append(record, "")
		}

		t.Rows = append(t.Rows, Row{Label: label, Values: record})
	}

	t.Kinds = inferKinds(len(t.Columns), t.Rows)
	return t, nil
}

func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// kind returns the value type of column col
func (t *Table) kind(col int) Kind {
	if col < len(t.Kinds) {
		return t.Kinds[col]
	}
	return KindString
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has the named column
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns a copy of one column's values in row order
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Values[idx]
	}
	return values, nil
}

// DropColumns removes the named columns. Names that are not present are ignored.
// It returns the names that were actually dropped.
func (t *Table) DropColumns(names ...string) []string {
	drop := make(map[int]bool, len(names))
	var dropped []string
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 && !drop[idx] {
			drop[idx] = true
			dropped = append(dropped, name)
		}
	}
	if len(drop) == 0 {
		return nil
	}

	if len(t.Kinds) == len(t.Columns) {
		t.Kinds = keep(t.Kinds, drop)
	}
	t.Columns = keep(t.Columns, drop)
	for i := range t.Rows {
		t.Rows[i].Values = keep(t.Rows[i].Values, drop)
	}
	return dropped
}

func keep[T any](values []T, drop map[int]bool) []T {
	out := make([]T, 0, len(values)-len(drop))
	for i, v := range values {
		if !drop[i] {
			out = append(out, v)
		}
	}
	return out
}

// DropDuplicates removes rows whose values equal an earlier row across all
// columns, keeping the first occurrence and the original order. Numeric cells
// compare by value, so 27.9 and 27.90 are the same, and missing cells are equal.
// It returns the number of rows removed.
func (t *Table) DropDuplicates() int {
	seen := make(map[string]struct{}, len(t.Rows))
	kept := t.Rows[:0]

	for _, row := range t.Rows {
		key := t.rowKey(row.Values)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, row)
	}

	removed := len(t.Rows) - len(kept)
	t.Rows = kept
	return removed
}

// rowKey joins canonical cells with their lengths so that no two distinct
// rows collide
func (t *Table) rowKey(values []string) string {
	var b strings.Builder
	for col, cell := range values {
		v := canonical(t.kind(col), cell)
		fmt.Fprintf(&b, "%d:%s|", len(v), v)
	}
	return b.String()
}

// Loc returns the rows with the given labels, in the order requested
func (t *Table) Loc(labels ...int) ([]Row, error) {
	byLabel := make(map[int]int, len(t.Rows))
	for i, row := range t.Rows {
		byLabel[row.Label] = i
	}

	rows := make([]Row, 0, len(labels))
	for _, label := range labels {
		i, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownLabel, label)
		}
		rows = append(rows, t.Rows[i])
	}
	return rows, nil
}

// Distinct returns the unique values of a column in first-seen order
func (t *Table) Distinct(name string) ([]string, error) {
	values, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Values returns the cell matrix of the given rows
func Values(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = row.Values
	}
	return out
}
