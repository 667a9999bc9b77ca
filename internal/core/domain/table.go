package domain

import (
	"strconv"
)

// Table is an immutable, column-oriented view over a flat tabular file.
// Cells are kept as their original strings so that a column written back
// out is bit-identical to its source; typed accessors parse on demand.
type Table struct {
	header []string
	rows   [][]string
	index  map[string]int
}

// NewTable builds a table from a header and rows. Rows shorter than the
// header are rejected so that every column is populated for every row.
func NewTable(header []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; dup {
			return nil, Configuration("duplicate column %q", name)
		}
		index[name] = i
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, Configuration("row %d has %d cells, header has %d", i, len(row), len(header))
		}
	}
	return &Table{header: header, rows: rows, index: index}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Header returns the column names in order.
func (t *Table) Header() []string {
	return t.header
}

// Rows returns the underlying rows. Callers must not mutate them.
func (t *Table) Rows() [][]string {
	return t.rows
}

// HasColumn reports whether a column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the raw string values of a column in row order.
func (t *Table) Column(name string) ([]string, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, Configuration("missing column %q", name)
	}
	values := make([]string, len(t.rows))
	for r, row := range t.rows {
		values[r] = row[i]
	}
	return values, nil
}

// FloatColumn parses a column as float64 values.
func (t *Table) FloatColumn(name string) ([]float64, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(raw))
	for r, cell := range raw {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, Configuration("column %q row %d: %q is not numeric", name, r, cell)
		}
		values[r] = v
	}
	return values, nil
}

// IntColumn parses a column as non-negative integers.
func (t *Table) IntColumn(name string) ([]int, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]int, len(raw))
	for r, cell := range raw {
		v, err := strconv.Atoi(cell)
		if err != nil || v < 0 {
			return nil, Configuration("column %q row %d: %q is not a non-negative integer", name, r, cell)
		}
		values[r] = v
	}
	return values, nil
}

// BoolColumn parses a binary 0/1 column.
func (t *Table) BoolColumn(name string) ([]bool, error) {
	raw, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	values := make([]bool, len(raw))
	for r, cell := range raw {
		switch cell {
		case "0":
			values[r] = false
		case "1":
			values[r] = true
		default:
			return nil, Configuration("column %q row %d: %q is not a 0/1 label", name, r, cell)
		}
	}
	return values, nil
}

// WithColumn returns a new table extended by one column. The receiver is
// left untouched; rows are copied so the two tables never share cells.
func (t *Table) WithColumn(name string, values []string) (*Table, error) {
	if t.HasColumn(name) {
		return nil, Configuration("column %q already present", name)
	}
	if len(values) != len(t.rows) {
		return nil, &RowCountMismatch{Column: name, Want: len(t.rows), Got: len(values)}
	}
	header := make([]string, len(t.header)+1)
	copy(header, t.header)
	header[len(t.header)] = name

	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		next := make([]string, len(row)+1)
		copy(next, row)
		next[len(row)] = values[r]
		rows[r] = next
	}
	return NewTable(header, rows)
}
