package core

import "github.com/jackc/pgx/v5/pgtype"

// Table is an immutable, row-oriented table of nullable string cells.
// A column that the source did not provide is simply absent: filters on it
// match no rows.
type Table struct {
	key     string
	columns []Column
	index   map[Column]int
	rows    [][]pgtype.Text
}

// TableBuilder accumulates rows for a Table. It is not safe for concurrent use.
type TableBuilder struct {
	t *Table
}

// NewTableBuilder starts a table with the given columns.
// Duplicate columns keep their first position.
func NewTableBuilder(key string, columns ...Column) *TableBuilder {
	t := &Table{
		key:   key,
		index: make(map[Column]int, len(columns)),
	}
	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			continue
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return &TableBuilder{t: t}
}

// Add appends a row of raw values in column order. Values are trimmed and
// empty values become null. Missing trailing values are null.
func (b *TableBuilder) Add(values ...string) *TableBuilder {
	row := make([]pgtype.Text, len(b.t.columns))
	for i := range row {
		if i < len(values) {
			row[i] = ToPgText(values[i])
		}
	}
	b.t.rows = append(b.t.rows, row)
	return b
}

// AddCells appends a row of already converted cells in column order.
func (b *TableBuilder) AddCells(cells []pgtype.Text) *TableBuilder {
	row := make([]pgtype.Text, len(b.t.columns))
	copy(row, cells)
	b.t.rows = append(b.t.rows, row)
	return b
}

// Build returns the finished table. The builder must not be used afterwards.
func (b *TableBuilder) Build() *Table {
	t := b.t
	b.t = nil
	return t
}

// EmptyTable returns a table with no columns and no rows.
func EmptyTable(key string) *Table {
	return NewTableBuilder(key).Build()
}

// Key returns the table key.
func (t *Table) Key() string {
	return t.key
}

// Columns returns a copy of the table's columns in source order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table carries column c.
func (t *Table) HasColumn(c Column) bool {
	_, ok := t.index[c]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell returns the value at row i, column c. The second result is false when
// the column is absent or i is out of range.
func (t *Table) Cell(i int, c Column) (pgtype.Text, bool) {
	pos, ok := t.index[c]
	if !ok || i < 0 || i >= len(t.rows) {
		return pgtype.Text{}, false
	}
	return t.rows[i][pos], true
}
