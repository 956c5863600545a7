package nba

import "fmt"

// Table is one normalized result set. Every row holds exactly len(Columns)
// raw JSON values (float64, string, bool or nil) in column order.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Row is a single table row bound to its column names.
type Row struct {
	table  *Table
	values []any
}

func NewTable(columns []string, rows [][]any) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(r), len(columns))
		}
	}
	if rows == nil {
		rows = [][]any{}
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns -1 when the column does not exist.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) Row(i int) Row {
	return Row{table: t, values: t.Rows[i]}
}

// Column returns a copy of every value under name, or false if there is no
// such column.
func (t *Table) Column(name string) ([]any, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]any, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out, true
}

// Records zips every row with the column names.
func (t *Table) Records() []map[string]any {
	out := make([]map[string]any, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Row(i).Map()
	}
	return out
}

func (r Row) Get(column string) (any, bool) {
	idx := r.table.ColumnIndex(column)
	if idx < 0 {
		return nil, false
	}
	return r.values[idx], true
}

func (r Row) Values() []any { return r.values }

func (r Row) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, c := range r.table.Columns {
		m[c] = r.values[i]
	}
	return m
}
