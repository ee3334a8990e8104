package sheet

import "strings"

// Table is one worksheet as text: a header row and data rows.
// Cell values are kept exactly as read; nothing is coerced.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Column returns the index of the header named name, or -1.
// Header names match after trimming surrounding whitespace.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row/col, or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Value returns the value of the named column in row.
func (t *Table) Value(row int, column string) string {
	return t.Cell(row, t.Column(column))
}

// EnsureColumn returns the index of column, appending it to the header when
// absent.
func (t *Table) EnsureColumn(name string) int {
	if i := t.Column(name); i >= 0 {
		return i
	}
	t.Header = append(t.Header, name)
	return len(t.Header) - 1
}

// Set writes value at row/col, growing the row as needed.
func (t *Table) Set(row, col int, value string) {
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := &Table{
		Name:   t.Name,
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		c.Rows[i] = append([]string(nil), r...)
	}
	return c
}

// fromRecords splits raw rows into header and data rows.
// Trailing fully empty rows are dropped; short rows are padded to the header.
func fromRecords(name string, records [][]string) *Table {
	t := &Table{Name: name}
	if len(records) == 0 {
		return t
	}
	t.Header = records[0]

	last := len(records) - 1
	for last > 0 && isBlank(records[last]) {
		last--
	}
	for _, r := range records[1 : last+1] {
		row := append([]string(nil), r...)
		for len(row) < len(t.Header) {
			row = append(row, "")
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func (t *Table) records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, t.Header)
	out = append(out, t.Rows...)
	return out
}
