package recipient

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/outreach/pkg/sheet"
)

// StatusSent is written to the status column after a confirmed send.
const StatusSent = "Sent"

// Columns maps record fields to spreadsheet header names.
type Columns struct {
	Name          string `env:"COLUMN_NAME" envDefault:"Name"`
	Email         string `env:"COLUMN_EMAIL" envDefault:"Email"`
	Company       string `env:"COLUMN_COMPANY" envDefault:"Companies"`
	Position      string `env:"COLUMN_POSITION" envDefault:"Positions"`
	TemplateFile  string `env:"COLUMN_TEMPLATE" envDefault:"Template File"`
	Framework     string `env:"COLUMN_FRAMEWORK" envDefault:"Framework"`
	Strength      string `env:"COLUMN_STRENGTH" envDefault:"my strength"`
	AudienceValue string `env:"COLUMN_AUDIENCE_VALUE" envDefault:"something my target audience values"`
	SentStatus    string `env:"COLUMN_SENT_STATUS" envDefault:"Sent or Not"`
}

// DefaultColumns returns the header names of the recipients workbook.
func DefaultColumns() Columns {
	return Columns{
		Name:          "Name",
		Email:         "Email",
		Company:       "Companies",
		Position:      "Positions",
		TemplateFile:  "Template File",
		Framework:     "Framework",
		Strength:      "my strength",
		AudienceValue: "something my target audience values",
		SentStatus:    "Sent or Not",
	}
}

// Record is one recipient row. Row is the 0-based data row index and the
// record's identity for the duration of a run.
type Record struct {
	Row           int
	Name          string
	Email         string
	Company       string
	Position      string
	TemplateFile  string
	Framework     string
	Strength      string
	AudienceValue string
	SentStatus    string
}

// AlreadySent reports whether the status marks the row as done:
// "sent" or "response", case-insensitively.
func (r Record) AlreadySent() bool {
	switch strings.ToLower(strings.TrimSpace(r.SentStatus)) {
	case "sent", "response":
		return true
	}
	return false
}

// Mutation is a status change for one row, applied at the end of a run.
type Mutation struct {
	Row        int
	SentStatus string
}

// Snapshot is an immutable view of the recipients table as loaded.
type Snapshot struct {
	table   *sheet.Table
	columns Columns
}

// NewSnapshot wraps a table. The table is copied.
func NewSnapshot(t *sheet.Table, columns Columns) *Snapshot {
	return &Snapshot{table: t.Clone(), columns: columns}
}

// Len returns the number of data rows.
func (s *Snapshot) Len() int {
	return len(s.table.Rows)
}

// Records returns the rows as records, in table order.
func (s *Snapshot) Records() []Record {
	t := s.table
	c := s.columns
	get := func(row int, col string) string {
		return strings.TrimSpace(t.Value(row, col))
	}

	out := make([]Record, len(t.Rows))
	for i := range t.Rows {
		out[i] = Record{
			Row:           i,
			Name:          get(i, c.Name),
			Email:         get(i, c.Email),
			Company:       get(i, c.Company),
			Position:      get(i, c.Position),
			TemplateFile:  get(i, c.TemplateFile),
			Framework:     get(i, c.Framework),
			Strength:      get(i, c.Strength),
			AudienceValue: get(i, c.AudienceValue),
			SentStatus:    get(i, c.SentStatus),
		}
	}
	return out
}

// Apply returns a new snapshot with mutations applied. The receiver is not
// modified. The status column is added when the table lacks it.
func (s *Snapshot) Apply(mutations []Mutation) (*Snapshot, error) {
	t := s.table.Clone()
	if len(mutations) == 0 {
		return &Snapshot{table: t, columns: s.columns}, nil
	}

	col := t.EnsureColumn(s.columns.SentStatus)
	for _, m := range mutations {
		if m.Row < 0 || m.Row >= len(t.Rows) {
			return nil, fmt.Errorf("%w: row %d of %d", ErrRowOutOfRange, m.Row, len(t.Rows))
		}
		t.Set(m.Row, col, m.SentStatus)
	}
	return &Snapshot{table: t, columns: s.columns}, nil
}

// Table returns a copy of the underlying table.
func (s *Snapshot) Table() *sheet.Table {
	return s.table.Clone()
}
