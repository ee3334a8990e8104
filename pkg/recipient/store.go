package recipient

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/outreach/pkg/sheet"
)

// ErrRowOutOfRange indicates a mutation for a row the snapshot does not have.
var ErrRowOutOfRange = errors.New("recipient: row out of range")

// Store loads and saves the recipients workbook.
type Store struct {
	path    string
	columns Columns
}

// NewStore creates a store for the workbook at path.
func NewStore(path string, columns Columns) *Store {
	return &Store{path: path, columns: columns}
}

// Path returns the workbook location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the workbook. Missing files wrap sheet.ErrNotFound, unreadable
// ones sheet.ErrParse.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := sheet.Load(s.path)
	if err != nil {
		return nil, err
	}
	if len(t.Header) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", sheet.ErrParse, s.path)
	}
	return NewSnapshot(t, s.columns), nil
}

// Save overwrites the workbook with snapshot.
func (s *Store) Save(ctx context.Context, snapshot *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return sheet.Save(s.path, snapshot.table)
}
