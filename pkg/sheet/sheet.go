package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads the first worksheet of an .xlsx file, or a .csv file.
func Load(path string) (*Table, error) {
	switch format(path) {
	case ".xlsx":
		return loadXLSX(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Save writes tables to path, one worksheet per table.
//
// For an existing .xlsx file only cells whose text changed are rewritten, so
// styles, other sheets and untouched cells survive. A .csv file holds a
// single table and is rewritten in full.
func Save(path string, tables ...*Table) error {
	return write(path, tables, false)
}

// Create writes tables to a new file at path, replacing any existing one.
// Use it for generated outputs that must not inherit stale cells.
func Create(path string, tables ...*Table) error {
	return write(path, tables, true)
}

func write(path string, tables []*Table, truncate bool) error {
	if len(tables) == 0 {
		return fmt.Errorf("%w: %s: no tables", ErrWriteFailed, path)
	}
	switch format(path) {
	case ".xlsx":
		return saveXLSX(path, tables, truncate)
	case ".csv":
		if len(tables) > 1 {
			return fmt.Errorf("%w: %s: csv holds a single table", ErrWriteFailed, path)
		}
		return saveCSV(path, tables[0])
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func format(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: workbook has no sheets", ErrParse, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return fromRecords(sheets[0], rows), nil
}

func loadCSV(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fromRecords(name, records), nil
}

func saveXLSX(path string, tables []*Table, truncate bool) error {
	var (
		f     *excelize.File
		fresh = true
		err   error
	)
	if truncate {
		f = excelize.NewFile()
	} else if f, fresh, err = openOrCreate(path); err != nil {
		return err
	}
	defer f.Close()

	for i, t := range tables {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("Sheet%d", i+1)
		}
		if err := ensureSheet(f, name, fresh && i == 0); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
		}
		if err := writeCells(f, name, t.records()); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}

func openOrCreate(path string) (*excelize.File, bool, error) {
	f, err := excelize.OpenFile(path)
	if err == nil {
		return f, false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), true, nil
	}
	return nil, false, fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
}

// ensureSheet makes sure the named sheet exists. A fresh workbook's default
// sheet is renamed instead of left behind empty.
func ensureSheet(f *excelize.File, name string, renameDefault bool) error {
	if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
		return nil
	}
	if renameDefault {
		sheets := f.GetSheetList()
		if len(sheets) > 0 {
			return f.SetSheetName(sheets[0], name)
		}
	}
	_, err := f.NewSheet(name)
	return err
}

func writeCells(f *excelize.File, sheet string, records [][]string) error {
	for r, row := range records {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			current, err := f.GetCellValue(sheet, cell)
			if err != nil {
				return err
			}
			if current == value {
				continue
			}
			if err := f.SetCellStr(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func saveCSV(path string, t *Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	w := csv.NewWriter(file)
	if err := w.WriteAll(t.records()); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}
