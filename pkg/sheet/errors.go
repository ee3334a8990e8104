package sheet

import "errors"

var (
	// ErrNotFound indicates the spreadsheet file does not exist.
	ErrNotFound = errors.New("sheet: file not found")

	// ErrParse indicates the file exists but could not be read as a table.
	ErrParse = errors.New("sheet: failed to parse")

	// ErrWriteFailed indicates the spreadsheet could not be written.
	ErrWriteFailed = errors.New("sheet: failed to write")

	// ErrUnsupportedFormat indicates an extension other than .xlsx or .csv.
	ErrUnsupportedFormat = errors.New("sheet: unsupported file format")
)
