// Package merge joins two company tables on a company-name column.
package merge

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/outreach/pkg/sheet"
)

const (
	// DefaultKey is the column both tables are matched on.
	DefaultKey = "Company Name"

	// CombinedSheet holds every left row with matching right columns.
	CombinedSheet = "Sheet1_Combined"
	// AdditionalSheet holds right rows with no counterpart on the left.
	AdditionalSheet = "Additional_Companies"

	leftSuffix  = "_data1"
	rightSuffix = "_data2"
)

// ErrMissingColumn indicates a table lacks the key column.
var ErrMissingColumn = errors.New("merge: key column not found")

// Result is the outcome of Combine.
type Result struct {
	Combined   *sheet.Table
	Additional *sheet.Table
}

// Tables returns the result sheets in output order.
func (r *Result) Tables() []*sheet.Table {
	return []*sheet.Table{r.Combined, r.Additional}
}

// NormalizeKey folds a company name for matching: surrounding and repeated
// whitespace, letter case and diacritics are ignored.
func NormalizeKey(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(folded), " ")
}

// Combine left-joins left with right on key.
//
// Every left row appears in Combined at least once, followed by one row per
// additional right match. Non-key columns present in both tables are
// suffixed "_data1" and "_data2". Right rows whose key matches no left row
// go to Additional. Key cells are written trimmed. Empty keys never match.
func Combine(left, right *sheet.Table, key string) (*Result, error) {
	lk, rk := left.Column(key), right.Column(key)
	if lk < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrMissingColumn, key, left.Name)
	}
	if rk < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrMissingColumn, key, right.Name)
	}

	shared := make(map[string]bool)
	for i, h := range right.Header {
		if i != rk && left.Column(strings.TrimSpace(h)) >= 0 {
			shared[strings.TrimSpace(h)] = true
		}
	}

	header := make([]string, 0, len(left.Header)+len(right.Header)-1)
	for i, h := range left.Header {
		header = append(header, columnName(h, i == lk, shared, leftSuffix))
	}
	rightCols := make([]int, 0, len(right.Header)-1)
	for i, h := range right.Header {
		if i == rk {
			continue
		}
		rightCols = append(rightCols, i)
		header = append(header, columnName(h, false, shared, rightSuffix))
	}

	index := make(map[string][]int)
	for r := range right.Rows {
		if k := NormalizeKey(right.Cell(r, rk)); k != "" {
			index[k] = append(index[k], r)
		}
	}

	combined := &sheet.Table{Name: CombinedSheet, Header: header}
	matched := make(map[string]bool)
	for l := range left.Rows {
		base := make([]string, len(left.Header))
		for c := range left.Header {
			base[c] = left.Cell(l, c)
		}
		base[lk] = strings.TrimSpace(base[lk])

		k := NormalizeKey(base[lk])
		matches := index[k]
		if k != "" {
			matched[k] = true
		}
		if len(matches) == 0 {
			combined.Rows = append(combined.Rows, append(base, make([]string, len(rightCols))...))
			continue
		}
		for _, r := range matches {
			row := append([]string(nil), base...)
			for _, c := range rightCols {
				row = append(row, right.Cell(r, c))
			}
			combined.Rows = append(combined.Rows, row)
		}
	}

	additional := &sheet.Table{Name: AdditionalSheet, Header: append([]string(nil), right.Header...)}
	for r := range right.Rows {
		if matched[NormalizeKey(right.Cell(r, rk))] {
			continue
		}
		row := make([]string, len(right.Header))
		for c := range right.Header {
			row[c] = right.Cell(r, c)
		}
		row[rk] = strings.TrimSpace(row[rk])
		additional.Rows = append(additional.Rows, row)
	}

	return &Result{Combined: combined, Additional: additional}, nil
}

func columnName(h string, isKey bool, shared map[string]bool, suffix string) string {
	h = strings.TrimSpace(h)
	if !isKey && shared[h] {
		return h + suffix
	}
	return h
}
