package scrape

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmitrymomot/outreach/pkg/sanitizer"
	"github.com/dmitrymomot/outreach/pkg/sheet"
)

// Extract applies p to an HTML document and returns one row per matched item.
// Cell text is the element's text with whitespace collapsed.
func Extract(r io.Reader, p Profile) (*sheet.Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	scope := doc.Selection
	if p.Container != "" {
		scope = doc.Find(p.Container).First()
		if scope.Length() == 0 {
			return nil, fmt.Errorf("%w: %s: %q", ErrContainerNotFound, p.Name, p.Container)
		}
	}

	t := &sheet.Table{Name: "Sheet1", Header: p.Columns()}
	scope.Find(p.Item).Each(func(_ int, item *goquery.Selection) {
		if row, ok := extractRow(item, p.Fields); ok {
			t.Rows = append(t.Rows, row)
		}
	})
	return t, nil
}

// ExtractFile reads the HTML page at path and applies p.
func ExtractFile(path string, p Profile) (*sheet.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sheet.ErrNotFound, path, err)
	}
	defer f.Close()

	t, err := Extract(f, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

func extractRow(item *goquery.Selection, fields []Field) ([]string, bool) {
	row := make([]string, len(fields))
	for i, f := range fields {
		sel := item
		if f.Selector != "" {
			sel = item.Find(f.Selector).First()
		}

		value := ""
		if sel.Length() > 0 {
			value = text(sel)
		}
		if value == "" {
			if f.Required {
				return nil, false
			}
			value = f.Default
		}
		row[i] = value
	}
	return row, true
}

func text(sel *goquery.Selection) string {
	inner, err := sel.Html()
	if err != nil {
		return strings.Join(strings.Fields(sel.Text()), " ")
	}
	return sanitizer.CleanText(inner)
}
