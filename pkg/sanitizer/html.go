// Package sanitizer turns HTML into plain text for message alternatives and
// for values scraped from web pages.
package sanitizer

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// StrictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()
	})
}

var (
	// blockEnd matches tags after which rendered HTML starts a new line.
	blockEnd = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|h[1-6]|li|tr|table|blockquote)>`)
	spaces   = regexp.MustCompile(`[ \t\f\v]+`)
	blanks   = regexp.MustCompile(`\n{3,}`)
)

// StripHTML removes every tag and returns the text content with entities
// decoded and surrounding whitespace trimmed.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// PlainText renders an HTML email body as readable plain text:
// block elements become line breaks, runs of spaces collapse and at most one
// empty line separates paragraphs.
func PlainText(s string) string {
	initPolicies()
	s = blockEnd.ReplaceAllStringFunc(s, func(tag string) string { return tag + "\n" })
	s = html.UnescapeString(strictPolicy.Sanitize(s))

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaces.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	return strings.TrimSpace(blanks.ReplaceAllString(s, "\n\n"))
}

// CleanText collapses an extracted HTML text node to a single line.
func CleanText(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}
