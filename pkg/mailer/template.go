package mailer

import (
	"bufio"
	"bytes"
	"fmt"
	"path"
	"strings"
)

// subjectPrefix is stripped from the subject section of a template.
const subjectPrefix = "Subject: "

// delimiter separates the subject section from the body section.
const delimiter = "---"

// Format identifies how a template body is authored.
type Format int

const (
	// FormatHTML bodies are sent as-is after binding.
	FormatHTML Format = iota
	// FormatMarkdown bodies are converted to HTML after binding.
	FormatMarkdown
)

// Template is a parsed subject/body pattern pair.
type Template struct {
	Name    string
	Subject string
	Body    string
	Format  Format
}

// FormatFor returns the body format implied by a template filename.
func FormatFor(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatHTML
	}
}

// ParseTemplate splits template content into subject and body patterns.
//
// The content must contain exactly one line that consists of "---"
// (surrounding whitespace allowed). Text before it is the subject, with an
// optional leading "Subject: " removed; text after it is the body. Both are
// whitespace trimmed.
func ParseTemplate(name string, content []byte) (*Template, error) {
	var (
		head, body  bytes.Buffer
		delimiters  int
		sc          = bufio.NewScanner(bytes.NewReader(content))
		current     = &head
		lineWritten bool
	)
	sc.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == delimiter {
			delimiters++
			current = &body
			lineWritten = false
			continue
		}
		if lineWritten {
			current.WriteByte('\n')
		}
		current.WriteString(line)
		lineWritten = true
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedTemplate, name, err)
	}

	switch delimiters {
	case 0:
		return nil, fmt.Errorf("%w: %s: missing %q line between subject and body", ErrMalformedTemplate, name, delimiter)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s: found %d %q lines, expected one", ErrMalformedTemplate, name, delimiters, delimiter)
	}

	subject := strings.TrimSpace(head.String())
	subject = strings.TrimSpace(strings.TrimPrefix(subject, subjectPrefix))

	return &Template{
		Name:    name,
		Subject: subject,
		Body:    strings.TrimSpace(body.String()),
		Format:  FormatFor(name),
	}, nil
}
