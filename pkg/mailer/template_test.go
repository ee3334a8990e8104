package mailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/outreach/pkg/mailer"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		subject string
		body    string
		format  mailer.Format
	}{
		{
			name:    "subject prefix is stripped",
			file:    "intro.html",
			content: "Subject: Hello {company}\n---\n<p>Hi {first_name}</p>\n",
			subject: "Hello {company}",
			body:    "<p>Hi {first_name}</p>",
			format:  mailer.FormatHTML,
		},
		{
			name:    "no prefix",
			file:    "intro.html",
			content: "Quick question\n---\nBody",
			subject: "Quick question",
			body:    "Body",
		},
		{
			name:    "whitespace around delimiter and sections",
			file:    "intro.html",
			content: "\n  Subject:   Spaced out  \n   ---   \n\n  Body line 1\nBody line 2\n\n",
			subject: "Spaced out",
			body:    "Body line 1\nBody line 2",
		},
		{
			name:    "markdown format from extension",
			file:    "intro.md",
			content: "Subject: Hi\n---\n# Title",
			subject: "Hi",
			body:    "# Title",
			format:  mailer.FormatMarkdown,
		},
		{
			name:    "dashes inside a line are body text",
			file:    "intro.html",
			content: "Subject: Hi\n---\nBefore --- after",
			subject: "Hi",
			body:    "Before --- after",
		},
		{
			name:    "crlf line endings",
			file:    "intro.html",
			content: "Subject: Hi\r\n---\r\nBody\r\n",
			subject: "Hi",
			body:    "Body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := mailer.ParseTemplate(tt.file, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.file, tmpl.Name)
			assert.Equal(t, tt.subject, tmpl.Subject)
			assert.Equal(t, tt.body, tmpl.Body)
			assert.Equal(t, tt.format, tmpl.Format)
		})
	}
}

func TestParseTemplate_Malformed(t *testing.T) {
	t.Parallel()

	for name, content := range map[string]string{
		"no delimiter":   "Subject: Hi\nBody",
		"two delimiters": "Subject: Hi\n---\nBody\n---\nFooter",
		"empty":          "",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := mailer.ParseTemplate("bad.html", []byte(content))
			require.ErrorIs(t, err, mailer.ErrMalformedTemplate)
			assert.Contains(t, err.Error(), "bad.html")
		})
	}
}

func TestFormatFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mailer.FormatMarkdown, mailer.FormatFor("a.md"))
	assert.Equal(t, mailer.FormatMarkdown, mailer.FormatFor("a.MARKDOWN"))
	assert.Equal(t, mailer.FormatHTML, mailer.FormatFor("a.html"))
	assert.Equal(t, mailer.FormatHTML, mailer.FormatFor("a.txt"))
}
