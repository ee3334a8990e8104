package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/outreach/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips script injection",
			input:    `<p>Hello</p><script>alert('xss')</script>`,
			expected: "Hello",
		},
		{
			name:     "strips all HTML tags",
			input:    `<p>Hello <strong>world</strong></p>`,
			expected: "Hello world",
		},
		{
			name:     "drops images",
			input:    `<img src="cid:my_dynamic_image" alt="Acme">`,
			expected: "",
		},
		{
			name:     "decodes entities",
			input:    `Tom &amp; Jerry`,
			expected: "Tom & Jerry",
		},
		{
			name:     "handles plain text",
			input:    "normal text without HTML",
			expected: "normal text without HTML",
		},
		{
			name:     "handles empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "strips style tags",
			input:    `Hello <STYLE>.XSS{background-image:url("javascript:alert('XSS')");}</STYLE>World`,
			expected: "Hello World",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := sanitizer.StripHTML(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	t.Run("paragraphs become lines", func(t *testing.T) {
		t.Parallel()

		got := sanitizer.PlainText("<p>Hi Ada,</p><p>I'm    passionate about Go.</p><p>Best,<br>Sam</p>")
		assert.Equal(t, "Hi Ada,\nI'm passionate about Go.\nBest,\nSam", got)
	})

	t.Run("collapses blank runs", func(t *testing.T) {
		t.Parallel()

		got := sanitizer.PlainText("<div>one</div>\n\n\n\n<div>two</div>")
		assert.Equal(t, "one\n\ntwo", got)
	})
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Acme Robotics", sanitizer.CleanText("\n  Acme\n\t <b>Robotics</b>  "))
	assert.Equal(t, "", sanitizer.CleanText("   "))
}
