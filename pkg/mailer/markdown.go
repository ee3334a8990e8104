package mailer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is shared; goldmark.Markdown is safe for concurrent use.
// Raw HTML is kept because bound values such as inline image tags are HTML.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, CTAExtension()),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// RenderMarkdown converts a bound markdown body to HTML.
func RenderMarkdown(body string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}
