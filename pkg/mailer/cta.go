package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ctaPrefix opens a call-to-action link: [!cta|Book a call](https://...).
const ctaPrefix = "[!cta|"

// ctaStyle is inlined because most mail clients drop <style> blocks.
const ctaStyle = "display:inline-block;padding:10px 18px;border-radius:4px;" +
	"background:#1a73e8;color:#ffffff;text-decoration:none;font-weight:bold;"

// KindCTA is the node kind for CTANode.
var KindCTA = ast.NewNodeKind("CTA")

// CTANode is a call-to-action link rendered as a styled button.
type CTANode struct {
	ast.BaseInline
	URL   []byte
	Label []byte
}

func (n *CTANode) Kind() ast.NodeKind { return KindCTA }

func (n *CTANode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"URL":   string(n.URL),
		"Label": string(n.Label),
	}, nil)
}

type ctaParser struct{}

func (ctaParser) Trigger() []byte { return []byte{'['} }

func (ctaParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	rest, ok := bytes.CutPrefix(line, []byte(ctaPrefix))
	if !ok {
		return nil
	}

	label, rest, ok := bytes.Cut(rest, []byte("]("))
	if !ok || bytes.IndexByte(label, ']') >= 0 {
		return nil
	}
	url, _, ok := bytes.Cut(rest, []byte(")"))
	if !ok {
		return nil
	}

	block.Advance(len(ctaPrefix) + len(label) + 2 + len(url) + 1)
	return &CTANode{URL: bytes.TrimSpace(url), Label: label}
}

type ctaRenderer struct{}

func (ctaRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindCTA, renderCTA)
}

func renderCTA(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*CTANode)

	_, _ = w.WriteString(`<a href="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.URL, true)))
	_, _ = w.WriteString(`" style="` + ctaStyle + `">`)
	_, _ = w.Write(util.EscapeHTML(n.Label))
	_, _ = w.WriteString(`</a>`)
	return ast.WalkContinue, nil
}

type ctaExtension struct{}

func (ctaExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(ctaParser{}, 50)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(ctaRenderer{}, 50)))
}

// CTAExtension adds [!cta|Label](URL) call-to-action links to goldmark.
func CTAExtension() goldmark.Extender {
	return ctaExtension{}
}
