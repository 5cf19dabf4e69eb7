// Package markdown renders note bodies to HTML: raw HTML passthrough,
// autolinked URLs, typographic quotes and dashes, heading anchors and
// highlighted fenced code.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Renderer converts markdown to HTML. It is safe to reuse across files.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer whose fenced code blocks go through hl.
func New(hl *Highlighter) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&headingRenderer{}, 100),
				util.Prioritized(&codeBlockRenderer{hl: hl}, 100),
			),
		),
	)
	return &Renderer{md: md}
}

// Render converts a markdown body (frontmatter already removed) to HTML.
func (r *Renderer) Render(body []byte) (string, error) {
	var buf bytes.Buffer
	pc := parser.NewContext(parser.WithIDs(newSlugIDs()))
	if err := r.md.Convert(body, &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}
	return buf.String(), nil
}

// codeBlockRenderer highlights fenced code, falling back to an escaped
// plain block when the language is missing or unsupported.
type codeBlockRenderer struct {
	hl *Highlighter
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	code := blockText(n, source)

	if r.hl != nil {
		if out, err := r.hl.Highlight(code, string(n.Language(source))); err == nil {
			_, _ = w.WriteString(out)
			return ast.WalkSkipChildren, nil
		}
	}

	_, _ = w.WriteString("<pre><code>")
	_, _ = w.Write(util.EscapeHTML([]byte(code)))
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func blockText(n *ast.FencedCodeBlock, source []byte) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(source))
	}
	return b.String()
}
