package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// headingRenderer wraps heading text in a self-link so every section can be
// deep-linked:
//
//	<h2 id="setup" tabindex="-1"><a class="header-anchor" href="#setup"><span>Setup</span></a></h2>
type headingRenderer struct{}

func (r *headingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *headingRenderer) renderHeading(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	id, hasID := headingID(n)
	if entering {
		_, _ = w.WriteString("<h")
		_ = w.WriteByte("0123456"[n.Level])
		if n.Attributes() != nil {
			html.RenderAttributes(w, node, html.HeadingAttributeFilter)
		}
		_, _ = w.WriteString(` tabindex="-1">`)
		if hasID {
			_, _ = w.WriteString(`<a class="header-anchor" href="#`)
			_, _ = w.Write(util.EscapeHTML(id))
			_, _ = w.WriteString(`"><span>`)
		}
		return ast.WalkContinue, nil
	}
	if hasID {
		_, _ = w.WriteString("</span></a>")
	}
	_, _ = w.WriteString("</h")
	_ = w.WriteByte("0123456"[n.Level])
	_, _ = w.WriteString(">\n")
	return ast.WalkContinue, nil
}

func headingID(n *ast.Heading) ([]byte, bool) {
	v, ok := n.AttributeString("id")
	if !ok {
		return nil, false
	}
	switch id := v.(type) {
	case []byte:
		return id, len(id) > 0
	case string:
		return []byte(id), id != ""
	}
	return nil, false
}
