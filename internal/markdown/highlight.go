package markdown

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/starford/sowilo/internal/apperr"
)

// Highlighter renders code to inline-styled HTML for a fixed set of
// languages chosen at construction.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	lexers    map[string]chroma.Lexer // keyed by canonical lexer name
}

// NewHighlighter loads style and one lexer per language. Unknown styles or
// languages are an error.
func NewHighlighter(style string, languages []string) (*Highlighter, error) {
	st, ok := styles.Registry[style]
	if !ok {
		return nil, fmt.Errorf("markdown: unknown highlight style %q", style)
	}
	h := &Highlighter{
		style:     st,
		formatter: chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(2)),
		lexers:    make(map[string]chroma.Lexer, len(languages)),
	}
	for _, lang := range languages {
		l := lexers.Get(lang)
		if l == nil {
			return nil, fmt.Errorf("markdown: unknown language %q", lang)
		}
		h.lexers[l.Config().Name] = chroma.Coalesce(l)
	}
	return h, nil
}

// Languages returns the canonical names of the loaded lexers.
func (h *Highlighter) Languages() []string {
	out := make([]string, 0, len(h.lexers))
	for name := range h.lexers {
		out = append(out, name)
	}
	return out
}

// Highlight renders code as a highlighted <pre> block. Aliases such as "js"
// resolve to their loaded lexer.
func (h *Highlighter) Highlight(code, lang string) (string, error) {
	l, ok := h.lookup(lang)
	if !ok {
		return "", fmt.Errorf("%w: %q", apperr.ErrUnsupportedLanguage, lang)
	}
	it, err := l.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("markdown: tokenise %s: %w", lang, err)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", fmt.Errorf("markdown: format %s: %w", lang, err)
	}
	return b.String(), nil
}

func (h *Highlighter) lookup(lang string) (chroma.Lexer, bool) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil, false
	}
	l := lexers.Get(lang)
	if l == nil {
		return nil, false
	}
	loaded, ok := h.lexers[l.Config().Name]
	return loaded, ok
}
