// Package parser turns a markdown note into an Article: frontmatter,
// publish gate, rendered body, last-updated time and a path-derived id.
package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/starford/sowilo/internal/apperr"
	"github.com/starford/sowilo/internal/models"
)

// Renderer converts a markdown body to HTML.
type Renderer interface {
	Render(body []byte) (string, error)
}

// Dater reports when a file was last updated.
type Dater interface {
	UpdatedAt(absPath string) (time.Time, error)
}

// Parser parses notes located under a single source root.
type Parser struct {
	root     string
	renderer Renderer
	dater    Dater
}

// New creates a Parser for notes under root.
func New(root string, renderer Renderer, dater Dater) *Parser {
	return &Parser{root: root, renderer: renderer, dater: dater}
}

// Parse reads absPath and builds its Article. Notes without `blog: true`
// yield apperr.ErrNotPublished; every other failure is an
// *apperr.ParseError carrying the path.
func (p *Parser) Parse(absPath string) (*models.Article, error) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, &apperr.ParseError{Path: absPath, Err: err}
	}

	meta, body, err := SplitFrontmatter(data)
	if err != nil {
		return nil, &apperr.ParseError{Path: absPath, Err: err}
	}
	if !meta.Blog {
		return nil, apperr.ErrNotPublished
	}

	rel, err := filepath.Rel(p.root, absPath)
	if err != nil {
		return nil, &apperr.ParseError{Path: absPath, Err: err}
	}
	rel = filepath.ToSlash(rel)

	html, err := p.renderer.Render(body)
	if err != nil {
		return nil, &apperr.ParseError{Path: absPath, Err: err}
	}

	updated, err := p.dater.UpdatedAt(absPath)
	if err != nil {
		return nil, &apperr.ParseError{Path: absPath, Err: err}
	}

	return &models.Article{
		ID:           ID(rel),
		Title:        Title(absPath),
		Content:      string(body),
		HTML:         html,
		Tags:         meta.Tags,
		Description:  meta.Description,
		UpdatedAt:    updated,
		RelativePath: rel,
	}, nil
}

var utf8BOM = []byte("\xef\xbb\xbf")

// SplitFrontmatter separates the metadata block (YAML `---`, TOML `+++` or
// JSON) from the markdown body. A leading UTF-8 byte order mark is ignored.
// Content without a block has empty Meta.
func SplitFrontmatter(data []byte) (Meta, []byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	var raw rawMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &raw)
	if err != nil {
		return Meta{}, nil, fmt.Errorf("parser: frontmatter: %w", err)
	}
	return raw.normalize(), body, nil
}

var idReplacer = strings.NewReplacer("/", "_", `\`, "_")

// ID derives a flat article id from a path relative to the source root:
// the .md suffix is dropped and every path separator becomes "_".
func ID(relPath string) string {
	return idReplacer.Replace(strings.TrimSuffix(relPath, ".md"))
}

// Title is the file name without its .md extension.
func Title(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}
