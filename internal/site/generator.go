// Package site renders parsed articles into the static output tree.
package site

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/starford/sowilo/internal/models"
	"github.com/starford/sowilo/internal/storage"
	"github.com/starford/sowilo/web"
)

// ArticleDir is the output subdirectory holding one page per article.
const ArticleDir = "article"

// DateLayout is the display format for article dates.
const DateLayout = "2006-01-02"

// Generator is the sole writer of the output tree. Every call regenerates
// all pages.
type Generator struct {
	out    storage.Provider
	assets *Assets
	logger *slog.Logger
}

// New creates a Generator writing to out.
func New(out storage.Provider, assets *Assets, logger *slog.Logger) *Generator {
	return &Generator{out: out, assets: assets, logger: logger}
}

// Generate writes index.html, style.css and article/<id>.html.
func (g *Generator) Generate(articles []models.Article, tags *models.TagTable) error {
	if err := g.out.MkdirAll("."); err != nil {
		return fmt.Errorf("site: create output: %w", err)
	}
	if err := g.out.MkdirAll(ArticleDir); err != nil {
		return fmt.Errorf("site: create article dir: %w", err)
	}

	if g.assets.Stylesheet != nil {
		if err := g.out.Write(web.Stylesheet, g.assets.Stylesheet); err != nil {
			g.logger.Warn("stylesheet copy failed", slog.String("error", err.Error()))
		}
	}

	index, err := g.RenderIndex(articles, tags)
	if err != nil {
		return err
	}
	if err := g.out.Write("index.html", []byte(index)); err != nil {
		return fmt.Errorf("site: write index: %w", err)
	}

	for _, a := range articles {
		page, err := g.RenderArticle(a)
		if err != nil {
			return err
		}
		if err := g.out.Write(ArticlePath(a.ID), []byte(page)); err != nil {
			return fmt.Errorf("site: write article %s: %w", a.ID, err)
		}
	}
	return nil
}

// RenderIndex renders the index page.
func (g *Generator) RenderIndex(articles []models.Article, tags *models.TagTable) (string, error) {
	data, err := json.Marshal(models.Summaries(articles))
	if err != nil {
		return "", fmt.Errorf("site: encode articles: %w", err)
	}
	out, err := Render(g.assets.Index, map[string]string{
		"ARTICLES":      string(data),
		"TAG_BUTTONS":   TagButtons(tags),
		"ARTICLE_LIST":  "",
		"APP_JS":        g.assets.AppJS,
		"ARTICLE_COUNT": strconv.Itoa(len(articles)),
		"TAG_COUNT":     strconv.Itoa(tags.Len()),
	})
	if err != nil {
		return "", fmt.Errorf("site: render index: %w", err)
	}
	return out, nil
}

// RenderArticle renders one article page.
func (g *Generator) RenderArticle(a models.Article) (string, error) {
	out, err := Render(g.assets.Article, map[string]string{
		"TITLE":       html.EscapeString(a.Title),
		"TAGS":        TagList(a.Tags),
		"CONTENT":     a.HTML,
		"UPDATED_AT":  FormatDate(a.UpdatedAt),
		"DESCRIPTION": html.EscapeString(a.Description),
	})
	if err != nil {
		return "", fmt.Errorf("site: render article %s: %w", a.ID, err)
	}
	return out, nil
}

// TagButtons renders one filter button per tag, most used first.
func TagButtons(tags *models.TagTable) string {
	var b strings.Builder
	for _, tc := range tags.Sorted() {
		tag := html.EscapeString(tc.Tag)
		n := strconv.Itoa(tc.Count)
		fmt.Fprintf(&b, `<button class="tag-btn" data-tag="%s" data-count="%s">%s <span class="tag-count">%s</span></button>`,
			tag, n, tag, n)
	}
	return b.String()
}

// TagList renders an article's tags as space-separated spans.
func TagList(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = `<span class="tag">` + html.EscapeString(t) + `</span>`
	}
	return strings.Join(parts, " ")
}

// FormatDate renders t as YYYY-MM-DD in UTC, independent of the host
// locale and time zone.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ArticlePath is the output path of an article page relative to the root.
func ArticlePath(id string) string {
	return path.Join(ArticleDir, id+".html")
}
