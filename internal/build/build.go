// Package build sequences a full, non-incremental site build:
// highlighter setup, scan, parse, tag counting and generation.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/starford/sowilo/internal/apperr"
	"github.com/starford/sowilo/internal/markdown"
	"github.com/starford/sowilo/internal/models"
	"github.com/starford/sowilo/internal/parser"
	"github.com/starford/sowilo/internal/scanner"
	"github.com/starford/sowilo/internal/site"
	"github.com/starford/sowilo/internal/storage"
)

// Settings are the inputs of one build.
type Settings struct {
	SourceDir      string
	OutputDir      string
	TemplateDir    string
	HighlightStyle string
	Languages      []string
	UseGit         bool
}

// Collection is the parsed state of a source tree.
type Collection struct {
	Articles []models.Article
	Tags     *models.TagTable
	Scanned  int
	Skipped  int // notes without `blog: true`
	Failed   int
}

// Result summarizes a finished build.
type Result struct {
	Scanned  int
	Articles int
	Skipped  int
	Failed   int
	Tags     int
}

// Collect scans the source directory and parses every note. Notes that fail
// to parse are logged and left out; only highlighter setup and scanning
// errors are returned.
func Collect(ctx context.Context, s Settings, logger *slog.Logger) (*Collection, error) {
	hl, err := markdown.NewHighlighter(s.HighlightStyle, s.Languages)
	if err != nil {
		return nil, fmt.Errorf("build: init highlighter: %w", err)
	}
	root, err := scanner.Resolve(s.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	p := parser.New(root, markdown.New(hl), newDater(s, logger))

	files, err := scanner.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	logger.Info("Found markdown files", slog.Int("count", len(files)))

	col := &Collection{Scanned: len(files), Articles: []models.Article{}}
	seen := make(map[string]string, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, err := p.Parse(f)
		if errors.Is(err, apperr.ErrNotPublished) {
			col.Skipped++
			logger.Debug("not a blog note", slog.String("path", f))
			continue
		}
		if err != nil {
			col.Failed++
			logger.Warn("skipping note", slog.String("path", f), slog.String("error", err.Error()))
			continue
		}
		if prev, dup := seen[a.ID]; dup {
			col.Failed++
			logger.Warn("skipping note with duplicate id",
				slog.String("path", f),
				slog.String("id", a.ID),
				slog.String("conflicts_with", prev))
			continue
		}
		seen[a.ID] = a.RelativePath
		col.Articles = append(col.Articles, *a)
		logger.Info("article", slog.String("title", a.Title), slog.String("id", a.ID))
	}

	col.Tags = models.CountTags(col.Articles)
	logger.Info("Found blog articles", slog.Int("count", len(col.Articles)))
	return col, nil
}

// Run performs one build and writes the output tree.
func Run(ctx context.Context, s Settings, logger *slog.Logger) (*Result, error) {
	logger.Info("Building blog",
		slog.String("source_dir", s.SourceDir),
		slog.String("output_dir", s.OutputDir),
		slog.String("template_dir", s.TemplateDir))

	col, err := Collect(ctx, s, logger)
	if err != nil {
		return nil, err
	}

	assets, err := site.LoadAssets(s.TemplateDir, logger)
	if err != nil {
		return nil, fmt.Errorf("build: load assets: %w", err)
	}
	out, err := storage.NewFS(s.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	if err := site.New(out, assets, logger).Generate(col.Articles, col.Tags); err != nil {
		return nil, fmt.Errorf("build: generate: %w", err)
	}

	res := &Result{
		Scanned:  col.Scanned,
		Articles: len(col.Articles),
		Skipped:  col.Skipped,
		Failed:   col.Failed,
		Tags:     col.Tags.Len(),
	}
	logger.Info("Build complete",
		slog.Int("articles", res.Articles),
		slog.Int("tags", res.Tags),
		slog.Int("failed", res.Failed))
	return res, nil
}
