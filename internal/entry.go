// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/starford/sowilo/internal/build"
	"github.com/starford/sowilo/internal/filter"
	"github.com/starford/sowilo/internal/models"
	"github.com/starford/sowilo/internal/storage"
	"github.com/starford/sowilo/web"
)

// Run performs one full build with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	if _, err := build.Run(ctx, app.settings(), app.log); err != nil {
		return err
	}
	return nil
}

// QueryOptions are the filter inputs of Query.
type QueryOptions struct {
	Tags   []string
	Search string
}

// Query parses the source tree and applies the index-page filter to it
// without writing anything.
func Query(ctx context.Context, q QueryOptions, opts ...Option) (filter.Result, error) {
	app, err := newApplication(opts)
	if err != nil {
		return filter.Result{}, err
	}

	col, err := build.Collect(ctx, app.settings(), app.log)
	if err != nil {
		return filter.Result{}, err
	}

	c := filter.New(models.Summaries(col.Articles))
	for _, t := range q.Tags {
		if !c.IsSelected(t) {
			c.ToggleTag(t)
		}
	}
	c.SetQuery(q.Search)
	return c.Render(), nil
}

// WriteTemplates copies the built-in templates and assets into the
// configured template directory, leaving existing files alone. It returns
// the names written.
func WriteTemplates(_ context.Context, opts ...Option) ([]string, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	logger := app.log

	dst, err := storage.NewFS(app.config.Build.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	var written []string
	for _, name := range []string{web.IndexTemplate, web.ArticleTemplate, web.Stylesheet, web.AppScript} {
		if _, err := dst.Read(name); err == nil {
			logger.Info("Template exists, keeping", slog.String("name", name))
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("templates: %w", err)
		}
		data, err := web.FS.ReadFile(name)
		if err != nil {
			return written, fmt.Errorf("templates: built-in %s: %w", name, err)
		}
		if err := dst.Write(name, data); err != nil {
			return written, fmt.Errorf("templates: %w", err)
		}
		logger.Info("Template written", slog.String("name", name))
		written = append(written, name)
	}
	return written, nil
}

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.logOut == nil {
		app.logOut = os.Stdout
	}

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOut, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	app.log = logger

	cfg := app.config
	logger.Info("Configuration loaded",
		slog.String("source_dir", cfg.Build.SourceDir),
		slog.String("output_dir", cfg.Build.OutputDir),
		slog.String("template_dir", cfg.Build.TemplateDir),
		slog.String("highlight_style", cfg.Highlight.Style),
		slog.Bool("git", cfg.Git.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	return app, nil
}

func (a *application) settings() build.Settings {
	cfg := a.config
	return build.Settings{
		SourceDir:      cfg.Build.SourceDir,
		OutputDir:      cfg.Build.OutputDir,
		TemplateDir:    cfg.Build.TemplateDir,
		HighlightStyle: cfg.Highlight.Style,
		Languages:      cfg.Highlight.Languages,
		UseGit:         cfg.Git.Enabled,
	}
}
