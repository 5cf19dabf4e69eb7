package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Build     BuildConfig       `yaml:"build"`
	Highlight HighlightConfig   `yaml:"highlight"`
	Git       GitConfig         `yaml:"git"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Build.Validate(); err != nil {
		return err
	}
	return c.Highlight.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// BuildConfig holds the three directories a build works with.
// Validate resolves every path to an absolute one and follows a symlinked
// source directory.
type BuildConfig struct {
	SourceDir   string `yaml:"source_dir"`
	OutputDir   string `yaml:"output_dir"`
	TemplateDir string `yaml:"template_dir"`
}

// Validate validates the build configuration and makes its paths absolute.
func (c *BuildConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.SourceDir, validation.Required),
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.TemplateDir, validation.Required),
	); err != nil {
		return err
	}
	for _, p := range []*string{&c.SourceDir, &c.OutputDir, &c.TemplateDir} {
		abs, err := filepath.Abs(*p)
		if err != nil {
			return fmt.Errorf("build: resolve %s: %w", *p, err)
		}
		*p = abs
	}
	// A symlinked source root is replaced by its target so the scanner
	// descends into it and relative note paths stay under it.
	if _, err := os.Stat(c.SourceDir); err == nil {
		resolved, err := filepath.EvalSymlinks(c.SourceDir)
		if err != nil {
			return fmt.Errorf("build: resolve %s: %w", c.SourceDir, err)
		}
		c.SourceDir = resolved
	}
	if c.SourceDir == c.OutputDir {
		return fmt.Errorf("build: output_dir must differ from source_dir (%s)", c.SourceDir)
	}
	return nil
}

// HighlightConfig selects the code highlighting style and the languages
// loaded at startup.
type HighlightConfig struct {
	Style     string   `yaml:"style"`
	Languages []string `yaml:"languages"`
}

// Validate validates the highlight configuration.
func (c *HighlightConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Style, validation.Required),
		validation.Field(&c.Languages, validation.Required, validation.Each(validation.Required)),
	)
}

// GitConfig controls last-updated lookups through repository history.
type GitConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultLanguages is the fixed set of languages the highlighter loads
// unless configured otherwise.
var DefaultLanguages = []string{
	"javascript", "typescript", "json", "bash", "markdown",
	"html", "css", "python", "yaml",
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Build: BuildConfig{
			SourceDir:   "../note",
			OutputDir:   "../dist",
			TemplateDir: "./templates",
		},
		Highlight: HighlightConfig{
			Style:     "github",
			Languages: append([]string(nil), DefaultLanguages...),
		},
		Git: GitConfig{
			Enabled: true,
		},
	}
}
