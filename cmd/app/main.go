package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/sowilo/internal"
	pkgconfig "github.com/starford/sowilo/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	root := cmd.Root()
	configPath := root.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if v := root.String("source"); v != "" {
		cfg.Build.SourceDir = v
	}
	if v := root.String("output"); v != "" {
		cfg.Build.OutputDir = v
	}
	if v := root.String("templates"); v != "" {
		cfg.Build.TemplateDir = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runBuild(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("build error: %w", err)
	}
	return nil
}

func runQuery(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	res, err := internal.Query(ctx,
		internal.QueryOptions{
			Tags:   cmd.StringSlice("tag"),
			Search: cmd.String("search"),
		},
		internal.WithConfig(cfg),
		internal.WithLogOutput(os.Stderr),
	)
	if err != nil {
		return fmt.Errorf("query error: %w", err)
	}
	return printResult(os.Stdout, res)
}

func runTemplates(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if _, err := internal.WriteTemplates(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("templates error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "sowilo",
		Usage:  "Static blog builder for tagged Markdown notes",
		Action: runBuild,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (defaults apply when it does not exist)",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "source",
				Usage:   "Directory of Markdown notes (overrides build.source_dir)",
				Sources: cli.EnvVars("SOWILO_SOURCE_DIR"),
			},
			&cli.StringFlag{
				Name:    "output",
				Usage:   "Output directory (overrides build.output_dir)",
				Sources: cli.EnvVars("SOWILO_OUTPUT_DIR"),
			},
			&cli.StringFlag{
				Name:    "templates",
				Usage:   "Template and asset directory (overrides build.template_dir)",
				Sources: cli.EnvVars("SOWILO_TEMPLATE_DIR"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Regenerate the whole site once",
				Action: runBuild,
			},
			{
				Name:  "query",
				Usage: "List published articles using the index page filter",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "tag",
						Usage: "Show articles carrying this tag (repeatable, OR semantics)",
					},
					&cli.StringFlag{
						Name:  "search",
						Usage: "Case-insensitive substring of title or description",
					},
				},
				Action: runQuery,
			},
			{
				Name:   "templates",
				Usage:  "Write the built-in templates into the template directory",
				Action: runTemplates,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
