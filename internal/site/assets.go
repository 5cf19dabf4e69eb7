package site

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/sowilo/web"
)

// Assets holds the templates and static files a build renders with.
type Assets struct {
	Index      string
	Article    string
	AppJS      string
	Stylesheet []byte // nil skips style.css
}

// LoadAssets reads templates, app.js and style.css from dir, falling back to
// the embedded defaults for any that are missing.
func LoadAssets(dir string, logger *slog.Logger) (*Assets, error) {
	a := &Assets{}
	for _, item := range []struct {
		name string
		dst  *string
	}{
		{web.IndexTemplate, &a.Index},
		{web.ArticleTemplate, &a.Article},
		{web.AppScript, &a.AppJS},
	} {
		data, err := readOrDefault(dir, item.name, logger)
		if err != nil {
			return nil, err
		}
		*item.dst = string(data)
	}

	css, err := readOrDefault(dir, web.Stylesheet, logger)
	if err != nil {
		return nil, err
	}
	a.Stylesheet = css
	return a, nil
}

func readOrDefault(dir, name string, logger *slog.Logger) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err == nil {
		return data, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("asset not found, using built-in default", slog.String("name", name))
	} else {
		logger.Warn("asset not loaded, using built-in default",
			slog.String("name", name), slog.String("error", err.Error()))
	}
	data, err = web.FS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("site: built-in %s: %w", name, err)
	}
	return data, nil
}
