// Package apperr holds the error values shared across the build pipeline.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPublished marks a note without `blog: true`. It is a filter
	// outcome, not a failure.
	ErrNotPublished = errors.New("not published")
	// ErrUnsupportedLanguage is returned by the highlighter for languages
	// outside the configured set.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrUnresolvedPlaceholder is returned when a template references a
	// placeholder nobody supplied.
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")
)

// ParseError reports a note that could not be turned into an article.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
