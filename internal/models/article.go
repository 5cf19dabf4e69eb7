// Package models defines the domain types for Sowilo.
package models

import "time"

// Article is a published note, parsed once per build and never mutated.
type Article struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"-"`
	HTML         string    `json:"-"`
	Tags         []string  `json:"tags"`
	Description  string    `json:"description"`
	UpdatedAt    time.Time `json:"updated_at"`
	RelativePath string    `json:"relative_path"`
}

// Summary is the lightweight record embedded in the index page for the
// client-side filter.
type Summary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	UpdatedAt   string   `json:"updatedAt"`
}

// TimestampLayout is the ISO 8601 form used for UpdatedAt on the wire.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Summary returns the client-side representation of a.
func (a Article) Summary() Summary {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return Summary{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Tags:        tags,
		UpdatedAt:   a.UpdatedAt.UTC().Format(TimestampLayout),
	}
}

// Summaries maps Summary over articles, preserving order.
func Summaries(articles []Article) []Summary {
	out := make([]Summary, len(articles))
	for i, a := range articles {
		out[i] = a.Summary()
	}
	return out
}
