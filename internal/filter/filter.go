// Package filter holds the tag/search filter that the index page runs in the
// browser (web/app.js). The Go version backs the query command and pins the
// algorithm down in tests.
package filter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/starford/sowilo/internal/models"
)

// NoResults is the placeholder shown when nothing matches.
const NoResults = "No articles found"

// Result is one rendering of the filtered list.
type Result struct {
	Items []models.Summary
	Count int
	Empty bool
	Label string
}

// Controller owns the filter state for one article list: the selected tags
// and the search query. The article list itself is never modified.
type Controller struct {
	articles []models.Summary
	selected map[string]struct{}
	query    string
}

// New creates a Controller over a copy of articles with empty state.
func New(articles []models.Summary) *Controller {
	return &Controller{
		articles: append([]models.Summary(nil), articles...),
		selected: make(map[string]struct{}),
	}
}

// SetQuery stores the lowercased, trimmed search text.
func (c *Controller) SetQuery(q string) {
	c.query = strings.ToLower(strings.TrimSpace(q))
}

// Query returns the normalized search text.
func (c *Controller) Query() string {
	return c.query
}

// ToggleTag adds tag to the selection if absent and removes it otherwise.
// It reports whether tag is selected afterwards.
func (c *Controller) ToggleTag(tag string) bool {
	if _, ok := c.selected[tag]; ok {
		delete(c.selected, tag)
		return false
	}
	c.selected[tag] = struct{}{}
	return true
}

// IsSelected reports whether tag is part of the selection.
func (c *Controller) IsSelected(tag string) bool {
	_, ok := c.selected[tag]
	return ok
}

// SelectedTags returns the selection in lexical order.
func (c *Controller) SelectedTags() []string {
	out := make([]string, 0, len(c.selected))
	for t := range c.selected {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Render filters and sorts the list for the current state: articles must
// carry any selected tag, and their title or description must contain the
// query. Results are newest first; ties keep list order.
func (c *Controller) Render() Result {
	items := make([]models.Summary, 0, len(c.articles))
	for _, a := range c.articles {
		if c.matchesTags(a) && c.matchesQuery(a) {
			items = append(items, a)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return parseTime(items[i].UpdatedAt).After(parseTime(items[j].UpdatedAt))
	})
	return Result{
		Items: items,
		Count: len(items),
		Empty: len(items) == 0,
		Label: fmt.Sprintf("%d Total", len(items)),
	}
}

func (c *Controller) matchesTags(a models.Summary) bool {
	if len(c.selected) == 0 {
		return true
	}
	for _, t := range a.Tags {
		if _, ok := c.selected[t]; ok {
			return true
		}
	}
	return false
}

func (c *Controller) matchesQuery(a models.Summary) bool {
	if c.query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), c.query) ||
		strings.Contains(strings.ToLower(a.Description), c.query)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
