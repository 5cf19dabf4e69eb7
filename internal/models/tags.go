package models

import "sort"

// TagCount is one row of a TagTable.
type TagCount struct {
	Tag   string
	Count int
}

// TagTable counts how many articles carry each tag. Tags keep the order in
// which they were first encountered.
type TagTable struct {
	order  []string
	counts map[string]int
}

// NewTagTable returns an empty table.
func NewTagTable() *TagTable {
	return &TagTable{counts: make(map[string]int)}
}

// CountTags builds a table over articles. An article listing the same tag
// more than once contributes a single count.
func CountTags(articles []Article) *TagTable {
	t := NewTagTable()
	for _, a := range articles {
		t.Add(a.Tags)
	}
	return t
}

// Add records one article carrying tags.
func (t *TagTable) Add(tags []string) {
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		if _, ok := t.counts[tag]; !ok {
			t.order = append(t.order, tag)
		}
		t.counts[tag]++
	}
}

// Count returns the number of articles carrying tag.
func (t *TagTable) Count(tag string) int {
	return t.counts[tag]
}

// Len returns the number of distinct tags.
func (t *TagTable) Len() int {
	return len(t.order)
}

// Sorted returns the table ordered by descending count. Ties keep
// first-seen order.
func (t *TagTable) Sorted() []TagCount {
	out := make([]TagCount, len(t.order))
	for i, tag := range t.order {
		out[i] = TagCount{Tag: tag, Count: t.counts[tag]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
