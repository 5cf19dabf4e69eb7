package parser

import (
	"bytes"
	"fmt"
	"strings"
)

// Meta is the typed frontmatter of a note. Missing or mistyped optional
// fields fall back to their zero values.
type Meta struct {
	Blog        bool
	Tags        []string
	Description string
}

// rawMeta receives the frontmatter as decoded, before normalization.
type rawMeta struct {
	Blog        publishFlag `yaml:"blog" toml:"blog" json:"blog"`
	Tags        any `yaml:"tags" toml:"tags" json:"tags"`
	Description any `yaml:"description" toml:"description" json:"description"`
}

func (r rawMeta) normalize() Meta {
	desc, _ := r.Description.(string)
	return Meta{
		Blog:        bool(r.Blog),
		Tags:        normalizeTags(r.Tags),
		Description: desc,
	}
}

// publishFlag is set only by a boolean literal true. YAML 1.1 spellings such
// as yes, on or y, and quoted strings, leave it false.
type publishFlag bool

func (f *publishFlag) UnmarshalYAML(unmarshal func(any) error) error {
	*f = false
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	if on, ok := v.(bool); !ok || !on {
		return nil
	}
	var text string
	if err := unmarshal(&text); err != nil {
		return nil
	}
	*f = publishFlag(strings.EqualFold(text, "true"))
	return nil
}

func (f *publishFlag) UnmarshalJSON(data []byte) error {
	*f = publishFlag(bytes.Equal(bytes.TrimSpace(data), []byte("true")))
	return nil
}

func (f *publishFlag) UnmarshalTOML(v any) error {
	on, _ := v.(bool)
	*f = publishFlag(on)
	return nil
}

// normalizeTags accepts a sequence or a single string. Scalar items are
// kept in their text form; empty strings and nested collections are dropped.
func normalizeTags(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) != "" {
			out = append(out, t)
		}
	case []string:
		for _, s := range t {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range t {
			if s, ok := scalarText(item); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func scalarText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, strings.TrimSpace(s) != ""
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(s), true
	}
	return "", false
}
