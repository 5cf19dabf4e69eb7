package site

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/starford/sowilo/internal/apperr"
)

var placeholderRe = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// Render replaces every {{NAME}} in tmpl with values[NAME] in a single pass;
// substituted text is never rescanned. A placeholder without a value is an
// apperr.ErrUnresolvedPlaceholder. Values that the template does not use
// are ignored.
func Render(tmpl string, values map[string]string) (string, error) {
	var missing []string
	out := placeholderRe.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[2 : len(m)-2]
		v, ok := values[name]
		if !ok {
			missing = appendUnique(missing, name)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", apperr.ErrUnresolvedPlaceholder, strings.Join(missing, ", "))
	}
	return out, nil
}

// Placeholders lists the distinct placeholder names in tmpl in order of
// first appearance.
func Placeholders(tmpl string) []string {
	var out []string
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		out = appendUnique(out, m[1])
	}
	return out
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
