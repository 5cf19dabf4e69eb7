package markdown

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark/ast"
)

// Slug lowercases s, joins whitespace runs with "-" and drops punctuation.
// Letters and digits of every script are kept, so "你好 World" becomes
// "你好-world".
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsSpace(r):
			pendingDash = b.Len() > 0
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r) || r == '-' || r == '_':
			if pendingDash {
				b.WriteByte('-')
				pendingDash = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// slugIDs hands out unique heading ids for one document. Repeated slugs get
// "-1", "-2", ... suffixes.
type slugIDs struct {
	used map[string]struct{}
}

func newSlugIDs() *slugIDs {
	return &slugIDs{used: make(map[string]struct{})}
}

func (s *slugIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := Slug(string(value))
	if base == "" {
		if kind == ast.KindHeading {
			base = "heading"
		} else {
			base = "id"
		}
	}
	id := base
	for i := 1; ; i++ {
		if _, taken := s.used[id]; !taken {
			break
		}
		id = base + "-" + strconv.Itoa(i)
	}
	s.used[id] = struct{}{}
	return []byte(id)
}

func (s *slugIDs) Put(value []byte) {
	s.used[string(value)] = struct{}{}
}
