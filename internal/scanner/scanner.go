// Package scanner discovers markdown notes under a source directory.
package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Ext is the suffix a file must carry to be considered a note.
const Ext = ".md"

// Resolve returns root as an absolute path with symlinks evaluated, so a
// symlinked source directory is walked like a real one.
func Resolve(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("scanner: resolve root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("scanner: resolve root: %w", err)
	}
	return resolved, nil
}

// Scan walks the resolved root depth-first and returns the absolute path of
// every regular file ending in .md, sorted lexically. Any unreadable
// directory aborts the scan.
func Scan(root string) ([]string, error) {
	abs, err := Resolve(root)
	if err != nil {
		return nil, err
	}
	var out []string
	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), Ext) {
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanner: walk %s: %w", abs, err)
	}
	sort.Strings(out)
	return out, nil
}
