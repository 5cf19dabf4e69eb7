// Package vcs looks up when a note last changed, preferring repository
// history over filesystem timestamps.
package vcs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// History answers last-commit queries against the git repository enclosing
// a directory. The history is walked once, in Open. A History without a
// repository misses every lookup.
type History struct {
	repo   *git.Repository
	root   string               // worktree root with symlinks resolved
	latest map[string]time.Time // slash path -> newest committer time
}

// Open finds the repository containing dir and indexes its history. On
// failure it logs at debug level and returns an empty History.
func Open(dir string, logger *slog.Logger) *History {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		logger.Debug("vcs: no repository", slog.String("dir", dir), slog.String("error", err.Error()))
		return &History{}
	}
	wt, err := repo.Worktree()
	if err != nil {
		logger.Debug("vcs: no worktree", slog.String("dir", dir), slog.String("error", err.Error()))
		return &History{}
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		logger.Debug("vcs: resolve worktree", slog.String("dir", dir), slog.String("error", err.Error()))
		return &History{}
	}
	latest, err := indexHistory(repo)
	if err != nil {
		logger.Debug("vcs: read history", slog.String("root", root), slog.String("error", err.Error()))
		return &History{}
	}
	logger.Debug("vcs: repository indexed", slog.String("root", root), slog.Int("paths", len(latest)))
	return &History{repo: repo, root: root, latest: latest}
}

// indexHistory walks every commit reachable from HEAD once and records, per
// path, the newest committer time of a commit that changed it. An unborn
// HEAD yields an empty index.
func indexHistory(repo *git.Repository) (map[string]time.Time, error) {
	latest := make(map[string]time.Time)
	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return latest, nil
	}
	if err != nil {
		return nil, err
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		paths, err := changedPaths(c)
		if err != nil {
			return fmt.Errorf("commit %s: %w", c.Hash, err)
		}
		when := c.Committer.When
		for _, p := range paths {
			if t, ok := latest[p]; !ok || when.After(t) {
				latest[p] = when
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return latest, nil
}

// changedPaths lists the files a commit introduced. A root commit introduces
// its whole tree; a merge counts only paths that differ from every parent.
func changedPaths(c *object.Commit) ([]string, error) {
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}
	if c.NumParents() == 0 {
		var out []string
		err := tree.Files().ForEach(func(f *object.File) error {
			out = append(out, f.Name)
			return nil
		})
		return out, err
	}

	hits := make(map[string]int)
	parents := 0
	err = c.Parents().ForEach(func(p *object.Commit) error {
		ptree, err := p.Tree()
		if err != nil {
			return err
		}
		changes, err := object.DiffTree(ptree, tree)
		if err != nil {
			return err
		}
		for _, ch := range changes {
			if ch.To.Name != "" {
				hits[ch.To.Name]++
			}
		}
		parents++
		return nil
	})
	if err != nil {
		return nil, err
	}
	var out []string
	for p, n := range hits {
		if n == parents {
			out = append(out, p)
		}
	}
	return out, nil
}

// Enabled reports whether lookups can hit.
func (h *History) Enabled() bool {
	return h != nil && h.repo != nil
}

// LastCommit returns the committer time of the newest commit touching
// absPath. ok is false for untracked files and files outside the worktree.
func (h *History) LastCommit(absPath string) (when time.Time, ok bool) {
	if !h.Enabled() {
		return time.Time{}, false
	}
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return time.Time{}, false
	}
	rel, err := filepath.Rel(h.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return time.Time{}, false
	}
	when, ok = h.latest[filepath.ToSlash(rel)]
	return when, ok
}

// Dater resolves the last-updated time of a note.
type Dater struct {
	history *History
}

// NewDater returns a Dater backed by h. A nil h means filesystem times only.
func NewDater(h *History) *Dater {
	return &Dater{history: h}
}

// UpdatedAt prefers the last commit time and silently falls back to the
// file's modification time.
func (d *Dater) UpdatedAt(absPath string) (time.Time, error) {
	if t, ok := d.history.LastCommit(absPath); ok {
		return t, nil
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return time.Time{}, fmt.Errorf("vcs: stat %s: %w", absPath, err)
	}
	return info.ModTime(), nil
}
