package vcs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// initRepo creates a repository in a temp dir and commits rel with the given
// committer time.
func initRepo(t *testing.T, rel string, when time.Time) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("---\nblog: true\n---\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(rel); err != nil {
		t.Fatalf("add: %v", err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	if _, err := wt.Commit("add note", &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return dir
}

func TestLastCommit_TrackedFile(t *testing.T) {
	when := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	dir := initRepo(t, "posts/hello.md", when)

	h := Open(filepath.Join(dir, "posts"), discardLogger())
	if !h.Enabled() {
		t.Fatal("repository should be detected from a subdirectory")
	}
	got, ok := h.LastCommit(filepath.Join(dir, "posts", "hello.md"))
	if !ok {
		t.Fatal("expected a commit for tracked file")
	}
	if !got.Equal(when) {
		t.Errorf("when = %v, want %v", got, when)
	}
}

func TestDater_PrefersCommitTime(t *testing.T) {
	when := time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC)
	dir := initRepo(t, "a.md", when)
	p := filepath.Join(dir, "a.md")

	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(p, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	got, err := NewDater(Open(dir, discardLogger())).UpdatedAt(p)
	if err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if !got.Equal(when) {
		t.Errorf("got %v, want commit time %v", got, when)
	}
}

func TestDater_UntrackedFallsBackToMtime(t *testing.T) {
	dir := initRepo(t, "tracked.md", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	p := filepath.Join(dir, "untracked.md")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2023, 7, 8, 9, 10, 11, 0, time.UTC)
	if err := os.Chtimes(p, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	got, err := NewDater(Open(dir, discardLogger())).UpdatedAt(p)
	if err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if !got.Equal(mtime) {
		t.Errorf("got %v, want mtime %v", got, mtime)
	}
}

func TestDater_NoRepository(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "n.md")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2022, 5, 5, 5, 5, 5, 0, time.UTC)
	if err := os.Chtimes(p, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	h := Open(dir, discardLogger())
	if h.Enabled() {
		t.Skip("temp dir sits inside a git repository")
	}
	got, err := NewDater(h).UpdatedAt(p)
	if err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if !got.Equal(mtime) {
		t.Errorf("got %v, want %v", got, mtime)
	}
}

func TestDater_NilHistory(t *testing.T) {
	p := filepath.Join(t.TempDir(), "n.md")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewDater(nil).UpdatedAt(p); err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
}

func TestDater_MissingFile(t *testing.T) {
	if _, err := NewDater(nil).UpdatedAt(filepath.Join(t.TempDir(), "gone.md")); err == nil {
		t.Error("expected error for missing file")
	}
}

func commitFile(t *testing.T, repo *git.Repository, dir, rel, content string, when time.Time) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(rel)), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(rel); err != nil {
		t.Fatalf("add: %v", err)
	}
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: when}
	if _, err := wt.Commit("update "+rel, &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestLastCommit_NewestCommitPerFile(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	first := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	third := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	commitFile(t, repo, dir, "a.md", "a1", first)
	commitFile(t, repo, dir, "b.md", "b1", second)
	commitFile(t, repo, dir, "a.md", "a2", third)

	h := Open(dir, discardLogger())
	for name, want := range map[string]time.Time{"a.md": third, "b.md": second} {
		got, ok := h.LastCommit(filepath.Join(dir, name))
		if !ok {
			t.Errorf("%s: no commit found", name)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("%s: when = %v, want %v", name, got, want)
		}
	}
}

func TestOpen_EmptyRepository(t *testing.T) {
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	p := filepath.Join(dir, "a.md")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	h := Open(dir, discardLogger())
	if !h.Enabled() {
		t.Fatal("repository without commits should still be detected")
	}
	if _, ok := h.LastCommit(p); ok {
		t.Error("no commit expected in an empty repository")
	}
}
