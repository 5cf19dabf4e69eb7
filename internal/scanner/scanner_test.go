package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func TestScan_Recursive(t *testing.T) {
	root := tempRoot(t)
	writeFile(t, root, "b.md")
	writeFile(t, root, "a/deep/c.md")
	writeFile(t, root, "a/readme.txt")
	writeFile(t, root, "a/notes.md.bak")

	files, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{
		filepath.Join(root, "a", "deep", "c.md"),
		filepath.Join(root, "b.md"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
		if !filepath.IsAbs(files[i]) {
			t.Errorf("path %q is not absolute", files[i])
		}
	}
}

func TestScan_SkipsDirectoryNamedLikeNote(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "folder.md"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, root, "folder.md/inner.md")

	files, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "inner.md" {
		t.Errorf("files = %v", files)
	}
}

func TestScan_MissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestScan_Empty(t *testing.T) {
	files, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v", files)
	}
}

func TestScan_FollowsSymlinkedRoot(t *testing.T) {
	target := tempRoot(t)
	writeFile(t, target, "a.md")
	writeFile(t, target, "sub/b.md")

	link := filepath.Join(t.TempDir(), "note")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := Scan(link)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{
		filepath.Join(target, "a.md"),
		filepath.Join(target, "sub", "b.md"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestResolve_MissingRoot(t *testing.T) {
	if _, err := Resolve(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}
