package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempOutput(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempOutput(t)
	content := []byte("<h1>Hello</h1>\n")
	if err := s.Write("index.html", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("index.html")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempOutput(t)
	if err := s.Write("article/a_b.html", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("article/a_b.html")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestMkdirAll(t *testing.T) {
	s := tempOutput(t)
	if err := s.MkdirAll("article"); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	info, err := os.Stat(filepath.Join(s.Root(), "article"))
	if err != nil || !info.IsDir() {
		t.Errorf("article dir missing: %v", err)
	}
	if err := s.MkdirAll("."); err != nil {
		t.Errorf("MkdirAll root: %v", err)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempOutput(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.html",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteNoLeftovers(t *testing.T) {
	s := tempOutput(t)
	_ = s.Write("page.html", []byte("original content"))

	updated := []byte("updated content")
	if err := s.Write("page.html", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("page.html")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".sowilo-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "dist")
	if _, err := NewFS(dir); err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("output dir not created: %v", err)
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "sowilo-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	if _, err := NewFS(f.Name()); err == nil {
		t.Error("expected error when root is a file")
	}
}
