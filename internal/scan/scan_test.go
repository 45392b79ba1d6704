package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanFindsMatchingExtensionRecursively(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.mkv"), 20)
	writeFile(t, filepath.Join(root, "shows", "a.mkv"), 10)
	writeFile(t, filepath.Join(root, "shows", "notes.txt"), 5)
	writeFile(t, filepath.Join(root, "UPPER.MKV"), 30)

	files, err := NewScanner(root, ".mkv", nil).Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %+v", len(files), files)
	}
	// Sorted by relative path.
	if files[0].RelPath != "UPPER.MKV" || files[1].RelPath != "b.mkv" {
		t.Fatalf("unexpected order: %+v", files)
	}
	if files[2].RelPath != filepath.Join("shows", "a.mkv") || files[2].Size != 10 {
		t.Fatalf("unexpected entry: %+v", files[2])
	}
}

func TestScanNormalizesExtension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "movie.mkv"), 1)

	files, err := NewScanner(root, "mkv", nil).Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("extension without dot should still match, got %d", len(files))
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := NewScanner(filepath.Join(t.TempDir(), "nope"), ".mkv", nil).Scan(); err == nil {
		t.Fatal("missing root must fail")
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "movie.mkv"), 1)
	s := NewScanner(root, ".mkv", nil)

	abs, err := s.Resolve("movie.mkv")
	if err != nil {
		t.Fatalf("resolve relative: %v", err)
	}
	if abs != filepath.Join(root, "movie.mkv") {
		t.Fatalf("unexpected resolution: %s", abs)
	}

	if _, err := s.Resolve("../outside.mkv"); err == nil {
		t.Fatal("escaping the root must fail")
	}
	if _, err := s.Resolve("missing.mkv"); err == nil {
		t.Fatal("missing file must fail")
	}
}
