package screenshots

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestCacheKeyTracksSourceIdentity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.mkv")
	if err := os.WriteFile(path, []byte("aaaa"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	base, err := CacheKey(path, "yadif")
	if err != nil {
		t.Fatalf("cache key: %v", err)
	}

	same, err := CacheKey(path, "yadif")
	if err != nil {
		t.Fatalf("cache key: %v", err)
	}
	if same != base {
		t.Fatal("unchanged file must produce a stable key")
	}

	other, err := CacheKey(path, "yadif,crop=100:100:0:0")
	if err != nil {
		t.Fatalf("cache key: %v", err)
	}
	if other == base {
		t.Fatal("different filter chain must produce a different key")
	}

	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	touched, err := CacheKey(path, "yadif")
	if err != nil {
		t.Fatalf("cache key: %v", err)
	}
	if touched == base {
		t.Fatal("modified file must produce a different key")
	}
}

func TestCacheKeyMissingFile(t *testing.T) {
	if _, err := CacheKey(filepath.Join(t.TempDir(), "nope.mkv"), ""); err == nil {
		t.Fatal("missing source must fail")
	}
}

// fakeExtractor writes a script that stands in for ffmpeg and creates the
// output file named by its final argument.
func fakeExtractor(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub unavailable")
	}
	script := filepath.Join(t.TempDir(), "fake-ffmpeg")
	body := "#!/bin/sh\nfor last; do :; done\nprintf 'jpg' > \"$last\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return script
}

func TestGenerateExtractsAndCaches(t *testing.T) {
	source := filepath.Join(t.TempDir(), "movie.mkv")
	if err := os.WriteFile(source, []byte("video"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cacheDir := t.TempDir()
	gen := NewGenerator(Options{
		Binary: fakeExtractor(t),
		Dir:    cacheDir,
	})

	frames, err := gen.Generate(context.Background(), source, 600, "yadif")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(frames) != len(samplePoints) {
		t.Fatalf("expected %d frames, got %d", len(samplePoints), len(frames))
	}
	for _, frame := range frames {
		if _, err := os.Stat(frame); err != nil {
			t.Fatalf("frame missing: %v", err)
		}
	}

	// Second call must be served from the cache; break the binary to prove
	// no extraction runs.
	gen = NewGenerator(Options{Binary: "/nonexistent", Dir: cacheDir})
	again, err := gen.Generate(context.Background(), source, 600, "yadif")
	if err != nil {
		t.Fatalf("cached generate: %v", err)
	}
	if len(again) != len(frames) {
		t.Fatalf("cache returned %d frames", len(again))
	}
}

func TestGenerateSurfacesExtractionFailure(t *testing.T) {
	source := filepath.Join(t.TempDir(), "movie.mkv")
	if err := os.WriteFile(source, []byte("video"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	gen := NewGenerator(Options{Binary: "/nonexistent", Dir: t.TempDir()})
	if _, err := gen.Generate(context.Background(), source, 600, ""); err == nil {
		t.Fatal("broken extractor must fail")
	}
}
