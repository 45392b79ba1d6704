package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"telecine/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.MediaDir != filepath.Join(tempHome, "videos") {
		t.Fatalf("unexpected media dir: %q", cfg.Paths.MediaDir)
	}
	wantOutput := filepath.Join(tempHome, ".local", "share", "telecine", "encoded")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	if cfg.Paths.APIBind != "127.0.0.1:7823" {
		t.Fatalf("unexpected api bind: %q", cfg.Paths.APIBind)
	}
	if cfg.Tools.FFmpeg != "ffmpeg" || cfg.Tools.FFprobe != "ffprobe" {
		t.Fatalf("unexpected tool binaries: %q %q", cfg.Tools.FFmpeg, cfg.Tools.FFprobe)
	}
	if cfg.Scan.Extension != ".mkv" {
		t.Fatalf("unexpected scan extension: %q", cfg.Scan.Extension)
	}
	if cfg.Queue.SizeSampleInterval != 2 {
		t.Fatalf("unexpected size sample interval: %d", cfg.Queue.SizeSampleInterval)
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := strings.Join([]string{
		"[paths]",
		`media_dir = "~/movies"`,
		`output_dir = "~/out"`,
		"[scan]",
		`extension = "MP4"`,
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Paths.MediaDir != filepath.Join(tempHome, "movies") {
		t.Fatalf("tilde not expanded: %q", cfg.Paths.MediaDir)
	}
	if cfg.Scan.Extension != ".mp4" {
		t.Fatalf("extension not normalized: %q", cfg.Scan.Extension)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("log format not normalized: %q", cfg.Logging.Format)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.MediaDir = "/tmp/media"
	cfg.Paths.OutputDir = "/tmp/media"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when output_dir equals media_dir")
	}

	cfg = config.Default()
	cfg.Paths.MediaDir = "/tmp/media"
	cfg.Paths.OutputDir = "/tmp/out"
	cfg.Logging.Format = "yaml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestSampleConfigIsNotEmpty(t *testing.T) {
	if !strings.Contains(config.SampleConfig(), "[paths]") {
		t.Fatal("sample config should contain a [paths] section")
	}
}
