package daemon

import (
	"context"
	"path/filepath"
	"testing"

	"telecine/internal/config"
	"telecine/internal/logging"
)

func lifecycleConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MediaDir = filepath.Join(root, "media")
	cfg.Paths.OutputDir = filepath.Join(root, "out")
	cfg.Paths.ScreenshotDir = filepath.Join(root, "shots")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	return cfg
}

func TestDaemonSingleInstance(t *testing.T) {
	cfg := lifecycleConfig(t)

	first, err := New(&cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = first.Close() }()

	ctx := context.Background()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := first.Start(ctx); err == nil {
		t.Fatal("double start must fail")
	}

	second, err := New(&cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new second: %v", err)
	}
	defer func() { _ = second.Close() }()
	if err := second.Start(ctx); err == nil {
		t.Fatal("second instance must be locked out")
	}

	first.Stop()
	if err := second.Start(ctx); err != nil {
		t.Fatalf("lock must be free after stop: %v", err)
	}
	second.Stop()
}

func TestStatusReflectsLifecycle(t *testing.T) {
	cfg := lifecycleConfig(t)
	d, err := New(&cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = d.Close() }()

	if d.Status().Running {
		t.Fatal("not started yet")
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !d.Status().Running {
		t.Fatal("running after start")
	}
	d.Stop()
	if d.Status().Running {
		t.Fatal("stopped after stop")
	}
}
