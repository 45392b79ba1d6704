package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"telecine/internal/api"
	"telecine/internal/config"
	"telecine/internal/encode"
	"telecine/internal/history"
	"telecine/internal/logging"
	"telecine/internal/queue"
	"telecine/internal/scan"
	"telecine/internal/screenshots"
)

// Daemon owns every long-lived component and enforces single-instance
// execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger

	manager    *queue.Manager
	archive    *history.Store
	scanner    *scan.Scanner
	queueSvc   *api.QueueService
	inspectSvc *api.InspectService

	lockPath string
	lock     *flock.Flock

	apiSrv  *apiServer
	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon and its component graph from the configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || logger == nil {
		return nil, errors.New("daemon requires config and logger")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	archive, err := history.Open(cfg.Paths.LogDir)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	var checks []queue.AdmissionCheck
	if cfg.Queue.MinFreeGiB > 0 {
		checks = append(checks, minFreeSpaceCheck(cfg.Paths.OutputDir, int64(cfg.Queue.MinFreeGiB)))
	}

	manager := queue.NewManager(queue.Options{
		Runner: &encode.FFmpegRunner{
			Binary:          cfg.Tools.FFmpeg,
			TranscriptLines: cfg.Queue.TranscriptLines,
		},
		Logger:             logger,
		Archiver:           archive,
		AdmissionChecks:    checks,
		SizeSampleInterval: time.Duration(cfg.Queue.SizeSampleInterval) * time.Second,
		CancelGrace:        time.Duration(cfg.Queue.CancelGraceSeconds) * time.Second,
	})

	scanner := scan.NewScanner(cfg.Paths.MediaDir, cfg.Scan.Extension, logger)

	inspectSvc := api.NewInspectService(api.InspectOptions{
		FFprobeBinary:     cfg.Tools.FFprobe,
		FFmpegBinary:      cfg.Tools.FFmpeg,
		CropSampleSeconds: cfg.Inspect.CropSampleSeconds,
		ProbeTimeout:      time.Duration(cfg.Inspect.ProbeTimeout) * time.Second,
		Screenshots: screenshots.NewGenerator(screenshots.Options{
			Binary:  cfg.Tools.FFmpeg,
			Dir:     cfg.Paths.ScreenshotDir,
			Quality: cfg.Inspect.ScreenshotQuality,
			Logger:  logger,
		}),
		Logger: logger,
	})

	lockPath := filepath.Join(cfg.Paths.LogDir, "telecined.lock")
	d := &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		manager:    manager,
		archive:    archive,
		scanner:    scanner,
		queueSvc:   api.NewQueueService(manager, archive),
		inspectSvc: inspectSvc,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}
	d.apiSrv = newAPIServer(cfg.Paths.APIBind, d, logger)
	return d, nil
}

// Start acquires the instance lock and brings up the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another telecine daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	if err := d.apiSrv.start(runCtx); err != nil {
		cancel()
		d.cancel = nil
		_ = d.lock.Unlock()
		return err
	}

	d.running.Store(true)
	d.logger.Info("telecine daemon started",
		logging.String("lock", d.lockPath),
		logging.String("media_dir", d.cfg.Paths.MediaDir))
	return nil
}

// Stop shuts down the API server, drains the queue manager, and releases
// the instance lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.apiSrv.stop()
	d.manager.Close()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("telecine daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	d.manager.Close()
	if d.archive != nil {
		return d.archive.Close()
	}
	return nil
}

// Status reports daemon runtime information.
func (d *Daemon) Status() api.DaemonStatus {
	snapshot := d.manager.Snapshot()
	return api.DaemonStatus{
		Running:       d.running.Load(),
		PID:           os.Getpid(),
		MediaDir:      d.cfg.Paths.MediaDir,
		OutputDir:     d.cfg.Paths.OutputDir,
		LockFilePath:  d.lockPath,
		HistoryDBPath: d.archive.Path(),
		QueueDepth:    len(snapshot.Pending),
		Encoding:      snapshot.Current != nil && snapshot.Current.Status == queue.StatusProcessing,
	}
}
