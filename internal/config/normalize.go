package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeScan()
	c.normalizeInspect()
	c.normalizeQueue()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.MediaDir, err = expandPath(c.Paths.MediaDir); err != nil {
		return fmt.Errorf("paths.media_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ScreenshotDir) == "" {
		c.Paths.ScreenshotDir = defaultScreenshotDir
	}
	if c.Paths.ScreenshotDir, err = expandPath(c.Paths.ScreenshotDir); err != nil {
		return fmt.Errorf("paths.screenshot_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeScan() {
	ext := strings.ToLower(strings.TrimSpace(c.Scan.Extension))
	if ext == "" {
		ext = defaultScanExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Scan.Extension = ext
}

func (c *Config) normalizeInspect() {
	if c.Inspect.CropSampleSeconds <= 0 {
		c.Inspect.CropSampleSeconds = defaultCropSampleSeconds
	}
	if c.Inspect.ProbeTimeout <= 0 {
		c.Inspect.ProbeTimeout = defaultProbeTimeout
	}
	if c.Inspect.ScreenshotQuality <= 0 {
		c.Inspect.ScreenshotQuality = defaultScreenshotQuality
	}
}

func (c *Config) normalizeQueue() {
	if c.Queue.SizeSampleInterval <= 0 {
		c.Queue.SizeSampleInterval = defaultSizeSampleInterval
	}
	if c.Queue.TranscriptLines <= 0 {
		c.Queue.TranscriptLines = defaultTranscriptLines
	}
	if c.Queue.MinFreeGiB < 0 {
		c.Queue.MinFreeGiB = 0
	}
	if c.Queue.CancelGraceSeconds <= 0 {
		c.Queue.CancelGraceSeconds = defaultCancelGraceSeconds
	}
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
