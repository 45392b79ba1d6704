package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	MediaDir      string `toml:"media_dir"`
	OutputDir     string `toml:"output_dir"`
	ScreenshotDir string `toml:"screenshot_dir"`
	LogDir        string `toml:"log_dir"`
	APIBind       string `toml:"api_bind"`
}

// Tools contains the external binaries the daemon shells out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Scan contains configuration for media file discovery.
type Scan struct {
	Extension string `toml:"extension"`
}

// Inspect contains configuration for crop detection and screenshot sampling.
type Inspect struct {
	// CropSampleSeconds is how many seconds of video each crop-detection
	// sample decodes.
	CropSampleSeconds int `toml:"crop_sample_seconds"`
	// ProbeTimeout bounds a single ffprobe or cropdetect invocation, in seconds.
	ProbeTimeout int `toml:"probe_timeout"`
	// ScreenshotQuality is the ffmpeg -q:v value used for preview frames.
	ScreenshotQuality int `toml:"screenshot_quality"`
}

// Queue contains configuration for encode queue behavior.
type Queue struct {
	// SizeSampleInterval is how often the output file size of the running
	// job is sampled, in seconds.
	SizeSampleInterval int `toml:"size_sample_interval"`
	// TranscriptLines bounds the retained encoder stderr transcript.
	TranscriptLines int `toml:"transcript_lines"`
	// MinFreeGiB rejects admission when the output filesystem has less
	// free space than this. Zero disables the check.
	MinFreeGiB int `toml:"min_free_gib"`
	// CancelGraceSeconds is how long a cancelled encode gets between
	// SIGTERM and SIGKILL.
	CancelGraceSeconds int `toml:"cancel_grace_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for telecine.
//
// Configuration sections by subsystem:
//   - Paths: media root, output/cache/log directories, API bind address
//   - Tools: ffmpeg/ffprobe binaries
//   - Scan: file discovery settings
//   - Inspect: crop detection and screenshot sampling
//   - Queue: encode queue timing and admission limits
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tools   Tools   `toml:"tools"`
	Scan    Scan    `toml:"scan"`
	Inspect Inspect `toml:"inspect"`
	Queue   Queue   `toml:"queue"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/telecine/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("telecine.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the daemon writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.ScreenshotDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SampleConfig returns the embedded sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
