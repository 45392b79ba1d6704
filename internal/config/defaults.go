package config

const (
	defaultMediaDir           = "~/videos"
	defaultOutputDir          = "~/.local/share/telecine/encoded"
	defaultScreenshotDir      = "~/.cache/telecine/screenshots"
	defaultLogDir             = "~/.local/share/telecine/logs"
	defaultAPIBind            = "127.0.0.1:7823"
	defaultFFmpegBinary       = "ffmpeg"
	defaultFFprobeBinary      = "ffprobe"
	defaultScanExtension      = ".mkv"
	defaultCropSampleSeconds  = 4
	defaultProbeTimeout       = 60
	defaultScreenshotQuality  = 2
	defaultSizeSampleInterval = 2
	defaultTranscriptLines    = 400
	defaultMinFreeGiB         = 1
	defaultCancelGraceSeconds = 5
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MediaDir:      defaultMediaDir,
			OutputDir:     defaultOutputDir,
			ScreenshotDir: defaultScreenshotDir,
			LogDir:        defaultLogDir,
			APIBind:       defaultAPIBind,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Scan: Scan{
			Extension: defaultScanExtension,
		},
		Inspect: Inspect{
			CropSampleSeconds: defaultCropSampleSeconds,
			ProbeTimeout:      defaultProbeTimeout,
			ScreenshotQuality: defaultScreenshotQuality,
		},
		Queue: Queue{
			SizeSampleInterval: defaultSizeSampleInterval,
			TranscriptLines:    defaultTranscriptLines,
			MinFreeGiB:         defaultMinFreeGiB,
			CancelGraceSeconds: defaultCancelGraceSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
