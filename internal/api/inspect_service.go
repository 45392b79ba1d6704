package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"telecine/internal/corrections"
	"telecine/internal/logging"
	"telecine/internal/media/cropdetect"
	"telecine/internal/media/ffprobe"
	"telecine/internal/screenshots"
)

// InspectOptions configures an InspectService.
type InspectOptions struct {
	FFprobeBinary     string
	FFmpegBinary      string
	CropSampleSeconds int
	ProbeTimeout      time.Duration
	Screenshots       *screenshots.Generator
	Logger            *slog.Logger
}

// InspectService probes a source file, runs crop detection, and derives the
// correction plan it would be encoded with.
type InspectService struct {
	ffprobe       string
	ffmpeg        string
	sampleSeconds int
	probeTimeout  time.Duration
	screenshots   *screenshots.Generator
	logger        *slog.Logger
}

// NewInspectService constructs an InspectService from opts.
func NewInspectService(opts InspectOptions) *InspectService {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	timeout := opts.ProbeTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &InspectService{
		ffprobe:       opts.FFprobeBinary,
		ffmpeg:        opts.FFmpegBinary,
		sampleSeconds: opts.CropSampleSeconds,
		probeTimeout:  timeout,
		screenshots:   opts.Screenshots,
		logger:        logging.NewComponentLogger(logger, "inspect"),
	}
}

// Inspect probes path and returns the report: stream facts, the detected
// crop, and the derived filter chain. An aspect override (by label) replaces
// the best guess in the plan; pass an empty string to keep the guess.
func (s *InspectService) Inspect(ctx context.Context, path string, aspectOverride string) (*InspectReport, error) {
	override := corrections.AspectNone
	if aspectOverride != "" {
		parsed, ok := corrections.ParseAspectLabel(aspectOverride)
		if !ok {
			return nil, fmt.Errorf("unknown aspect ratio %q", aspectOverride)
		}
		override = parsed
	}

	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	result, err := ffprobe.Inspect(probeCtx, s.ffprobe, path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}

	video, ok := result.PrimaryVideoStream()
	if !ok {
		return nil, fmt.Errorf("%s has no video stream", path)
	}
	duration, err := result.DurationSeconds()
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}

	crop, err := cropdetect.Detect(ctx, cropdetect.Options{
		Binary:          s.ffmpeg,
		Path:            path,
		DurationSeconds: duration,
		SampleSeconds:   s.sampleSeconds,
	})
	if err != nil {
		// Detection failure degrades to "no crop" rather than blocking
		// inspection; the user can still queue the file.
		s.logger.Warn("crop detection failed",
			logging.String("path", path),
			logging.Error(err))
		crop = nil
	}

	plan := corrections.Derive(video, crop, override)

	report := &InspectReport{
		Path:              path,
		SizeBytes:         result.SizeBytes(),
		DurationSeconds:   duration,
		Width:             video.Width,
		Height:            video.Height,
		VideoCodec:        video.CodecName,
		SampleAspectRatio: video.SampleAspectRatio,
		Interlaced:        video.Interlaced(),
		Crop:              FromCropBox(plan.Crop),
		AspectLabel:       string(plan.Aspect),
		FilterChain:       plan.FilterChain(),
		Corrections:       plan.Summary(),
	}
	for _, stream := range result.AudioStreams() {
		report.AudioTracks = append(report.AudioTracks, AudioTrackInfo{
			StreamIndex: stream.Index,
			Label:       stream.AudioLabel(),
		})
	}
	return report, nil
}

// Screenshots extracts preview frames for path with the given filter chain
// applied, probing first for the duration.
func (s *InspectService) Screenshots(ctx context.Context, path string, filterChain string) ([]string, error) {
	if s.screenshots == nil {
		return nil, fmt.Errorf("screenshot generation is not configured")
	}
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	result, err := ffprobe.Inspect(probeCtx, s.ffprobe, path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	duration, err := result.DurationSeconds()
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	return s.screenshots.Generate(ctx, path, duration, filterChain)
}
