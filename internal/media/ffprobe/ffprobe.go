package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrUnparsableDuration reports that ffprobe did not produce a usable
// container duration. Callers that derive sample timestamps must treat this
// as fatal for the whole inspection request.
var ErrUnparsableDuration = errors.New("ffprobe: unparsable container duration")

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// StreamTags carries the metadata tags telecine cares about.
type StreamTags struct {
	Language string `json:"language"`
	Title    string `json:"title"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index             int        `json:"index"`
	CodecName         string     `json:"codec_name"`
	CodecType         string     `json:"codec_type"`
	Width             int        `json:"width"`
	Height            int        `json:"height"`
	SampleAspectRatio string     `json:"sample_aspect_ratio"`
	FieldOrder        string     `json:"field_order"`
	Channels          int        `json:"channels"`
	ChannelLayout     string     `json:"channel_layout"`
	Tags              StreamTags `json:"tags"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, detail)
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.raw = append([]byte(nil), output...)
	return result, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// DurationSeconds returns the container duration in seconds. It fails when
// the value is missing or not a positive number.
func (r Result) DurationSeconds() (float64, error) {
	cleaned := strings.TrimSpace(r.Format.Duration)
	if cleaned == "" {
		return 0, ErrUnparsableDuration
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableDuration, r.Format.Duration)
	}
	return parsed, nil
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	parsed, err := strconv.ParseInt(strings.TrimSpace(r.Format.Size), 10, 64)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}

// VideoStreams returns the video streams in container order.
func (r Result) VideoStreams() []Stream {
	return r.streamsOfType("video")
}

// AudioStreams returns the audio streams in container order.
func (r Result) AudioStreams() []Stream {
	return r.streamsOfType("audio")
}

func (r Result) streamsOfType(codecType string) []Stream {
	var streams []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, codecType) {
			streams = append(streams, stream)
		}
	}
	return streams
}

// PrimaryVideoStream returns the first video stream, or false when the
// container has none.
func (r Result) PrimaryVideoStream() (Stream, bool) {
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return stream, true
		}
	}
	return Stream{}, false
}

// IsVideo reports whether the stream carries video.
func (s Stream) IsVideo() bool {
	return strings.EqualFold(s.CodecType, "video")
}

// IsAudio reports whether the stream carries audio.
func (s Stream) IsAudio() bool {
	return strings.EqualFold(s.CodecType, "audio")
}

// SAR returns the stream's sample aspect ratio as a rational. Missing,
// malformed, or degenerate values ("0:1", "N/A") fall back to square pixels.
func (s Stream) SAR() (num, den int) {
	parts := strings.SplitN(strings.TrimSpace(s.SampleAspectRatio), ":", 2)
	if len(parts) != 2 {
		return 1, 1
	}
	parsedNum, err := strconv.Atoi(parts[0])
	if err != nil || parsedNum <= 0 {
		return 1, 1
	}
	parsedDen, err := strconv.Atoi(parts[1])
	if err != nil || parsedDen <= 0 {
		return 1, 1
	}
	return parsedNum, parsedDen
}

// HasSquarePixels reports whether the stream's sample aspect ratio is 1:1.
func (s Stream) HasSquarePixels() bool {
	num, den := s.SAR()
	return num == den
}

// Interlaced reports whether the field order indicates interlaced content.
// An absent field order is treated as progressive: the deinterlace decision
// is purely metadata driven.
func (s Stream) Interlaced() bool {
	order := strings.ToLower(strings.TrimSpace(s.FieldOrder))
	return order != "" && order != "progressive" && order != "unknown"
}

// AudioLabel renders a human-readable description of an audio stream, e.g.
// "English - dts (5.1(side))".
func (s Stream) AudioLabel() string {
	parts := []string{LanguageDisplayName(s.Tags.Language)}
	if codec := strings.TrimSpace(s.CodecName); codec != "" {
		layout := strings.TrimSpace(s.ChannelLayout)
		if layout == "" && s.Channels > 0 {
			layout = fmt.Sprintf("%dch", s.Channels)
		}
		if layout != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", codec, layout))
		} else {
			parts = append(parts, codec)
		}
	}
	return strings.Join(parts, " - ")
}
