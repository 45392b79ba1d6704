package encode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Video codecs the submit surface accepts.
const (
	CodecX264  = "libx264"
	CodecX265  = "libx265"
	CodecNVENC = "h264_nvenc"
)

// SoftwareCodec reports whether the codec uses preset/CRF rate control.
// Hardware encoders take explicit bitrate targets instead, and may not
// support concurrent sessions.
func SoftwareCodec(codec string) bool {
	switch codec {
	case CodecX264, CodecX265:
		return true
	default:
		return false
	}
}

// KnownVideoCodec reports whether the codec is one this system drives.
func KnownVideoCodec(codec string) bool {
	switch codec {
	case CodecX264, CodecX265, CodecNVENC:
		return true
	default:
		return false
	}
}

// Request describes one encode. All fields are immutable once admitted.
type Request struct {
	Input       string
	FilterChain string

	VideoCodec   string
	Preset       string // software codecs
	CRF          int    // software codecs
	VideoBitrate string // hardware codec rate control, e.g. "8M"

	AudioCodec   string
	AudioBitrate string
	AudioStreams []int // input stream indices, absolute

	Output string
}

// Validate rejects requests that must never enter the queue.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Input) == "" {
		return errors.New("encode request: input path is required")
	}
	if strings.TrimSpace(r.Output) == "" {
		return errors.New("encode request: output path is required")
	}
	if len(r.AudioStreams) == 0 {
		return errors.New("encode request: at least one audio stream must be selected")
	}
	if !KnownVideoCodec(r.VideoCodec) {
		return fmt.Errorf("encode request: unknown video codec %q", r.VideoCodec)
	}
	return nil
}

// Args renders the full ffmpeg argument list.
func (r Request) Args() []string {
	args := []string{
		"-hide_banner",
		"-y",
		"-i", r.Input,
	}

	if chain := strings.TrimSpace(r.FilterChain); chain != "" {
		args = append(args, "-vf", chain)
	}

	args = append(args, "-map", "0:v:0")
	for _, index := range r.AudioStreams {
		args = append(args, "-map", fmt.Sprintf("0:%d", index))
	}

	args = append(args, "-c:v", r.VideoCodec)
	if SoftwareCodec(r.VideoCodec) {
		preset := strings.TrimSpace(r.Preset)
		if preset == "" {
			preset = "medium"
		}
		args = append(args, "-preset", preset, "-crf", strconv.Itoa(r.CRF))
	} else {
		bitrate := strings.TrimSpace(r.VideoBitrate)
		if bitrate == "" {
			bitrate = "8M"
		}
		args = append(args, "-rc", "vbr", "-b:v", bitrate)
	}

	audioCodec := strings.TrimSpace(r.AudioCodec)
	if audioCodec == "" {
		audioCodec = "copy"
	}
	args = append(args, "-c:a", audioCodec)
	if audioCodec != "copy" {
		bitrate := strings.TrimSpace(r.AudioBitrate)
		if bitrate == "" {
			bitrate = "192k"
		}
		args = append(args, "-b:a", bitrate)
	}

	return append(args, r.Output)
}
