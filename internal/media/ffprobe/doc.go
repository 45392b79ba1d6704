// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no telecine-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties, including the
//     sample aspect ratio and field order the correction deriver consumes
//   - Format: container-level metadata (duration, size, format name)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Duration parsing is strict: inspection flows that need sample timestamps
// must fail when the container duration cannot be parsed, so
// Result.DurationSeconds returns an error instead of a zero value.
package ffprobe
