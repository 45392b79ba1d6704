// Package encode builds ffmpeg invocations and runs them.
//
// Request captures everything one encode needs: source, derived filter
// chain, video codec with its rate-control parameters, audio codec/bitrate,
// the selected audio stream mappings, and the output path. FFmpegRunner
// spawns ffmpeg as a process group leader, streams its diagnostic lines to a
// callback, retains a bounded transcript, and delivers {exit code,
// transcript} on a completion channel. The Runner interface exists so the
// queue manager can be tested against a fake process boundary.
package encode
