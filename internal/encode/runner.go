package encode

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"telecine/internal/procgroup"
)

// Result carries the terminal outcome of an encode process.
type Result struct {
	ExitCode   int
	Transcript []string
}

// Process is a live encode the queue manager can observe or terminate.
type Process interface {
	// Done delivers exactly one Result when the process exits.
	Done() <-chan Result
	// Terminate kills the process and its descendants.
	Terminate(grace time.Duration) error
}

// Runner launches encode processes. The queue manager only depends on this
// interface so tests can substitute a fake process boundary.
type Runner interface {
	Start(ctx context.Context, req Request, onLine func(string)) (Process, error)
}

// FFmpegRunner runs encodes with a real ffmpeg binary.
type FFmpegRunner struct {
	Binary          string
	TranscriptLines int

	// buildArgs is a test seam; nil means Request.Args.
	buildArgs func(Request) []string
}

// NewFFmpegRunner constructs a runner for the given binary.
func NewFFmpegRunner(binary string, transcriptLines int) *FFmpegRunner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if transcriptLines <= 0 {
		transcriptLines = 400
	}
	return &FFmpegRunner{Binary: binary, TranscriptLines: transcriptLines}
}

// Start launches ffmpeg and begins scanning its diagnostic stream. Each
// stderr line is handed to onLine before being added to the bounded
// transcript.
func (r *FFmpegRunner) Start(ctx context.Context, req Request, onLine func(string)) (Process, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	build := r.buildArgs
	if build == nil {
		build = Request.Args
	}
	cmd := exec.CommandContext(ctx, r.Binary, build(req)...)
	procgroup.Set(cmd)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	proc := &ffmpegProcess{
		cmd:  cmd,
		done: make(chan Result, 1),
	}

	limit := r.TranscriptLines
	go func() {
		var transcript []string
		scanner := bufio.NewScanner(stderr)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		scanner.Split(scanProgressLines)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			if onLine != nil {
				onLine(line)
			}
			transcript = append(transcript, line)
			if len(transcript) > limit {
				transcript = transcript[len(transcript)-limit:]
			}
		}

		exitCode := 0
		if err := cmd.Wait(); err != nil {
			exitCode = -1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			}
		}
		proc.done <- Result{ExitCode: exitCode, Transcript: transcript}
	}()

	return proc, nil
}

type ffmpegProcess struct {
	cmd      *exec.Cmd
	done     chan Result
	killOnce sync.Once
	killErr  error
}

func (p *ffmpegProcess) Done() <-chan Result {
	return p.done
}

func (p *ffmpegProcess) Terminate(grace time.Duration) error {
	p.killOnce.Do(func() {
		p.killErr = procgroup.Terminate(p.cmd, grace)
	})
	return p.killErr
}

// scanProgressLines splits on \n and \r: ffmpeg rewrites its progress line
// with carriage returns, so plain line scanning would only surface it once
// the process exits.
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
