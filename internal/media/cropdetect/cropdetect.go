package cropdetect

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Box is an axis-aligned crop rectangle in source pixel coordinates.
type Box struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	XOffset int `json:"x_offset"`
	YOffset int `json:"y_offset"`
}

// FilterValue renders the rectangle in ffmpeg crop filter syntax (w:h:x:y).
func (b Box) FilterValue() string {
	return fmt.Sprintf("%d:%d:%d:%d", b.Width, b.Height, b.XOffset, b.YOffset)
}

// samplePoints are the fractions of total duration where detection samples.
var samplePoints = []float64{0.2, 0.5, 0.8}

// cropLine matches the rectangle cropdetect prints on its diagnostic stream,
// e.g. "[Parsed_cropdetect_0 @ 0x...] ... crop=720:416:0:80".
var cropLine = regexp.MustCompile(`crop=(\d+):(\d+):(\d+):(\d+)`)

// Options configures a detection run.
type Options struct {
	Binary          string
	Path            string
	DurationSeconds float64
	SampleSeconds   int
}

// Detect samples the source at the three sample points and returns the
// majority rectangle, or nil when the majority vote lands on "no crop".
// The samples run concurrently; reconciliation happens in sample order so
// the result does not depend on completion order.
func Detect(ctx context.Context, opts Options) (*Box, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("cropdetect: empty path")
	}
	if opts.DurationSeconds <= 0 {
		return nil, fmt.Errorf("cropdetect: invalid duration %v", opts.DurationSeconds)
	}
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	window := opts.SampleSeconds
	if window <= 0 {
		window = 4
	}

	results := make([]*Box, len(samplePoints))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, point := range samplePoints {
		i := i
		offset := opts.DurationSeconds * point
		group.Go(func() error {
			// A failed sample votes "no crop"; partial signal still
			// feeds the majority vote.
			results[i] = sample(groupCtx, binary, opts.Path, offset, window)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return majority(results), nil
}

func sample(ctx context.Context, binary, path string, offsetSeconds float64, windowSeconds int) *Box {
	args := []string{
		"-hide_banner",
		"-ss", strconv.FormatFloat(offsetSeconds, 'f', 2, 64),
		"-i", path,
		"-t", strconv.Itoa(windowSeconds),
		"-vf", "cropdetect",
		"-an",
		"-f", "null", "-",
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil
	}
	if err := cmd.Start(); err != nil {
		return nil
	}

	// The filter refines its estimate over the window; keep the last value.
	var last *Box
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if box, ok := ParseLine(scanner.Text()); ok {
			last = &box
		}
	}
	_ = cmd.Wait()
	return last
}

// ParseLine extracts a crop rectangle from a single cropdetect diagnostic line.
func ParseLine(line string) (Box, bool) {
	match := cropLine.FindStringSubmatch(line)
	if match == nil {
		return Box{}, false
	}
	width, _ := strconv.Atoi(match[1])
	height, _ := strconv.Atoi(match[2])
	x, _ := strconv.Atoi(match[3])
	y, _ := strconv.Atoi(match[4])
	if width <= 0 || height <= 0 {
		return Box{}, false
	}
	return Box{Width: width, Height: height, XOffset: x, YOffset: y}, true
}

// majority picks the most frequent sample value, counting "no crop" (nil) as
// a value in its own right. Ties break toward the first-seen value among the
// most frequent ones.
func majority(samples []*Box) *Box {
	counts := make(map[string]int, len(samples))
	order := make([]string, 0, len(samples))
	values := make(map[string]*Box, len(samples))

	for _, box := range samples {
		key := ""
		if box != nil {
			key = box.FilterValue()
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
			values[key] = box
		}
		counts[key]++
	}

	winner := ""
	best := 0
	for _, key := range order {
		if counts[key] > best {
			winner = key
			best = counts[key]
		}
	}
	return values[winner]
}
