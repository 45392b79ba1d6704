// Package screenshots extracts preview frames from source files and caches
// them on disk. Previews let a user judge a derived filter chain (crop,
// deinterlace, aspect) before committing to a full encode.
package screenshots

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"telecine/internal/logging"
)

// samplePoints mirrors the crop-detection sample positions so previews show
// the same frames the detector voted on.
var samplePoints = []float64{0.2, 0.5, 0.8}

// Options configures a Generator.
type Options struct {
	// Binary is the ffmpeg executable.
	Binary string
	// Dir is the cache root.
	Dir string
	// Quality is the JPEG quality scale (2 best, 31 worst).
	Quality int
	Logger  *slog.Logger
}

// Generator produces and caches preview frames.
type Generator struct {
	binary  string
	dir     string
	quality int
	logger  *slog.Logger
}

// NewGenerator builds a Generator from opts.
func NewGenerator(opts Options) *Generator {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	quality := opts.Quality
	if quality <= 0 {
		quality = 3
	}
	binary := opts.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Generator{
		binary:  binary,
		dir:     opts.Dir,
		quality: quality,
		logger:  logging.NewComponentLogger(logger, "screenshots"),
	}
}

// CacheKey derives the cache identity for path from its name, size, and
// modification time, so an edited or replaced file never serves stale
// previews. The filter chain participates too: different corrections mean
// different frames.
func CacheKey(path string, filterChain string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%d|%s",
		path, info.Size(), info.ModTime().UnixNano(), filterChain))
	return hex.EncodeToString(sum[:]), nil
}

// Generate returns preview frame paths for the source, extracting them if
// the cache has no entry. Frames are taken at fixed fractions of the
// duration with the filter chain applied.
func (g *Generator) Generate(ctx context.Context, path string, durationSeconds float64, filterChain string) ([]string, error) {
	key, err := CacheKey(path, filterChain)
	if err != nil {
		return nil, err
	}
	entryDir := filepath.Join(g.dir, key)

	if cached, ok := g.cachedFrames(entryDir); ok {
		return cached, nil
	}

	// Build into a temp dir and rename so a crashed extraction never
	// leaves a partial cache entry behind.
	workDir, err := os.MkdirTemp(g.dir, key+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	group, groupCtx := errgroup.WithContext(ctx)
	for i, point := range samplePoints {
		offset := durationSeconds * point
		output := filepath.Join(workDir, fmt.Sprintf("frame_%02d.jpg", i))
		group.Go(func() error {
			return g.extractFrame(groupCtx, path, offset, filterChain, output)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if err := os.Rename(workDir, entryDir); err != nil {
		// A concurrent request may have won the rename; serve its entry.
		if cached, ok := g.cachedFrames(entryDir); ok {
			return cached, nil
		}
		return nil, fmt.Errorf("finalize cache entry: %w", err)
	}

	cached, ok := g.cachedFrames(entryDir)
	if !ok {
		return nil, fmt.Errorf("cache entry %s has no frames", key)
	}
	return cached, nil
}

func (g *Generator) cachedFrames(dir string) ([]string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false
	}
	var frames []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".jpg") {
			continue
		}
		frames = append(frames, filepath.Join(dir, entry.Name()))
	}
	if len(frames) != len(samplePoints) {
		return nil, false
	}
	sort.Strings(frames)
	return frames, true
}

func (g *Generator) extractFrame(ctx context.Context, path string, offset float64, filterChain string, output string) error {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-ss", fmt.Sprintf("%.2f", offset),
		"-i", path,
	}
	if filterChain != "" {
		args = append(args, "-vf", filterChain)
	}
	args = append(args,
		"-frames:v", "1",
		"-q:v", fmt.Sprintf("%d", g.quality),
		"-y", output,
	)

	cmd := exec.CommandContext(ctx, g.binary, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		g.logger.Warn("frame extraction failed",
			logging.String("source", path),
			logging.Float64("offset", offset),
			logging.Error(err))
		return fmt.Errorf("extract frame at %.2fs: %w (%s)", offset, err, strings.TrimSpace(string(out)))
	}
	return nil
}
