// Package scan discovers candidate source files under the media directory.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"telecine/internal/logging"
)

// File is one discovered source file.
type File struct {
	// Path is absolute.
	Path string `json:"path"`
	// RelPath is relative to the scanned root, for display.
	RelPath string `json:"rel_path"`
	Size    int64  `json:"size"`
}

// Scanner walks a media root for files with a single configured extension.
type Scanner struct {
	root      string
	extension string
	logger    *slog.Logger
}

// NewScanner builds a scanner for root. The extension is normalized to a
// leading dot and compared case-insensitively.
func NewScanner(root, extension string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	ext := strings.ToLower(strings.TrimSpace(extension))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Scanner{
		root:      root,
		extension: ext,
		logger:    logging.NewComponentLogger(logger, "scan"),
	}
}

// Scan walks the root recursively and returns matching files sorted by
// relative path. Unreadable subtrees are logged and skipped rather than
// failing the whole scan; only a missing or unreadable root is an error.
func (s *Scanner) Scan() ([]File, error) {
	if _, err := os.Stat(s.root); err != nil {
		return nil, fmt.Errorf("media root: %w", err)
	}

	var files []File
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.root {
				return err
			}
			s.logger.Warn("skipping unreadable entry",
				logging.String("path", path),
				logging.Error(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), s.extension) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			s.logger.Warn("skipping unstattable file",
				logging.String("path", path),
				logging.Error(infoErr))
			return nil
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil {
			rel = d.Name()
		}
		files = append(files, File{Path: path, RelPath: rel, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// Resolve checks that path names a readable regular file inside the media
// root and returns its absolute form.
func (s *Scanner) Resolve(path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(s.root, path)
	}
	abs = filepath.Clean(abs)

	rootAbs, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("resolve media root: %w", err)
	}
	rel, err := filepath.Rel(rootAbs, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the media directory", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", errors.New("path is a directory")
	}
	return abs, nil
}
