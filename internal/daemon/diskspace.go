//go:build unix

package daemon

import (
	"fmt"

	"golang.org/x/sys/unix"

	"telecine/internal/encode"
	"telecine/internal/queue"
)

// minFreeSpaceCheck rejects admission when the output filesystem has less
// than minGiB free. A failed statfs does not block admission; the encode
// itself will surface a genuinely broken output path.
func minFreeSpaceCheck(outputDir string, minGiB int64) queue.AdmissionCheck {
	return func(encode.Request) error {
		var stat unix.Statfs_t
		if err := unix.Statfs(outputDir, &stat); err != nil {
			return nil
		}
		freeBytes := int64(stat.Bavail) * int64(stat.Bsize)
		minBytes := minGiB << 30
		if freeBytes < minBytes {
			return fmt.Errorf("output filesystem has %.1f GiB free, need at least %d GiB",
				float64(freeBytes)/(1<<30), minGiB)
		}
		return nil
	}
}
