//go:build !unix

package daemon

import (
	"telecine/internal/encode"
	"telecine/internal/queue"
)

func minFreeSpaceCheck(string, int64) queue.AdmissionCheck {
	return func(encode.Request) error { return nil }
}
