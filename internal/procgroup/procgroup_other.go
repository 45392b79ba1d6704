//go:build !unix

package procgroup

import (
	"os/exec"
	"time"
)

// Set is a no-op on platforms without process groups.
func Set(cmd *exec.Cmd) {}

// Terminate kills the direct child only.
func Terminate(cmd *exec.Cmd, grace time.Duration) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
