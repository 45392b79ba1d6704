//go:build unix

package procgroup

import (
	"errors"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Set configures the command to start as a process group leader.
// Must be called before the command starts.
func Set(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// Terminate sends SIGTERM to the command's process group, waits up to grace
// for the group leader to exit, and escalates to SIGKILL. A process that is
// already gone is treated as success.
func Terminate(cmd *exec.Cmd, grace time.Duration) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	pid := cmd.Process.Pid

	if err := signalGroup(pid, unix.SIGTERM); err != nil {
		return err
	}

	// cmd.Wait is owned by whoever started the command; poll for group
	// leader exit instead of stealing the wait.
	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		if !alive(pid) {
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}

	return signalGroup(pid, unix.SIGKILL)
}

func signalGroup(pid int, sig unix.Signal) error {
	pgid, err := unix.Getpgid(pid)
	if err != nil {
		if errors.Is(err, unix.ESRCH) {
			return nil
		}
		return err
	}
	if err := unix.Kill(-pgid, sig); err != nil {
		if errors.Is(err, unix.ESRCH) {
			return nil
		}
		// Group signalling can be restricted; fall back to the leader.
		if killErr := unix.Kill(pid, sig); killErr != nil && !errors.Is(killErr, unix.ESRCH) {
			return killErr
		}
	}
	return nil
}

func alive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil
}
