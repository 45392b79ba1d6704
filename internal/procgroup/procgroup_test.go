//go:build unix

package procgroup

import (
	"os/exec"
	"testing"
	"time"
)

func TestTerminateKillsSpawnedTree(t *testing.T) {
	// The shell spawns a grandchild; both must die with the group.
	cmd := exec.Command("/bin/sh", "-c", "sleep 60 & wait")
	Set(cmd)
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start shell: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	if err := Terminate(cmd, 2*time.Second); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("process group survived termination")
	}
}

func TestTerminateNilProcessIsNoop(t *testing.T) {
	if err := Terminate(nil, time.Second); err != nil {
		t.Fatalf("nil command: %v", err)
	}
	if err := Terminate(&exec.Cmd{}, time.Second); err != nil {
		t.Fatalf("unstarted command: %v", err)
	}
}

func TestTerminateAlreadyExited(t *testing.T) {
	cmd := exec.Command("/bin/true")
	Set(cmd)
	if err := cmd.Run(); err != nil {
		t.Skipf("cannot run /bin/true: %v", err)
	}
	if err := Terminate(cmd, time.Second); err != nil {
		t.Fatalf("already-exited process should be success: %v", err)
	}
}
