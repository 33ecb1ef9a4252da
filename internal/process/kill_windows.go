//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// Prepare makes context cancellation kill cmd and its children.
// Call before cmd.Start.
func Prepare(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = waitDelay
}

// KillProcessGroup kills a process tree using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
