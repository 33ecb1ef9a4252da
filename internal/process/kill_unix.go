//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// Prepare places cmd in its own process group and makes context
// cancellation kill the whole group, so helpers spawned by the rasterizer
// die with it. Call before cmd.Start.
func Prepare(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.Cancel = func() error {
		KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = waitDelay
}

// KillProcessGroup sends SIGKILL to the process group led by pid.
func KillProcessGroup(pid int) {
	// Best-effort; Wait reports whether the leader actually exited.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
