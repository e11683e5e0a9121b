//go:build !windows

package client

import (
	"os/exec"
	"syscall"
)

// applyDaemonSysProcAttr detaches the spawned daemon into its own
// session so it survives the terminal that launched it.
func applyDaemonSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}
