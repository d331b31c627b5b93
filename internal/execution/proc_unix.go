//go:build unix

package execution

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureProcess starts the shell in its own process group so a timeout
// kills the whole build, not just sh
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
