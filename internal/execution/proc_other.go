//go:build !unix

package execution

import "os/exec"

// configureProcess keeps the default cancellation, which kills the shell
func configureProcess(cmd *exec.Cmd) {}
