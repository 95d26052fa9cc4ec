//go:build !windows

package process

import (
	"os"
	"syscall"
)

// exitCode returns the child's exit status, or the negated signal number
// when the child was terminated by a signal.
func exitCode(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return state.ExitCode()
}
