// Package process wraps the OS specific parts of supervising child processes
package process

import (
	"os"
	"os/exec"
)

// IsAlive reports whether a process with the given PID is still running.
// PIDs of zero or less are never alive.
func IsAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	return isAlive(pid)
}

// Isolate starts cmd in its own process group so terminal signals aimed at
// webcorder do not reach the child before it can be stopped in order.
func Isolate(cmd *exec.Cmd) {
	isolate(cmd)
}

// Interrupt asks p to shut down gracefully
func Interrupt(p *os.Process) error {
	return interrupt(p)
}

// Kill terminates p and every process in its group
func Kill(p *os.Process) error {
	return kill(p)
}
