//go:build !windows

package server

import (
	"os"
	"os/exec"
	"syscall"
)

// spawnDetached starts name in its own session so it survives this
// process's exit. Output goes to logPath, or /dev/null when logPath is
// empty or cannot be opened.
func spawnDetached(name string, args []string, dir, logPath string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	// A nil file leaves the stream connected to /dev/null via exec.
	out := openSpawnLog(logPath)
	if out != nil {
		cmd.Stdout = out
		cmd.Stderr = out
	}
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		if out != nil {
			out.Close()
		}
		return 0, err
	}
	pid := cmd.Process.Pid

	// The child owns its own copy of the descriptor after Start.
	if out != nil {
		out.Close()
	}

	// Detach: no Wait. The child is in its own session, so it is
	// reparented and reaped by init when it exits after we are gone.
	_ = cmd.Process.Release()

	return pid, nil
}

// openSpawnLog opens logPath for appending, falling back to /dev/null.
func openSpawnLog(logPath string) *os.File {
	if logPath != "" {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600); err == nil {
			return f
		}
	}
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		// Last resort; nil writers make exec wire up /dev/null itself.
		return nil
	}
	return f
}
