//go:build windows

package server

import (
	"os"
	"os/exec"
	"syscall"
)

// Creation flags for a fully detached, windowless child. DETACHED_PROCESS
// and CREATE_NO_WINDOW are not named in syscall.
const (
	detachedProcess = 0x00000008
	createNoWindow  = 0x08000000
)

// spawnDetached starts name detached from this console so it survives
// this process's exit. Output goes to logPath, or is discarded when
// logPath is empty or cannot be opened.
func spawnDetached(name string, args []string, dir, logPath string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess | createNoWindow,
	}

	if logPath != "" {
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600); err == nil {
			cmd.Stdout = f
			cmd.Stderr = f
			defer f.Close()
		}
	}
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	_ = cmd.Process.Release()

	return pid, nil
}
