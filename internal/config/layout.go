package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Layout resolves the fixed directory layout under the installation root.
// Every path the orchestrator touches goes through here so the layout is
// written down exactly once and tests can point it at a temp directory.
type Layout struct {
	root string
}

// NewLayout creates a Layout rooted at root. An empty root resolves to the
// directory of the running executable, falling back to the current working
// directory; this mirrors treating the script's own directory as the
// installation root.
func NewLayout(root string) *Layout {
	if root == "" {
		if exe, err := os.Executable(); err == nil {
			root = filepath.Dir(exe)
		} else if cwd, err := os.Getwd(); err == nil {
			root = cwd
		} else {
			root = "."
		}
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Layout{root: root}
}

// Root returns the installation root.
func (l *Layout) Root() string {
	return l.root
}

// ConfigDir returns the directory holding the main profile documents.
func (l *Layout) ConfigDir() string {
	return filepath.Join(l.root, "config")
}

// ProfilesDir returns the sub-profile directory under ConfigDir.
func (l *Layout) ProfilesDir() string {
	return filepath.Join(l.ConfigDir(), "profiles")
}

// BackupDir returns the directory repair backups are written to.
func (l *Layout) BackupDir() string {
	return filepath.Join(l.root, "backups", "configs")
}

// ProfilePath returns the configuration file for a profile name. Names may
// carry the "profiles/" prefix produced by discovery.
func (l *Layout) ProfilePath(name string) string {
	return filepath.Join(l.ConfigDir(), filepath.FromSlash(name)+".json")
}

// ServerScript returns the PO token server's build artifact.
func (l *Layout) ServerScript() string {
	return filepath.Join(l.root, "bgutil-pot-provider", "server", "build", "main.js")
}

// EnvDir returns the virtual environment directory.
func (l *Layout) EnvDir() string {
	return filepath.Join(l.root, "env")
}

// VenvPythonCandidates returns the interpreter locations inside the
// virtual environment, most likely first for the current platform. Both
// layouts are always checked because installations are sometimes copied
// between platforms.
func (l *Layout) VenvPythonCandidates() []string {
	windows := filepath.Join(l.EnvDir(), "Scripts", "python.exe")
	unix := filepath.Join(l.EnvDir(), "bin", "python")
	if runtime.GOOS == "windows" {
		return []string{windows, unix}
	}
	return []string{unix, windows}
}
