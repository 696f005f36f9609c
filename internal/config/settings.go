package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration values. These mirror the behavior the tool has
// always had; the settings file can override any of them.
const (
	// DefaultProfile is the profile used when -p is not given. It matches
	// the engine's own name because config/gytmdl.json is the stock
	// configuration shipped with the installation.
	DefaultProfile = "gytmdl"

	// DefaultMaxRetries is the number of additional attempts after a
	// failed download, so a download makes up to DefaultMaxRetries+1
	// attempts in total.
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the fixed pause before each retry. Engine
	// failures are usually transient (throttling, a token that had not
	// been minted yet); a short constant delay is enough.
	DefaultRetryDelay = 2 * time.Second

	// DefaultServerAddr is the loopback address of the PO token server.
	// 127.0.0.1 rather than localhost avoids IPv6 resolution surprises.
	DefaultServerAddr = "127.0.0.1:4416"

	// DefaultPingPath is the server's liveness endpoint.
	DefaultPingPath = "/ping"

	// DefaultPingTimeout bounds the liveness probe. The server answers
	// from memory, so one second is generous; no answer within it is
	// conclusive "unhealthy" for that probe.
	DefaultPingTimeout = 1 * time.Second

	// DefaultStartWait is how long the supervisor waits after spawning
	// the server before re-probing. The server typically binds its port
	// well within two seconds; a slower start is reported as a warning,
	// not a failure.
	DefaultStartWait = 2 * time.Second

	// DefaultTerminateWait is the pause after asking a stale server
	// process to terminate before starting a replacement.
	DefaultTerminateWait = 1 * time.Second

	// SettingsFileName is the optional settings file searched for in the
	// current directory and then the home directory.
	SettingsFileName = ".ytmdl.yaml"

	// AppName is used for XDG paths (the detached server's log file).
	AppName = "ytmdl"
)

// Settings are the orchestrator's own tunables. The zero value is not
// usable; construct with NewSettings and optionally layer a settings file
// on top with LoadSettingsFile.
type Settings struct {
	// Root is the installation root. Empty means "directory of the
	// running executable", resolved by Layout.
	Root string

	// DefaultProfile is the profile used when none is specified.
	DefaultProfile string

	// MaxRetries is the number of retry attempts after a failed download.
	MaxRetries int

	// RetryDelay is the pause before each retry.
	RetryDelay time.Duration

	// ServerAddr is the host:port of the PO token server.
	ServerAddr string

	// PingTimeout bounds the server liveness probe.
	PingTimeout time.Duration

	// StartWait is the post-spawn wait before re-probing the server.
	StartWait time.Duration
}

// NewSettings returns Settings populated with the documented defaults.
func NewSettings() *Settings {
	return &Settings{
		DefaultProfile: DefaultProfile,
		MaxRetries:     DefaultMaxRetries,
		RetryDelay:     DefaultRetryDelay,
		ServerAddr:     DefaultServerAddr,
		PingTimeout:    DefaultPingTimeout,
		StartWait:      DefaultStartWait,
	}
}

// Validate checks the settings for values that would break the
// orchestration loops.
func (s *Settings) Validate() error {
	if s.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}
	if s.RetryDelay < 0 {
		return ErrInvalidRetryDelay
	}
	if s.PingTimeout <= 0 {
		return ErrInvalidPingTimeout
	}
	return nil
}

// PingURL returns the full liveness probe URL.
func (s *Settings) PingURL() string {
	return "http://" + s.ServerAddr + DefaultPingPath
}

// settingsFile is the YAML shape of the settings file. Durations are
// strings ("2s", "500ms") because yaml.v3 has no native duration decoding.
type settingsFile struct {
	Root           string `yaml:"root"`
	DefaultProfile string `yaml:"default_profile"`
	MaxRetries     *int   `yaml:"max_retries"`
	RetryDelay     string `yaml:"retry_delay"`
	ServerAddr     string `yaml:"server_addr"`
	PingTimeout    string `yaml:"ping_timeout"`
	StartWait      string `yaml:"start_wait"`
}

// apply overlays the file values on s, leaving unset fields untouched.
func (f *settingsFile) apply(s *Settings) error {
	if f.Root != "" {
		s.Root = f.Root
	}
	if f.DefaultProfile != "" {
		s.DefaultProfile = f.DefaultProfile
	}
	if f.MaxRetries != nil {
		s.MaxRetries = *f.MaxRetries
	}
	if f.ServerAddr != "" {
		s.ServerAddr = f.ServerAddr
	}

	for _, d := range []struct {
		raw string
		dst *time.Duration
		key string
	}{
		{f.RetryDelay, &s.RetryDelay, "retry_delay"},
		{f.PingTimeout, &s.PingTimeout, "ping_timeout"},
		{f.StartWait, &s.StartWait, "start_wait"},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", d.key, d.raw, err)
		}
		*d.dst = parsed
	}
	return nil
}

// LoadSettingsFile reads a YAML settings file and overlays it on s.
// Fields absent from the file keep their current values. If the file does
// not exist, ErrSettingsNotFound is returned; callers decide whether that
// is fatal based on whether the path was explicitly requested.
func (s *Settings) LoadSettingsFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided settings path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return ErrSettingsNotFound
		}
		return err
	}

	var f settingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return f.apply(s)
}

// FindSettingsFile searches for the settings file in the following order:
//  1. If path is specified, use it directly
//  2. SettingsFileName in the current directory
//  3. SettingsFileName in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindSettingsFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, SettingsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, SettingsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
