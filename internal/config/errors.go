package config

import "errors"

// Configuration errors.
//
// Design decision: package-level sentinel errors rather than ad-hoc
// fmt.Errorf values, so callers can branch with errors.Is while the
// messages stay human-readable.
var (
	// ErrSettingsNotFound is returned when the settings file does not
	// exist. Only fatal when the user asked for a specific file.
	ErrSettingsNotFound = errors.New("settings file not found")

	// ErrProfileNotFound is returned when a profile name does not resolve
	// to a configuration file under the config directory.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidMaxRetries is returned for a negative retry count.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be non-negative")

	// ErrInvalidRetryDelay is returned for a negative retry delay.
	ErrInvalidRetryDelay = errors.New("invalid retry delay: must be non-negative")

	// ErrInvalidPingTimeout is returned for a zero or negative probe
	// timeout, which would make every probe fail instantly.
	ErrInvalidPingTimeout = errors.New("invalid ping timeout: must be positive")
)
