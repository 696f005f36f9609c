package engine

import "errors"

// Engine orchestration errors. Remediation hints live in the messages
// because these surface directly to the user.
var (
	// ErrNoInterpreter is returned when neither the virtual environment
	// nor any PATH interpreter can import the download engine.
	ErrNoInterpreter = errors.New("virtual environment not found and gytmdl not installed (run: python -m venv env)")

	// ErrListNotFound is returned when the batch URL list file is missing.
	ErrListNotFound = errors.New("url list file not found")
)
