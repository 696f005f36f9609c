// Package model defines the core data structures used throughout ytmdl.
//
// This package contains the following main types:
//   - WorkItem: A single URL to download, tagged with its source line number
//   - BatchResult: Aggregate counts and failures for one batch run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Both the engine package (which produces results) and the
// report package (which renders them) need these types, so centralizing them
// prevents import cycles.
package model
