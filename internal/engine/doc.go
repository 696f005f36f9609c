// Package engine drives the gytmdl download engine as a subprocess and
// coordinates everything a download needs around it: the PO token server,
// profile resolution, config auto-repair, interpreter selection, and the
// bounded retry loop. The batch orchestrator runs the same single-item
// flow over a URL list, strictly sequentially, and aggregates the outcome
// into a model.BatchResult.
//
// The engine itself stays opaque: it is invoked as
//
//	<python> -m gytmdl --config-path <profile.json> <url>
//
// with UTF-8 forced on its I/O streams, and judged purely by exit code.
package engine
