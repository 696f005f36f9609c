// Package server supervises the PO token server, the local helper process
// the download engine needs for token minting.
//
// Three layers, each independently testable:
//
//   - Lister enumerates live processes. The production implementation is
//     backed by gopsutil; tests substitute a fixed list. Entries that
//     disappear mid-scan or deny access are skipped, never fatal.
//   - Prober answers two independent questions: is a server process
//     present (executable name plus entry-point argument match), and does
//     it answer the /ping liveness endpoint within its short timeout. A
//     process can be found yet unhealthy.
//   - Supervisor ensures exactly one healthy instance: healthy is a
//     no-op, found-but-dead is terminated and replaced, absent is
//     spawned. The spawned process is detached from this process's
//     lifecycle so it survives CLI exit; its output goes to a log file
//     under the XDG state directory rather than the caller's console.
//
// The supervisor is deliberately lenient: a freshly spawned server that
// has not answered /ping yet is reported as success with a warning,
// because a slow start is not a failure of the orchestration layer.
package server
