// Package repair detects and corrects the two known-invalid states in
// profile configuration documents:
//
//   - download_mode set to "aria2c", which the engine no longer accepts;
//     the field is removed so the engine falls back to its default.
//   - the {date:%Y} placeholder in template_folder, which the engine's
//     template language does not support; the placeholder is stripped,
//     including its bracket/space wrapper when present.
//
// Repair is idempotent: applying it to an already-fixed document reports
// no fix and leaves the file untouched. The whole package is best-effort;
// read, parse, or write failures are logged as warnings and reported as
// "no fix applied" rather than propagated, because a broken profile still
// gets handed to the engine, which produces its own diagnostics.
package repair
