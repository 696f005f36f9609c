// Package config holds the tool-level configuration for ytmdl.
//
// Three concerns live here:
//   - Settings: tunable defaults (retries, server address, default profile)
//     optionally overridden by a .ytmdl.yaml file found in the current or
//     home directory.
//   - Layout: the fixed directory layout under the installation root
//     (config/, config/profiles/, backups/configs/, env/, the PO token
//     server build artifact).
//   - Profile discovery: scanning the config directories for the JSON
//     profile documents the download engine consumes.
//
// Note the distinction: Settings configure this orchestrator; profiles are
// opaque documents owned by the engine, which this tool only resolves,
// repairs, and passes through.
package config
