// Package main provides the entry point for the ytmdl CLI.
//
// ytmdl is a command line front end for the gytmdl download engine.
// It keeps the engine's configuration healthy, supervises the PO token
// server the engine depends on, and orchestrates single and batch
// downloads with retries.
//
// Usage:
//
//	ytmdl download <url>
//	ytmdl batch <file>
//
// See --help for all available options.
package main

// main is the entry point for ytmdl.
func main() {
	Execute()
}
