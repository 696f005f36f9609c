// Package log provides the console logging used across the ytmdl CLI,
// built on top of the standard slog package.
//
// The ConsoleHandler renders records as short tagged lines in the style
// the tool has always printed:
//
//	[INFO] checking PO token server...
//	[SUCCESS] using profile: gytmdl
//	[WARN] could not backup config: permission denied
//
// Tags are colored with fatih/color, which disables itself automatically
// when output is not a terminal. A custom LevelSuccess level sits between
// Info and Warn so success lines can be filtered like any other level.
package log
