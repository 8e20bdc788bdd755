// Package tui provides the terminal user interface for chisel.
//
// It handles:
//   - Interactive prompts and selections (using survey and bubbletea)
//   - Structured logging and status reporting (Splog)
//   - The interactive commit graph viewer
package tui
