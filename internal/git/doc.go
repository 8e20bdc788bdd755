// Package git provides low-level Git operations.
//
// It wraps git command execution and provides a Go-friendly interface for:
//   - Reading the commit log and decorations
//   - Branch and ref management (checkout, update-ref, delete-ref)
//   - Repo state queries (status, HEAD, rev-parse)
//   - Replay primitives (cherry-pick, reset, commit)
//
// This package should be the only place where direct git commands are executed.
package git
