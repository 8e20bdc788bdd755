// Package errors provides sentinel errors and custom error types for chisel.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrValidation indicates a rewrite request was rejected before any
	// destructive step was taken.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates a replay step failed with a content conflict.
	ErrConflict = errors.New("replay conflict")

	// ErrConsistency indicates the engine could not resolve a hash it
	// expected to exist after a step it believed succeeded.
	ErrConsistency = errors.New("repository state inconsistent")

	// ErrBackend indicates the git process could not be run at all
	// (spawn failure or timeout).
	ErrBackend = errors.New("backend failure")

	// ErrRewriteInFlight indicates another rewrite transaction already
	// holds the repository lease.
	ErrRewriteInFlight = errors.New("another rewrite is already in progress")

	// ErrRollbackFailed indicates a rollback could not restore the original
	// branch state. The repository may be left detached.
	ErrRollbackFailed = errors.New("rollback failed")
)

// ValidationReason identifies why a rewrite request was rejected.
type ValidationReason int

const (
	// RootIncluded means the affected range starts at the root commit.
	RootIncluded ValidationReason = iota
	// MergeInRange means the affected range contains a merge commit.
	MergeInRange
	// DirtyWorkingTree means the working tree has uncommitted changes.
	DirtyWorkingTree
	// DetachedHeadUnsupported means the operation requires a named branch.
	DetachedHeadUnsupported
	// EmptySelection means no rewriteable commits were selected.
	EmptySelection
	// InvalidDropTarget means the move anchor does not exist in the history.
	InvalidDropTarget
)

func (r ValidationReason) String() string {
	switch r {
	case RootIncluded:
		return "range includes the root commit"
	case MergeInRange:
		return "range contains a merge commit"
	case DirtyWorkingTree:
		return "working tree has uncommitted changes"
	case DetachedHeadUnsupported:
		return "operation requires a branch (detached HEAD)"
	case EmptySelection:
		return "no commits selected"
	case InvalidDropTarget:
		return "move target is not in the history"
	default:
		return "unknown validation failure"
	}
}

// ValidationError is returned when a rewrite is rejected before the
// transaction reaches its checkpoint. Nothing needs to be rolled back.
type ValidationError struct {
	Reason ValidationReason
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
	}
	return e.Reason.String()
}

// Is returns true if the target error is ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a new ValidationError
func NewValidationError(reason ValidationReason, detail string) *ValidationError {
	return &ValidationError{Reason: reason, Detail: detail}
}

// ConflictError is returned when replaying a commit failed. By the time the
// caller sees it, the original branch state has been restored.
type ConflictError struct {
	Commit string
	Stderr string
}

func (e *ConflictError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("conflict while replaying %s: %s", shortHash(e.Commit), e.Stderr)
	}
	return fmt.Sprintf("conflict while replaying %s", shortHash(e.Commit))
}

// Is returns true if the target error is ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a new ConflictError
func NewConflictError(commit, stderr string) *ConflictError {
	return &ConflictError{Commit: commit, Stderr: stderr}
}

// ConsistencyError is returned when a hash the engine expected to resolve
// after a successful step could not be resolved.
type ConsistencyError struct {
	Step string
	Err  error
}

func (e *ConsistencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("inconsistent state after %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("inconsistent state after %s", e.Step)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrConsistency
func (e *ConsistencyError) Is(target error) bool {
	return target == ErrConsistency
}

// NewConsistencyError creates a new ConsistencyError
func NewConsistencyError(step string, err error) *ConsistencyError {
	return &ConsistencyError{Step: step, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command  string
	Args     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, exitCode int, err error) *GitCommandError {
	return &GitCommandError{
		Command:  command,
		Args:     args,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Err:      err,
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
