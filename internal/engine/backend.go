package engine

import (
	"context"

	"chisel.dev/chisel/internal/git"
)

// Backend defines the git operations the engine needs. *git.CommandRunner
// satisfies it; tests use an in-memory implementation.
type Backend interface {
	// State queries
	CurrentBranch(ctx context.Context) (string, error)
	HasUncommittedChanges(ctx context.Context) (bool, error)
	Head(ctx context.Context) (string, error)
	RevParse(ctx context.Context, rev string) (string, error)
	FirstParentHistory(ctx context.Context, rev string) ([]*git.Commit, error)

	// Working tree movement
	CheckoutBranch(ctx context.Context, branchName string) error
	CheckoutDetached(ctx context.Context, rev string) error
	SoftReset(ctx context.Context, rev string) error
	HardReset(ctx context.Context, rev string) error

	// Replay primitives
	CherryPick(ctx context.Context, commitSHA string) error
	CherryPickAbort(ctx context.Context) error
	CommitStaged(ctx context.Context, message string) error

	// Ref management
	UpdateBranchRef(ctx context.Context, branchName, commitSHA string) error
	UpdateRef(ctx context.Context, name, sha string) error
	GetRef(ctx context.Context, name string) (string, error)
	DeleteRef(ctx context.Context, name string) error
}

var _ Backend = (*git.CommandRunner)(nil)

// Confirmer gates destructive steps on user approval. The engine only asks
// before it has taken any destructive action.
type Confirmer interface {
	Confirm(prompt string, defaultValue bool) (bool, error)
}

// AutoConfirm approves every prompt. Used for headless operation and tests.
type AutoConfirm struct{}

// Confirm always returns the affirmative.
func (AutoConfirm) Confirm(string, bool) (bool, error) { return true, nil }

// Notifier receives progress and completion messages from the engine.
// *tui.Splog satisfies it.
type Notifier interface {
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

type nopNotifier struct{}

func (nopNotifier) Info(string, ...interface{})  {}
func (nopNotifier) Debug(string, ...interface{}) {}
func (nopNotifier) Warn(string, ...interface{})  {}
