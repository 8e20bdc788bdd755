package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	chiselerrors "chisel.dev/chisel/internal/errors"
)

// Engine orchestrates squash, drop, and move transactions against a single
// repository. At most one transaction can be in flight at a time; the lease
// is held for the full lifetime of a transaction and released on every exit
// path, including rollback.
type Engine struct {
	backend Backend
	guard   conflictGuard
	notify  Notifier
	confirm Confirmer

	// mu is the per-repository lease.
	mu sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier routes engine progress messages to n.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notify = n }
}

// WithConfirmer routes destructive-step confirmations to c.
func WithConfirmer(c Confirmer) Option {
	return func(e *Engine) { e.confirm = c }
}

// New creates an Engine over the given backend. Without options the engine
// runs headless: prompts auto-confirm and notifications are discarded.
func New(backend Backend, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		guard:   conflictGuard{backend: backend},
		notify:  nopNotifier{},
		confirm: AutoConfirm{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SquashResult reports a completed squash.
type SquashResult struct {
	NewTip string
}

// DropResult reports a completed drop. NewTip doubles as the caller's next
// selection target.
type DropResult struct {
	NewTip string
}

// MoveResult reports a completed move. Rewritten maps every replayed
// commit's old hash to its new one so callers can re-target hash-keyed
// state; it is empty when the move was a no-op.
type MoveResult struct {
	NewTip    string
	Rewritten map[string]string
}

// Squash combines the affected range into one commit whose tree equals the
// range tip's tree. Requires at least two selected commits.
func (e *Engine) Squash(ctx context.Context, selected []string, message string) (*SquashResult, error) {
	res, err := e.run(ctx, Squash{Message: message}, selected)
	if err != nil {
		return nil, err
	}
	return &SquashResult{NewTip: res.newTip}, nil
}

// Drop removes the selected commits from history, replaying every other
// commit of the affected range in its original relative order.
func (e *Engine) Drop(ctx context.Context, selected []string) (*DropResult, error) {
	res, err := e.run(ctx, Drop{}, selected)
	if err != nil {
		return nil, err
	}
	return &DropResult{NewTip: res.newTip}, nil
}

// Move reorders the selected commits, placing them immediately before the
// given commit in oldest-to-newest order (or at the newest end when before
// is empty). A move that leaves the order unchanged succeeds without
// touching the repository.
func (e *Engine) Move(ctx context.Context, selected []string, before string) (*MoveResult, error) {
	res, err := e.run(ctx, Move{Before: before}, selected)
	if err != nil {
		return nil, err
	}
	return &MoveResult{NewTip: res.newTip, Rewritten: res.rewritten}, nil
}

// plan holds everything a validated transaction needs before its first
// destructive step. Built fresh per operation, discarded afterwards.
type plan struct {
	selected    map[string]bool
	rng         *Range
	branch      string
	originalTip string
	// newOrder is the replay order for move, nil otherwise.
	newOrder []string
}

type txResult struct {
	newTip    string
	rewritten map[string]string
}

func (e *Engine) run(ctx context.Context, op Operation, selected []string) (*txResult, error) {
	if !e.mu.TryLock() {
		return nil, chiselerrors.ErrRewriteInFlight
	}
	defer e.mu.Unlock()

	p, err := e.validate(ctx, op, selected)
	if err != nil {
		return nil, err
	}

	if mv, ok := op.(Move); ok {
		p.newOrder = moveOrder(p.rng.Hashes(), p.selected, mv.Before)
		if sameOrder(p.newOrder, p.rng.Hashes()) {
			e.notify.Debug("move leaves the order unchanged, nothing to do")
			return &txResult{newTip: p.originalTip, rewritten: map[string]string{}}, nil
		}
	}

	checkpoint, err := CreateCheckpoint(ctx, e.backend, p.branch, p.originalTip)
	if err != nil {
		return nil, err
	}
	e.notify.Debug("checkpoint %s at %s", checkpoint.Ref, p.originalTip)

	// Once checkpointed, the transaction always runs to committed or
	// rolled back; every failure path below goes through rollback.
	res, err := e.replay(ctx, op, p)
	if err != nil {
		return nil, e.rollback(ctx, checkpoint, err)
	}

	if err := e.reattach(ctx, p, res.newTip); err != nil {
		return nil, e.rollback(ctx, checkpoint, err)
	}

	checkpoint.Drop(ctx)
	e.notify.Info("History rewritten: %s is now %s", e.describeTarget(p), shortHash(res.newTip))
	return res, nil
}

func (e *Engine) validate(ctx context.Context, op Operation, selected []string) (*plan, error) {
	sel := selectionSet(selected)
	minSelected := 1
	if _, ok := op.(Squash); ok {
		minSelected = 2
	}
	if len(sel) < minSelected {
		return nil, chiselerrors.NewValidationError(chiselerrors.EmptySelection,
			fmt.Sprintf("%s needs at least %d commits", op.Name(), minSelected))
	}

	dirty, err := e.backend.HasUncommittedChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chiselerrors.ErrBackend, err)
	}
	if dirty {
		confirmed, confirmErr := e.confirm.Confirm(
			"The working tree has uncommitted changes that will be lost. Continue?", false)
		if confirmErr != nil || !confirmed {
			return nil, chiselerrors.NewValidationError(chiselerrors.DirtyWorkingTree, "")
		}
	}

	branch, err := e.backend.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chiselerrors.ErrBackend, err)
	}
	if branch == "" {
		// Only squash tolerates a detached checkout.
		if _, ok := op.(Squash); !ok {
			return nil, chiselerrors.NewValidationError(chiselerrors.DetachedHeadUnsupported, op.Name())
		}
	}

	tip, err := e.backend.Head(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chiselerrors.ErrBackend, err)
	}

	history, err := e.backend.FirstParentHistory(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", chiselerrors.ErrBackend, err)
	}
	if len(history) == 0 || history[len(history)-1].Hash != tip {
		return nil, chiselerrors.NewConsistencyError("history read", fmt.Errorf("tip %s not at end of first-parent log", tip))
	}

	// Stale selections from an outdated view are discarded; the minimum
	// only counts commits that still exist on the first-parent line.
	inHistory := make(map[string]bool, len(history))
	for _, commit := range history {
		inHistory[commit.Hash] = true
	}
	for hash := range sel {
		if !inHistory[hash] {
			delete(sel, hash)
		}
	}
	if len(sel) < minSelected {
		return nil, chiselerrors.NewValidationError(chiselerrors.EmptySelection,
			fmt.Sprintf("%s needs at least %d commits", op.Name(), minSelected))
	}

	anchor := ""
	if mv, ok := op.(Move); ok {
		anchor = mv.Before
	}
	rng, err := ResolveRange(selected, history, anchor)
	if err != nil {
		return nil, err
	}

	return &plan{
		selected:    sel,
		rng:         rng,
		branch:      branch,
		originalTip: tip,
	}, nil
}

func (e *Engine) replay(ctx context.Context, op Operation, p *plan) (*txResult, error) {
	switch op := op.(type) {
	case Squash:
		return e.replaySquash(ctx, op, p)
	case Drop:
		return e.replayDrop(ctx, p)
	case Move:
		return e.replayMove(ctx, p)
	default:
		return nil, fmt.Errorf("unknown operation %T", op)
	}
}

// replaySquash builds the single squashed commit: its tree is the range
// tip's tree, its parent is the base. Achieved by detaching at the tip and
// soft-resetting to the base so the whole range is staged at once.
func (e *Engine) replaySquash(ctx context.Context, op Squash, p *plan) (*txResult, error) {
	if err := e.backend.CheckoutDetached(ctx, p.rng.Tip()); err != nil {
		return nil, err
	}
	if err := e.backend.SoftReset(ctx, p.rng.Base); err != nil {
		return nil, err
	}
	if err := e.backend.CommitStaged(ctx, squashMessage(op, p.rng)); err != nil {
		return nil, err
	}

	newTip, err := e.backend.Head(ctx)
	if err != nil {
		return nil, chiselerrors.NewConsistencyError("squash commit", err)
	}
	return &txResult{newTip: newTip}, nil
}

// replayDrop rebuilds the range on top of the base, skipping the selected
// commits and keeping everything else in its original relative order.
func (e *Engine) replayDrop(ctx context.Context, p *plan) (*txResult, error) {
	if err := e.backend.CheckoutDetached(ctx, p.rng.Base); err != nil {
		return nil, err
	}
	for _, commit := range p.rng.Commits {
		if p.selected[commit.Hash] {
			continue
		}
		if err := e.guard.replay(ctx, commit.Hash); err != nil {
			return nil, err
		}
	}

	newTip, err := e.backend.Head(ctx)
	if err != nil {
		return nil, chiselerrors.NewConsistencyError("drop replay", err)
	}
	return &txResult{newTip: newTip}, nil
}

// replayMove rebuilds the whole range in the new order, recording the new
// hash of every replayed commit.
func (e *Engine) replayMove(ctx context.Context, p *plan) (*txResult, error) {
	if err := e.backend.CheckoutDetached(ctx, p.rng.Base); err != nil {
		return nil, err
	}

	rewritten := make(map[string]string, len(p.newOrder))
	for _, hash := range p.newOrder {
		if err := e.guard.replay(ctx, hash); err != nil {
			return nil, err
		}
		newSHA, err := e.backend.Head(ctx)
		if err != nil {
			return nil, chiselerrors.NewConsistencyError("move replay", err)
		}
		rewritten[hash] = newSHA
	}

	newTip, err := e.backend.Head(ctx)
	if err != nil {
		return nil, chiselerrors.NewConsistencyError("move replay", err)
	}
	return &txResult{newTip: newTip, rewritten: rewritten}, nil
}

// reattach moves the branch ref to the new tip and returns the working
// tree to the branch. This is the only moment the branch becomes
// observably changed. A squash run from a detached checkout stays detached.
func (e *Engine) reattach(ctx context.Context, p *plan, newTip string) error {
	if p.branch == "" {
		return nil
	}
	if err := e.backend.UpdateBranchRef(ctx, p.branch, newTip); err != nil {
		return err
	}
	return e.backend.CheckoutBranch(ctx, p.branch)
}

// rollback restores the pre-transaction state and surfaces the cause. A
// failed restore is escalated loudly: it means the repository is left
// detached and needs manual attention.
func (e *Engine) rollback(ctx context.Context, checkpoint *Checkpoint, cause error) error {
	e.notify.Warn("Rewrite failed, rolling back: %v", cause)
	if err := checkpoint.Restore(ctx); err != nil {
		return fmt.Errorf("%w: %v (while handling: %w)", chiselerrors.ErrRollbackFailed, err, cause)
	}
	checkpoint.Drop(ctx)
	e.notify.Info("Rolled back to %s", shortHash(checkpoint.Tip))
	return cause
}

func (e *Engine) describeTarget(p *plan) string {
	if p.branch == "" {
		return "detached HEAD"
	}
	return p.branch
}

// squashMessage assembles the squashed commit message: the caller-supplied
// subject (or the range tip's subject) plus a body listing every squashed
// commit for traceability.
func squashMessage(op Squash, rng *Range) string {
	subject := op.Message
	if subject == "" {
		subject = rng.Commits[len(rng.Commits)-1].Subject
	}

	var b strings.Builder
	b.WriteString(subject)
	b.WriteString("\n\nSquashed commits:\n")
	for _, commit := range rng.Commits {
		fmt.Fprintf(&b, "- %s %s\n", commit.ShortHash(), commit.Subject)
	}
	return b.String()
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
