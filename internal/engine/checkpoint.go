package engine

import (
	"context"
	"fmt"
	"time"

	chiselerrors "chisel.dev/chisel/internal/errors"
)

// checkpointRefPrefix is reserved for the engine; it must not collide with
// any user-visible naming scheme.
const checkpointRefPrefix = "refs/chisel/checkpoint-"

// Checkpoint is a named ref created at the original branch tip before any
// destructive step. It is the sole rollback mechanism: while a transaction
// is in flight the ref resolves to the original tip exactly, and after
// completion or rollback it is deleted best-effort.
type Checkpoint struct {
	backend Backend

	// Ref is the checkpoint ref name.
	Ref string
	// Branch is the original branch name, empty when HEAD was detached.
	Branch string
	// Tip is the original branch tip the checkpoint protects.
	Tip string
}

// CreateCheckpoint records the original tip under an engine-reserved ref.
func CreateCheckpoint(ctx context.Context, backend Backend, branch, tip string) (*Checkpoint, error) {
	ref := fmt.Sprintf("%s%d", checkpointRefPrefix, time.Now().UnixNano())
	if err := backend.UpdateRef(ctx, ref, tip); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	// The ref must resolve to the original tip exactly before anything
	// destructive happens.
	got, err := backend.GetRef(ctx, ref)
	if err != nil || got != tip {
		_ = backend.DeleteRef(ctx, ref)
		return nil, chiselerrors.NewConsistencyError("checkpoint creation", err)
	}

	return &Checkpoint{backend: backend, Ref: ref, Branch: branch, Tip: tip}, nil
}

// Restore returns the repository to its pre-transaction state: the original
// branch checked out (or HEAD detached at the original tip) with the
// working tree reset bit-for-bit.
func (c *Checkpoint) Restore(ctx context.Context) error {
	if c.Branch != "" {
		if err := c.backend.UpdateBranchRef(ctx, c.Branch, c.Tip); err != nil {
			return err
		}
		if err := c.backend.CheckoutBranch(ctx, c.Branch); err != nil {
			return err
		}
	} else {
		if err := c.backend.CheckoutDetached(ctx, c.Tip); err != nil {
			return err
		}
	}
	return c.backend.HardReset(ctx, c.Tip)
}

// Drop deletes the checkpoint ref. Best-effort: a leftover checkpoint ref
// is harmless and never user-visible.
func (c *Checkpoint) Drop(ctx context.Context) {
	_ = c.backend.DeleteRef(ctx, c.Ref)
}
