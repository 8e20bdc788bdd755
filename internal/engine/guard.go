package engine

import (
	"context"
	"errors"

	chiselerrors "chisel.dev/chisel/internal/errors"
)

// conflictGuard wraps each replay step. On a failed step it aborts the
// in-flight cherry-pick so no half-applied state is left in the working
// tree or index, then reports a ConflictError. It never retries.
type conflictGuard struct {
	backend Backend
}

func (g *conflictGuard) replay(ctx context.Context, commitSHA string) error {
	err := g.backend.CherryPick(ctx, commitSHA)
	if err == nil {
		return nil
	}

	// Abort before the engine rolls back; the abort itself is best-effort
	// since there may be no cherry-pick in progress (spawn failure).
	_ = g.backend.CherryPickAbort(ctx)

	var cmdErr *chiselerrors.GitCommandError
	if errors.As(err, &cmdErr) {
		return chiselerrors.NewConflictError(commitSHA, cmdErr.Stderr)
	}
	return chiselerrors.NewConflictError(commitSHA, err.Error())
}
