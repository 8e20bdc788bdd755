package git

import (
	"context"
	"fmt"
)

// CherryPick replays a single commit onto the current HEAD, committing the
// result. The caller is expected to abort on failure; see CherryPickAbort.
func (r *CommandRunner) CherryPick(ctx context.Context, commitSHA string) error {
	ctx, cancel := context.WithTimeout(ctx, r.replayTimeout)
	defer cancel()
	_, err := r.Run(ctx, "cherry-pick", "--allow-empty", "--keep-redundant-commits", commitSHA)
	if err != nil {
		return fmt.Errorf("cherry-pick of %s failed: %w", commitSHA, err)
	}
	return nil
}

// CherryPickAbort aborts an in-progress cherry-pick, discarding any
// half-applied state from the working tree and index.
func (r *CommandRunner) CherryPickAbort(ctx context.Context) error {
	_, err := r.Run(ctx, "cherry-pick", "--abort")
	if err != nil {
		return fmt.Errorf("cherry-pick abort failed: %w", err)
	}
	return nil
}

// CommitStaged creates a commit from the current index with the given
// message, without opening an editor. The message may be multi-line.
func (r *CommandRunner) CommitStaged(ctx context.Context, message string) error {
	_, err := r.RunWithInput(ctx, message, "commit", "--allow-empty", "-F", "-")
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
