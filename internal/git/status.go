package git

import (
	"context"
	"fmt"
	"strings"
)

// HasUncommittedChanges reports whether the working tree or index differ
// from HEAD, including untracked files.
func (r *CommandRunner) HasUncommittedChanges(ctx context.Context) (bool, error) {
	output, err := r.Run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to check working tree status: %w", err)
	}
	return strings.TrimSpace(output) != "", nil
}

// CurrentBranch returns the name of the checked-out branch, or an empty
// string when HEAD is detached.
func (r *CommandRunner) CurrentBranch(ctx context.Context) (string, error) {
	output, err := r.Run(ctx, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return output, nil
}

// RevParse resolves a revision to a full hash.
func (r *CommandRunner) RevParse(ctx context.Context, rev string) (string, error) {
	output, err := r.Run(ctx, "rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", rev, err)
	}
	return output, nil
}

// Head returns the hash HEAD currently points at.
func (r *CommandRunner) Head(ctx context.Context) (string, error) {
	return r.RevParse(ctx, "HEAD")
}

// Subject returns the subject line of a commit.
func (r *CommandRunner) Subject(ctx context.Context, rev string) (string, error) {
	output, err := r.Run(ctx, "log", "--max-count=1", "--pretty=format:%s", rev)
	if err != nil {
		return "", fmt.Errorf("failed to get subject of %s: %w", rev, err)
	}
	return output, nil
}
