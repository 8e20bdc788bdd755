package git

import (
	"context"
	"fmt"
)

// CheckoutBranch checks out an existing branch.
func (r *CommandRunner) CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := r.Run(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// CheckoutDetached checks out a revision in detached HEAD state.
func (r *CommandRunner) CheckoutDetached(ctx context.Context, rev string) error {
	_, err := r.Run(ctx, "checkout", "--detach", rev)
	if err != nil {
		return fmt.Errorf("failed to checkout %s in detached state: %w", rev, err)
	}
	return nil
}

// UpdateBranchRef force-updates a branch reference to point at a commit
// without touching the working tree.
func (r *CommandRunner) UpdateBranchRef(ctx context.Context, branchName, commitSHA string) error {
	_, err := r.Run(ctx, "update-ref", "refs/heads/"+branchName, commitSHA)
	if err != nil {
		return fmt.Errorf("failed to update branch ref %s: %w", branchName, err)
	}
	return nil
}

// UpdateRef creates or updates an arbitrary ref.
func (r *CommandRunner) UpdateRef(ctx context.Context, name, sha string) error {
	_, err := r.Run(ctx, "update-ref", name, sha)
	if err != nil {
		return fmt.Errorf("failed to update ref %s: %w", name, err)
	}
	return nil
}

// GetRef resolves an arbitrary ref to a hash.
func (r *CommandRunner) GetRef(ctx context.Context, name string) (string, error) {
	output, err := r.Run(ctx, "rev-parse", "--verify", name)
	if err != nil {
		return "", fmt.Errorf("failed to resolve ref %s: %w", name, err)
	}
	return output, nil
}

// DeleteRef deletes an arbitrary ref.
func (r *CommandRunner) DeleteRef(ctx context.Context, name string) error {
	_, err := r.Run(ctx, "update-ref", "-d", name)
	if err != nil {
		return fmt.Errorf("failed to delete ref %s: %w", name, err)
	}
	return nil
}
