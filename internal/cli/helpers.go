package cli

import (
	"context"
	"fmt"

	"chisel.dev/chisel/internal/git"
	"chisel.dev/chisel/internal/graph"
	"chisel.dev/chisel/internal/runtime"
)

// loadGraph reads the decorated commit log and lays it out. When the working
// tree is dirty, a synthetic uncommitted row is placed above the tip.
func loadGraph(ctx context.Context, rc *runtime.Context, limit int) ([]*graph.Node, error) {
	commits, err := rc.Runner.Log(ctx, git.LogOptions{MaxCount: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to read the commit log: %w", err)
	}

	dirty, err := rc.Runner.HasUncommittedChanges(ctx)
	if err != nil {
		return nil, err
	}
	if dirty && len(commits) > 0 {
		commits = append([]*git.Commit{git.NewUncommittedNode(commits[0].Hash)}, commits...)
	}

	return graph.Layout(commits), nil
}

// expandSelection resolves each argument (full hash, short hash, or any
// revision git understands) to a full commit hash.
func expandSelection(rc *runtime.Context, args []string) ([]string, error) {
	hashes := make([]string, 0, len(args))
	for _, arg := range args {
		sha, err := git.ResolveRevision(rc.RepoRoot, arg)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve %q to a commit: %w", arg, err)
		}
		hashes = append(hashes, sha)
	}
	return hashes, nil
}

// tipSubject returns the subject of the newest real commit in the laid-out
// graph, skipping the synthetic uncommitted row.
func tipSubject(nodes []*graph.Node) string {
	for _, node := range nodes {
		if !node.IsUncommitted() {
			return node.Subject
		}
	}
	return ""
}
