package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	chiselerrors "chisel.dev/chisel/internal/errors"
)

// DefaultCommandTimeout is the default timeout for metadata git commands.
const DefaultCommandTimeout = 1 * time.Minute

// ReplayCommandTimeout is the default timeout for commands that rewrite
// history (cherry-pick, reset). These can take much longer on large trees;
// see SetReplayTimeout for the per-repository override.
const ReplayCommandTimeout = 10 * time.Minute

// CommandRunner executes git commands against a repository bound at
// construction time.
type CommandRunner struct {
	workingDir    string
	replayTimeout time.Duration
}

// NewCommandRunner creates a new CommandRunner for the given working directory.
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir, replayTimeout: ReplayCommandTimeout}
}

// WorkingDir returns the directory the runner is bound to.
func (r *CommandRunner) WorkingDir() string {
	return r.workingDir
}

// ReplayTimeout returns the timeout applied to history-rewriting commands.
func (r *CommandRunner) ReplayTimeout() time.Duration {
	return r.replayTimeout
}

// SetReplayTimeout overrides the replay timeout. Non-positive values are
// ignored.
func (r *CommandRunner) SetReplayTimeout(d time.Duration) {
	if d > 0 {
		r.replayTimeout = d
	}
}

// Run executes a git command and returns its trimmed stdout.
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", true, args...)
}

// RunRaw executes a git command and returns its stdout without trimming.
func (r *CommandRunner) RunRaw(ctx context.Context, args ...string) (string, error) {
	return r.runInternal(ctx, "", false, args...)
}

// RunLines executes a git command and returns stdout split into lines.
func (r *CommandRunner) RunLines(ctx context.Context, args ...string) ([]string, error) {
	output, err := r.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return []string{}, nil
	}
	return strings.Split(output, "\n"), nil
}

// RunWithInput executes a git command with the given stdin content.
func (r *CommandRunner) RunWithInput(ctx context.Context, input string, args ...string) (string, error) {
	return r.runInternal(ctx, input, true, args...)
}

// runInternal is the internal implementation that handles input and trimming
func (r *CommandRunner) runInternal(ctx context.Context, input string, trim bool, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	cmd.Env = append(os.Environ(), "GIT_OPTIONAL_LOCKS=0")
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := stripBOM(stdout.String())
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		if ctx.Err() == context.DeadlineExceeded {
			return "", chiselerrors.NewGitCommandError("git", args, out, stderr.String(), exitCode, ctx.Err())
		}
		return "", chiselerrors.NewGitCommandError("git", args, out, stderr.String(), exitCode, err)
	}
	if trim {
		return strings.TrimSpace(out), nil
	}
	return out, nil
}

// stripBOM removes a leading UTF-8 byte-order mark. git on some platforms
// emits one at the start of stdout depending on the system encoding.
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
