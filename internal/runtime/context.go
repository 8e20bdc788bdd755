package runtime

import (
	"fmt"

	"chisel.dev/chisel/internal/config"
	"chisel.dev/chisel/internal/engine"
	"chisel.dev/chisel/internal/git"
	"chisel.dev/chisel/internal/output"
	"chisel.dev/chisel/internal/tui"
)

// Context provides access to the git runner, rewrite engine, and output
// for commands
type Context struct {
	Runner   *git.CommandRunner
	Engine   *engine.Engine
	Splog    *tui.Splog
	Prompter *tui.Prompter
	Palette  *output.Palette
	RepoRoot string
}

// NewContext builds a context for the repository containing the current
// working directory. assumeYes corresponds to the --yes flag.
func NewContext(assumeYes bool) (*Context, error) {
	repoRoot, err := git.GetRepoRoot()
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	runner := git.NewCommandRunner(repoRoot)

	replayTimeout, err := config.GetReplayTimeout(repoRoot)
	if err != nil {
		return nil, err
	}
	if replayTimeout > 0 {
		runner.SetReplayTimeout(replayTimeout)
	}

	splog := tui.NewSplog()
	prompter := tui.NewPrompter(assumeYes)

	eng := engine.New(runner,
		engine.WithNotifier(splog),
		engine.WithConfirmer(prompter),
	)

	colorEnabled, err := config.GetColor(repoRoot)
	if err != nil {
		return nil, err
	}

	return &Context{
		Runner:   runner,
		Engine:   eng,
		Splog:    splog,
		Prompter: prompter,
		Palette:  output.NewPalette(colorEnabled && output.DetectColor()),
		RepoRoot: repoRoot,
	}, nil
}
