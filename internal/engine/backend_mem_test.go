package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	chiselerrors "chisel.dev/chisel/internal/errors"
	"chisel.dev/chisel/internal/git"
)

// memBackend is an in-memory commit DAG implementing Backend. Replay is
// simulated by applying a commit's change set onto the current head's tree,
// which is enough to verify ordering, content equivalence, and rollback
// without a real repository.
type memCommit struct {
	hash    string
	parents []string
	subject string
	message string
	// change is the delta this commit applies to its parent's tree.
	change map[string]string
	// tree is the full file state after the commit.
	tree map[string]string
}

type memBackend struct {
	commits  map[string]*memCommit
	branches map[string]string
	refs     map[string]string

	head   string
	branch string
	dirty  bool

	// conflicts marks commits whose replay fails.
	conflicts map[string]bool

	// failHardReset makes HardReset fail, simulating a wedged worktree
	// during rollback.
	failHardReset bool

	staged  map[string]string
	seq     int
	aborted int
}

func newMemBackend() *memBackend {
	return &memBackend{
		commits:   make(map[string]*memCommit),
		branches:  make(map[string]string),
		refs:      make(map[string]string),
		conflicts: make(map[string]bool),
	}
}

// addCommit appends a commit to the DAG. The first parent may be "" for a
// root commit.
func (b *memBackend) addCommit(hash, subject string, change map[string]string, parents ...string) {
	tree := make(map[string]string)
	if len(parents) > 0 && parents[0] != "" {
		for k, v := range b.commits[parents[0]].tree {
			tree[k] = v
		}
	}
	for k, v := range change {
		tree[k] = v
	}
	var ps []string
	for _, p := range parents {
		if p != "" {
			ps = append(ps, p)
		}
	}
	b.commits[hash] = &memCommit{
		hash:    hash,
		parents: ps,
		subject: subject,
		message: subject,
		change:  change,
		tree:    tree,
	}
}

// checkout puts the backend on a branch.
func (b *memBackend) checkout(branch string) {
	b.branch = branch
	b.head = b.branches[branch]
}

func (b *memBackend) resolve(rev string) (string, error) {
	if _, ok := b.commits[rev]; ok {
		return rev, nil
	}
	if sha, ok := b.branches[rev]; ok {
		return sha, nil
	}
	if sha, ok := b.refs[rev]; ok {
		return sha, nil
	}
	return "", fmt.Errorf("unknown revision %s", rev)
}

func (b *memBackend) CurrentBranch(context.Context) (string, error) {
	return b.branch, nil
}

func (b *memBackend) HasUncommittedChanges(context.Context) (bool, error) {
	return b.dirty, nil
}

func (b *memBackend) Head(context.Context) (string, error) {
	if b.head == "" {
		return "", errors.New("no HEAD")
	}
	return b.head, nil
}

func (b *memBackend) RevParse(_ context.Context, rev string) (string, error) {
	return b.resolve(rev)
}

func (b *memBackend) FirstParentHistory(_ context.Context, rev string) ([]*git.Commit, error) {
	start := b.head
	if rev != "" {
		var err error
		start, err = b.resolve(rev)
		if err != nil {
			return nil, err
		}
	}

	var newestFirst []*memCommit
	for hash := start; hash != ""; {
		c, ok := b.commits[hash]
		if !ok {
			return nil, fmt.Errorf("dangling commit %s", hash)
		}
		newestFirst = append(newestFirst, c)
		if len(c.parents) == 0 {
			break
		}
		hash = c.parents[0]
	}

	history := make([]*git.Commit, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		c := newestFirst[i]
		history = append(history, &git.Commit{
			Hash:    c.hash,
			Parents: append([]string(nil), c.parents...),
			Subject: c.subject,
		})
	}
	return history, nil
}

func (b *memBackend) CheckoutBranch(_ context.Context, branchName string) error {
	sha, ok := b.branches[branchName]
	if !ok {
		return fmt.Errorf("no branch %s", branchName)
	}
	b.branch = branchName
	b.head = sha
	return nil
}

func (b *memBackend) CheckoutDetached(_ context.Context, rev string) error {
	sha, err := b.resolve(rev)
	if err != nil {
		return err
	}
	b.branch = ""
	b.head = sha
	return nil
}

func (b *memBackend) SoftReset(_ context.Context, rev string) error {
	sha, err := b.resolve(rev)
	if err != nil {
		return err
	}
	// The tree of the old HEAD stays staged.
	b.staged = b.commits[b.head].tree
	b.head = sha
	return nil
}

func (b *memBackend) HardReset(_ context.Context, rev string) error {
	if b.failHardReset {
		return errors.New("unable to unlink working tree files")
	}
	sha, err := b.resolve(rev)
	if err != nil {
		return err
	}
	b.head = sha
	b.staged = nil
	b.dirty = false
	return nil
}

func (b *memBackend) CherryPick(_ context.Context, commitSHA string) error {
	source, ok := b.commits[commitSHA]
	if !ok {
		return fmt.Errorf("unknown commit %s", commitSHA)
	}
	if b.conflicts[commitSHA] {
		return chiselerrors.NewGitCommandError("git", []string{"cherry-pick", commitSHA},
			"", "CONFLICT (content): Merge conflict", 1, errors.New("exit status 1"))
	}

	b.seq++
	newHash := fmt.Sprintf("replayed-%d", b.seq)
	tree := make(map[string]string)
	for k, v := range b.commits[b.head].tree {
		tree[k] = v
	}
	for k, v := range source.change {
		tree[k] = v
	}
	b.commits[newHash] = &memCommit{
		hash:    newHash,
		parents: []string{b.head},
		subject: source.subject,
		message: source.message,
		change:  source.change,
		tree:    tree,
	}
	b.head = newHash
	return nil
}

func (b *memBackend) CherryPickAbort(context.Context) error {
	b.aborted++
	return nil
}

func (b *memBackend) CommitStaged(_ context.Context, message string) error {
	tree := b.staged
	if tree == nil {
		tree = b.commits[b.head].tree
	}
	b.seq++
	newHash := fmt.Sprintf("squashed-%d", b.seq)
	subject := message
	if idx := strings.Index(message, "\n"); idx >= 0 {
		subject = message[:idx]
	}
	b.commits[newHash] = &memCommit{
		hash:    newHash,
		parents: []string{b.head},
		subject: subject,
		message: message,
		tree:    tree,
	}
	b.head = newHash
	b.staged = nil
	return nil
}

func (b *memBackend) UpdateBranchRef(_ context.Context, branchName, commitSHA string) error {
	b.branches[branchName] = commitSHA
	return nil
}

func (b *memBackend) UpdateRef(_ context.Context, name, sha string) error {
	b.refs[name] = sha
	return nil
}

func (b *memBackend) GetRef(_ context.Context, name string) (string, error) {
	sha, ok := b.refs[name]
	if !ok {
		return "", fmt.Errorf("no ref %s", name)
	}
	return sha, nil
}

func (b *memBackend) DeleteRef(_ context.Context, name string) error {
	delete(b.refs, name)
	return nil
}

// subjectsFromTip walks first parents from the branch tip and returns the
// subjects newest first.
func (b *memBackend) subjectsFromTip(branch string) []string {
	var subjects []string
	for hash := b.branches[branch]; hash != ""; {
		c := b.commits[hash]
		subjects = append(subjects, c.subject)
		if len(c.parents) == 0 {
			break
		}
		hash = c.parents[0]
	}
	return subjects
}

// linearRepo builds main = C1 <- C2 <- C3 <- C4 with one file per commit.
func linearRepo() *memBackend {
	b := newMemBackend()
	b.addCommit("c1", "one", map[string]string{"a.txt": "1"}, "")
	b.addCommit("c2", "two", map[string]string{"b.txt": "2"}, "c1")
	b.addCommit("c3", "three", map[string]string{"c.txt": "3"}, "c2")
	b.addCommit("c4", "four", map[string]string{"d.txt": "4"}, "c3")
	b.branches["main"] = "c4"
	b.checkout("main")
	return b
}
