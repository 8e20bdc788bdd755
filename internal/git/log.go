package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// UncommittedHash is the synthetic hash used for the working-tree node.
// It never reaches the rewrite engine; selections are filtered before
// validation.
const UncommittedHash = "UNCOMMITTED"

// RefKind classifies a decoration ref on a commit.
type RefKind int

const (
	// RefBranch is a local branch head.
	RefBranch RefKind = iota
	// RefRemote is a remote-tracking branch.
	RefRemote
	// RefTag is a tag.
	RefTag
	// RefOther is any other decoration (stash, notes, replace refs).
	RefOther
)

// Ref is a single decoration on a commit.
type Ref struct {
	Name string
	Kind RefKind
	// Head is true when this ref is (or carries) the current HEAD.
	Head bool
}

// Commit is one node of the commit log, immutable once parsed.
type Commit struct {
	Hash        string
	Parents     []string
	AuthorName  string
	AuthorEmail string
	AuthorDate  string // ISO-8601
	Subject     string
	Refs        []Ref
}

// IsMerge reports whether the commit has more than one parent.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// IsRoot reports whether the commit has no parent.
func (c *Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// IsUncommitted reports whether this is the synthetic working-tree node.
func (c *Commit) IsUncommitted() bool {
	return c.Hash == UncommittedHash
}

// ShortHash returns the abbreviated hash for display.
func (c *Commit) ShortHash() string {
	if c.IsUncommitted() {
		return "*"
	}
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// HasBranchTip reports whether the commit carries a local or remote branch
// decoration. The layout recolors lanes at these boundaries.
func (c *Commit) HasBranchTip() bool {
	for _, ref := range c.Refs {
		if ref.Kind == RefBranch || ref.Kind == RefRemote {
			return true
		}
	}
	return false
}

// NewUncommittedNode builds the sentinel node representing uncommitted
// working-tree changes, parented on the given HEAD commit.
func NewUncommittedNode(headHash string) *Commit {
	return &Commit{
		Hash:    UncommittedHash,
		Parents: []string{headHash},
		Subject: "Uncommitted changes",
	}
}

// logFormat produces one record per line with tab-separated fields:
// hash, parent hashes, author name, author email, ISO author date,
// subject, decorations.
const logFormat = "%H%x09%P%x09%an%x09%ae%x09%aI%x09%s%x09%D"

// LogOptions control which commits Log returns and in what order.
type LogOptions struct {
	// MaxCount limits the number of commits. Zero means no limit.
	MaxCount int
	// FirstParent follows only the first parent at each merge.
	FirstParent bool
	// Reverse returns commits oldest first.
	Reverse bool
	// Rev is the starting revision. Empty means HEAD.
	Rev string
}

// Log reads the commit log in topological order (newest first unless
// Reverse is set) and parses it into commits.
func (r *CommandRunner) Log(ctx context.Context, opts LogOptions) ([]*Commit, error) {
	args := []string{"log", "--topo-order", "--pretty=format:" + logFormat}
	if opts.MaxCount > 0 {
		args = append(args, "--max-count="+strconv.Itoa(opts.MaxCount))
	}
	if opts.FirstParent {
		args = append(args, "--first-parent")
	}
	if opts.Reverse {
		args = append(args, "--reverse")
	}
	if opts.Rev != "" {
		args = append(args, opts.Rev)
	}

	output, err := r.RunRaw(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseLog(output)
}

// FirstParentHistory returns the full first-parent history of rev (HEAD when
// empty), oldest first. This is the replay space of the rewrite engine.
func (r *CommandRunner) FirstParentHistory(ctx context.Context, rev string) ([]*Commit, error) {
	return r.Log(ctx, LogOptions{FirstParent: true, Reverse: true, Rev: rev})
}

// ParseLog parses raw log output into commits, one record per line.
func ParseLog(output string) ([]*Commit, error) {
	output = strings.TrimRight(stripBOM(output), "\n")
	if output == "" {
		return []*Commit{}, nil
	}

	lines := strings.Split(output, "\n")
	commits := make([]*Commit, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		commit, err := parseLogLine(line)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

func parseLogLine(line string) (*Commit, error) {
	fields := strings.SplitN(line, "\t", 7)
	if len(fields) < 7 {
		return nil, fmt.Errorf("malformed log record: %q", line)
	}

	var parents []string
	if fields[1] != "" {
		parents = strings.Split(fields[1], " ")
	}

	return &Commit{
		Hash:        fields[0],
		Parents:     parents,
		AuthorName:  fields[2],
		AuthorEmail: fields[3],
		AuthorDate:  fields[4],
		Subject:     fields[5],
		Refs:        parseDecorations(fields[6]),
	}, nil
}

// parseDecorations splits a %D decoration string into refs.
// "HEAD -> name" and bare "HEAD" mark the head; "tag: name" is a tag;
// a token containing "/" is a remote ref; everything else is a local branch.
func parseDecorations(decorations string) []Ref {
	decorations = strings.TrimSpace(decorations)
	if decorations == "" {
		return nil
	}

	var refs []Ref
	for _, token := range strings.Split(decorations, ", ") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		switch {
		case strings.HasPrefix(token, "HEAD -> "):
			refs = append(refs, Ref{Name: strings.TrimPrefix(token, "HEAD -> "), Kind: RefBranch, Head: true})
		case token == "HEAD":
			refs = append(refs, Ref{Name: "HEAD", Kind: RefBranch, Head: true})
		case strings.HasPrefix(token, "tag: "):
			refs = append(refs, Ref{Name: strings.TrimPrefix(token, "tag: "), Kind: RefTag})
		case strings.Contains(token, "/"):
			refs = append(refs, Ref{Name: token, Kind: RefRemote})
		default:
			refs = append(refs, Ref{Name: token, Kind: RefBranch})
		}
	}
	return refs
}
