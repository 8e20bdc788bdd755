package engine

import (
	chiselerrors "chisel.dev/chisel/internal/errors"
	"chisel.dev/chisel/internal/git"
)

// Range is the contiguous span of commits a rewrite must replay: everything
// from the earliest affected commit through the current tip. Hashes change
// whenever ancestry changes, so nothing newer than the earliest affected
// commit can be kept as-is.
type Range struct {
	// Base is the immediate parent of the oldest range commit; replay
	// starts on top of it.
	Base string
	// Commits holds the range oldest first, base exclusive through tip.
	Commits []*git.Commit
}

// Tip returns the newest commit of the range (the pre-rewrite branch tip).
func (r *Range) Tip() string {
	return r.Commits[len(r.Commits)-1].Hash
}

// Hashes returns the range hashes oldest first.
func (r *Range) Hashes() []string {
	hashes := make([]string, len(r.Commits))
	for i, c := range r.Commits {
		hashes[i] = c.Hash
	}
	return hashes
}

// Contains reports whether hash is within the range.
func (r *Range) Contains(hash string) bool {
	for _, c := range r.Commits {
		if c.Hash == hash {
			return true
		}
	}
	return false
}

// ResolveRange computes the affected range for a selection over the
// first-parent history (oldest first). For move, anchor widens the range so
// the insertion point is always inside it; pass an empty anchor otherwise.
//
// Selected hashes not present in the history (a stale selection, or a hash
// from a side branch of a merge) are discarded before validation; the
// synthetic uncommitted node never counts as selected.
func ResolveRange(selected []string, history []*git.Commit, anchor string) (*Range, error) {
	position := make(map[string]int, len(history))
	for i, c := range history {
		position[c.Hash] = i
	}

	start := -1
	for _, hash := range selected {
		if hash == git.UncommittedHash {
			continue
		}
		pos, ok := position[hash]
		if !ok {
			continue
		}
		if start == -1 || pos < start {
			start = pos
		}
	}
	if start == -1 {
		return nil, chiselerrors.NewValidationError(chiselerrors.EmptySelection, "")
	}

	if anchor != "" {
		pos, ok := position[anchor]
		if !ok {
			return nil, chiselerrors.NewValidationError(chiselerrors.InvalidDropTarget, anchor)
		}
		if pos < start {
			start = pos
		}
	}

	oldest := history[start]
	if oldest.IsRoot() {
		return nil, chiselerrors.NewValidationError(chiselerrors.RootIncluded, oldest.ShortHash())
	}
	for _, c := range history[start:] {
		if c.IsMerge() {
			return nil, chiselerrors.NewValidationError(chiselerrors.MergeInRange, c.ShortHash())
		}
	}

	return &Range{
		Base:    oldest.Parents[0],
		Commits: history[start:],
	}, nil
}
