package engine

import (
	"chisel.dev/chisel/internal/git"
)

// moveOrder computes the new oldest-first replay order for a move: the
// selected commits are pulled out of the range and reinserted immediately
// before the anchor (or at the newest end when the anchor is empty). The
// order is unchanged when the anchor itself is selected.
func moveOrder(rangeHashes []string, selected map[string]bool, before string) []string {
	if before != "" && selected[before] {
		return append([]string(nil), rangeHashes...)
	}

	var picked, rest []string
	for _, hash := range rangeHashes {
		if selected[hash] {
			picked = append(picked, hash)
		} else {
			rest = append(rest, hash)
		}
	}

	if before == "" {
		return append(rest, picked...)
	}

	out := make([]string, 0, len(rangeHashes))
	for _, hash := range rest {
		if hash == before {
			out = append(out, picked...)
		}
		out = append(out, hash)
	}
	return out
}

// sameOrder reports whether two hash sequences are identical.
func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// selectionSet builds a lookup for the selected hashes, dropping the
// synthetic uncommitted sentinel.
func selectionSet(selected []string) map[string]bool {
	set := make(map[string]bool, len(selected))
	for _, hash := range selected {
		if hash == "" || hash == git.UncommittedHash {
			continue
		}
		set[hash] = true
	}
	return set
}
