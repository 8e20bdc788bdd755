package graph

import (
	"chisel.dev/chisel/internal/git"
)

// ConnectionKind distinguishes a straight continuation from a merge curve.
type ConnectionKind int

const (
	// ConnectionStraight continues a line of history downward.
	ConnectionStraight ConnectionKind = iota
	// ConnectionMerge curves from a node's lane into a merge parent's lane.
	ConnectionMerge
)

// Connection is a line segment from a node's row toward one of its parents.
type Connection struct {
	FromLane  int
	ToLane    int
	Kind      ConnectionKind
	ColorLane int
}

// PassThrough is a vertical segment for a lane that is active at a row but
// does not belong to the row's node.
type PassThrough struct {
	Lane      int
	ColorLane int
}

// Node is a commit plus its computed layout. Recomputed on every layout
// pass, never persisted.
type Node struct {
	*git.Commit

	Lane          int
	ColorLane     int
	Connections   []Connection
	PassThrough   []PassThrough
	HasChildAbove bool
}
