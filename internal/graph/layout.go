package graph

import (
	"chisel.dev/chisel/internal/git"
)

// laneTable tracks which hash owns each lane and the lane's color during the
// layout pass. Slots are grown on demand and never shrunk mid-pass; freed
// slots are reused lowest-index first to keep the graph narrow and stable
// across re-renders.
type laneTable struct {
	owner     []string
	color     []int
	nextColor int
}

// laneOf returns the lane currently owned by hash, or -1.
func (t *laneTable) laneOf(hash string) int {
	for i, owner := range t.owner {
		if owner != "" && owner == hash {
			return i
		}
	}
	return -1
}

// acquire assigns hash to the lowest free lane, growing the table if none
// is free.
func (t *laneTable) acquire(hash string) int {
	for i, owner := range t.owner {
		if owner == "" {
			t.owner[i] = hash
			return i
		}
	}
	t.owner = append(t.owner, hash)
	t.color = append(t.color, 0)
	return len(t.owner) - 1
}

func (t *laneTable) free(lane int) {
	t.owner[lane] = ""
}

func (t *laneTable) recolor(lane int) {
	t.color[lane] = t.nextColor
	t.nextColor++
}

// Layout assigns a lane, a color, and parent/pass-through connections to
// every commit of a newest-first topologically ordered list.
func Layout(commits []*git.Commit) []*Node {
	table := &laneTable{}
	nodes := make([]*Node, 0, len(commits))

	for _, commit := range commits {
		node := &Node{Commit: commit}

		// A commit already occupying a lane was referenced as a parent by
		// a newer commit above; its line of history continues here.
		lane := table.laneOf(commit.Hash)
		node.HasChildAbove = lane >= 0
		fresh := false
		if lane < 0 {
			lane = table.acquire(commit.Hash)
			fresh = true
		}
		if fresh || commit.HasBranchTip() {
			// Branch and remote tips start a new color even when the lane
			// is reused, so each branch reads as its own line.
			table.recolor(lane)
		}
		node.Lane = lane
		node.ColorLane = table.color[lane]

		// Every other lane that is active on entry passes through this row.
		for i, owner := range table.owner {
			if owner != "" && i != lane {
				node.PassThrough = append(node.PassThrough, PassThrough{
					Lane:      i,
					ColorLane: table.color[i],
				})
			}
		}

		claimed := false
		for parentIdx, parent := range commit.Parents {
			existing := table.laneOf(parent)

			if parentIdx == 0 {
				if existing >= 0 {
					// First parent is already active in another lane: this
					// node's line bends into it. The connection keeps the
					// node's own color.
					node.Connections = append(node.Connections, Connection{
						FromLane:  lane,
						ToLane:    existing,
						Kind:      ConnectionStraight,
						ColorLane: node.ColorLane,
					})
				} else {
					table.owner[lane] = parent
					claimed = true
					node.Connections = append(node.Connections, Connection{
						FromLane:  lane,
						ToLane:    lane,
						Kind:      ConnectionStraight,
						ColorLane: node.ColorLane,
					})
				}
				continue
			}

			// Merge parents get their own lane: the node's lane when the
			// first parent left it unclaimed, otherwise the lowest free
			// slot, otherwise a newly grown one.
			if existing < 0 {
				if !claimed && table.owner[lane] == commit.Hash {
					table.owner[lane] = parent
					claimed = true
					existing = lane
				} else {
					existing = table.acquire(parent)
				}
				table.recolor(existing)
			}
			node.Connections = append(node.Connections, Connection{
				FromLane:  lane,
				ToLane:    existing,
				Kind:      ConnectionMerge,
				ColorLane: table.color[existing],
			})
		}

		// No parent claimed this lane: the node is a root on this path and
		// the slot becomes available for older commits.
		if table.owner[lane] == commit.Hash {
			table.free(lane)
		}

		nodes = append(nodes, node)
	}

	return nodes
}

// Width returns the number of lanes needed to render the laid-out nodes.
func Width(nodes []*Node) int {
	width := 0
	for _, node := range nodes {
		if node.Lane+1 > width {
			width = node.Lane + 1
		}
		for _, pt := range node.PassThrough {
			if pt.Lane+1 > width {
				width = pt.Lane + 1
			}
		}
		for _, conn := range node.Connections {
			if conn.ToLane+1 > width {
				width = conn.ToLane + 1
			}
		}
	}
	return width
}
