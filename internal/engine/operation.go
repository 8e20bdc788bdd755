package engine

// Operation is the closed set of rewrite kinds. The sealed marker method
// gives the engine an exhaustive switch instead of stringly-typed dispatch.
type Operation interface {
	isOperation()
	Name() string
}

// Squash combines the affected range into a single commit.
type Squash struct {
	// Message overrides the squashed commit's subject. When empty, the
	// newest squashed commit's subject is used.
	Message string
}

func (Squash) isOperation() {}

// Name returns the operation name for logging and lease diagnostics.
func (Squash) Name() string { return "squash" }

// Drop removes the selected commits, replaying the rest of the range.
type Drop struct{}

func (Drop) isOperation() {}

// Name returns the operation name for logging and lease diagnostics.
func (Drop) Name() string { return "drop" }

// Move reorders the selected commits within the affected range.
type Move struct {
	// Before is the commit the selection is placed in front of, in
	// oldest-to-newest replay order. Empty means the selection moves to
	// the newest end of the range.
	Before string
}

func (Move) isOperation() {}

// Name returns the operation name for logging and lease diagnostics.
func (Move) Name() string { return "move" }
