// Package tree implements the Betting Tree Builder: deriving the finite
// extensive-form river betting game from a compact sizing specification,
// including the all-in collapse rules, and the Node type that carries each
// decision point's legal actions and per-hand range state.
package tree

import "github.com/ehrlich-b/riversolve/internal/handrange"

// Seat identifies the acting player: 0 = out of position, 1 = in position.
const (
	OOP = 0
	IP  = 1
)

// Node is a vertex of the betting tree. The tree exclusively owns all nodes
// and all ranges; ranges are never shared across nodes.
type Node struct {
	ID int

	// ToAct is the node's acting player. For a non-terminal node this is
	// whose decision it is; for a terminal node it is the seat whose
	// starting range PlayerRange was cloned from, carried forward by the
	// same strict alternation rule used for every node (terminals do not
	// escape the alternation, they just never get legal actions).
	ToAct int

	PotSize  float64
	OOPStack float64
	IPStack  float64

	ActionSeq []string
	Parent    *Node
	Children  map[string]*Node

	// LegalActions is nil iff the node is terminal.
	LegalActions []string

	// IncomingActionIndex is the index into Parent.LegalActions of the
	// edge that produced this node, or -1 at the root.
	IncomingActionIndex int

	PlayerRange *handrange.Range
}

// IsTerminal reports whether n has no legal actions.
func (n *Node) IsTerminal() bool {
	return n.LegalActions == nil
}

// Tree is a built betting tree: Nodes is every node in BFS (construction)
// order, with Root == Nodes[0].
type Tree struct {
	Root  *Node
	Nodes []*Node
}
