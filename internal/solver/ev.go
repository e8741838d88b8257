package solver

import (
	"fmt"

	"github.com/ehrlich-b/riversolve/internal/cards"
	"github.com/ehrlich-b/riversolve/internal/equity"
	"github.com/ehrlich-b/riversolve/internal/handrange"
	"github.com/ehrlich-b/riversolve/internal/tree"
)

// evHand returns hero's EV for the hand identified by tag (hole is that
// hand's hole cards, fixed across the recursion) starting from node n.
//
// At every node, the node-local copy of the hand — not whatever copy the
// caller happened to hold — is looked up by tag, since a different node in
// the recursion may belong to a different tree node's own range with its
// own current strategy. This mirrors a hand being re-resolved by name
// rather than carried by reference across the recursive descent.
func (e *Engine) evHand(n *tree.Node, tag string, hole cards.Hole, hero int) float64 {
	if n.IsTerminal() {
		return e.evTerminal(n, hole, hero)
	}

	if n.ToAct == hero {
		local := n.PlayerRange.Hands[tag]
		sum := 0.0
		for i := range n.LegalActions {
			sum += local.ActionsTaken[i] * e.evAction(n, tag, hole, i, hero)
		}
		return sum
	}

	freqs := n.PlayerRange.ActionFreqs(len(n.LegalActions))
	sum := 0.0
	for i := range n.LegalActions {
		sum += freqs[i] * e.evAction(n, tag, hole, i, hero)
	}
	return sum
}

// evAction returns hero's EV of the hand tagged tag taking n's actionIndex'th
// legal action, assuming n itself is not terminal (it is the node "from
// which" the action is taken).
func (e *Engine) evAction(n *tree.Node, tag string, hole cards.Hole, actionIndex, hero int) float64 {
	action := n.LegalActions[actionIndex]
	child := n.Children[action]

	val := 0.0
	if n.ToAct == hero {
		if hero == tree.OOP {
			val += child.OOPStack - n.OOPStack
		} else {
			val += child.IPStack - n.IPStack
		}
	}
	val += e.evHand(child, tag, hole, hero)
	return val
}

// evTerminal returns hero's EV at a terminal node reached by a showdown
// (check-check or call) or a fold.
//
// The opponent's effective range at a showdown depends on who acted last:
// if the terminal's own acting seat is hero, the opponent took the final
// action at the terminal's parent, so the opponent's range there is a
// reach-weighted copy of the parent's range — one whose reach probability is
// reset to exactly that action's own frequency, not compounded with
// whatever reach the parent's range already carried from earlier in the
// hand; otherwise hero took the final action, and the terminal's own
// PlayerRange already carries the correctly propagated reach probabilities
// from the standard per-iteration update.
func (e *Engine) evTerminal(n *tree.Node, hole cards.Hole, hero int) float64 {
	last := n.ActionSeq[len(n.ActionSeq)-1]

	switch last {
	case "X", "C":
		var vilsRange *handrange.Range
		if n.ToAct == hero {
			vilsRange = n.Parent.PlayerRange.ReachWeightedCopy(n.IncomingActionIndex)
		} else {
			vilsRange = n.PlayerRange
		}
		return equity.Equity(e.Board, hole, vilsRange) * n.PotSize
	case "F":
		if n.ToAct == hero {
			return n.PotSize
		}
		return 0
	}

	panic(fmt.Sprintf("solver: terminal node reached via unrecognised action %q", last))
}
