package tree

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ehrlich-b/riversolve/internal/handrange"
)

// Builder constructs the full extensive-form betting tree for a fixed
// starting pot, starting (equal) stack, and pair of starting ranges.
type Builder struct {
	Config Config
}

// NewBuilder creates a Builder with the given sizing menus and threshold.
func NewBuilder(cfg Config) *Builder {
	return &Builder{Config: cfg}
}

// Build constructs the tree breadth-first from the root. oopRange and
// ipRange are the starting ranges (already filtered against the board);
// they are never mutated and are cloned fresh into every node that needs
// a copy of that seat's range.
func (b *Builder) Build(startPot, startStack float64, oopRange, ipRange *handrange.Range) (*Tree, error) {
	if len(oopRange.Tags) == 0 || len(ipRange.Tags) == 0 {
		return nil, fmt.Errorf("cannot build tree: a starting range is empty")
	}

	root := &Node{
		ID:                  0,
		ToAct:               OOP,
		PotSize:             startPot,
		OOPStack:            startStack,
		IPStack:             startStack,
		ActionSeq:           []string{},
		Children:            make(map[string]*Node),
		IncomingActionIndex: -1,
		PlayerRange:         oopRange.Clone(),
	}
	root.LegalActions = b.legalActions(root)
	root.PlayerRange.InitStrategies(len(root.LegalActions))

	t := &Tree{Root: root, Nodes: []*Node{root}}
	queue := []*Node{root}
	nextID := 1

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.IsTerminal() {
			continue
		}

		childTemplate := ipRange
		if cur.ToAct == IP {
			childTemplate = oopRange
		}

		for i, action := range cur.LegalActions {
			pot, oopStack, ipStack := b.applyAction(cur, action)

			actionSeq := make([]string, len(cur.ActionSeq)+1)
			copy(actionSeq, cur.ActionSeq)
			actionSeq[len(cur.ActionSeq)] = action

			child := &Node{
				ID:                  nextID,
				ToAct:               1 - cur.ToAct,
				PotSize:             pot,
				OOPStack:            oopStack,
				IPStack:             ipStack,
				ActionSeq:           actionSeq,
				Parent:              cur,
				Children:            make(map[string]*Node),
				IncomingActionIndex: i,
				PlayerRange:         childTemplate.Clone(),
			}
			nextID++

			child.LegalActions = b.legalActions(child)
			child.PlayerRange.InitStrategies(len(child.LegalActions))

			cur.Children[action] = child
			t.Nodes = append(t.Nodes, child)
			queue = append(queue, child)
		}
	}

	return t, nil
}

// legalActions derives a node's legal-action set: root or a check
// after an OOP check gets a check-plus-bet-menu; a check after an IP check
// is a terminal showdown; fold/call are always terminal; a non-all-in bet
// or raise gets fold/call plus a raise menu; an all-in bet or raise leaves
// only fold/call.
func (b *Builder) legalActions(n *Node) []string {
	if len(n.ActionSeq) == 0 {
		return b.checkBetMenu(n)
	}

	last := n.ActionSeq[len(n.ActionSeq)-1]

	switch {
	case last == "X":
		if n.Parent.ToAct == IP {
			return nil
		}
		return b.checkBetMenu(n)
	case last == "F" || last == "C":
		return nil
	case last == "BA" || last == "RA":
		return []string{"F", "C"}
	case last[0] == 'B' || last[0] == 'R':
		return b.raiseMenu(n)
	}

	return nil
}

// checkBetMenu emits X followed by the acting player's bet menu, collapsing
// any sizing that would bet more than the all-in threshold of the
// non-actor's stack (the cap that can be called) into a single BA.
func (b *Builder) checkBetMenu(n *Node) []string {
	menu := b.Config.OOPBets
	nonActorStack := n.IPStack
	if n.ToAct == IP {
		menu = b.Config.IPBets
		nonActorStack = n.OOPStack
	}

	actions := []string{"X"}
	haveAllIn := false
	for _, sz := range menu {
		if sz.AllIn || sz.Percent/100*n.PotSize > b.Config.AllInThreshold/100*nonActorStack {
			if !haveAllIn {
				actions = append(actions, "BA")
				haveAllIn = true
			}
			continue
		}
		actions = append(actions, "B"+formatPercent(sz.Percent))
	}
	return actions
}

// raiseMenu emits fold/call followed by the acting player's raise menu,
// collapsing any sizing whose total commitment (the call plus the raise
// extra) would exceed the all-in threshold of the actor's own remaining
// stack into a single RA. This same test is used whether the node is
// facing a bet or a deeper prior raise: both reduce to the actor's current
// to-call (Δ) and pot at the point of decision, so no walk-back to the
// node before the initial bet is needed.
func (b *Builder) raiseMenu(n *Node) []string {
	menu := b.Config.OOPRaises
	actorStack := n.OOPStack
	if n.ToAct == IP {
		menu = b.Config.IPRaises
		actorStack = n.IPStack
	}

	delta := math.Abs(n.OOPStack - n.IPStack)

	actions := []string{"F", "C"}
	haveAllIn := false
	for _, sz := range menu {
		raiseExtra := (n.PotSize + delta) * sz.Percent / 100
		if sz.AllIn || (delta+raiseExtra) > b.Config.AllInThreshold/100*actorStack {
			if !haveAllIn {
				actions = append(actions, "RA")
				haveAllIn = true
			}
			continue
		}
		actions = append(actions, "R"+formatPercent(sz.Percent))
	}
	return actions
}

// applyAction computes the chip arithmetic at one edge: the
// resulting pot and both stacks after n's actor takes action.
func (b *Builder) applyAction(n *Node, action string) (pot, oopStack, ipStack float64) {
	delta := math.Abs(n.OOPStack - n.IPStack)

	switch {
	case action == "X" || action == "F":
		return n.PotSize, n.OOPStack, n.IPStack

	case action == "C":
		newPot := n.PotSize + delta
		m := math.Min(n.OOPStack, n.IPStack)
		return newPot, m, m

	case action == "BA":
		bet := actorStack(n)
		return applyBet(n, bet)

	case action[0] == 'B':
		pct := mustParsePercent(action[1:])
		bet := pct / 100 * n.PotSize
		return applyBet(n, bet)

	case action == "RA":
		raiseExtra := math.Max(n.OOPStack, n.IPStack) - delta
		return applyRaise(n, raiseExtra, delta)

	case action[0] == 'R':
		pct := mustParsePercent(action[1:])
		raiseExtra := (n.PotSize + delta) * pct / 100
		return applyRaise(n, raiseExtra, delta)
	}

	panic(fmt.Sprintf("tree: unrecognised action token %q", action))
}

func actorStack(n *Node) float64 {
	if n.ToAct == OOP {
		return n.OOPStack
	}
	return n.IPStack
}

func applyBet(n *Node, bet float64) (pot, oopStack, ipStack float64) {
	pot = n.PotSize + bet
	if n.ToAct == OOP {
		return pot, n.OOPStack - bet, n.IPStack
	}
	return pot, n.OOPStack, n.IPStack - bet
}

func applyRaise(n *Node, raiseExtra, delta float64) (pot, oopStack, ipStack float64) {
	pot = n.PotSize + delta + raiseExtra
	if n.ToAct == IP {
		return pot, n.OOPStack, n.OOPStack - raiseExtra
	}
	return pot, n.IPStack - raiseExtra, n.IPStack
}

func formatPercent(p float64) string {
	if p == math.Trunc(p) {
		return strconv.FormatInt(int64(p), 10)
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func mustParsePercent(s string) float64 {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(fmt.Sprintf("tree: malformed sizing token %q: %v", s, err))
	}
	return p
}
