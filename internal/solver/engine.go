// Package solver is the CFR Engine: it orchestrates the iteration loop —
// reach-probability propagation, per-hand EV computation, regret-matching
// strategy updates, and average-strategy accumulation — over a tree built
// by the Betting Tree Builder.
package solver

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/charmbracelet/log"

	"github.com/ehrlich-b/riversolve/internal/cards"
	"github.com/ehrlich-b/riversolve/internal/evaluator"
	"github.com/ehrlich-b/riversolve/internal/handrange"
	"github.com/ehrlich-b/riversolve/internal/tree"
)

// ExploitabilityHook is called every 5 iterations with the iteration number
// and the tree's nodes. The core reserves this hook but does not implement
// best-response/exploitability computation itself (that remains out of
// scope); a nil hook (the default) does nothing.
type ExploitabilityHook func(iteration int, nodes []*tree.Node)

// Engine runs CFR iteration over a built Tree.
type Engine struct {
	Tree  *tree.Tree
	Board cards.Board

	MaxIterations        int
	TargetExploitability float64

	// Workers bounds the errgroup's parallelism for per-node EV
	// computation. Zero means GOMAXPROCS.
	Workers int

	Logger *log.Logger

	ExploitabilityHook ExploitabilityHook
}

// NewEngine constructs an Engine for an already-built tree.
func NewEngine(t *tree.Tree, board cards.Board, maxIterations int, targetExploitability float64) *Engine {
	return &Engine{
		Tree:                 t,
		Board:                board,
		MaxIterations:        maxIterations,
		TargetExploitability: targetExploitability,
	}
}

func (e *Engine) workers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (e *Engine) log() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

// logStartingRanges emits each root-range hand's human-readable hand
// category at debug level, for a quick sanity check of what's actually in
// the OOP/IP starting ranges on this board before the iteration loop runs.
func (e *Engine) logStartingRanges() {
	logger := e.log()
	root := e.Tree.Root
	for _, tag := range root.PlayerRange.Tags {
		h := root.PlayerRange.Hands[tag]
		logger.Debug("oop starting hand", "tag", tag, "category", evaluator.Describe(e.Board, h.Hole))
	}

	ipNode := root.Children["X"]
	for _, tag := range ipNode.PlayerRange.Tags {
		h := ipNode.PlayerRange.Hands[tag]
		logger.Debug("ip starting hand", "tag", tag, "category", evaluator.Describe(e.Board, h.Hole))
	}
}

// Run executes the iteration loop: propagate reach, compute EVs,
// regret-match and accumulate the average strategy, commit, repeat for
// MaxIterations, then publish the average strategy as the final
// actions_taken everywhere.
func (e *Engine) Run(ctx context.Context) error {
	if e.MaxIterations < 1 {
		return fmt.Errorf("solver: max iterations must be >= 1, got %d", e.MaxIterations)
	}

	e.logStartingRanges()
	e.propagateReach()

	for iter := 1; iter <= e.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := e.computeEVs(ctx); err != nil {
			return fmt.Errorf("computing EVs at iteration %d: %w", iter, err)
		}

		for _, n := range e.Tree.Nodes {
			if n.IsTerminal() {
				continue
			}
			weight := e.cfrWeight(n)
			for _, tag := range n.PlayerRange.Tags {
				updateHandStrategy(n.PlayerRange.Hands[tag], weight, iter)
			}
		}

		e.commit()
		e.propagateReach()

		if e.ExploitabilityHook != nil && iter%5 == 0 {
			e.ExploitabilityHook(iter, e.Tree.Nodes)
		}

		e.log().Debug("iteration complete", "iter", iter, "of", e.MaxIterations)
	}

	for _, n := range e.Tree.Nodes {
		if n.IsTerminal() {
			continue
		}
		for _, tag := range n.PlayerRange.Tags {
			h := n.PlayerRange.Hands[tag]
			copy(h.ActionsTaken, h.AvgStrat)
		}
	}
	e.propagateReach()

	return nil
}

// commit copies each hand's staged next_strat into actions_taken. It is a
// plain copy, not a slice reassignment, so actions_taken and next_strat
// stay backed by independent arrays across iterations (the double-buffer
// rule).
func (e *Engine) commit() {
	for _, n := range e.Tree.Nodes {
		if n.IsTerminal() {
			continue
		}
		for _, tag := range n.PlayerRange.Tags {
			h := n.PlayerRange.Hands[tag]
			copy(h.ActionsTaken, h.NextStrat)
		}
	}
}

// computeEVs fans out across the tree's non-terminal nodes with an
// errgroup: each goroutine computes EVs for every hand in exactly one
// node's range, reading only the current (committed) strategy snapshot and
// writing only that node's own hands, so no synchronization is needed
// beyond the group's join.
func (e *Engine) computeEVs(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())

	for _, n := range e.Tree.Nodes {
		if n.IsTerminal() {
			continue
		}
		n := n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			hero := n.ToAct
			for _, tag := range n.PlayerRange.Tags {
				h := n.PlayerRange.Hands[tag]
				for i := range n.LegalActions {
					h.EVs[i] = e.evAction(n, tag, h.Hole, i, hero)
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// cfrWeight returns the counterfactual reach weight of n for its own
// acting player: walk the parent chain, multiplying in the opposing
// player's range-aggregate action frequency at each of the opponent's own
// decisions, skipping n's own player's decisions entirely.
func (e *Engine) cfrWeight(n *tree.Node) float64 {
	weight := 1.0
	cur := n
	for cur.Parent != nil {
		par := cur.Parent
		if par.ToAct == n.ToAct {
			cur = par
			continue
		}
		freqs := par.PlayerRange.ActionFreqs(len(par.LegalActions))
		weight *= freqs[cur.IncomingActionIndex]
		cur = par
	}
	return weight
}

// propagateReach implements the per-hand reach probability rule: for
// every decision node N, for every action a (child), for every hand h in
// N.PlayerRange, every grandchild of N through a — which always shares N's
// own acting player by construction — has its copy of h's reach
// probability set to h.ReachProbability * h.ActionsTaken[index(a)].
func (e *Engine) propagateReach() {
	for _, n := range e.Tree.Nodes {
		if n.IsTerminal() {
			continue
		}
		for i, action := range n.LegalActions {
			child := n.Children[action]
			for _, tag := range n.PlayerRange.Tags {
				h := n.PlayerRange.Hands[tag]
				reach := h.ReachProbability * h.ActionsTaken[i]
				for _, grandchild := range child.Children {
					if gh, ok := grandchild.PlayerRange.Hands[tag]; ok {
						gh.ReachProbability = reach
					}
				}
			}
		}
	}
}

// updateHandStrategy applies per-hand regret matching and the
// uniform-weighted average-strategy update for one hand at one node,
// staging the result into next_strat for the later commit pass.
func updateHandStrategy(h *handrange.Hand, weight float64, iteration int) {
	n := len(h.EVs)
	if n == 0 {
		return
	}

	u := 0.0
	for i, v := range h.EVs {
		u += h.ActionsTaken[i] * v
	}

	sumPos := 0.0
	posRegrets := make([]float64, n)
	for i, v := range h.EVs {
		regret := v - u
		h.CummRegrets[i] += regret * weight
		pr := math.Max(h.CummRegrets[i], 0)
		posRegrets[i] = pr
		sumPos += pr
	}

	if sumPos > 0 {
		for i := range h.NextStrat {
			h.NextStrat[i] = posRegrets[i] / sumPos
		}
	} else {
		uniform := 1.0 / float64(n)
		for i := range h.NextStrat {
			h.NextStrat[i] = uniform
		}
	}

	for i := range h.AvgStrat {
		h.AvgStrat[i] = h.AvgStrat[i]*float64(iteration-1)/float64(iteration) + h.NextStrat[i]/float64(iteration)
	}
}
