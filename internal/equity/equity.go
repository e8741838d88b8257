// Package equity implements the Equity Oracle: a hand's showdown equity
// against a weighted, blocker-filtered opponent range on the fixed river
// board.
package equity

import (
	"github.com/ehrlich-b/riversolve/internal/cards"
	"github.com/ehrlich-b/riversolve/internal/evaluator"
	"github.com/ehrlich-b/riversolve/internal/handrange"
)

// Equity returns hand's expected showdown equity against oppRange on
// board. Opponent combos sharing a card with hand (blockers) are skipped.
// When every opponent combo is blocked, the fallback value 0.5 is returned
// rather than a degenerate zero.
func Equity(board cards.Board, hand cards.Hole, oppRange *handrange.Range) float64 {
	heroRank := evaluator.Rank(board, hand)

	var weightSum, equitySum float64
	for _, tag := range oppRange.Tags {
		h := oppRange.Hands[tag]
		if hand.SharesCard(h.Hole) {
			continue
		}

		w := h.Weighting * h.ReachProbability
		weightSum += w

		oppRank := evaluator.Rank(board, h.Hole)
		switch {
		case oppRank > heroRank:
			equitySum += w
		case oppRank == heroRank:
			equitySum += w / 2
		}
	}

	if weightSum <= 0 {
		return 0.5
	}
	return equitySum / weightSum
}
