// Package evaluator is the Hand Evaluator Adapter: it wraps the external
// 5-card evaluator behind a single pure function, rank(board, hole), where
// lower means stronger. It is the sole consumer of the injected
// Cactus-Kev-style evaluator and holds no state of its own.
package evaluator

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/ehrlich-b/riversolve/internal/cards"
)

func toPH(c cards.Card) poker.Card {
	var s poker.Suit
	switch c.Suit {
	case cards.Clubs:
		s = poker.Club
	case cards.Diamonds:
		s = poker.Diamond
	case cards.Hearts:
		s = poker.Heart
	case cards.Spades:
		s = poker.Spade
	}

	// cards.Rank is Two..Ace = 0..12. poker.Rank wants 2..13, with Ace
	// special-cased to 1.
	var r poker.Rank
	if c.Rank == cards.Ace {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(int(c.Rank) + 2)
	}

	card, err := poker.MakeCard(s, r)
	if err != nil {
		panic(fmt.Sprintf("evaluator: invalid card %v: %v", c, err))
	}
	return card
}

// Rank returns the evaluator's rank for hole against board: seven cards
// total, lower is stronger. Callers must guarantee board and hole share no
// card; a shared card is a precondition violation and panics.
func Rank(board cards.Board, hole cards.Hole) int {
	var seven [7]poker.Card
	seven[0] = toPH(hole[0])
	seven[1] = toPH(hole[1])
	for i, c := range board {
		next := toPH(c)
		for j := 0; j < i+2; j++ {
			if seven[j] == next {
				panic(fmt.Sprintf("evaluator: board and hole share card %v", c))
			}
		}
		seven[i+2] = next
	}
	return int(poker.Eval7(&seven))
}

// Describe returns the evaluator's human-readable category for hole plus
// board (e.g. "two pair, aces and kings"), for debug logging only.
func Describe(board cards.Board, hole cards.Hole) string {
	all := make([]poker.Card, 0, 7)
	all = append(all, toPH(hole[0]), toPH(hole[1]))
	for _, c := range board {
		all = append(all, toPH(c))
	}
	desc, err := poker.Describe(all)
	if err != nil {
		return "unknown"
	}
	return desc
}
