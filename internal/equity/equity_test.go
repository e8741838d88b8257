package equity

import (
	"testing"

	"github.com/ehrlich-b/riversolve/internal/cards"
	"github.com/ehrlich-b/riversolve/internal/handrange"
)

func TestEquity_AceKickerBeatsKingKicker(t *testing.T) {
	board, _ := cards.ParseBoard("2c2h2s2d3h")
	combos, _ := handrange.ParseWeightedRange("KsKc")
	ipRange := handrange.New(combos, board)
	ipRange.InitStrategies(1)

	as, _ := cards.ParseCard("As")
	ac, _ := cards.ParseCard("Ac")
	hero := cards.Hole{as, ac}

	eq := Equity(board, hero, ipRange)
	if eq != 1 {
		t.Errorf("Equity(AsAc vs KsKc on 2c2h2s2d3h) = %v, want 1", eq)
	}
}

// S3 — blocker fallback.
func TestEquity_S3_BlockerFallback(t *testing.T) {
	board, _ := cards.ParseBoard("2c2h2s2d3h")
	combos, _ := handrange.ParseWeightedRange("AhAd")
	ipRange := handrange.New(combos, board)
	ipRange.InitStrategies(1)

	as, _ := cards.ParseCard("As")
	ac, _ := cards.ParseCard("Ac")
	hero := cards.Hole{as, ac}

	eq := Equity(board, hero, ipRange)
	if eq != 0.5 {
		t.Errorf("Equity with fully blocked opponent range = %v, want 0.5 fallback", eq)
	}
}

// S4 — weighted range.
func TestEquity_S4_WeightedRange(t *testing.T) {
	board, _ := cards.ParseBoard("2c2h2s2d3h")
	combos, _ := handrange.ParseWeightedRange("AsAc:0.5, 2s2c")
	// 2s2c conflicts with the board's deuces, so in a real range this
	// combo would already be filtered; the weighted combos are not used
	// here, and only AsAc's equity against the single KsKc combo is checked.
	_ = combos

	oppCombos, _ := handrange.ParseWeightedRange("KsKc")
	oppRange := handrange.New(oppCombos, board)
	oppRange.InitStrategies(1)

	as, _ := cards.ParseCard("As")
	ac, _ := cards.ParseCard("Ac")
	hero := cards.Hole{as, ac}

	eq := Equity(board, hero, oppRange)
	if eq != 1 {
		t.Errorf("Equity(AsAc vs KsKc) = %v, want 1", eq)
	}
}
