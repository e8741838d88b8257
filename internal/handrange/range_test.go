package handrange

import (
	"testing"

	"github.com/ehrlich-b/riversolve/internal/cards"
)

func TestParseWeightedRange(t *testing.T) {
	board, _ := cards.ParseBoard("2c2h2s2d3h")
	_ = board

	combos, err := ParseWeightedRange("AsAc:0.5, 2s2c")
	if err != nil {
		t.Fatalf("ParseWeightedRange: %v", err)
	}
	if len(combos) != 2 {
		t.Fatalf("expected 2 combos, got %d", len(combos))
	}
	if combos[0].Tag != "AsAc" || combos[0].Weight != 0.5 {
		t.Errorf("combo0 = %+v, want tag=AsAc weight=0.5", combos[0])
	}
	if combos[1].Tag != "2s2c" || combos[1].Weight != 1.0 {
		t.Errorf("combo1 = %+v, want tag=2s2c weight=1.0", combos[1])
	}
}

func TestParseWeightedRangeEmpty(t *testing.T) {
	combos, err := ParseWeightedRange("")
	if err != nil {
		t.Fatalf("ParseWeightedRange(\"\"): %v", err)
	}
	if len(combos) != 0 {
		t.Errorf("expected empty combo list, got %v", combos)
	}
}

func TestParseWeightedRangeRejectsBadWeight(t *testing.T) {
	if _, err := ParseWeightedRange("AsAc:1.5"); err == nil {
		t.Errorf("expected error for weight outside (0,1]")
	}
	if _, err := ParseWeightedRange("AsAc:0"); err == nil {
		t.Errorf("expected error for weight of 0")
	}
}

func TestRangeActionFreqsZeroReach(t *testing.T) {
	board, _ := cards.ParseBoard("2c2h2s2d3h")
	combos, _ := ParseWeightedRange("AsAc, KsKc")
	r := New(combos, board)
	r.InitStrategies(2)
	for _, tag := range r.Tags {
		r.Hands[tag].ReachProbability = 0
	}

	freqs := r.ActionFreqs(2)
	for i, f := range freqs {
		if f != 0 {
			t.Errorf("freqs[%d] = %v, want 0 for zero-reach range", i, f)
		}
	}
}

func TestRangeCloneIsIndependent(t *testing.T) {
	board, _ := cards.ParseBoard("2c2h2s2d3h")
	combos, _ := ParseWeightedRange("AsAc")
	r := New(combos, board)
	r.InitStrategies(2)

	c := r.Clone()
	c.Hands["AsAc"].ActionsTaken[0] = 0.9

	if r.Hands["AsAc"].ActionsTaken[0] == 0.9 {
		t.Errorf("clone mutation leaked into original range")
	}
}
