// Package handrange implements the per-hand State Arrays: the mutable CFR
// state (strategy, regret, reach probability, average strategy, EVs) that a
// node's acting-player range carries, plus the comma-separated weighted
// range grammar used by the external input file.
package handrange

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ehrlich-b/riversolve/internal/cards"
)

// Hand is a single entry in a node's acting-player range.
type Hand struct {
	Tag       string
	Hole      cards.Hole
	Weighting float64

	ReachProbability float64
	ActionsTaken     []float64
	CummRegrets      []float64
	AvgStrat         []float64
	EVs              []float64
	NextStrat        []float64
}

// initStrategies sizes and resets the per-iteration state vectors to the
// construction-time defaults: uniform current strategy, zero cumulative
// regret, uniform average strategy.
func (h *Hand) initStrategies(numActions int) {
	h.ReachProbability = 1
	h.ActionsTaken = make([]float64, numActions)
	h.CummRegrets = make([]float64, numActions)
	h.AvgStrat = make([]float64, numActions)
	h.EVs = make([]float64, numActions)
	h.NextStrat = make([]float64, numActions)

	if numActions == 0 {
		return
	}
	uniform := 1.0 / float64(numActions)
	for i := 0; i < numActions; i++ {
		h.ActionsTaken[i] = uniform
		h.AvgStrat[i] = uniform
	}
}

func (h *Hand) clone() *Hand {
	c := &Hand{
		Tag:              h.Tag,
		Hole:             h.Hole,
		Weighting:        h.Weighting,
		ReachProbability: h.ReachProbability,
	}
	c.ActionsTaken = append([]float64(nil), h.ActionsTaken...)
	c.CummRegrets = append([]float64(nil), h.CummRegrets...)
	c.AvgStrat = append([]float64(nil), h.AvgStrat...)
	c.EVs = append([]float64(nil), h.EVs...)
	c.NextStrat = append([]float64(nil), h.NextStrat...)
	return c
}

// Range is a set of Hands keyed by tag. Tags preserves insertion order for
// stable iteration and output.
type Range struct {
	Tags  []string
	Hands map[string]*Hand
}

// WeightedCombo is one parsed entry of the TAG[:w] range grammar.
type WeightedCombo struct {
	Tag    string
	Hole   cards.Hole
	Weight float64
}

// ParseWeightedRange parses the comma-separated TAG or TAG:w grammar used by
// the OOP/IP range lines of the input file. Whitespace inside entries is
// stripped. w, when present, must lie in (0, 1].
func ParseWeightedRange(s string) ([]WeightedCombo, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	out := make([]WeightedCombo, 0, len(fields))
	seen := make(map[string]bool, len(fields))

	for _, field := range fields {
		field = strings.ReplaceAll(field, " ", "")
		if field == "" {
			continue
		}

		tagPart := field
		weight := 1.0
		if idx := strings.IndexByte(field, ':'); idx >= 0 {
			tagPart = field[:idx]
			wStr := field[idx+1:]
			w, err := strconv.ParseFloat(wStr, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing weight in %q: %w", field, err)
			}
			if w <= 0 || w > 1 {
				return nil, fmt.Errorf("weight %v in %q outside (0, 1]", w, field)
			}
			weight = w
		}

		if len(tagPart) != 4 {
			return nil, fmt.Errorf("invalid hole tag %q: must be 4 characters", tagPart)
		}
		cs, err := cards.ParseCards(tagPart)
		if err != nil {
			return nil, fmt.Errorf("parsing hole tag %q: %w", tagPart, err)
		}
		if cs[0] == cs[1] {
			return nil, fmt.Errorf("invalid hole tag %q: same card twice", tagPart)
		}

		if seen[tagPart] {
			return nil, fmt.Errorf("duplicate tag %q in range", tagPart)
		}
		seen[tagPart] = true

		out = append(out, WeightedCombo{
			Tag:    tagPart,
			Hole:   cards.Hole{cs[0], cs[1]},
			Weight: weight,
		})
	}

	return out, nil
}

// New builds a fresh Range from parsed combos, conflict-filtered against
// board so that hole cards overlapping the board are dropped (a range
// entry sharing a card with the fixed river board can never be dealt).
func New(combos []WeightedCombo, board cards.Board) *Range {
	r := &Range{Hands: make(map[string]*Hand, len(combos))}
	for _, c := range combos {
		if holeConflictsBoard(c.Hole, board) {
			continue
		}
		r.Tags = append(r.Tags, c.Tag)
		r.Hands[c.Tag] = &Hand{
			Tag:       c.Tag,
			Hole:      c.Hole,
			Weighting: c.Weight,
		}
	}
	return r
}

func holeConflictsBoard(h cards.Hole, b cards.Board) bool {
	for _, bc := range b {
		if h[0] == bc || h[1] == bc {
			return true
		}
	}
	return false
}

// InitStrategies resets every hand's per-iteration state vectors to the
// construction-time defaults for a node with numActions legal actions.
func (r *Range) InitStrategies(numActions int) {
	for _, tag := range r.Tags {
		r.Hands[tag].initStrategies(numActions)
	}
}

// Clone returns a deep copy: a fresh Range and fresh Hands, independent of
// the receiver's state arrays. Per the ownership rule, ranges are never
// shared across nodes.
func (r *Range) Clone() *Range {
	c := &Range{
		Tags:  append([]string(nil), r.Tags...),
		Hands: make(map[string]*Hand, len(r.Hands)),
	}
	for tag, h := range r.Hands {
		c.Hands[tag] = h.clone()
	}
	return c
}

// ReachWeightedCopy returns a clone of r with every hand's reach probability
// reset to 1 and then multiplied by that hand's actions_taken[actionIndex] —
// i.e. set to exactly actions_taken[actionIndex], discarding whatever reach
// r's own hands already carried. It is used by the CFR engine to reconstruct
// the opponent's effective range at a showdown terminal reached by the
// opponent's final action: only that last action's own frequency determines
// the opponent's effective combo weight at the terminal, not the combo's
// accumulated reach from earlier in the hand.
func (r *Range) ReachWeightedCopy(actionIndex int) *Range {
	c := r.Clone()
	for _, h := range c.Hands {
		h.ReachProbability = h.ActionsTaken[actionIndex]
	}
	return c
}

// ActionFreqs computes the reach- and weight-weighted marginal action
// distribution of the whole range: fᵢ = Σ_h weighting·reach·actᵢ,
// normalised by Σfᵢ. Returns the zero vector if the range has zero total
// reach.
func (r *Range) ActionFreqs(numActions int) []float64 {
	freqs := make([]float64, numActions)
	for _, tag := range r.Tags {
		h := r.Hands[tag]
		w := h.Weighting * h.ReachProbability
		for i := 0; i < numActions; i++ {
			freqs[i] += w * h.ActionsTaken[i]
		}
	}
	sum := 0.0
	for _, f := range freqs {
		sum += f
	}
	if sum <= 0 {
		return freqs
	}
	for i := range freqs {
		freqs[i] /= sum
	}
	return freqs
}
