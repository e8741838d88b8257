package cards

import "fmt"

// Board is the fixed five-card river board.
type Board [5]Card

// ParseBoard parses a 10-character board string (five concatenated tags).
func ParseBoard(s string) (Board, error) {
	cs, err := ParseCards(s)
	if err != nil {
		return Board{}, fmt.Errorf("parsing board: %w", err)
	}
	if len(cs) != 5 {
		return Board{}, fmt.Errorf("board must have exactly 5 cards, got %d", len(cs))
	}
	var b Board
	copy(b[:], cs)
	if dup, ok := firstDuplicate(b[:]); ok {
		return Board{}, fmt.Errorf("duplicate board card: %s", dup)
	}
	return b, nil
}

func (b Board) String() string {
	s := ""
	for _, c := range b {
		s += c.String()
	}
	return s
}

// Hole is an unordered pair of two distinct hole cards, canonically
// written as the 4-character tag its owning Hand was parsed from.
type Hole [2]Card

// SharesCard reports whether h and o have any card in common.
func (h Hole) SharesCard(o Hole) bool {
	return h[0] == o[0] || h[0] == o[1] || h[1] == o[0] || h[1] == o[1]
}

func (h Hole) String() string {
	return h[0].String() + h[1].String()
}

func firstDuplicate(cs []Card) (Card, bool) {
	seen := make(map[Card]bool, len(cs))
	for _, c := range cs {
		if seen[c] {
			return c, true
		}
		seen[c] = true
	}
	return Card{}, false
}
