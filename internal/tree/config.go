package tree

import (
	"fmt"
	"strconv"
	"strings"
)

// Sizing is one entry of a bet or raise sizing menu: either a percentage of
// the relevant pot, or the all-in marker.
type Sizing struct {
	AllIn   bool
	Percent float64
}

// ParseSizingMenu parses the comma-separated sizing grammar used by the
// four sizing lines of the input file: digits mean percent-of-pot, any
// token containing 'a'/'A' means all-in. An empty line is a legal, empty
// menu ("no voluntary bet/raise option").
func ParseSizingMenu(s string) ([]Sizing, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	fields := strings.Split(s, ",")
	out := make([]Sizing, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if strings.ContainsAny(f, "aA") {
			out = append(out, Sizing{AllIn: true})
			continue
		}
		pct, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing sizing %q: %w", f, err)
		}
		out = append(out, Sizing{Percent: pct})
	}
	return out, nil
}

// Config holds the inputs to the Betting Tree Builder that aren't the
// starting pot/stack/ranges: the four sizing menus and the all-in
// threshold.
type Config struct {
	OOPBets   []Sizing
	IPBets    []Sizing
	OOPRaises []Sizing
	IPRaises  []Sizing

	// AllInThreshold (τ) is a percent in [0,100]: any bet or raise whose
	// chips-invested would exceed τ% of the relevant stack is replaced by
	// the all-in action.
	AllInThreshold float64
}
