// Package ioformat reads the 12-line plain-text input file and writes the
// JSON node-record output file described by the external interface.
package ioformat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ehrlich-b/riversolve/internal/cards"
	"github.com/ehrlich-b/riversolve/internal/handrange"
	"github.com/ehrlich-b/riversolve/internal/tree"
)

// Input is the fully parsed, not-yet-validated contents of the 12-line
// input file.
type Input struct {
	PotSize float64
	Stack   float64

	OOPRange []handrange.WeightedCombo
	IPRange  []handrange.WeightedCombo

	Board cards.Board

	Config tree.Config

	MaxIterations        int
	TargetExploitability float64
}

// ReadInputFile opens path and parses it as the 12-line input format.
func ReadInputFile(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()
	return ParseInput(f)
}

// ParseInput parses the 12-line input format from r. Every failure here is
// an input-validation failure: reported before any tree is built.
func ParseInput(r io.Reader) (*Input, error) {
	lines, err := readLines(r, 12)
	if err != nil {
		return nil, err
	}

	in := &Input{}

	in.PotSize, err = strconv.ParseFloat(strings.TrimSpace(lines[0]), 64)
	if err != nil {
		return nil, fmt.Errorf("line 1 (pot size): %w", err)
	}

	in.Stack, err = strconv.ParseFloat(strings.TrimSpace(lines[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("line 2 (stack): %w", err)
	}

	in.OOPRange, err = handrange.ParseWeightedRange(lines[2])
	if err != nil {
		return nil, fmt.Errorf("line 3 (OOP range): %w", err)
	}

	in.IPRange, err = handrange.ParseWeightedRange(lines[3])
	if err != nil {
		return nil, fmt.Errorf("line 4 (IP range): %w", err)
	}

	in.Board, err = cards.ParseBoard(strings.TrimSpace(lines[4]))
	if err != nil {
		return nil, fmt.Errorf("line 5 (board): %w", err)
	}

	in.Config.OOPBets, err = tree.ParseSizingMenu(lines[5])
	if err != nil {
		return nil, fmt.Errorf("line 6 (OOP bet sizings): %w", err)
	}
	in.Config.IPBets, err = tree.ParseSizingMenu(lines[6])
	if err != nil {
		return nil, fmt.Errorf("line 7 (IP bet sizings): %w", err)
	}
	in.Config.OOPRaises, err = tree.ParseSizingMenu(lines[7])
	if err != nil {
		return nil, fmt.Errorf("line 8 (OOP raise sizings): %w", err)
	}
	in.Config.IPRaises, err = tree.ParseSizingMenu(lines[8])
	if err != nil {
		return nil, fmt.Errorf("line 9 (IP raise sizings): %w", err)
	}

	in.Config.AllInThreshold, err = strconv.ParseFloat(strings.TrimSpace(lines[9]), 64)
	if err != nil {
		return nil, fmt.Errorf("line 10 (all-in threshold): %w", err)
	}

	in.MaxIterations, err = strconv.Atoi(strings.TrimSpace(lines[10]))
	if err != nil {
		return nil, fmt.Errorf("line 11 (max iterations): %w", err)
	}
	if in.MaxIterations < 1 {
		return nil, fmt.Errorf("line 11 (max iterations): must be >= 1, got %d", in.MaxIterations)
	}

	in.TargetExploitability, err = strconv.ParseFloat(strings.TrimSpace(lines[11]), 64)
	if err != nil {
		return nil, fmt.Errorf("line 12 (target exploitability): %w", err)
	}

	return in, nil
}

func readLines(r io.Reader, n int) ([]string, error) {
	sc := bufio.NewScanner(r)
	lines := make([]string, 0, n)
	for sc.Scan() {
		lines = append(lines, sc.Text())
		if len(lines) == n {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(lines) < n {
		return nil, fmt.Errorf("expected %d lines, got %d", n, len(lines))
	}
	return lines, nil
}
