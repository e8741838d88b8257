package ioformat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validInput = `10
50
AsAc
KsKc
2c2h2s2d3h
a
50
a
50
70
10
1
`

func TestParseInput_Valid(t *testing.T) {
	in, err := ParseInput(strings.NewReader(validInput))
	require.NoError(t, err)
	require.Equal(t, 10.0, in.PotSize)
	require.Equal(t, 50.0, in.Stack)
	require.Len(t, in.OOPRange, 1)
	require.Equal(t, "AsAc", in.OOPRange[0].Tag)
	require.Equal(t, 70.0, in.Config.AllInThreshold)
	require.Equal(t, 10, in.MaxIterations)
}

func TestParseInput_TooFewLines(t *testing.T) {
	_, err := ParseInput(strings.NewReader("10\n50\n"))
	require.Error(t, err)
}

func TestParseInput_BadBoard(t *testing.T) {
	bad := strings.Replace(validInput, "2c2h2s2d3h", "2c2h2s2d", 1)
	_, err := ParseInput(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParseInput_MaxIterationsBelowOne(t *testing.T) {
	bad := strings.Replace(validInput, "\n10\n1\n", "\n0\n1\n", 1)
	_, err := ParseInput(strings.NewReader(bad))
	require.Error(t, err)
}
