package ioformat_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diagnoser/internal/ioformat"
)

// scenarioBText is spec.md §8 Scenario B rendered in the §6 input format.
const scenarioBText = `
2
a f
a
f
f
1 f 2
1 a 1
2 a 2

1
-
`

func TestParse_ScenarioB(t *testing.T) {
	t.Parallel()

	p, err := ioformat.Parse(strings.NewReader(scenarioBText))
	require.NoError(t, err)

	assert.Equal(t, 2, p.NumStates)
	assert.Equal(t, []string{"a", "f"}, p.Symbols)
	assert.Equal(t, []string{"a"}, p.Observable)
	assert.Equal(t, []string{"f"}, p.Unobservable)
	assert.Equal(t, []string{"f"}, p.Fault)
	require.Len(t, p.Transitions, 3)
	assert.Equal(t, ioformat.RawTransition{Src: 1, Sym: "f", Dst: 2}, p.Transitions[0])
	assert.Equal(t, []int{1}, p.Initial)
	assert.Empty(t, p.Marked)
}

func TestParse_MarkerTerminatedTransitionsBlock(t *testing.T) {
	t.Parallel()

	text := `1
a
a
-
-
1 a 1
Initial state
1
-
`
	p, err := ioformat.Parse(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, p.Transitions, 1)
	assert.Equal(t, []int{1}, p.Initial)
}

func TestParse_CommentsAndBlankLinesIgnored(t *testing.T) {
	t.Parallel()

	text := `% a comment
1

% alphabet
a
a
-
-
1 a 1

1
-
`
	p, err := ioformat.Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, 1, p.NumStates)
	assert.Equal(t, []string{"a"}, p.Symbols)
}

func TestParse_RejectsInvalidTransitionLine(t *testing.T) {
	t.Parallel()

	text := `1
a
a
-
-
1 a
1
-
`
	_, err := ioformat.Parse(strings.NewReader(text))
	assert.ErrorIs(t, err, ioformat.ErrInvalidTransition)
}

func TestParse_RejectsEmptyInitialSet(t *testing.T) {
	t.Parallel()

	text := `1
a
a
-
-
1 a 1

-
-
`
	_, err := ioformat.Parse(strings.NewReader(text))
	assert.ErrorIs(t, err, ioformat.ErrInvalidTransition)
}

func TestReadFile_RejectsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ioformat.ReadFile("/nonexistent/path/to/plant.txt")
	assert.ErrorIs(t, err, ioformat.ErrCannotOpen)
}

func TestToAutomaton_RejectsEventNotInAlphabet(t *testing.T) {
	t.Parallel()

	p := &ioformat.Parsed{
		NumStates:  1,
		Symbols:    []string{"a"},
		Observable: []string{"a"},
		Transitions: []ioformat.RawTransition{
			{Src: 1, Sym: "z", Dst: 1},
		},
		Initial: []int{1},
	}
	_, _, err := ioformat.ToAutomaton(p)
	assert.ErrorIs(t, err, ioformat.ErrEventNotInAlphabet)
}

func TestToAutomaton_RejectsStateOutOfRange(t *testing.T) {
	t.Parallel()

	p := &ioformat.Parsed{
		NumStates:  1,
		Symbols:    []string{"a"},
		Observable: []string{"a"},
		Transitions: []ioformat.RawTransition{
			{Src: 1, Sym: "a", Dst: 9},
		},
		Initial: []int{1},
	}
	_, _, err := ioformat.ToAutomaton(p)
	assert.ErrorIs(t, err, ioformat.ErrStateOutOfRange)
}

func TestToAutomaton_BuildsValidAutomaton(t *testing.T) {
	t.Parallel()

	p, err := ioformat.Parse(strings.NewReader(scenarioBText))
	require.NoError(t, err)

	a, table, err := ioformat.ToAutomaton(p)
	require.NoError(t, err)
	assert.Equal(t, 2, a.NumStates())
	assert.Equal(t, 2, table.Size())
}
