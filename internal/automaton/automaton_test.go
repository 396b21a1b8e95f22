package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diagnoser/internal/alphabet"
	"github.com/katalvlaran/diagnoser/internal/automaton"
)

func mustTable(t *testing.T) *alphabet.Table {
	t.Helper()
	table, err := alphabet.New([]string{"a", "f"}, []string{"a"}, []string{"f"}, []string{"f"})
	require.NoError(t, err)

	return table
}

func TestNew_BasicConstruction(t *testing.T) {
	t.Parallel()

	table := mustTable(t)
	aID, _ := table.ID("a")
	fID, _ := table.ID("f")

	a, err := automaton.New(2, table,
		[]automaton.Transition{
			{Src: 1, Event: fID, Dst: 2},
			{Src: 1, Event: aID, Dst: 1},
			{Src: 2, Event: aID, Dst: 2},
		},
		[]automaton.StateID{1},
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, 2, a.NumStates())
	assert.Equal(t, []automaton.StateID{1}, a.Initial())
	assert.Len(t, a.Transitions(1), 2)
	assert.Equal(t, []automaton.StateID{2}, a.TransitionsOn(1, fID))
}

func TestNew_DeduplicatesTransitions(t *testing.T) {
	t.Parallel()

	table := mustTable(t)
	aID, _ := table.ID("a")

	a, err := automaton.New(1, table,
		[]automaton.Transition{{Src: 1, Event: aID, Dst: 1}, {Src: 1, Event: aID, Dst: 1}},
		[]automaton.StateID{1}, nil)
	require.NoError(t, err)
	assert.Len(t, a.Transitions(1), 1)
}

func TestNew_RejectsOutOfRangeState(t *testing.T) {
	t.Parallel()

	table := mustTable(t)
	aID, _ := table.ID("a")

	_, err := automaton.New(1, table, []automaton.Transition{{Src: 1, Event: aID, Dst: 5}},
		[]automaton.StateID{1}, nil)
	assert.ErrorIs(t, err, automaton.ErrMalformedInput)
}

func TestNew_RejectsEmptyInitialSet(t *testing.T) {
	t.Parallel()

	table := mustTable(t)
	_, err := automaton.New(1, table, nil, nil, nil)
	assert.ErrorIs(t, err, automaton.ErrMalformedInput)
}

func TestNew_RejectsUnknownEvent(t *testing.T) {
	t.Parallel()

	table := mustTable(t)
	_, err := automaton.New(1, table, []automaton.Transition{{Src: 1, Event: 99, Dst: 1}},
		[]automaton.StateID{1}, nil)
	assert.ErrorIs(t, err, automaton.ErrMalformedInput)
}

func TestTransitionsOn_UndefinedReturnsNil(t *testing.T) {
	t.Parallel()

	table := mustTable(t)
	aID, _ := table.ID("a")
	fID, _ := table.ID("f")

	a, err := automaton.New(1, table, []automaton.Transition{{Src: 1, Event: aID, Dst: 1}},
		[]automaton.StateID{1}, nil)
	require.NoError(t, err)
	assert.Nil(t, a.TransitionsOn(1, fID))
}
