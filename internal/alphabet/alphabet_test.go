package alphabet_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/diagnoser/internal/alphabet"
)

func TestNew_ValidPartition(t *testing.T) {
	t.Parallel()

	table, err := alphabet.New(
		[]string{"a", "b", "f"},
		[]string{"a", "b"},
		[]string{"f"},
		[]string{"f"},
	)
	assert.NoError(t, err)
	assert.Equal(t, 3, table.Size())

	aID, ok := table.ID("a")
	assert.True(t, ok)
	assert.True(t, table.IsObservable(aID))
	assert.False(t, table.IsUnobservable(aID))
	assert.False(t, table.IsFault(aID))

	fID, ok := table.ID("f")
	assert.True(t, ok)
	assert.True(t, table.IsUnobservable(fID))
	assert.True(t, table.IsFault(fID))

	assert.Equal(t, "a", table.Symbol(aID))
}

func TestNew_FaultMayBeObservable(t *testing.T) {
	t.Parallel()

	// spec.md §9 Open Question: Σ_f ⊄ Σ_uo must be accepted.
	table, err := alphabet.New(
		[]string{"a", "f"},
		[]string{"a", "f"},
		nil,
		[]string{"f"},
	)
	assert.NoError(t, err)

	fID, _ := table.ID("f")
	assert.True(t, table.IsObservable(fID))
	assert.True(t, table.IsFault(fID))
}

func TestNew_RejectsUnclassifiedEvent(t *testing.T) {
	t.Parallel()

	_, err := alphabet.New([]string{"a", "b"}, []string{"a"}, nil, nil)
	assert.ErrorIs(t, err, alphabet.ErrMalformedInput)
}

func TestNew_RejectsDoubleClassification(t *testing.T) {
	t.Parallel()

	_, err := alphabet.New([]string{"a"}, []string{"a"}, []string{"a"}, nil)
	assert.ErrorIs(t, err, alphabet.ErrMalformedInput)
}

func TestNew_RejectsUnknownSymbolInSubset(t *testing.T) {
	t.Parallel()

	_, err := alphabet.New([]string{"a"}, []string{"a", "z"}, nil, nil)
	assert.True(t, errors.Is(err, alphabet.ErrMalformedInput))
}

func TestNew_RejectsEmptyAlphabet(t *testing.T) {
	t.Parallel()

	_, err := alphabet.New(nil, nil, nil, nil)
	assert.ErrorIs(t, err, alphabet.ErrMalformedInput)
}

func TestTable_AllAndFiltersAreSortedById(t *testing.T) {
	t.Parallel()

	table, err := alphabet.New(
		[]string{"x", "y", "z"},
		[]string{"x", "z"},
		[]string{"y"},
		nil,
	)
	assert.NoError(t, err)

	all := table.All()
	assert.Equal(t, []alphabet.EventID{1, 2, 3}, all)

	obs := table.Observable()
	assert.Equal(t, []alphabet.EventID{1, 3}, obs)

	unobs := table.Unobservable()
	assert.Equal(t, []alphabet.EventID{2}, unobs)
}
