package recognizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/diagnoser/internal/alphabet"
	"github.com/katalvlaran/diagnoser/internal/automaton"
	"github.com/katalvlaran/diagnoser/internal/monitor"
	"github.com/katalvlaran/diagnoser/internal/recognizer"
)

// buildScenarioB is spec.md §8 Scenario B: states {1,2}, Σ_o={a}, Σ_uo=Σ_f={f},
// δ={(1,f,2),(1,a,1),(2,a,2)}, Q_0={1}.
func buildScenarioB(t *testing.T) (*automaton.Automaton, *alphabet.Table, alphabet.EventID, alphabet.EventID) {
	t.Helper()

	table, err := alphabet.New([]string{"a", "f"}, []string{"a"}, []string{"f"}, []string{"f"})
	require.NoError(t, err)
	aID, _ := table.ID("a")
	fID, _ := table.ID("f")

	plant, err := automaton.New(2, table,
		[]automaton.Transition{
			{Src: 1, Event: fID, Dst: 2},
			{Src: 1, Event: aID, Dst: 1},
			{Src: 2, Event: aID, Dst: 2},
		},
		[]automaton.StateID{1}, nil)
	require.NoError(t, err)

	return plant, table, aID, fID
}

func TestBuild_ScenarioB(t *testing.T) {
	t.Parallel()

	plant, _, aID, fID := buildScenarioB(t)
	rec := recognizer.Build(plant)

	// Reachable compound states: (1,N), (2,F). Canonical ids: (1,N)=1, (2,F)=4.
	idNormal1 := recognizer.CanonicalID(1, monitor.Normal)
	idFaulty2 := recognizer.CanonicalID(2, monitor.Faulty)

	members := rec.Members()
	assert.ElementsMatch(t, []recognizer.ID{idNormal1, idFaulty2}, members)

	assert.Equal(t, []recognizer.ID{idNormal1}, rec.Initial())
	assert.False(t, rec.IsFault(idNormal1))
	assert.True(t, rec.IsFault(idFaulty2))

	// (1,N) -f-> (2,F); (1,N) -a-> (1,N); (2,F) -a-> (2,F).
	assert.Equal(t, []recognizer.ID{idFaulty2}, rec.TransitionsOn(idNormal1, fID))
	assert.Equal(t, []recognizer.ID{idNormal1}, rec.TransitionsOn(idNormal1, aID))
	assert.Equal(t, []recognizer.ID{idFaulty2}, rec.TransitionsOn(idFaulty2, aID))
}

func TestCanonicalID_Formula(t *testing.T) {
	t.Parallel()

	assert.Equal(t, recognizer.ID(1), recognizer.CanonicalID(1, monitor.Normal))
	assert.Equal(t, recognizer.ID(2), recognizer.CanonicalID(1, monitor.Faulty))
	assert.Equal(t, recognizer.ID(3), recognizer.CanonicalID(2, monitor.Normal))
	assert.Equal(t, recognizer.ID(4), recognizer.CanonicalID(2, monitor.Faulty))
}

func TestBuild_FaultyNeverReturnsToNormal(t *testing.T) {
	t.Parallel()

	// spec.md §8 invariant: once F, always F.
	plant, _, _, _ := buildScenarioB(t)
	rec := recognizer.Build(plant)

	for _, id := range rec.Members() {
		if !rec.IsFault(id) {
			continue
		}
		for _, e := range rec.Alphabet().All() {
			for _, dst := range rec.TransitionsOn(id, e) {
				assert.True(t, rec.IsFault(dst), "fault state transitioned to a normal state")
			}
		}
	}
}

func TestBuild_BoundedByTwiceStateCount(t *testing.T) {
	t.Parallel()

	plant, _, _, _ := buildScenarioB(t)
	rec := recognizer.Build(plant)

	assert.LessOrEqual(t, len(rec.Members()), 2*plant.NumStates())
}
