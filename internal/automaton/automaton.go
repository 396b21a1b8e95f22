// Package automaton implements C1: the immutable plant-automaton model.
//
// An Automaton is the non-deterministic G = (Q, Σ, Σ_o, Σ_uo, Σ_f, δ, Q_0,
// Q_m) of spec.md §3. Transitions are indexed twice — by source state, and
// by (source, event) — because both the synchronous composer (C3) and the
// observer builder (C4) need dense O(1) lookup by either key, the same
// double-indexing rationale that drove lvlath's core.Graph to keep an
// edges map and an adjacencyList side by side.
//
// Once built, an Automaton never mutates: there is no AddState/AddEdge
// after New returns, matching the read-only lifecycle spec.md §3
// requires of every stage's output.
package automaton

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/diagnoser/internal/alphabet"
)

// ErrMalformedInput is returned by New for any of: a non-positive state
// count, a nil alphabet table, an out-of-range state reference, an event id
// unknown to the alphabet table, or an empty initial-state set. Duplicate
// transitions are not an error; New deduplicates them.
var ErrMalformedInput = errors.New("automaton: malformed input")

// StateID is a dense integer in 1..n identifying a plant state.
type StateID int

// Transition is one δ-tuple (src, event, dst).
type Transition struct {
	Src   StateID
	Event alphabet.EventID
	Dst   StateID
}

// Automaton is the read-only NFA model described in spec.md §3.
type Automaton struct {
	n        int
	alphabet *alphabet.Table
	bySource map[StateID][]Transition
	byEvent  map[StateID]map[alphabet.EventID][]StateID
	initial  []StateID
	marked   []StateID
}

// New validates and constructs an Automaton.
//
// n is |Q|; states are expected dense in 1..n. trans is the δ relation as
// an unordered list of triples (duplicates are permitted and silently
// deduplicated, mirroring spec.md §4.3's "duplicates are deduplicated").
// initial must be non-empty; marked may be empty.
func New(n int, table *alphabet.Table, trans []Transition, initial, marked []StateID) (*Automaton, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: state count must be positive, got %d", ErrMalformedInput, n)
	}
	if table == nil {
		return nil, fmt.Errorf("%w: nil alphabet table", ErrMalformedInput)
	}
	if len(initial) == 0 {
		return nil, fmt.Errorf("%w: empty initial-state set", ErrMalformedInput)
	}

	inRange := func(s StateID) bool { return int(s) >= 1 && int(s) <= n }

	a := &Automaton{
		n:        n,
		alphabet: table,
		bySource: make(map[StateID][]Transition),
		byEvent:  make(map[StateID]map[alphabet.EventID][]StateID),
	}

	seen := make(map[Transition]bool, len(trans))
	for _, tr := range trans {
		if !inRange(tr.Src) {
			return nil, fmt.Errorf("%w: source state %d out of range [1,%d]", ErrMalformedInput, tr.Src, n)
		}
		if !inRange(tr.Dst) {
			return nil, fmt.Errorf("%w: destination state %d out of range [1,%d]", ErrMalformedInput, tr.Dst, n)
		}
		if int(tr.Event) < 1 || int(tr.Event) > table.Size() {
			return nil, fmt.Errorf("%w: event id %d unknown to alphabet", ErrMalformedInput, tr.Event)
		}
		if seen[tr] {
			continue // duplicate transition, deduplicated per spec.md §4.3
		}
		seen[tr] = true

		a.bySource[tr.Src] = append(a.bySource[tr.Src], tr)
		if a.byEvent[tr.Src] == nil {
			a.byEvent[tr.Src] = make(map[alphabet.EventID][]StateID)
		}
		a.byEvent[tr.Src][tr.Event] = append(a.byEvent[tr.Src][tr.Event], tr.Dst)
	}

	for _, s := range initial {
		if !inRange(s) {
			return nil, fmt.Errorf("%w: initial state %d out of range [1,%d]", ErrMalformedInput, s, n)
		}
	}
	for _, s := range marked {
		if !inRange(s) {
			return nil, fmt.Errorf("%w: marked state %d out of range [1,%d]", ErrMalformedInput, s, n)
		}
	}

	a.initial = dedupSorted(initial)
	a.marked = dedupSorted(marked)

	// Deterministic iteration order for every per-state transition slice,
	// so C3/C4 produce reproducible macro-state ids (spec.md §4.4
	// "Determinism").
	for src := range a.bySource {
		sort.Slice(a.bySource[src], func(i, j int) bool {
			ti, tj := a.bySource[src][i], a.bySource[src][j]
			if ti.Event != tj.Event {
				return ti.Event < tj.Event
			}
			return ti.Dst < tj.Dst
		})
	}
	for src := range a.byEvent {
		for e := range a.byEvent[src] {
			sort.Slice(a.byEvent[src][e], func(i, j int) bool { return a.byEvent[src][e][i] < a.byEvent[src][e][j] })
		}
	}

	return a, nil
}

func dedupSorted(ids []StateID) []StateID {
	set := make(map[StateID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	out := make([]StateID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// NumStates returns |Q|.
func (a *Automaton) NumStates() int { return a.n }

// Alphabet returns the back-reference to the shared AlphabetTable.
func (a *Automaton) Alphabet() *alphabet.Table { return a.alphabet }

// Initial returns Q_0, sorted ascending.
func (a *Automaton) Initial() []StateID { return a.initial }

// Marked returns Q_m, sorted ascending.
func (a *Automaton) Marked() []StateID { return a.marked }

// Transitions returns every outgoing transition from q, in deterministic
// (event, dst) order. Returns nil if q has no outgoing transitions.
func (a *Automaton) Transitions(q StateID) []Transition { return a.bySource[q] }

// TransitionsOn returns the (possibly non-deterministic) set of targets for
// (q, e), sorted ascending. Returns nil if the transition is undefined.
func (a *Automaton) TransitionsOn(q StateID, e alphabet.EventID) []StateID {
	byEvent, ok := a.byEvent[q]
	if !ok {
		return nil
	}

	return byEvent[e]
}
