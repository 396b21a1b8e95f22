// Package observer implements C4: the subset-construction determinizer of
// Rec(G), the most algorithmically dense stage of the pipeline (spec.md §2
// budgets it at 25% of the system).
//
// The construction is a worklist-driven frontier exactly like
// recognizer.Build, but over macro-states (sets of recognizer.ID) instead
// of bare compound states, and restricted to the observable sub-alphabet.
// Each macro-state is interned by its canonical sorted-member key so that
// set identity collapses correctly — the same "key by sorted content"
// discipline lvlath's dfs package uses to canonicalize cycles via minimal
// rotation before deduplicating them.
package observer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/diagnoser/internal/alphabet"
	"github.com/katalvlaran/diagnoser/internal/recognizer"
)

// MacroID is the index of a macro-state in Observer.macroStates; it is
// also the identity used in Observer.Transitions.
type MacroID int

// Transition is one observer edge Y —e→ Y'.
type Transition struct {
	From  MacroID
	Event alphabet.EventID
	To    MacroID
}

// Observer is the deterministic automaton Obs(Rec(G)) of spec.md §3/§4.4.
type Observer struct {
	rec         *recognizer.Recognizer
	macroStates [][]recognizer.ID // index = MacroID; each member slice sorted ascending
	key         map[string]MacroID
	initial     MacroID
	trans       []Transition
	out         map[MacroID]map[alphabet.EventID]MacroID
}

// unobservableReach computes UR(y): the smallest set containing y and
// closed under unobservable transitions (spec.md §4.4).
func unobservableReach(rec *recognizer.Recognizer, y recognizer.ID) []recognizer.ID {
	table := rec.Alphabet()
	visited := map[recognizer.ID]bool{y: true}
	queue := []recognizer.ID{y}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range table.Unobservable() {
			for _, nxt := range rec.TransitionsOn(cur, e) {
				if !visited[nxt] {
					visited[nxt] = true
					queue = append(queue, nxt)
				}
			}
		}
	}

	out := make([]recognizer.ID, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Beta computes β(Z) = ⋃_{y∈Z} UR(y), returned sorted and deduplicated.
func Beta(rec *recognizer.Recognizer, z []recognizer.ID) []recognizer.ID {
	set := make(map[recognizer.ID]bool)
	for _, y := range z {
		for _, reached := range unobservableReach(rec, y) {
			set[reached] = true
		}
	}

	out := make([]recognizer.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Alpha computes α(Y, e) = { y' | ∃y∈Y. y —e→ y' in Rec(G) }, sorted and
// deduplicated. e is assumed observable; the caller (Build, or the cycle
// refinement step) is responsible for restricting to Σ_o.
func Alpha(rec *recognizer.Recognizer, y []recognizer.ID, e alphabet.EventID) []recognizer.ID {
	set := make(map[recognizer.ID]bool)
	for _, member := range y {
		for _, nxt := range rec.TransitionsOn(member, e) {
			set[nxt] = true
		}
	}

	out := make([]recognizer.ID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// canonicalKey canonicalizes a sorted member slice into a string suitable for
// interning-table lookup.
func canonicalKey(members []recognizer.ID) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = strconv.Itoa(int(m))
	}

	return strings.Join(parts, ",")
}

// Build runs the subset construction of spec.md §4.4 over rec, restricted
// to rec.Alphabet().Observable(). Iteration order over members and events
// is fixed by ascending id, so the resulting MacroIDs and transition order
// are fully reproducible across runs (spec.md §4.4 "Determinism").
func Build(rec *recognizer.Recognizer) *Observer {
	o := &Observer{
		rec: rec,
		key: make(map[string]MacroID),
		out: make(map[MacroID]map[alphabet.EventID]MacroID),
	}

	intern := func(members []recognizer.ID) (MacroID, bool) {
		k := canonicalKey(members)
		if id, ok := o.key[k]; ok {
			return id, false
		}
		id := MacroID(len(o.macroStates))
		o.macroStates = append(o.macroStates, members)
		o.key[k] = id

		return id, true
	}

	y0 := Beta(rec, rec.Initial())
	o.initial, _ = intern(y0)

	observable := rec.Alphabet().Observable()
	queue := []MacroID{o.initial}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		members := o.macroStates[cur]

		for _, e := range observable {
			a := Alpha(rec, members, e)
			if len(a) == 0 {
				continue // transition undefined per spec.md §4.4
			}
			b := Beta(rec, a)
			dst, fresh := intern(b)
			if fresh {
				queue = append(queue, dst)
			}

			if o.out[cur] == nil {
				o.out[cur] = make(map[alphabet.EventID]MacroID)
			}
			o.out[cur][e] = dst
			o.trans = append(o.trans, Transition{From: cur, Event: e, To: dst})
		}
	}

	return o
}

// Recognizer returns the underlying Rec(G) back-reference.
func (o *Observer) Recognizer() *recognizer.Recognizer { return o.rec }

// Initial returns Y_0's MacroID.
func (o *Observer) Initial() MacroID { return o.initial }

// NumStates returns the number of reachable macro-states.
func (o *Observer) NumStates() int { return len(o.macroStates) }

// Members returns the sorted member ids of macro-state y.
func (o *Observer) Members(y MacroID) []recognizer.ID { return o.macroStates[y] }

// Transitions returns every observer transition, in construction order.
func (o *Observer) Transitions() []Transition { return o.trans }

// Step returns the successor of y under e, and whether the transition is
// defined.
func (o *Observer) Step(y MacroID, e alphabet.EventID) (MacroID, bool) {
	byEvent, ok := o.out[y]
	if !ok {
		return 0, false
	}
	dst, ok := byEvent[e]

	return dst, ok
}
