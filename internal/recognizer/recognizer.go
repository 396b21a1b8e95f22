// Package recognizer implements C3: the synchronous composer producing
// Rec(G) = G ∥ M.
//
// Construction is a frontier exploration seeded at {(q0, Normal) | q0 ∈
// Q_0}, the same worklist shape lvlath's bfs.walker uses to explore a
// core.Graph breadth-first — a queue of newly discovered states, a visited
// set keyed by canonical id, and a loop that drains the queue while
// recording edges. Unlike BFS, Rec(G) only needs reachability and the
// transition relation, not distances, so there is no depth bookkeeping.
package recognizer

import (
	"sort"

	"github.com/katalvlaran/diagnoser/internal/alphabet"
	"github.com/katalvlaran/diagnoser/internal/automaton"
	"github.com/katalvlaran/diagnoser/internal/monitor"
)

// ID is the canonical integer identity of a compound state (q, m):
// ID = 2*(q-1) + (m-1) + 1, per spec.md §4.3 "Canonical identity".
type ID int

// CompoundState is the tagged variant spec.md §9 calls for in place of the
// source's ad-hoc [q, m] pairs / "(q,N)" strings / bare integers: a single
// representation, converted to text only at the I/O boundary (ioformat).
type CompoundState struct {
	Plant   automaton.StateID
	Monitor monitor.State
}

// CanonicalID computes the stable integer id for a compound state.
func CanonicalID(plant automaton.StateID, m monitor.State) ID {
	return ID(2*(int(plant)-1) + (int(m) - 1) + 1)
}

// Transition is one compound transition (src, event, dst) of Rec(G).
type Transition struct {
	Src   ID
	Event alphabet.EventID
	Dst   ID
}

// Recognizer is the read-only Rec(G) = G ∥ M automaton.
type Recognizer struct {
	plant    *automaton.Automaton
	states   map[ID]CompoundState
	bySource map[ID]map[alphabet.EventID][]ID
	initial  []ID
}

// Build runs the frontier exploration of spec.md §4.3: from each
// {(q0, Normal) | q0 ∈ Q_0}, enumerate every enabled (q, e, q') in G and
// emit the compound transition (q, m) —e→ (q', Step(m, e)).
//
// Termination: |Q_R| ≤ 2|Q| (spec.md §4.3), since canonical ids range over
// at most 2n values.
func Build(plant *automaton.Automaton) *Recognizer {
	r := &Recognizer{
		plant:    plant,
		states:   make(map[ID]CompoundState),
		bySource: make(map[ID]map[alphabet.EventID][]ID),
	}

	table := plant.Alphabet()
	var queue []ID
	enqueue := func(cs CompoundState) ID {
		id := CanonicalID(cs.Plant, cs.Monitor)
		if _, seen := r.states[id]; !seen {
			r.states[id] = cs
			queue = append(queue, id)
		}

		return id
	}

	for _, q0 := range plant.Initial() {
		id := enqueue(CompoundState{Plant: q0, Monitor: monitor.Initial()})
		r.initial = append(r.initial, id)
	}
	sort.Slice(r.initial, func(i, j int) bool { return r.initial[i] < r.initial[j] })

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cs := r.states[cur]

		for _, tr := range plant.Transitions(cs.Plant) {
			dstMonitor := monitor.Step(cs.Monitor, table.IsFault(tr.Event))
			dstID := enqueue(CompoundState{Plant: tr.Dst, Monitor: dstMonitor})

			if r.bySource[cur] == nil {
				r.bySource[cur] = make(map[alphabet.EventID][]ID)
			}
			already := false
			for _, existing := range r.bySource[cur][tr.Event] {
				if existing == dstID {
					already = true
					break
				}
			}
			if !already {
				r.bySource[cur][tr.Event] = append(r.bySource[cur][tr.Event], dstID)
			}
		}
	}

	for src := range r.bySource {
		for e := range r.bySource[src] {
			sort.Slice(r.bySource[src][e], func(i, j int) bool { return r.bySource[src][e][i] < r.bySource[src][e][j] })
		}
	}

	return r
}

// Alphabet returns the shared alphabet table (back-reference, never a copy).
func (r *Recognizer) Alphabet() *alphabet.Table { return r.plant.Alphabet() }

// Initial returns the recognizer's initial compound-state ids, sorted.
func (r *Recognizer) Initial() []ID { return r.initial }

// StateOf returns the compound state for a canonical id. The second return
// is false if id was never reached during Build.
func (r *Recognizer) StateOf(id ID) (CompoundState, bool) {
	cs, ok := r.states[id]

	return cs, ok
}

// IsFault reports whether compound state id is a fault state (m = F).
func (r *Recognizer) IsFault(id ID) bool {
	cs, ok := r.states[id]

	return ok && cs.Monitor == monitor.Faulty
}

// Members returns every reachable compound-state id, sorted ascending.
func (r *Recognizer) Members() []ID {
	out := make([]ID, 0, len(r.states))
	for id := range r.states {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// TransitionsOn returns the (non-deterministic) set of successors of id
// under event e, sorted ascending. Returns nil if undefined.
func (r *Recognizer) TransitionsOn(id ID, e alphabet.EventID) []ID {
	byEvent, ok := r.bySource[id]
	if !ok {
		return nil
	}

	return byEvent[e]
}
