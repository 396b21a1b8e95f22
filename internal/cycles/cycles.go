// Package cycles implements C6: enumeration of simple cycles in the
// observer's U-subgraph and the α/β refinement that decides, per cycle,
// whether it is indeterminate (spec.md §4.6, the largest single component
// in this pipeline at a 30% budget share).
//
// Cycle enumeration is adapted from lvlath's dfs.DetectCycles: the same
// three-color-free, path-membership style of simple-cycle search, but
// directed-only (the U-subgraph is always a sub-digraph of the observer)
// and edge-labelled rather than vertex-only, since spec.md §4.6 requires
// that "multiple edges between the same observer states with different
// events yield multiple cycles". Where lvlath canonicalizes a discovered
// cycle via Booth's minimal rotation after the fact, this package instead
// fixes canonical form up front by only ever starting a cycle search at
// its lowest-id vertex and only stepping to strictly higher ids until
// closing — each elementary circuit is therefore discovered exactly once,
// which is the textbook Johnson's-algorithm starting discipline spec.md §9
// asks for ("canonicalised by minimum vertex id first").
package cycles

import (
	"sort"

	"github.com/katalvlaran/diagnoser/internal/alphabet"
	"github.com/katalvlaran/diagnoser/internal/diagnosis"
	"github.com/katalvlaran/diagnoser/internal/observer"
	"github.com/katalvlaran/diagnoser/internal/recognizer"
)

// Cycle is one simple directed cycle in the U-subgraph: an ordered vertex
// sequence v1..vk (not repeating the closing vertex) and the parallel
// event word e1..ek, where ej labels the edge vj → v(j mod k)+1.
type Cycle struct {
	Vertices []observer.MacroID
	Events   []alphabet.EventID
}

// RefinementStep is one labelled set recorded while unrolling a cycle's
// event word over the underlying recognizer (spec.md §4.6 Step 3): either
// the entry set S_0, an α_j image, or a β_j closure.
type RefinementStep struct {
	Kind    string // "S0", "alpha", or "beta"
	Members []recognizer.ID
	Label   diagnosis.Label
}

// CycleReport is the per-cycle structured output of spec.md §4.6's
// "Output" clause: the cycle itself, its full refinement trace, and the
// determinate/indeterminate verdict.
type CycleReport struct {
	Cycle         Cycle
	Steps         []RefinementStep
	Indeterminate bool
}

// Result is the top-level decision of spec.md §4.6 Step 5.
type Result struct {
	Diagnosable bool
	Cycles      []CycleReport
}

type uEdge struct {
	event alphabet.EventID
	to    observer.MacroID
}

// buildUSubgraph restricts obs to macro-states labelled Uncertain and to
// transitions whose source and target are both Uncertain (spec.md §4.6
// Step 1).
func buildUSubgraph(obs *observer.Observer) (labels map[observer.MacroID]diagnosis.Label, adj map[observer.MacroID][]uEdge) {
	rec := obs.Recognizer()
	labels = make(map[observer.MacroID]diagnosis.Label, obs.NumStates())
	for y := 0; y < obs.NumStates(); y++ {
		id := observer.MacroID(y)
		labels[id] = diagnosis.Of(rec, obs.Members(id))
	}

	adj = make(map[observer.MacroID][]uEdge)
	for _, tr := range obs.Transitions() {
		if labels[tr.From] != diagnosis.Uncertain || labels[tr.To] != diagnosis.Uncertain {
			continue
		}
		adj[tr.From] = append(adj[tr.From], uEdge{event: tr.Event, to: tr.To})
	}
	for src := range adj {
		sort.Slice(adj[src], func(i, j int) bool {
			if adj[src][i].to != adj[src][j].to {
				return adj[src][i].to < adj[src][j].to
			}
			return adj[src][i].event < adj[src][j].event
		})
	}

	return labels, adj
}

// enumerateSimpleCycles finds every elementary circuit of adj, each
// reported exactly once, starting from its lowest-id vertex and visiting
// only strictly higher ids until closing (spec.md §4.6 Step 2).
func enumerateSimpleCycles(adj map[observer.MacroID][]uEdge, vertices []observer.MacroID) []Cycle {
	var cycles []Cycle

	var path []observer.MacroID
	var events []alphabet.EventID
	inPath := make(map[observer.MacroID]bool)

	var visit func(start, cur observer.MacroID)
	visit = func(start, cur observer.MacroID) {
		for _, e := range adj[cur] {
			if e.to == start {
				cyc := Cycle{
					Vertices: append([]observer.MacroID(nil), path...),
					Events:   append([]alphabet.EventID(nil), append(events, e.event)...),
				}
				cycles = append(cycles, cyc)

				continue
			}
			if e.to < start || inPath[e.to] {
				continue
			}

			path = append(path, e.to)
			events = append(events, e.event)
			inPath[e.to] = true

			visit(start, e.to)

			path = path[:len(path)-1]
			events = events[:len(events)-1]
			delete(inPath, e.to)
		}
	}

	for _, s := range vertices {
		path = []observer.MacroID{s}
		events = nil
		inPath = map[observer.MacroID]bool{s: true}
		visit(s, s)
	}

	return cycles
}

// refine unrolls a cycle's event word over rec starting from the cycle's
// entry macro-state, per spec.md §4.6 Step 3. It runs up to two full laps
// of the event word, stopping early once a previously-seen set repeats —
// the periodic termination test spec.md §9 requires in place of the
// source's "β equals initial" first-hit test, which under-terminates when
// a cycle's β-orbit does not return directly to S_0 after one lap.
func refine(rec *recognizer.Recognizer, obs *observer.Observer, c Cycle) []RefinementStep {
	entry := obs.Members(c.Vertices[0])
	s0 := append([]recognizer.ID(nil), entry...)

	steps := []RefinementStep{{Kind: "S0", Members: s0, Label: diagnosis.Of(rec, s0)}}

	seen := map[string]bool{setKey(s0): true}
	cur := s0
	k := len(c.Events)
	const maxLaps = 2

	for lap := 0; lap < maxLaps; lap++ {
		closedEarly := false
		for j := 0; j < k; j++ {
			a := observer.Alpha(rec, cur, c.Events[j])
			steps = append(steps, RefinementStep{Kind: "alpha", Members: a, Label: diagnosis.Of(rec, a)})

			b := observer.Beta(rec, a)
			steps = append(steps, RefinementStep{Kind: "beta", Members: b, Label: diagnosis.Of(rec, b)})

			cur = b
			key := setKey(cur)
			if seen[key] {
				closedEarly = true
				break
			}
			seen[key] = true
		}
		if closedEarly {
			break
		}
	}

	return steps
}

func setKey(ids []recognizer.ID) string {
	cp := append([]recognizer.ID(nil), ids...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })

	out := make([]byte, 0, len(cp)*4)
	for i, id := range cp {
		if i > 0 {
			out = append(out, ',')
		}
		out = appendInt(out, int(id))
	}

	return string(out)
}

func appendInt(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	if n < 0 {
		buf = append(buf, '-')
		n = -n
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return buf
}

// genuineIndeterminate decides whether c is a genuine indeterminate cycle.
//
// Testing only whether every merged S_j label is Uncertain is not enough:
// Alpha/Beta distribute over set union, so the merged trajectory equals the
// union of a normal-only trajectory and a faulty-only trajectory seeded from
// S_0's own Normal and Faulty members. A surviving normal branch can keep
// re-donating fresh faulty members into the merged set via β's unobservable
// closure (firing the fault event again on every lap) even after the
// original faulty lineage has run out of transitions to keep reproducing
// the cycle's word. That makes the merged set look perpetually mixed while
// no single faulty run actually survives long enough to match it. Sampath's
// indeterminate-cycle criterion requires a genuine pair: an all-Normal run
// and an all-Faulty run, each on its own a sustained periodic trajectory,
// producing the same observable word forever. So the two seeds are each
// unrolled independently and both must close on a repeated non-empty subset
// without either dying out first.
func genuineIndeterminate(rec *recognizer.Recognizer, obs *observer.Observer, c Cycle) bool {
	var normalSeed, faultySeed []recognizer.ID
	for _, id := range obs.Members(c.Vertices[0]) {
		if rec.IsFault(id) {
			faultySeed = append(faultySeed, id)
		} else {
			normalSeed = append(normalSeed, id)
		}
	}
	if len(normalSeed) == 0 || len(faultySeed) == 0 {
		return false // entry set is already pure: nothing to stay ambiguous about
	}

	return sustainsCycle(rec, normalSeed, c.Events) && sustainsCycle(rec, faultySeed, c.Events)
}

// sustainsCycle reports whether repeatedly unrolling events over seed via
// Alpha/Beta stays non-empty at every step and eventually repeats a
// previously-seen subset, within the same bounded two-lap budget refine
// uses for the reported trace.
func sustainsCycle(rec *recognizer.Recognizer, seed []recognizer.ID, events []alphabet.EventID) bool {
	cur := seed
	seen := map[string]bool{setKey(cur): true}
	const maxLaps = 2

	for lap := 0; lap < maxLaps; lap++ {
		for _, e := range events {
			a := observer.Alpha(rec, cur, e)
			if len(a) == 0 {
				return false // this branch has no transition left to keep reproducing the word
			}

			cur = observer.Beta(rec, a)
			key := setKey(cur)
			if seen[key] {
				return true // closed on a repeat: genuine periodic trajectory
			}
			seen[key] = true
		}
	}

	return false // never closed within the bounded lap budget
}

// Analyze runs the full C6 decision procedure over obs.
//
// When full is false, Analyze short-circuits as soon as the first
// indeterminate cycle is found (spec.md §5's performance note): the
// returned Result has Diagnosable=false and exactly one Cycles entry. When
// full is true, every simple cycle in the U-subgraph is enumerated and
// refined, in deterministic discovery order.
func Analyze(obs *observer.Observer, full bool) *Result {
	labels, adj := buildUSubgraph(obs)

	var uVertices []observer.MacroID
	for y := 0; y < obs.NumStates(); y++ {
		id := observer.MacroID(y)
		if labels[id] == diagnosis.Uncertain {
			uVertices = append(uVertices, id)
		}
	}
	sort.Slice(uVertices, func(i, j int) bool { return uVertices[i] < uVertices[j] })

	if len(uVertices) == 0 {
		return &Result{Diagnosable: true} // empty U-subgraph ⇒ diagnosable, spec.md §4.6 edge case
	}

	rec := obs.Recognizer()
	result := &Result{Diagnosable: true}

	for _, cyc := range enumerateSimpleCycles(adj, uVertices) {
		steps := refine(rec, obs, cyc)
		bad := genuineIndeterminate(rec, obs, cyc)
		report := CycleReport{Cycle: cyc, Steps: steps, Indeterminate: bad}

		if bad {
			result.Diagnosable = false
		}
		if full || bad {
			result.Cycles = append(result.Cycles, report)
		}
		if bad && !full {
			break // short-circuit: boolean verdict only requested
		}
	}

	return result
}
