// Package monitor implements C2: the two-state fault monitor M.
//
// M is deterministic and total over Σ: state Normal transitions to Faulty
// on any fault event and stays Normal otherwise; Faulty is absorbing. The
// spec's Open Question ("may a fault event be observable?") is irrelevant
// here — M reacts to fault membership alone, never to observability.
package monitor

// State is one of M's two states. The integer encoding (Normal=1,
// Faulty=2) is part of the on-the-wire display contract in spec.md §6 and
// §2 C2, so it is not renumbered or turned into an iota-based enum that
// could drift.
type State int

const (
	// Normal is M's initial state: no fault event has occurred yet.
	Normal State = 1
	// Faulty is M's absorbing state: some fault event has occurred.
	Faulty State = 2
)

// String renders the monitor state for diagnostic logging ("N"/"F"); the
// compound-state display contract itself lives in ioformat, which composes
// this with the plant state id.
func (s State) String() string {
	switch s {
	case Normal:
		return "N"
	case Faulty:
		return "F"
	default:
		panic("monitor: invariant violated: unknown monitor state")
	}
}

// Initial returns M's start state, Normal.
func Initial() State { return Normal }

// Step computes M's transition for event e: Normal becomes Faulty iff e is
// a fault event; Faulty is absorbing regardless of isFault.
func Step(m State, isFault bool) State {
	if m == Faulty {
		return Faulty
	}
	if isFault {
		return Faulty
	}

	return Normal
}
