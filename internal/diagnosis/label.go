// Package diagnosis implements C5: the N/F/U labeller.
//
// Labelling a macro-state is a pure, total scan: it depends only on the
// monitor component of each member (spec.md §8 "label(Y) depends only on
// the second components of members of Y"), so it is invariant under
// permutation of member ordering and carries no state of its own — the
// smallest possible component in this pipeline.
package diagnosis

import "github.com/katalvlaran/diagnoser/internal/recognizer"

// Label is a macro-state's diagnosis classification.
type Label int

const (
	// Normal labels a macro-state whose every member is a normal compound
	// state (m = N).
	Normal Label = iota
	// Faulty labels a macro-state whose every member is a fault compound
	// state (m = F).
	Faulty
	// Uncertain labels a macro-state that mixes normal and fault members.
	Uncertain
)

// String renders the label using the single-letter display contract of
// spec.md §6 ("N", "F", "U").
func (l Label) String() string {
	switch l {
	case Normal:
		return "N"
	case Faulty:
		return "F"
	case Uncertain:
		return "U"
	default:
		panic("diagnosis: invariant violated: unknown label")
	}
}

// Of computes label(Y) for the given member ids, by consulting rec for
// each member's monitor component. Members order does not matter.
func Of(rec *recognizer.Recognizer, members []recognizer.ID) Label {
	sawNormal, sawFault := false, false
	for _, m := range members {
		if rec.IsFault(m) {
			sawFault = true
		} else {
			sawNormal = true
		}
		if sawNormal && sawFault {
			return Uncertain
		}
	}

	switch {
	case sawFault:
		return Faulty
	case sawNormal:
		return Normal
	default:
		panic("diagnosis: invariant violated: empty macro-state")
	}
}
