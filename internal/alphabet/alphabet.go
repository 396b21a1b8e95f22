// Package alphabet defines the immutable event-id map threaded through every
// pipeline stage of the diagnosability analysis.
//
// The source this system was distilled from threaded symbol→id lookups
// through each stage via ad-hoc shared dictionaries. Here a single
// AlphabetTable is built once by the file reader (or by a test) and passed
// by reference to every downstream stage; none of them copy or mutate it,
// they only hold it as a back-reference, mirroring the way core.Graph in
// the original library is built once and read through shared pointers.
package alphabet

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is the sentinel for every structural problem in an
// alphabet definition: unknown symbols, duplicate classification, or an
// event placed in neither Σ_o nor Σ_uo.
var ErrMalformedInput = errors.New("alphabet: malformed input")

// EventID is a stable, dense integer identifying a member of Σ. Ids are
// assigned 1..|Σ| in the order symbols are declared.
type EventID int

// Table is the immutable, read-only view of Σ and its partition into
// observable (Σ_o), unobservable (Σ_uo), and fault (Σ_f) subsets.
//
// A fault event is not required to be unobservable: per spec.md's Open
// Question, Σ_f ⊄ Σ_uo is permitted, so Table never assumes the two are
// related beyond what the caller supplied.
type Table struct {
	symbols      []string // index i holds the symbol for EventID(i+1)
	ids          map[string]EventID
	observable   map[EventID]bool
	unobservable map[EventID]bool
	fault        map[EventID]bool
}

// New builds a Table from the alphabet line and its three classification
// subsets, exactly as they appear in the §6 input file (lines 2-5).
//
// Validation:
//  1. every symbol in observable/unobservable/fault must appear in symbols;
//  2. every symbol in symbols must be classified exactly once as observable
//     XOR unobservable (never both, never neither);
//  3. fault symbols have no further constraint (may be observable or not).
//
// Complexity: O(|Σ|) time and space.
func New(symbols, observable, unobservable, fault []string) (*Table, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrMalformedInput)
	}

	t := &Table{
		symbols:      append([]string(nil), symbols...),
		ids:          make(map[string]EventID, len(symbols)),
		observable:   make(map[EventID]bool, len(symbols)),
		unobservable: make(map[EventID]bool, len(symbols)),
		fault:        make(map[EventID]bool, len(symbols)),
	}

	for i, sym := range symbols {
		if sym == "" {
			return nil, fmt.Errorf("%w: empty event symbol", ErrMalformedInput)
		}
		if _, dup := t.ids[sym]; dup {
			return nil, fmt.Errorf("%w: duplicate event symbol %q", ErrMalformedInput, sym)
		}
		t.ids[sym] = EventID(i + 1)
	}

	markObservable := make(map[EventID]bool, len(observable))
	for _, sym := range observable {
		id, ok := t.ids[sym]
		if !ok {
			return nil, fmt.Errorf("%w: observable event %q not in alphabet", ErrMalformedInput, sym)
		}
		if markObservable[id] {
			return nil, fmt.Errorf("%w: duplicate event-classification assignment for %q", ErrMalformedInput, sym)
		}
		markObservable[id] = true
	}

	markUnobservable := make(map[EventID]bool, len(unobservable))
	for _, sym := range unobservable {
		id, ok := t.ids[sym]
		if !ok {
			return nil, fmt.Errorf("%w: unobservable event %q not in alphabet", ErrMalformedInput, sym)
		}
		if markUnobservable[id] {
			return nil, fmt.Errorf("%w: duplicate event-classification assignment for %q", ErrMalformedInput, sym)
		}
		if markObservable[id] {
			return nil, fmt.Errorf("%w: event %q classified both observable and unobservable", ErrMalformedInput, sym)
		}
		markUnobservable[id] = true
	}

	for i := range symbols {
		id := EventID(i + 1)
		switch {
		case markObservable[id]:
			t.observable[id] = true
		case markUnobservable[id]:
			t.unobservable[id] = true
		default:
			return nil, fmt.Errorf("%w: event %q classified as neither observable nor unobservable", ErrMalformedInput, symbols[i])
		}
	}

	for _, sym := range fault {
		id, ok := t.ids[sym]
		if !ok {
			return nil, fmt.Errorf("%w: fault event %q not in alphabet", ErrMalformedInput, sym)
		}
		if t.fault[id] {
			return nil, fmt.Errorf("%w: duplicate fault assignment for %q", ErrMalformedInput, sym)
		}
		t.fault[id] = true
	}

	return t, nil
}

// Size returns |Σ|.
func (t *Table) Size() int { return len(t.symbols) }

// Symbol renders EventID back to its textual name. Panics if id is out of
// range: callers are expected to only ever hold ids this Table minted.
func (t *Table) Symbol(id EventID) string {
	if int(id) < 1 || int(id) > len(t.symbols) {
		panic(fmt.Sprintf("alphabet: invariant violated: event id %d out of range", id))
	}

	return t.symbols[id-1]
}

// ID looks up the EventID for a symbol, returning ok=false if unknown.
func (t *Table) ID(symbol string) (EventID, bool) {
	id, ok := t.ids[symbol]

	return id, ok
}

// IsObservable reports whether id ∈ Σ_o.
func (t *Table) IsObservable(id EventID) bool { return t.observable[id] }

// IsUnobservable reports whether id ∈ Σ_uo.
func (t *Table) IsUnobservable(id EventID) bool { return t.unobservable[id] }

// IsFault reports whether id ∈ Σ_f.
func (t *Table) IsFault(id EventID) bool { return t.fault[id] }

// Observable returns the sorted-by-id slice of Σ_o.
func (t *Table) Observable() []EventID { return t.filtered(t.observable) }

// Unobservable returns the sorted-by-id slice of Σ_uo.
func (t *Table) Unobservable() []EventID { return t.filtered(t.unobservable) }

// Faults returns the sorted-by-id slice of Σ_f.
func (t *Table) Faults() []EventID { return t.filtered(t.fault) }

// All returns every EventID 1..|Σ| in ascending order.
func (t *Table) All() []EventID {
	out := make([]EventID, len(t.symbols))
	for i := range out {
		out[i] = EventID(i + 1)
	}

	return out
}

func (t *Table) filtered(set map[EventID]bool) []EventID {
	out := make([]EventID, 0, len(set))
	for _, id := range t.All() {
		if set[id] {
			out = append(out, id)
		}
	}

	return out
}
