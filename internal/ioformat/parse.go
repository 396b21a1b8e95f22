// Package ioformat is the boundary collaborator spec.md §1 calls out as
// out of scope for the core: the textual NFA file reader and the console
// display renderers. It is kept deliberately thin and string-oriented —
// exactly the kind of throwaway, format-specific code the core's tagged
// CompoundState variant (recognizer.CompoundState) exists to keep out of
// the algorithmic stages (spec.md §9 "internal code never parses
// strings").
package ioformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/diagnoser/internal/alphabet"
	"github.com/katalvlaran/diagnoser/internal/automaton"
)

// Sentinel errors for the §6/§7 input-validation contract. Each is a
// terminal failure of the read stage — the core pipeline never sees a
// malformed file.
var (
	ErrCannotOpen          = errors.New("ioformat: cannot open file")
	ErrInvalidTransition   = errors.New("ioformat: invalid transition line")
	ErrStateOutOfRange     = errors.New("ioformat: state out of range")
	ErrEventNotInAlphabet  = errors.New("ioformat: event not in alphabet")
	ErrUnexpectedEndOfFile = errors.New("ioformat: unexpected end of file")
)

// RawTransition is one parsed "src sym dst" line.
type RawTransition struct {
	Src int
	Sym string
	Dst int
}

// Parsed is the file's content prior to alphabet/automaton construction.
type Parsed struct {
	NumStates    int
	Symbols      []string
	Observable   []string
	Unobservable []string
	Fault        []string
	Transitions  []RawTransition
	Initial      []int
	Marked       []int
}

// ReadFile opens path and parses it per spec.md §6.
func ReadFile(path string) (*Parsed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCannotOpen, path, err)
	}
	defer f.Close()

	return Parse(f)
}

// lineReader yields successive lines from r, skipping blank lines and
// '%'-prefixed comment lines, which spec.md §6 defines as non-content.
type lineReader struct {
	scanner *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(r)}
}

// next returns the next significant (non-blank, non-comment) line, or
// ok=false at end of input.
func (lr *lineReader) next() (string, bool) {
	for lr.scanner.Scan() {
		line := strings.TrimSpace(lr.scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}

		return line, true
	}

	return "", false
}

// nextRaw returns the next raw line (no skipping), or ok=false at EOF.
// Used for the transitions block, which must distinguish a blank
// terminator from ordinary content.
func (lr *lineReader) nextRaw() (string, bool) {
	if !lr.scanner.Scan() {
		return "", false
	}

	return lr.scanner.Text(), true
}

// Parse reads the §6 line-oriented NFA format from r.
func Parse(r io.Reader) (*Parsed, error) {
	lr := newLineReader(r)
	p := &Parsed{}

	// Line 1: state count.
	line, ok := lr.next()
	if !ok {
		return nil, fmt.Errorf("%w: missing state count", ErrUnexpectedEndOfFile)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: invalid state count %q", ErrInvalidTransition, line)
	}
	p.NumStates = n

	// Line 2: alphabet.
	line, ok = lr.next()
	if !ok {
		return nil, fmt.Errorf("%w: missing alphabet line", ErrUnexpectedEndOfFile)
	}
	p.Symbols = fields(line)

	// Line 3: observable events.
	line, ok = lr.next()
	if !ok {
		return nil, fmt.Errorf("%w: missing observable-events line", ErrUnexpectedEndOfFile)
	}
	p.Observable = fieldsOrEmpty(line)

	// Line 4: unobservable events.
	line, ok = lr.next()
	if !ok {
		return nil, fmt.Errorf("%w: missing unobservable-events line", ErrUnexpectedEndOfFile)
	}
	p.Unobservable = fieldsOrEmpty(line)

	// Line 5: fault events.
	line, ok = lr.next()
	if !ok {
		return nil, fmt.Errorf("%w: missing fault-events line", ErrUnexpectedEndOfFile)
	}
	p.Fault = fieldsOrEmpty(line)

	// Line 6: transitions block, terminated by a blank line or an
	// "Initial state" marker line.
	markerConsumed := false
	for {
		raw, ok := lr.nextRaw()
		if !ok {
			return nil, fmt.Errorf("%w: unterminated transitions block", ErrUnexpectedEndOfFile)
		}
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			break // blank terminator
		}
		if strings.HasPrefix(trimmed, "%") {
			continue // comment inside the block
		}
		if strings.HasPrefix(strings.ToLower(trimmed), "initial state") {
			markerConsumed = true
			break // marker terminator
		}

		tr, err := parseTransitionLine(trimmed)
		if err != nil {
			return nil, err
		}
		p.Transitions = append(p.Transitions, tr)
	}

	// Line 7: initial states.
	var initialLine string
	if markerConsumed {
		// The marker line already served as the section header; the ids
		// follow on the next significant line.
		initialLine, ok = lr.next()
	} else {
		initialLine, ok = lr.next()
	}
	if !ok {
		return nil, fmt.Errorf("%w: missing initial-states line", ErrUnexpectedEndOfFile)
	}
	p.Initial, err = parseIDList(initialLine, false)
	if err != nil {
		return nil, err
	}
	if len(p.Initial) == 0 {
		return nil, fmt.Errorf("%w: empty initial-state set", ErrInvalidTransition)
	}

	// Line 8: final (marked) states; '-' means empty.
	line, ok = lr.next()
	if ok {
		p.Marked, err = parseIDList(line, true)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func parseTransitionLine(line string) (RawTransition, error) {
	f := fields(line)
	if len(f) != 3 {
		return RawTransition{}, fmt.Errorf("%w: %q", ErrInvalidTransition, line)
	}
	src, err1 := strconv.Atoi(f[0])
	dst, err2 := strconv.Atoi(f[2])
	if err1 != nil || err2 != nil {
		return RawTransition{}, fmt.Errorf("%w: %q", ErrInvalidTransition, line)
	}

	return RawTransition{Src: src, Sym: f[1], Dst: dst}, nil
}

// parseIDList parses a space-separated list of integers; if allowDash and
// the trimmed line is exactly "-", returns an empty, nil-error list.
func parseIDList(line string, allowDash bool) ([]int, error) {
	trimmed := strings.TrimSpace(line)
	if allowDash && trimmed == "-" {
		return nil, nil
	}

	var out []int
	for _, tok := range fields(line) {
		if tok == "-" {
			continue
		}
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrStateOutOfRange, tok)
		}
		out = append(out, id)
	}

	return out, nil
}

func fields(line string) []string {
	return strings.Fields(line)
}

// fieldsOrEmpty treats a lone "-" token as an empty set (spec.md §6 lines
// 4 and 5).
func fieldsOrEmpty(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "-" {
		return nil
	}

	return fields(line)
}

// ToAutomaton validates p against its own declared alphabet and state
// count, translating symbol transitions to alphabet.EventID transitions
// and producing the fully-built automaton.Automaton plus its AlphabetTable
// (spec.md §6's boundary: "the core never sees malformed input").
func ToAutomaton(p *Parsed) (*automaton.Automaton, *alphabet.Table, error) {
	table, err := alphabet.New(p.Symbols, p.Observable, p.Unobservable, p.Fault)
	if err != nil {
		return nil, nil, err
	}

	trans := make([]automaton.Transition, 0, len(p.Transitions))
	for _, rt := range p.Transitions {
		if rt.Src < 1 || rt.Src > p.NumStates {
			return nil, nil, fmt.Errorf("%w: source state %d", ErrStateOutOfRange, rt.Src)
		}
		if rt.Dst < 1 || rt.Dst > p.NumStates {
			return nil, nil, fmt.Errorf("%w: destination state %d", ErrStateOutOfRange, rt.Dst)
		}
		eventID, ok := table.ID(rt.Sym)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrEventNotInAlphabet, rt.Sym)
		}
		trans = append(trans, automaton.Transition{
			Src:   automaton.StateID(rt.Src),
			Event: eventID,
			Dst:   automaton.StateID(rt.Dst),
		})
	}

	initial := make([]automaton.StateID, 0, len(p.Initial))
	for _, id := range p.Initial {
		if id < 1 || id > p.NumStates {
			return nil, nil, fmt.Errorf("%w: initial state %d", ErrStateOutOfRange, id)
		}
		initial = append(initial, automaton.StateID(id))
	}
	marked := make([]automaton.StateID, 0, len(p.Marked))
	for _, id := range p.Marked {
		if id < 1 || id > p.NumStates {
			return nil, nil, fmt.Errorf("%w: final state %d", ErrStateOutOfRange, id)
		}
		marked = append(marked, automaton.StateID(id))
	}

	a, err := automaton.New(p.NumStates, table, trans, initial, marked)
	if err != nil {
		return nil, nil, err
	}

	return a, table, nil
}
