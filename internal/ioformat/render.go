package ioformat

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/diagnoser/internal/alphabet"
	"github.com/katalvlaran/diagnoser/internal/automaton"
	"github.com/katalvlaran/diagnoser/internal/diagnosis"
	"github.com/katalvlaran/diagnoser/internal/monitor"
	"github.com/katalvlaran/diagnoser/internal/observer"
	"github.com/katalvlaran/diagnoser/internal/recognizer"
)

// CompoundState renders a recognizer compound state as "(q,N)" / "(q,F)",
// the display contract of spec.md §6.
func CompoundState(plant automaton.StateID, m monitor.State) string {
	return fmt.Sprintf("(%d,%s)", plant, m)
}

// Transition renders one recognizer or observer edge as three
// tab-separated columns: "State1\tEvent\tState2".
func Transition(src, event, dst string) string {
	return fmt.Sprintf("%s\t%s\t%s", src, event, dst)
}

// MacroState renders an observer macro-state as a comma-separated list of
// its member compound-state renderings, followed by its diagnosis label
// (spec.md §6: "Observer macro-states render as a comma-separated list of
// their member renderings followed by the diagnosis label").
func MacroState(rec *recognizer.Recognizer, members []recognizer.ID, label diagnosis.Label) string {
	parts := make([]string, len(members))
	for i, id := range members {
		cs, ok := rec.StateOf(id)
		if !ok {
			panic("ioformat: invariant violated: macro-state member not reachable in recognizer")
		}
		parts[i] = CompoundState(cs.Plant, cs.Monitor)
	}

	return fmt.Sprintf("{%s} %s", strings.Join(parts, ","), label)
}

// Event renders an event symbol from the table.
func Event(table *alphabet.Table, e alphabet.EventID) string {
	return table.Symbol(e)
}

// RenderCycle renders a cycles.Cycle's vertex/event sequence as
// "Y1 -e1-> Y2 -e2-> ... -ek-> Y1", the console form used by
// internal/driver when --show-cycle-graphs is set.
func RenderCycle(table *alphabet.Table, vertices []observer.MacroID, events []alphabet.EventID) string {
	var b strings.Builder
	for i, v := range vertices {
		fmt.Fprintf(&b, "Y%d", v)
		if i < len(events) {
			fmt.Fprintf(&b, " -%s-> ", Event(table, events[i]))
		}
	}
	fmt.Fprintf(&b, "Y%d", vertices[0])

	return b.String()
}

// Verdict renders the final diagnosability verdict line per spec.md §6.
func Verdict(diagnosable bool, sawAnyUncertainCycle bool) string {
	switch {
	case !diagnosable:
		return "The system G is NOT DIAGNOSABLE."
	case !sawAnyUncertainCycle:
		return "No uncertain cycle found, G is DIAGNOSABLE"
	default:
		return "The system G is DIAGNOSABLE."
	}
}
