// Package driver implements C7: the single orchestrator that wires
// C1-C6 into one diagnosability run over a file on disk, and is the
// seam this module's cmd/diagnose CLI (a SPEC_FULL.md addition) calls
// into.
//
// Structured logging follows the ambient-stack decision recorded in
// SPEC_FULL.md: rs/zerolog at Info for stage boundaries and the final
// verdict, Debug for per-macro-state detail, since none of the pack
// repos model a CLI pipeline closely enough to imitate beyond that
// level/stage split.
package driver

import (
	"github.com/rs/zerolog"

	"github.com/katalvlaran/diagnoser/internal/cycles"
	"github.com/katalvlaran/diagnoser/internal/diagnosis"
	"github.com/katalvlaran/diagnoser/internal/ioformat"
	"github.com/katalvlaran/diagnoser/internal/observer"
	"github.com/katalvlaran/diagnoser/internal/recognizer"
	"github.com/katalvlaran/diagnoser/internal/report"
)

// Options controls one Run invocation.
type Options struct {
	// Full requests every indeterminate cycle rather than stopping at the
	// first one found.
	Full bool
	// ShowCycleGraphs additionally logs, at Info level, every reported
	// cycle's vertex/event walk as rendered by ioformat.RenderCycle (set by
	// cmd/diagnose's --show-cycle-graphs flag). The returned Report is the
	// same either way.
	ShowCycleGraphs bool
}

// Run executes the full C1-C6 pipeline over the NFA defined in path and
// returns the stamped report.Report, logging stage boundaries to log.
func Run(log zerolog.Logger, path string, opts Options) (*report.Report, error) {
	log.Info().Str("file", path).Msg("reading automaton definition")

	parsed, err := ioformat.ReadFile(path)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("failed to read automaton definition")

		return nil, err
	}

	plant, table, err := ioformat.ToAutomaton(parsed)
	if err != nil {
		log.Error().Err(err).Str("file", path).Msg("failed to build plant automaton")

		return nil, err
	}
	log.Info().Int("states", plant.NumStates()).Int("alphabet", table.Size()).Msg("plant automaton built")

	rec := recognizer.Build(plant)
	log.Info().Int("compound_states", len(rec.Members())).Msg("fault recognizer built")
	logRecognizerStates(log, rec)

	obs := observer.Build(rec)
	log.Info().Int("macro_states", obs.NumStates()).Msg("observer built")
	logObserverStates(log, obs, rec)

	result := cycles.Analyze(obs, opts.Full)
	log.Info().Bool("diagnosable", result.Diagnosable).Int("cycles_reported", len(result.Cycles)).Msg("cycle analysis complete")

	rpt := report.New(path, result)

	if opts.ShowCycleGraphs {
		for _, cr := range result.Cycles {
			log.Info().Str("cycle", ioformat.RenderCycle(table, cr.Cycle.Vertices, cr.Cycle.Events)).
				Bool("indeterminate", cr.Indeterminate).
				Msg("cycle graph")
		}
	}

	return rpt, nil
}

// Verdict renders the final textual verdict line for the report per
// spec.md §6.
func Verdict(rpt *report.Report) string {
	return ioformat.Verdict(rpt.Diagnosable, len(rpt.Cycles) > 0)
}

func logRecognizerStates(log zerolog.Logger, rec *recognizer.Recognizer) {
	for _, id := range rec.Members() {
		cs, ok := rec.StateOf(id)
		if !ok {
			continue
		}
		log.Debug().
			Int("id", int(id)).
			Str("state", ioformat.CompoundState(cs.Plant, cs.Monitor)).
			Msg("recognizer state")
	}
}

func logObserverStates(log zerolog.Logger, obs *observer.Observer, rec *recognizer.Recognizer) {
	for y := 0; y < obs.NumStates(); y++ {
		id := observer.MacroID(y)
		members := obs.Members(id)
		label := diagnosis.Of(rec, members)
		log.Debug().
			Int("macro_id", y).
			Str("state", ioformat.MacroState(rec, members, label)).
			Msg("observer macro-state")
	}
}
