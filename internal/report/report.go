// Package report defines the structured output of one diagnosability run
// and stamps it with a stable run identifier, so that a batch invocation
// of cmd/diagnose (one of this module's SPEC_FULL.md additions) can
// correlate log lines and printed reports back to the file they came from.
package report

import (
	"github.com/google/uuid"

	"github.com/katalvlaran/diagnoser/internal/cycles"
)

// Report is the full result of analyzing one automaton: the boolean
// verdict of spec.md §4.6 Step 5, the per-cycle reports (populated
// according to whether a full report or only the boolean was requested),
// and a run id for log correlation.
type Report struct {
	RunID       uuid.UUID
	Source      string
	Diagnosable bool
	Cycles      []cycles.CycleReport
}

// New stamps a fresh run id onto the result of cycles.Analyze for the
// given source description (typically a filename).
func New(source string, result *cycles.Result) *Report {
	return &Report{
		RunID:       uuid.New(),
		Source:      source,
		Diagnosable: result.Diagnosable,
		Cycles:      result.Cycles,
	}
}
