// Package diag provides severity-aware diagnostics for input and row
// level problems. Diagnostics are collected in order and echoed to the
// operator after the run report; they never abort processing on their own.
package diag

import "fmt"

// Severity indicates diagnostic impact level.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Stage identifies the pipeline stage that raised a diagnostic.
type Stage string

const (
	StageInput     Stage = "input"
	StageCatalogue Stage = "catalogue"
	StageSales     Stage = "sales"
	StageRow       Stage = "row"
)

// Diagnostic is a structured record of one recoverable or fatal problem.
// Message carries the operator-facing text verbatim; Stage and Row exist
// for structured logging and tests.
type Diagnostic struct {
	Stage    Stage    `json:"stage"`
	Severity Severity `json:"severity"`
	Row      int      `json:"row,omitempty"`
	Message  string   `json:"message"`
}

func (d Diagnostic) String() string {
	return d.Message
}

// List is an ordered collection of diagnostics. Append order is emission
// order and is preserved through the whole run.
type List []Diagnostic

// Warnf appends a warning-severity diagnostic. row is the 1-based index
// of the offending row, or 0 for dataset-level diagnostics.
func (l *List) Warnf(stage Stage, row int, format string, args ...any) {
	*l = append(*l, Diagnostic{
		Stage:    stage,
		Severity: SeverityWarning,
		Row:      row,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Fatalf appends a fatal-severity diagnostic. Fatal diagnostics mark runs
// that cannot produce a meaningful total.
func (l *List) Fatalf(stage Stage, row int, format string, args ...any) {
	*l = append(*l, Diagnostic{
		Stage:    stage,
		Severity: SeverityFatal,
		Row:      row,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Messages returns the diagnostic texts in emission order.
func (l List) Messages() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.Message
	}
	return out
}
