// Package report renders run results for the console and the evidence
// log. The text layout is fixed: identical totals and diagnostics always
// produce identical text, regardless of where the input files lived.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"sales-cost/internal/run"
)

// Text renders the fixed-layout run report. Input files appear by base
// name only. When diagnostics exist they are listed at the end, one per
// line, in emission order.
func Text(res run.Result) string {
	lines := []string{
		"=== SALES RESULTS ===",
		fmt.Sprintf("Price catalogue: %s", filepath.Base(res.CataloguePath)),
		fmt.Sprintf("Sales record:    %s", filepath.Base(res.SalesPath)),
		"",
		fmt.Sprintf("Processed rows:  %d", res.Totals.Processed),
		fmt.Sprintf("Ignored rows:    %d", res.Totals.Ignored),
		fmt.Sprintf("Unknown products ignored: %d", res.Totals.Unknown),
		"",
		fmt.Sprintf("TOTAL COST: %s", res.Totals.Total.StringFixed(2)),
		fmt.Sprintf("Elapsed time (s): %.6f", res.ElapsedSeconds),
	}
	if len(res.Diagnostics) > 0 {
		lines = append(lines, "", "Warnings:")
		for _, d := range res.Diagnostics {
			lines = append(lines, "- "+d.Message)
		}
	}
	return strings.Join(lines, "\n")
}

// ErrorText renders the minimal report for runs that never reached the
// pipeline, such as argument errors.
func ErrorText(msg string, elapsedSeconds float64) string {
	return fmt.Sprintf("Error: %s\nElapsed time (s): %.6f\n", msg, elapsedSeconds)
}

// jsonReport is the machine-readable rendering of a run.
type jsonReport struct {
	RunID           string   `json:"run_id"`
	PriceCatalogue  string   `json:"price_catalogue"`
	SalesRecord     string   `json:"sales_record"`
	ProcessedRows   int      `json:"processed_rows"`
	IgnoredRows     int      `json:"ignored_rows"`
	UnknownProducts int      `json:"unknown_products"`
	TotalCost       string   `json:"total_cost"`
	ElapsedSeconds  float64  `json:"elapsed_seconds"`
	Warnings        []string `json:"warnings,omitempty"`
}

// JSON renders the machine-readable report with two-space indentation.
// The total stays a fixed two-decimal string so consumers never see
// float rounding.
func JSON(res run.Result) string {
	out := jsonReport{
		RunID:           res.RunID.String(),
		PriceCatalogue:  filepath.Base(res.CataloguePath),
		SalesRecord:     filepath.Base(res.SalesPath),
		ProcessedRows:   res.Totals.Processed,
		IgnoredRows:     res.Totals.Ignored,
		UnknownProducts: res.Totals.Unknown,
		TotalCost:       res.Totals.Total.StringFixed(2),
		ElapsedSeconds:  res.ElapsedSeconds,
		Warnings:        res.Diagnostics.Messages(),
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
