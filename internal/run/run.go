// Package run wires the pipeline stages into one linear execution: load
// both inputs, build the price book, normalize the sales rows, aggregate.
// Diagnostics from every stage accumulate in emission order on the result.
package run

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"sales-cost/internal/catalog"
	"sales-cost/internal/compute"
	"sales-cost/internal/jsonio"
	"sales-cost/internal/sales"
	"sales-cost/pkg/diag"
)

// Result is everything a finished run produces. Fatal marks runs where an
// input could not be loaded or had the wrong top-level shape; those still
// carry a zero-total report and their diagnostics.
type Result struct {
	RunID          uuid.UUID
	CataloguePath  string
	SalesPath      string
	Totals         compute.Totals
	ElapsedSeconds float64
	Diagnostics    diag.List
	Fatal          bool
}

// Execute runs the whole computation over one catalogue file and one sales
// file. start anchors the elapsed-time measurement so argument parsing and
// setup count toward it.
func Execute(cataloguePath, salesPath string, start time.Time) Result {
	runID := uuid.New()
	logger := log.With().Str("run_id", runID.String()).Logger()

	var diags diag.List

	logger.Debug().Str("file", cataloguePath).Msg("loading price catalogue")
	catDoc, catErr := jsonio.LoadFile(cataloguePath)
	if catErr != nil {
		diags.Fatalf(diag.StageInput, 0, "%s", catErr)
	}
	logger.Debug().Str("file", salesPath).Msg("loading sales record")
	salesDoc, salesErr := jsonio.LoadFile(salesPath)
	if salesErr != nil {
		diags.Fatalf(diag.StageInput, 0, "%s", salesErr)
	}
	if catErr != nil || salesErr != nil {
		logger.Info().Int("diagnostics", len(diags)).Msg("input load failed")
		return fatal(runID, cataloguePath, salesPath, start, diags)
	}

	book, catDiags, err := catalog.Build(catDoc)
	diags = append(diags, catDiags...)
	if err != nil {
		logger.Info().Msg("catalogue has wrong top-level shape")
		return fatal(runID, cataloguePath, salesPath, start, diags)
	}
	logger.Info().Int("products", len(book)).Msg("price book built")

	rows, salesDiags, err := sales.Normalize(salesDoc)
	diags = append(diags, salesDiags...)
	if err != nil {
		logger.Info().Msg("sales record has wrong top-level shape")
		return fatal(runID, cataloguePath, salesPath, start, diags)
	}
	logger.Info().Int("rows", len(rows)).Msg("sales rows normalized")

	totals, rowDiags := compute.Aggregate(book, rows)
	diags = append(diags, rowDiags...)
	for _, d := range rowDiags {
		logger.Debug().
			Str("stage", string(d.Stage)).
			Int("row", d.Row).
			Msg(d.Message)
	}
	logger.Info().
		Int("processed", totals.Processed).
		Int("ignored", totals.Ignored).
		Int("unknown", totals.Unknown).
		Str("total", totals.Total.StringFixed(2)).
		Msg("aggregation complete")

	return Result{
		RunID:          runID,
		CataloguePath:  cataloguePath,
		SalesPath:      salesPath,
		Totals:         totals,
		ElapsedSeconds: time.Since(start).Seconds(),
		Diagnostics:    diags,
	}
}

// fatal builds the zero-total result for runs that could not compute.
func fatal(runID uuid.UUID, cataloguePath, salesPath string, start time.Time, diags diag.List) Result {
	return Result{
		RunID:          runID,
		CataloguePath:  cataloguePath,
		SalesPath:      salesPath,
		Totals:         compute.Totals{Total: decimal.Zero},
		ElapsedSeconds: time.Since(start).Seconds(),
		Diagnostics:    diags,
		Fatal:          true,
	}
}
