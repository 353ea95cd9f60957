// salescost - total cost computation for recorded sales
//
// Usage:
//   salescost priceCatalogue.json salesRecord.json
//   salescost --format json --results /var/log/sales.txt priceCatalogue.json salesRecord.json
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"sales-cost/internal/config"
	"sales-cost/internal/evidence"
	"sales-cost/internal/report"
	"sales-cost/internal/run"
)

// Exit codes for scripted callers.
const (
	ExitSuccess   = 0
	ExitLoadError = 1
	ExitArgError  = 2
)

const usageLine = "Usage: salescost priceCatalogue.json salesRecord.json"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitLoadError)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "salescost",
		Usage:           "Compute the total cost of recorded sales against a price catalogue",
		ArgsUsage:       "priceCatalogue.json salesRecord.json",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"SALESCOST_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "results",
				Usage:   "Evidence log path (default: SalesResults.txt next to the binary)",
				EnvVars: []string{"SALESCOST_RESULTS"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"SALESCOST_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "format",
				Usage:   "Console output format (text, json)",
				EnvVars: []string{"SALESCOST_FORMAT"},
			},
		},
		Action: runCompute,
	}
}

func runCompute(c *cli.Context) error {
	start := time.Now()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), ExitLoadError)
	}
	cfg = cfg.Merge(config.Config{
		ResultsFile: c.String("results"),
		LogLevel:    c.String("log-level"),
		Format:      c.String("format"),
	})
	if err := cfg.Validate(); err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), ExitLoadError)
	}
	setupLogging(cfg.LogLevel)

	writer := evidence.NewWriter(cfg.ResultsFile)

	if c.NArg() != 2 {
		out := report.ErrorText(usageLine, time.Since(start).Seconds())
		fmt.Println(out)
		appendEvidence(writer, out)
		return cli.Exit("", ExitArgError)
	}

	res := run.Execute(c.Args().Get(0), c.Args().Get(1), start)
	emit(res, cfg, writer)
	if res.Fatal {
		return cli.Exit("", ExitLoadError)
	}
	return nil
}

// emit prints the report, persists the evidence block, and echoes the
// diagnostics. Order is fixed: stdout first, then the evidence log, then
// the stderr warnings. The evidence log always receives the text form.
func emit(res run.Result, cfg config.Config, w *evidence.Writer) {
	text := report.Text(res)

	if cfg.Format == config.FormatJSON {
		fmt.Println(report.JSON(res))
	} else {
		fmt.Println(text)
	}

	appendEvidence(w, text)

	for _, d := range res.Diagnostics {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", d.Message)
	}
}

// appendEvidence persists one run block. A failing evidence log must not
// change the run outcome, so the error is reported and swallowed.
func appendEvidence(w *evidence.Writer, text string) {
	if err := w.Append(text); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not append results log: %v\n", err)
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
