package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"

	"github.com/fatih/color"

	"blockfall/internal/config"
	"blockfall/internal/logging"
	"blockfall/internal/render"
	"blockfall/internal/sims/blockfall"
	"blockfall/internal/soak"
)

func main() {
	fs := flag.CommandLine
	runs := fs.Int("runs", 1000, "number of seeded boards to check")
	ticks := fs.Int("ticks", 30, "ticks to simulate per board")
	workers := fs.Int("workers", runtime.NumCPU(), "parallel board evaluations")
	format := fs.String("format", "table", "report format: table or yaml")
	dump := fs.Bool("dump", false, "print the first board after its final tick")
	quiet := fs.Bool("quiet", false, "hide the progress bar")

	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.LogMode())

	opts := soak.Options{
		Config: blockfall.Config{
			Width:       cfg.Width,
			Height:      cfg.Height,
			EmptyChance: cfg.EmptyChance,
			Seed:        cfg.Seed,
		},
		Runs:     *runs,
		Ticks:    *ticks,
		Workers:  *workers,
		BaseSeed: cfg.Seed,
	}
	logger.Info("soak starting", "runs", opts.Runs, "ticks", opts.Ticks, "workers", opts.Workers, "seed", opts.BaseSeed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var report *soak.Report
	if *quiet {
		report, err = soak.Run(ctx, opts, nil)
	} else {
		report, err = soak.RunWithBar(ctx, opts, os.Stderr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("soak failed", "err", err)
		os.Exit(1)
	}
	if errors.Is(err, context.Canceled) {
		logger.Warn("soak interrupted", "completed", len(report.Results))
	}

	switch *format {
	case "yaml":
		err = soak.WriteYAML(os.Stdout, report)
	default:
		err = soak.WriteTable(os.Stdout, report)
	}
	if err != nil {
		logger.Error("write report", "err", err)
		os.Exit(1)
	}

	if *dump && len(report.Results) > 0 {
		first := report.Results[0]
		fmt.Printf("\nseed %d after %d ticks:\n", first.Seed, report.Ticks)
		if err := render.WriteANSI(os.Stdout, first.Final); err != nil {
			logger.Error("dump board", "err", err)
		}
	}

	if report.Summary.Violations > 0 {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "FAIL: %d of %d runs violated board invariants\n", report.Summary.Violations, report.Summary.RunsChecked)
		os.Exit(1)
	}
	color.New(color.FgGreen, color.Bold).Fprintf(os.Stderr, "PASS: %d runs\n", report.Summary.RunsChecked)
}
