package soak

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"blockfall/internal/board"
	"blockfall/internal/sims/blockfall"
)

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Runs = 24
	opts.Ticks = 5
	opts.Workers = 4
	opts.BaseSeed = 10
	return opts
}

func TestRunChecksEveryBoard(t *testing.T) {
	calls := 0
	report, err := Run(context.Background(), smallOptions(), func() { calls++ })
	if err != nil {
		t.Fatal(err)
	}
	if calls != 24 || len(report.Results) != 24 {
		t.Fatalf("calls=%d results=%d, want 24", calls, len(report.Results))
	}
	if report.Summary.Violations != 0 {
		t.Fatalf("unexpected violations: %+v", report.Results)
	}
	if report.Summary.MaxSettled > 1 {
		t.Fatalf("boards should settle within one tick, max settled at %d", report.Summary.MaxSettled)
	}
	for i, res := range report.Results {
		if res.Seed != 10+int64(i) {
			t.Fatalf("results not sorted by seed: %d at %d", res.Seed, i)
		}
		if !res.Final.IsCompacted() {
			t.Fatalf("seed %d final board not compacted:\n%s", res.Seed, res.Final)
		}
	}
	if report.Width != 8 || report.Height != 10 {
		t.Fatalf("report board %dx%d", report.Width, report.Height)
	}
}

func TestRunDeterministicAcrossWorkerCounts(t *testing.T) {
	one := smallOptions()
	one.Workers = 1
	many := smallOptions()
	many.Workers = 8

	a, err := Run(context.Background(), one, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), many, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Results {
		ra, rb := a.Results[i], b.Results[i]
		if ra.Seed != rb.Seed || ra.Blocks != rb.Blocks || ra.Moved != rb.Moved || !ra.Final.Equal(rb.Final) {
			t.Fatalf("run %d differs between worker counts", i)
		}
	}
	if a.Summary != b.Summary {
		t.Fatalf("summaries differ: %+v vs %+v", a.Summary, b.Summary)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := Run(ctx, smallOptions(), nil)
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(report.Results) > 24 {
		t.Fatalf("too many results: %d", len(report.Results))
	}
}

func TestRunOneFullAndEmpty(t *testing.T) {
	cfg := blockfall.DefaultConfig()
	cfg.EmptyChance = 0
	full := runOne(cfg, 1, 3)
	if full.Blocks != 80 || full.Moved != 0 || full.SettledAt != 0 || full.Error != "" {
		t.Fatalf("full board: %+v", full)
	}

	cfg.EmptyChance = 1
	empty := runOne(cfg, 1, 3)
	if empty.Blocks != 0 || empty.Moved != 0 || empty.Error != "" {
		t.Fatalf("empty board: %+v", empty)
	}
}

func TestSummarize(t *testing.T) {
	b := board.New(2, 2)
	results := []RunResult{
		{Seed: 1, Blocks: 2, Moved: 1, SettledAt: 1, Final: b},
		{Seed: 2, Blocks: 4, Moved: 3, SettledAt: 0, Final: b},
		{Seed: 3, Blocks: 0, Moved: 0, Error: "boom", Final: b},
	}
	s := summarize(results, 4)
	if s.MeanBlocks != 2 || s.StdBlocks != 2 || s.MeanFill != 0.5 || s.MeanMoved != 4.0/3 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.MaxSettled != 1 || s.Violations != 1 || s.RunsChecked != 3 {
		t.Fatalf("unexpected summary %+v", s)
	}

	single := summarize(results[:1], 4)
	if single.StdBlocks != 0 {
		t.Fatalf("single run std = %v", single.StdBlocks)
	}
	if empty := summarize(nil, 4); empty != (Summary{}) {
		t.Fatalf("empty summary %+v", empty)
	}
}

func TestWriteTable(t *testing.T) {
	r := &Report{
		Width: 8, Height: 10, EmptyChance: 0.5, Ticks: 30,
		Summary: Summary{MeanBlocks: 40, StdBlocks: 4.5, MeanFill: 0.5, RunsChecked: 1200, Violations: 1},
		Results: []RunResult{{Seed: 3, Error: "tick 2: boom"}},
	}
	var buf bytes.Buffer
	if err := WriteTable(&buf, r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Blockfall Soak", "| Board", "8x10", "1,200", "50.0%", "seed 3: tick 2: boom"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	width := len(lines[0])
	for _, line := range lines[:len(lines)-1] {
		if len(line) != width {
			t.Fatalf("ragged table line %q (want width %d)", line, width)
		}
	}
}

func TestWriteYAML(t *testing.T) {
	report, err := Run(context.Background(), smallOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteYAML(&buf, report); err != nil {
		t.Fatal(err)
	}
	var decoded Report
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Summary != report.Summary || len(decoded.Results) != len(report.Results) {
		t.Fatalf("round trip mismatch: %+v", decoded.Summary)
	}
	if !strings.Contains(buf.String(), "mean_blocks:") {
		t.Fatalf("missing yaml key:\n%s", buf.String())
	}
}

func TestRunWithBar(t *testing.T) {
	opts := smallOptions()
	opts.Runs = 3
	report, err := RunWithBar(context.Background(), opts, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Results) != 3 {
		t.Fatalf("results = %d", len(report.Results))
	}
}
