// Package soak ticks batches of seeded boards headlessly and checks every
// compaction against the board invariants.
package soak

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/stat"

	"blockfall/internal/board"
	"blockfall/internal/sims/blockfall"
	"blockfall/pkg/core"
)

// Options configures a batch.
type Options struct {
	Config  blockfall.Config
	Runs    int
	Ticks   int
	Workers int
	// Run i is seeded with BaseSeed+i.
	BaseSeed int64
}

// DefaultOptions returns a small batch over the default board.
func DefaultOptions() Options {
	cfg := blockfall.DefaultConfig()
	return Options{
		Config:   cfg,
		Runs:     100,
		Ticks:    30,
		Workers:  runtime.NumCPU(),
		BaseSeed: cfg.Seed,
	}
}

func (o Options) normalized() Options {
	if o.Runs < 0 {
		o.Runs = 0
	}
	if o.Ticks < 1 {
		o.Ticks = 1
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Workers > o.Runs && o.Runs > 0 {
		o.Workers = o.Runs
	}
	return o
}

// RunResult describes one seeded board.
type RunResult struct {
	Seed int64 `yaml:"seed"`
	// Blocks is the number of blocks drawn at initialisation.
	Blocks int `yaml:"blocks"`
	// Moved counts cells changed by the first tick.
	Moved int `yaml:"moved"`
	// SettledAt is the last tick that changed the board, 0 if none did.
	SettledAt int    `yaml:"settled_at"`
	Error     string `yaml:"error,omitempty"`

	Final *board.Board `yaml:"-"`
}

// Summary aggregates a batch.
type Summary struct {
	MeanBlocks  float64 `yaml:"mean_blocks"`
	StdBlocks   float64 `yaml:"std_blocks"`
	MeanFill    float64 `yaml:"mean_fill"`
	MeanMoved   float64 `yaml:"mean_moved"`
	MaxSettled  int     `yaml:"max_settled_at"`
	Violations  int     `yaml:"violations"`
	RunsChecked int     `yaml:"runs_checked"`
}

// Report is the outcome of a batch.
type Report struct {
	Width       int         `yaml:"width"`
	Height      int         `yaml:"height"`
	EmptyChance float64     `yaml:"empty_chance"`
	Ticks       int         `yaml:"ticks"`
	Summary     Summary     `yaml:"summary"`
	Results     []RunResult `yaml:"results"`
}

// Run executes the batch on a worker pool. done, when non-nil, is called
// once per finished run. If ctx is cancelled the partial report is returned
// together with ctx.Err().
func Run(ctx context.Context, opts Options, done func()) (*Report, error) {
	opts = opts.normalized()

	jobs := make(chan int64)
	results := make(chan RunResult)
	var wg sync.WaitGroup

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- runOne(opts.Config, seed, opts.Ticks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for i := 0; i < opts.Runs; i++ {
			select {
			case jobs <- opts.BaseSeed + int64(i):
			case <-ctx.Done():
				return
			}
		}
	}()

	var all []RunResult
	for res := range results {
		all = append(all, res)
		if done != nil {
			done()
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Seed < all[j].Seed })

	w, h := opts.Config.Width, opts.Config.Height
	if len(all) > 0 && all[0].Final != nil {
		w, h = all[0].Final.Width(), all[0].Final.Height()
	}
	report := &Report{
		Width:       w,
		Height:      h,
		EmptyChance: opts.Config.EmptyChance,
		Ticks:       opts.Ticks,
		Results:     all,
		Summary:     summarize(all, w*h),
	}
	return report, ctx.Err()
}

// RunWithBar is Run with a progress bar written to w.
func RunWithBar(ctx context.Context, opts Options, w io.Writer) (*Report, error) {
	bar := pb.New(opts.Runs).SetWriter(w).Start()
	defer bar.Finish()
	return Run(ctx, opts, func() { bar.Increment() })
}

func runOne(cfg blockfall.Config, seed int64, ticks int) RunResult {
	b := blockfall.Initialize(cfg, core.NewRNG(seed))
	res := RunResult{Seed: seed}
	for x := 0; x < b.Width(); x++ {
		res.Blocks += b.Occupied(x)
	}

	for tick := 1; tick <= ticks; tick++ {
		before := b.Clone()
		blockfall.Tick(b)
		if err := board.Verify(before, b); err != nil {
			res.Error = fmt.Sprintf("tick %d: %v", tick, err)
			break
		}
		changed := changedCells(before, b)
		if tick == 1 {
			res.Moved = changed
		}
		if changed == 0 {
			continue
		}
		res.SettledAt = tick
		if tick > 1 {
			res.Error = fmt.Sprintf("tick %d: settled board changed %d cells", tick, changed)
			break
		}
	}
	res.Final = b
	return res
}

func changedCells(a, b *board.Board) int {
	n := 0
	for x := 0; x < a.Width(); x++ {
		for y := 0; y < a.Height(); y++ {
			if a.At(x, y) != b.At(x, y) {
				n++
			}
		}
	}
	return n
}

func summarize(all []RunResult, cells int) Summary {
	s := Summary{RunsChecked: len(all)}
	if len(all) == 0 {
		return s
	}
	blocks := make([]float64, len(all))
	moved := make([]float64, len(all))
	for i, r := range all {
		blocks[i] = float64(r.Blocks)
		moved[i] = float64(r.Moved)
		if r.SettledAt > s.MaxSettled {
			s.MaxSettled = r.SettledAt
		}
		if r.Error != "" {
			s.Violations++
		}
	}
	s.MeanBlocks, s.StdBlocks = stat.MeanStdDev(blocks, nil)
	if len(all) == 1 {
		s.StdBlocks = 0
	}
	s.MeanMoved = stat.Mean(moved, nil)
	if cells > 0 {
		s.MeanFill = s.MeanBlocks / float64(cells)
	}
	return s
}
