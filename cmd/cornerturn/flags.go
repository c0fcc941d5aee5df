package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

// runFlags holds the flags shared by all benchmark commands.
type runFlags struct {
	c Case

	config string
	print  bool
	verify bool
	init   bool
	seed   uint64
}

func addCaseFlags(cmd *cobra.Command, f *runFlags, defaultType string) {
	fl := cmd.Flags()
	fl.IntVarP(&f.c.Rows, "rows", "r", 0, "Matrix row count, >= 1")
	fl.IntVarP(&f.c.Cols, "cols", "c", 0, "Matrix column count, >= 1")
	fl.IntVarP(&f.c.BlockRows, "block-rows", "R", 0, "Rows per block (0 = no blocking in that dimension)")
	fl.IntVarP(&f.c.BlockCols, "block-cols", "C", 0, "Columns per block (0 = no blocking in that dimension)")
	fl.IntVarP(&f.c.Threads, "threads", "t", getEnvInt(envThreads, 1), "Number of goroutines, >= 1 [$"+envThreads+"]")
	fl.StringVarP(&f.c.Strategy, "strategy", "s", getEnvStr(envStrategy, "naive"), "Transpose strategy (see 'cornerturn strategies') [$"+envStrategy+"]")
	fl.StringVar(&f.c.Type, "type", defaultType, "Element type")
	fl.IntVar(&f.c.Iters, "iters", 1, "Repetitions of the timed stage")
	fl.Uint64Var(&f.seed, "seed", 1, "Random fill seed")
	fl.StringVar(&f.config, "config", "", "YAML file with a batch of cases (overrides matrix flags)")
}

// cases returns the batch from --config, or the single case from the flags.
func (f *runFlags) cases() ([]Case, error) {
	if f.config != "" {
		cfg, err := loadConfig(f.config)
		if err != nil {
			return nil, err
		}

		if cfg.Seed != 0 {
			f.seed = cfg.Seed
		}

		f.verify = f.verify || cfg.Verify

		return cfg.Cases, nil
	}

	c := f.c
	if err := c.normalize(); err != nil {
		return nil, err
	}

	return []Case{c}, nil
}

// stopwatch prints "<stage> (ms): <elapsed>" lines.
type stopwatch struct {
	out   io.Writer
	start time.Time
}

func newStopwatch(out io.Writer) *stopwatch {
	return &stopwatch{out: out, start: time.Now()}
}

func (s *stopwatch) reset() {
	s.start = time.Now()
}

// lap prints the time since the last reset or lap and restarts the clock.
func (s *stopwatch) lap(stage string) time.Duration {
	d := time.Since(s.start)
	fmt.Fprintf(s.out, "%s (ms): %f\n", stage, float64(d.Nanoseconds())/1e6)
	s.start = time.Now()

	return d
}
