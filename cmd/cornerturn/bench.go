package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/cornerturn"
)

// defaultBenchBlock is the tile edge tried for blocked strategies when no
// block size is given.
const defaultBenchBlock = 32

type benchResult struct {
	opts    cornerturn.Options
	nsPerOp float64
}

func newBenchCmd() *cobra.Command {
	var (
		f          runFlags
		wisdomFile string
		warmup     int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every applicable strategy for a shape",
		Long: `bench runs every strategy that accepts the shape and element type,
prints them fastest first, and optionally records the fastest in a wisdom
file. The library never reads wisdom on its own.`,
		Example: `  cornerturn bench -r 2048 -c 2048 -t 8 --type all --iters 20 --wisdom cornerturn.wisdom`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd.OutOrStdout(), &f, warmup, wisdomFile)
		},
	}

	addCaseFlags(cmd, &f, "float64")
	cmd.Flags().IntVar(&warmup, "warmup", 2, "Untimed repetitions per strategy")
	cmd.Flags().StringVar(&wisdomFile, "wisdom", "", "Record the fastest strategy in this wisdom file")

	return cmd
}

func runBench(out io.Writer, f *runFlags, warmup int, wisdomFile string) error {
	cases, err := f.cases()
	if err != nil {
		return err
	}

	wisdom := cornerturn.NewWisdom()

	if wisdomFile != "" {
		err := cornerturn.ImportWisdomTo(wisdomFile, wisdom)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	rng := rand.New(rand.NewPCG(f.seed, f.seed))

	fmt.Fprintf(out, "iters=%d warmup=%d kernel=%v\n", cases[0].Iters, warmup, cornerturn.KernelLevel())
	fmt.Fprintf(out, "%10s  %10s  %-40s  %14s\n", "shape", "type", "strategy", "ns/op")

	for _, c := range cases {
		types, err := c.types()
		if err != nil {
			return err
		}

		for _, typ := range types {
			switch typ {
			case "float32":
				err = benchCase[float32](out, rng, c, warmup, wisdom)
			case "float64":
				err = benchCase[float64](out, rng, c, warmup, wisdom)
			case "complex64":
				err = benchCase[complex64](out, rng, c, warmup, wisdom)
			case "complex128":
				err = benchCase[complex128](out, rng, c, warmup, wisdom)
			}

			if err != nil {
				return fmt.Errorf("%s %dx%d: %w", typ, c.Rows, c.Cols, err)
			}
		}
	}

	if wisdomFile != "" {
		if err := cornerturn.ExportWisdomTo(wisdomFile, wisdom); err != nil {
			return err
		}

		fmt.Fprintf(out, "wrote %d wisdom entries to %s\n", wisdom.Len(), wisdomFile)
	}

	return nil
}

// candidates lists the configurations bench tries for a case.
func candidates(c Case) []cornerturn.Options {
	blockRows, blockCols := c.BlockRows, c.BlockCols
	if blockRows == 0 && blockCols == 0 {
		blockRows, blockCols = defaultBenchBlock, defaultBenchBlock
	}

	opts := make([]cornerturn.Options, 0, len(cornerturn.Strategies()))
	for _, s := range cornerturn.Strategies() {
		o := cornerturn.Options{Strategy: s, Threads: c.Threads}
		if s.Blocked() {
			o.BlockRows, o.BlockCols = blockRows, blockCols
		}

		opts = append(opts, o)
	}

	return opts
}

func benchCase[T cornerturn.Element](out io.Writer, rng *rand.Rand, c Case, warmup int, wisdom *cornerturn.Wisdom) error {
	n := c.Rows * c.Cols
	a := cornerturn.AllocAligned[T](n)
	b := cornerturn.AllocAligned[T](n)
	fillRandom(rng, a)

	var results []benchResult

	for _, opts := range candidates(c) {
		tr, err := cornerturn.NewTransposer[T](opts)
		if err != nil {
			continue
		}

		// Shape-dependent rejections (SIMD divisibility) surface here.
		if err := tr.Transpose(b, a, c.Rows, c.Cols); err != nil {
			continue
		}

		for range warmup {
			_ = tr.Transpose(b, a, c.Rows, c.Cols)
		}

		start := time.Now()
		for range c.Iters {
			_ = tr.Transpose(b, a, c.Rows, c.Cols)
		}

		elapsed := time.Since(start)
		results = append(results, benchResult{opts: opts, nsPerOp: float64(elapsed.Nanoseconds()) / float64(c.Iters)})
	}

	if len(results) == 0 {
		return errors.New("no strategy accepts this case")
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].nsPerOp < results[j].nsPerOp
	})

	shape := fmt.Sprintf("%dx%d", c.Rows, c.Cols)
	for _, res := range results {
		fmt.Fprintf(out, "%10s  %10s  %-40s  %14.1f\n", shape, cornerturn.TypeName[T](), res.opts, res.nsPerOp)
	}

	cornerturn.RecordWisdom(wisdom, cornerturn.WisdomKeyFor[T](c.Rows, c.Cols, c.Threads), results[0].opts)

	return nil
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List transpose strategies and the active SIMD kernel",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, s := range cornerturn.Strategies() {
				fmt.Fprintln(out, s)
			}

			fmt.Fprintf(out, "kernel: %v\n", cornerturn.KernelLevel())
		},
	}
}
