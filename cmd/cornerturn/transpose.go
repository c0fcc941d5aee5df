package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/cwbudde/cornerturn"
)

var errVerifyFailed = errors.New("verify: output is not the transpose of the input")

func newTransposeCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "transpose",
		Short: "Time an out-of-place matrix transpose",
		Example: `  cornerturn transpose -r 4096 -c 4096 -s threads-row-blocked -t 8 -R 64 -C 64 -v
  cornerturn transpose -r 3 -c 5 --type all -p`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTranspose(cmd.OutOrStdout(), &f)
		},
	}

	addCaseFlags(cmd, &f, "float64")
	cmd.Flags().BoolVarP(&f.print, "print", "p", false, "Print the input and output matrices")
	cmd.Flags().BoolVarP(&f.verify, "verify", "v", false, "Verify the output")

	return cmd
}

func runTranspose(out io.Writer, f *runFlags) error {
	cases, err := f.cases()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(f.seed, f.seed))

	for _, c := range cases {
		types, err := c.types()
		if err != nil {
			return err
		}

		for _, typ := range types {
			switch typ {
			case "float32":
				err = transposeCase[float32](out, rng, c, f)
			case "float64":
				err = transposeCase[float64](out, rng, c, f)
			case "complex64":
				err = transposeCase[complex64](out, rng, c, f)
			case "complex128":
				err = transposeCase[complex128](out, rng, c, f)
			}

			// A type sweep keeps going past types the strategy cannot move.
			if errors.Is(err, cornerturn.ErrUnsupportedType) && len(types) > 1 {
				fmt.Fprintf(out, "# skip transpose %s %dx%d %s: %v\n", typ, c.Rows, c.Cols, c.Strategy, err)
				continue
			}

			if err != nil {
				return fmt.Errorf("%s %dx%d: %w", typ, c.Rows, c.Cols, err)
			}
		}
	}

	return nil
}

func transposeCase[T cornerturn.Element](out io.Writer, rng *rand.Rand, c Case, f *runFlags) error {
	opts, err := c.Options()
	if err != nil {
		return err
	}

	tr, err := cornerturn.NewTransposer[T](opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# transpose %s %dx%d %v kernel=%v\n", cornerturn.TypeName[T](), c.Rows, c.Cols, opts, cornerturn.KernelLevel())

	n := c.Rows * c.Cols
	a := cornerturn.AllocAligned[T](n)
	b := cornerturn.AllocAligned[T](n)

	sw := newStopwatch(out)
	fillRandom(rng, a)
	sw.lap("fill")

	if f.print {
		fmt.Fprintln(out, "In:")
		printMatrix(out, a, c.Rows, c.Cols)
	}

	for range c.Iters {
		sw.reset()

		if err := tr.Transpose(b, a, c.Rows, c.Cols); err != nil {
			return err
		}

		sw.lap("transpose")
	}

	if f.print {
		fmt.Fprintln(out, "Out:")
		printMatrix(out, b, c.Cols, c.Rows)
	}

	if f.verify {
		sw.reset()
		ok := isTranspose(a, b, c.Rows, c.Cols)
		sw.lap("verify")

		if !ok {
			return errVerifyFailed
		}
	}

	return nil
}
