package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/cwbudde/cornerturn"
	"github.com/cwbudde/cornerturn/provider"
)

const (
	providerGonum  = "gonum"
	providerRadix2 = "radix2"
)

func newProvider[T cornerturn.Complex](name string) (cornerturn.TransformProvider[T], error) {
	switch name {
	case providerGonum:
		return provider.NewGonum[T](), nil
	case providerRadix2:
		return provider.NewRadix2[T](), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want %s or %s)", name, providerGonum, providerRadix2)
	}
}

// complexTypes expands a case type to the complex types a transform runs on.
func complexTypes(c Case) ([]string, error) {
	switch c.Type {
	case "complex64", "complex128":
		return []string{c.Type}, nil
	case "all":
		return []string{"complex64", "complex128"}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want complex64, complex128 or all)", cornerturn.ErrUnsupportedType, c.Type)
	}
}

func newFFTCmd() *cobra.Command {
	var (
		f    runFlags
		prov string
	)

	cmd := &cobra.Command{
		Use:   "fft",
		Short: "Time the 1D FFT -> transpose -> 1D FFT corner turn",
		Example: `  cornerturn fft -r 1024 -c 1024 -s threads-col-simd -t 8 --type complex64 -i
  cornerturn fft -r 4 -c 6 --provider gonum`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFFT(cmd.OutOrStdout(), &f, prov)
		},
	}

	addCaseFlags(cmd, &f, "complex128")
	cmd.Flags().BoolVarP(&f.init, "init", "i", false, "Zero all intermediate matrices before the run (simulates buffer reuse)")
	cmd.Flags().StringVar(&prov, "provider", providerGonum, "1D transform provider: gonum or radix2")

	return cmd
}

func runFFT(out io.Writer, f *runFlags, prov string) error {
	cases, err := f.cases()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(f.seed, f.seed))

	for _, c := range cases {
		types, err := complexTypes(c)
		if err != nil {
			return err
		}

		for _, typ := range types {
			if typ == "complex64" {
				err = fftCase[complex64](out, rng, c, f, prov)
			} else {
				err = fftCase[complex128](out, rng, c, f, prov)
			}

			if err != nil {
				return fmt.Errorf("%s %dx%d: %w", typ, c.Rows, c.Cols, err)
			}
		}
	}

	return nil
}

func fftCase[T cornerturn.Complex](out io.Writer, rng *rand.Rand, c Case, f *runFlags, provName string) error {
	opts, err := c.Options()
	if err != nil {
		return err
	}

	prov, err := newProvider[T](provName)
	if err != nil {
		return err
	}

	p, err := cornerturn.NewPipeline(prov, c.Rows, c.Cols, cornerturn.PipelineOptions{
		Transpose:        opts,
		TransformThreads: c.Threads,
	})
	if err != nil {
		return err
	}
	defer p.Close()

	fmt.Fprintf(out, "# fft %s %dx%d %v provider=%s kernel=%v\n",
		cornerturn.TypeName[T](), c.Rows, c.Cols, opts, provName, cornerturn.KernelLevel())

	sw := newStopwatch(out)
	fillRandom(rng, p.Input())
	sw.lap("fill")

	for range c.Iters {
		if f.init {
			sw.reset()
			p.Reset()
			sw.lap("init")
		}

		sw.reset()

		if err := p.RowTransforms(); err != nil {
			return err
		}

		sw.lap("fft-1d-1")

		if err := p.Turn(); err != nil {
			return err
		}

		sw.lap("transpose")

		if err := p.ColumnTransforms(); err != nil {
			return err
		}

		sw.lap("fft-1d-2")
	}

	return nil
}

func newFFT2DCmd() *cobra.Command {
	var (
		f    runFlags
		prov string
	)

	cmd := &cobra.Command{
		Use:   "fft2d",
		Short: "Time a direct 2D FFT (row transforms, then strided column transforms)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFFT2D(cmd.OutOrStdout(), &f, prov)
		},
	}

	addCaseFlags(cmd, &f, "complex128")
	cmd.Flags().StringVar(&prov, "provider", providerGonum, "1D transform provider: gonum or radix2")

	return cmd
}

func runFFT2D(out io.Writer, f *runFlags, prov string) error {
	cases, err := f.cases()
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(f.seed, f.seed))

	for _, c := range cases {
		types, err := complexTypes(c)
		if err != nil {
			return err
		}

		for _, typ := range types {
			if typ == "complex64" {
				err = fft2DCase[complex64](out, rng, c, prov)
			} else {
				err = fft2DCase[complex128](out, rng, c, prov)
			}

			if err != nil {
				return fmt.Errorf("%s %dx%d: %w", typ, c.Rows, c.Cols, err)
			}
		}
	}

	return nil
}

func fft2DCase[T cornerturn.Complex](out io.Writer, rng *rand.Rand, c Case, provName string) error {
	prov, err := newProvider[T](provName)
	if err != nil {
		return err
	}

	s, err := cornerturn.NewSeparable(prov, c.Rows, c.Cols, c.Threads)
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintf(out, "# fft2d %s %dx%d threads=%d provider=%s\n",
		cornerturn.TypeName[T](), c.Rows, c.Cols, c.Threads, provName)

	sw := newStopwatch(out)

	for range c.Iters {
		sw.reset()
		fillRandom(rng, s.Data())
		sw.lap("fill")

		if err := s.Execute(); err != nil {
			return err
		}

		sw.lap("fft-2d")
	}

	return nil
}
