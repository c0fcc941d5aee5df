package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/cwbudde/cornerturn"
)

const (
	selftestRows = 2
	selftestCols = 3
)

func newSelftestCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Transpose a small complex matrix and check the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelftest(cmd.OutOrStdout(), seed)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random fill seed")

	return cmd
}

func runSelftest(out io.Writer, seed uint64) error {
	fmt.Fprintf(out, "Testing transpose of %dx%d matrix\n", selftestRows, selftestCols)

	a := make([]complex128, selftestRows*selftestCols)
	b := make([]complex128, selftestRows*selftestCols)
	fillRandom(rand.New(rand.NewPCG(seed, seed)), a)

	fmt.Fprintln(out, "In:")
	printMatrix(out, a, selftestRows, selftestCols)

	err := cornerturn.TransposeComplex128(b, a, selftestRows, selftestCols, cornerturn.Options{})
	if err == nil {
		fmt.Fprintln(out, "Out:")
		printMatrix(out, b, selftestCols, selftestRows)
	}

	if err != nil || !isTranspose(a, b, selftestRows, selftestCols) {
		fmt.Fprintln(out, "Failed")

		if err == nil {
			err = errVerifyFailed
		}

		return err
	}

	fmt.Fprintln(out, "Success")

	return nil
}
