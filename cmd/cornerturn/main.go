// Package main provides the cornerturn benchmark CLI.
package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// Environment variables read as flag defaults.
const (
	envThreads  = "CORNERTURN_THREADS"
	envStrategy = "CORNERTURN_STRATEGY"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cornerturn",
		Short: "Matrix transpose and FFT corner-turn benchmarks",
		Long: `cornerturn times out-of-place matrix transposes and the
"1D FFT -> transpose -> 1D FFT" corner turn.

Every run prints one "<stage> (ms): <elapsed>" line per timed stage.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newTransposeCmd(),
		newFFTCmd(),
		newFFT2DCmd(),
		newSelftestCmd(),
		newBenchCmd(),
		newStrategiesCmd(),
	)

	return rootCmd
}

// getEnvStr returns environment variable value or default
func getEnvStr(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

// getEnvInt returns environment variable as int or default
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
	}

	return defaultVal
}
