package cornerturn

import (
	"fmt"

	"github.com/cwbudde/cornerturn/internal/fftypes"
)

// Strategy selects the transpose implementation at run time.
type Strategy = fftypes.Strategy

// Available strategies.
const (
	// StrategyNaive copies element by element in one nested loop.
	StrategyNaive = fftypes.StrategyNaive
	// StrategyBlocked tiles the matrix with Options.BlockRows x BlockCols.
	StrategyBlocked = fftypes.StrategyBlocked
	// StrategyThreadsRow splits the source rows over Options.Threads goroutines.
	StrategyThreadsRow = fftypes.StrategyThreadsRow
	// StrategyThreadsCol splits the source columns over Options.Threads goroutines.
	StrategyThreadsCol = fftypes.StrategyThreadsCol
	// StrategyThreadsRowBlocked splits rows, then tiles inside each worker's rows.
	StrategyThreadsRowBlocked = fftypes.StrategyThreadsRowBlocked
	// StrategyThreadsColBlocked splits columns, then tiles inside each worker's columns.
	StrategyThreadsColBlocked = fftypes.StrategyThreadsColBlocked
	// StrategySIMD runs the 8x8 micro-kernel over the whole matrix.
	StrategySIMD = fftypes.StrategySIMD
	// StrategyThreadsRowSIMD splits rows on 8-row boundaries and runs the
	// micro-kernel per worker.
	StrategyThreadsRowSIMD = fftypes.StrategyThreadsRowSIMD
	// StrategyThreadsColSIMD splits columns on 8-column boundaries and runs
	// the micro-kernel per worker.
	StrategyThreadsColSIMD = fftypes.StrategyThreadsColSIMD
)

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return fftypes.Strategies()
}

// ParseStrategy returns the strategy with the given name, as printed by
// Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	s, ok := fftypes.ParseStrategy(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	return s, nil
}
