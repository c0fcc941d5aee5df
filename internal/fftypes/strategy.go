package fftypes

// Strategy selects the transpose implementation.
type Strategy uint32

const (
	StrategyNaive Strategy = iota
	StrategyBlocked
	StrategyThreadsRow
	StrategyThreadsCol
	StrategyThreadsRowBlocked
	StrategyThreadsColBlocked
	StrategySIMD
	StrategyThreadsRowSIMD
	StrategyThreadsColSIMD

	numStrategies
)

var strategyNames = [numStrategies]string{
	StrategyNaive:             "naive",
	StrategyBlocked:           "blocked",
	StrategyThreadsRow:        "threads-row",
	StrategyThreadsCol:        "threads-col",
	StrategyThreadsRowBlocked: "threads-row-blocked",
	StrategyThreadsColBlocked: "threads-col-blocked",
	StrategySIMD:              "simd",
	StrategyThreadsRowSIMD:    "threads-row-simd",
	StrategyThreadsColSIMD:    "threads-col-simd",
}

// String returns the name used on the command line and in wisdom files.
func (s Strategy) String() string {
	if s < numStrategies {
		return strategyNames[s]
	}

	return "unknown"
}

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	return s < numStrategies
}

// Threaded reports whether the strategy fans work out to goroutines.
func (s Strategy) Threaded() bool {
	switch s {
	case StrategyThreadsRow, StrategyThreadsCol,
		StrategyThreadsRowBlocked, StrategyThreadsColBlocked,
		StrategyThreadsRowSIMD, StrategyThreadsColSIMD:
		return true
	default:
		return false
	}
}

// Blocked reports whether the strategy tiles with caller-supplied block sizes.
func (s Strategy) Blocked() bool {
	return s == StrategyBlocked || s == StrategyThreadsRowBlocked || s == StrategyThreadsColBlocked
}

// SIMD reports whether the strategy uses the 8x8 micro-kernel.
func (s Strategy) SIMD() bool {
	return s == StrategySIMD || s == StrategyThreadsRowSIMD || s == StrategyThreadsColSIMD
}

// ColumnPartitioned reports whether a threaded strategy splits columns
// instead of rows.
func (s Strategy) ColumnPartitioned() bool {
	return s == StrategyThreadsCol || s == StrategyThreadsColBlocked || s == StrategyThreadsColSIMD
}

// Strategies returns all known strategies in declaration order.
func Strategies() []Strategy {
	out := make([]Strategy, 0, numStrategies)
	for s := range numStrategies {
		out = append(out, s)
	}

	return out
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, bool) {
	for s, n := range strategyNames {
		if n == name {
			return Strategy(s), true
		}
	}

	return 0, false
}

// SIMDLevel describes the instruction set the 8x8 micro-kernel runs with.
type SIMDLevel uint8

const (
	SIMDNone   SIMDLevel = iota // Pure Go lane emulation
	SIMDAVX512                  // Requires AVX-512F
)

// String returns a human-readable name for the SIMD level.
func (s SIMDLevel) String() string {
	switch s {
	case SIMDNone:
		return "generic"
	case SIMDAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}
