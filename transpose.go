package cornerturn

import (
	"fmt"
	"unsafe"

	"github.com/cwbudde/cornerturn/internal/block"
	"github.com/cwbudde/cornerturn/internal/memory"
	"github.com/cwbudde/cornerturn/internal/partition"
	"github.com/cwbudde/cornerturn/internal/simd"
	"github.com/cwbudde/cornerturn/internal/transpose"
)

// Transposer performs out-of-place transposes with fixed options.
// A Transposer holds no per-call state and may be used concurrently.
type Transposer[T Element] interface {
	// Transpose writes the cols x rows transpose of the rows x cols
	// row-major src into dst: dst[c*rows+r] = src[r*cols+c].
	Transpose(dst, src []T, rows, cols int) error

	// Options returns the configuration the transposer was created with.
	Options() Options
}

type transposer[T Element] struct {
	opts Options
}

// NewTransposer validates opts for element type T and returns a Transposer.
func NewTransposer[T Element](opts Options) (Transposer[T], error) {
	if err := validateFor[T](opts); err != nil {
		return nil, err
	}

	return &transposer[T]{opts: opts}, nil
}

func (t *transposer[T]) Options() Options {
	return t.opts
}

func (t *transposer[T]) Transpose(dst, src []T, rows, cols int) error {
	if err := checkBuffers(dst, src, rows, cols, t.opts); err != nil {
		return err
	}

	run(dst, src, rows, cols, t.opts)

	return nil
}

// Transpose writes the cols x rows transpose of the rows x cols row-major src
// into dst using the strategy in opts. All preconditions are checked before
// any work starts; on error dst is untouched.
func Transpose[T Element](dst, src []T, rows, cols int, opts Options) error {
	if err := validateFor[T](opts); err != nil {
		return err
	}

	if err := checkBuffers(dst, src, rows, cols, opts); err != nil {
		return err
	}

	run(dst, src, rows, cols, opts)

	return nil
}

// TransposeFloat32 transposes a float32 matrix.
func TransposeFloat32(dst, src []float32, rows, cols int, opts Options) error {
	return Transpose(dst, src, rows, cols, opts)
}

// TransposeFloat64 transposes a float64 matrix.
func TransposeFloat64(dst, src []float64, rows, cols int, opts Options) error {
	return Transpose(dst, src, rows, cols, opts)
}

// TransposeComplex64 transposes a complex64 matrix. SIMD strategies move
// each element as one 8-byte lane.
func TransposeComplex64(dst, src []complex64, rows, cols int, opts Options) error {
	return Transpose(dst, src, rows, cols, opts)
}

// TransposeComplex128 transposes a complex128 matrix.
func TransposeComplex128(dst, src []complex128, rows, cols int, opts Options) error {
	return Transpose(dst, src, rows, cols, opts)
}

func checkBuffers[T Element](dst, src []T, rows, cols int, opts Options) error {
	if err := checkShape(rows, cols, opts); err != nil {
		return err
	}

	if dst == nil || src == nil {
		return ErrNilSlice
	}

	n := rows * cols
	if len(src) < n {
		return fmt.Errorf("%w: src has %d elements, need %d", ErrLengthMismatch, len(src), n)
	}

	if len(dst) < n {
		return fmt.Errorf("%w: dst has %d elements, need %d", ErrLengthMismatch, len(dst), n)
	}

	if memory.Overlaps(dst, n, src, n) {
		return ErrAliasing
	}

	if opts.Strategy.SIMD() {
		if !memory.IsAligned(src, memory.CacheLine) {
			return fmt.Errorf("%w: src", ErrMisaligned)
		}

		if !memory.IsAligned(dst, memory.CacheLine) {
			return fmt.Errorf("%w: dst", ErrMisaligned)
		}
	}

	return nil
}

// run dispatches a validated problem to its kernel.
func run[T Element](dst, src []T, rows, cols int, opts Options) {
	if opts.Strategy.SIMD() {
		runSIMD(lanes(dst, rows*cols), lanes(src, rows*cols), rows, cols, opts)
		return
	}

	allRows := partition.Range{End: rows}
	allCols := partition.Range{End: cols}

	switch opts.Strategy {
	case StrategyNaive:
		transpose.Naive(dst, src, rows, cols)

	case StrategyBlocked:
		transpose.Blocked(dst, src, rows, cols, allRows, allCols, opts.BlockRows, opts.BlockCols)

	case StrategyThreadsRow:
		transpose.Parallel(partition.Split(rows, opts.Threads), func(r partition.Range) {
			transpose.Rect(dst, src, rows, cols, block.Rect{RowMin: r.Start, RowMax: r.End, ColMax: cols})
		})

	case StrategyThreadsCol:
		transpose.Parallel(partition.Split(cols, opts.Threads), func(c partition.Range) {
			transpose.Rect(dst, src, rows, cols, block.Rect{RowMax: rows, ColMin: c.Start, ColMax: c.End})
		})

	case StrategyThreadsRowBlocked:
		transpose.Parallel(partition.Split(rows, opts.Threads), func(r partition.Range) {
			transpose.Blocked(dst, src, rows, cols, r, allCols, opts.BlockRows, opts.BlockCols)
		})

	case StrategyThreadsColBlocked:
		transpose.Parallel(partition.Split(cols, opts.Threads), func(c partition.Range) {
			transpose.Blocked(dst, src, rows, cols, allRows, c, opts.BlockRows, opts.BlockCols)
		})

	default:
		panic(fmt.Sprintf("cornerturn: unhandled strategy %v", opts.Strategy))
	}
}

func runSIMD(dst, src []float64, rows, cols int, opts Options) {
	allRows := partition.Range{End: rows}
	allCols := partition.Range{End: cols}

	switch opts.Strategy {
	case StrategySIMD:
		simd.Tiles(dst, src, rows, cols, allRows, allCols)

	case StrategyThreadsRowSIMD:
		transpose.Parallel(partition.SplitAligned(rows, opts.Threads, simd.Tile), func(r partition.Range) {
			simd.Tiles(dst, src, rows, cols, r, allCols)
		})

	case StrategyThreadsColSIMD:
		transpose.Parallel(partition.SplitAligned(cols, opts.Threads, simd.Tile), func(c partition.Range) {
			simd.Tiles(dst, src, rows, cols, allRows, c)
		})

	default:
		panic(fmt.Sprintf("cornerturn: unhandled SIMD strategy %v", opts.Strategy))
	}
}

// lanes views the first n elements of an 8-byte element slice as float64
// lanes. The kernel only moves bits, so complex64 pairs travel intact.
func lanes[T Element](s []T, n int) []float64 {
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(s))), n)
}
