package cornerturn

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/cwbudde/cornerturn/internal/memory"
	"github.com/cwbudde/cornerturn/internal/simd"
)

// Options configures a transpose. The zero value selects StrategyNaive.
type Options struct {
	// Strategy selects the implementation.
	Strategy Strategy

	// BlockRows and BlockCols are the tile dimensions of blocked strategies.
	// Zero, or a value at least the matrix dimension, means one block
	// spanning the whole dimension. Ignored by other strategies.
	BlockRows int
	BlockCols int

	// Threads is the number of goroutines of threaded strategies.
	// Ignored by single-threaded strategies.
	Threads int
}

// String formats the options for logs and benchmark tables.
func (o Options) String() string {
	s := o.Strategy.String()

	if o.Strategy.Blocked() {
		s += fmt.Sprintf(" block=%dx%d", o.BlockRows, o.BlockCols)
	}

	if o.Strategy.Threaded() {
		s += fmt.Sprintf(" threads=%d", o.Threads)
	}

	return s
}

// Validate checks the options independently of any matrix.
func (o Options) Validate() error {
	if !o.Strategy.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, uint32(o.Strategy))
	}

	if o.Strategy.Threaded() && o.Threads < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidThreads, o.Threads)
	}

	if o.BlockRows < 0 || o.BlockCols < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBlockSize, o.BlockRows, o.BlockCols)
	}

	return nil
}

// validateFor adds the element type restriction of SIMD strategies.
func validateFor[T Element](o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.Strategy.SIMD() {
		var zero T
		if unsafe.Sizeof(zero) != 8 {
			return fmt.Errorf("%w: %s needs 8-byte elements, got %s", ErrUnsupportedType, o.Strategy, TypeName[T]())
		}
	}

	return nil
}

// checkShape validates a rows x cols problem against the options.
func checkShape(rows, cols int, o Options) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	if rows > math.MaxInt/cols {
		return fmt.Errorf("%w: %dx%d overflows int", ErrInvalidDimensions, rows, cols)
	}

	if o.Strategy.SIMD() && (rows%simd.Tile != 0 || cols%simd.Tile != 0) {
		return fmt.Errorf("%w: %dx%d with %dx%d tiles", ErrNotDivisible, rows, cols, simd.Tile, simd.Tile)
	}

	return nil
}

// checkAlloc validates a rows x cols shape whose buffers the caller will
// allocate with AllocAligned.
func checkAlloc[T Element](rows, cols int, o Options) error {
	if err := checkShape(rows, cols, o); err != nil {
		return err
	}

	if rows*cols > memory.MaxElements[T]() {
		return fmt.Errorf("%w: %dx%d %s exceeds addressable memory", ErrInvalidDimensions, rows, cols, TypeName[T]())
	}

	return nil
}
