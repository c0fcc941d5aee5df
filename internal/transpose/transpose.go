// Package transpose holds the unchecked out-of-place transpose kernels.
//
// Every kernel writes dst[c*rows+r] = src[r*cols+c] for the indices it is
// given. Callers validate shapes, lengths and aliasing beforehand.
package transpose

import (
	"sync"

	"github.com/cwbudde/cornerturn/internal/block"
	"github.com/cwbudde/cornerturn/internal/fftypes"
	"github.com/cwbudde/cornerturn/internal/partition"
)

// Rect transposes the rectangle rect of a rows x cols source.
func Rect[T fftypes.Element](dst, src []T, rows, cols int, rect block.Rect) {
	for r := rect.RowMin; r < rect.RowMax; r++ {
		row := src[r*cols+rect.ColMin : r*cols+rect.ColMax]
		for k, v := range row {
			dst[(rect.ColMin+k)*rows+r] = v
		}
	}
}

// Naive transposes the whole matrix with a single nested loop.
func Naive[T fftypes.Element](dst, src []T, rows, cols int) {
	Rect(dst, src, rows, cols, block.Full(rows, cols))
}

// Blocked transposes rowRange x colRange tile by tile. Tile boundaries are
// computed within the given ranges, so a worker never crosses its partition.
func Blocked[T fftypes.Element](dst, src []T, rows, cols int, rowRange, colRange partition.Range, blockRows, blockCols int) {
	for tile := range block.Tiles(rowRange, colRange, blockRows, blockCols) {
		Rect(dst, src, rows, cols, tile)
	}
}

// Parallel calls work once per non-empty range, each on its own goroutine,
// and returns after all of them finish.
func Parallel(ranges []partition.Range, work func(partition.Range)) {
	var wg sync.WaitGroup

	for _, r := range ranges {
		if r.Empty() {
			continue
		}

		wg.Add(1)

		go func() {
			defer wg.Done()
			work(r)
		}()
	}

	wg.Wait()
}
