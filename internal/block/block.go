// Package block decomposes matrix dimensions into cache-sized tiles.
package block

import (
	"fmt"
	"iter"

	"github.com/cwbudde/cornerturn/internal/partition"
)

// Rect is a half-open rectangle of matrix indices:
// rows [RowMin, RowMax) and columns [ColMin, ColMax).
type Rect struct {
	RowMin, RowMax int
	ColMin, ColMax int
}

// Rows returns the row range of the rectangle.
func (r Rect) Rows() partition.Range {
	return partition.Range{Start: r.RowMin, End: r.RowMax}
}

// Cols returns the column range of the rectangle.
func (r Rect) Cols() partition.Range {
	return partition.Range{Start: r.ColMin, End: r.ColMax}
}

// Area returns the number of elements in the rectangle.
func (r Rect) Area() int {
	return (r.RowMax - r.RowMin) * (r.ColMax - r.ColMin)
}

// Full returns the rectangle covering a whole rows x cols matrix.
func Full(rows, cols int) Rect {
	return Rect{RowMax: rows, ColMax: cols}
}

// Ranges splits [0, n) into blocks of the given size.
func Ranges(n, size int) []partition.Range {
	return Within(partition.Range{Start: 0, End: n}, size)
}

// Within splits r into consecutive blocks of the given size. The first
// r.Len()/size blocks are full; a trailing partial block of r.Len()%size
// follows when the division is uneven. size == 0 or size >= r.Len() yields r
// itself. An empty r yields no blocks.
func Within(r partition.Range, size int) []partition.Range {
	n := r.Len()
	if n <= 0 {
		return nil
	}

	if size <= 0 || size >= n {
		return []partition.Range{r}
	}

	count := (n + size - 1) / size
	blocks := make([]partition.Range, 0, count)

	for start := r.Start; start < r.End; start += size {
		blocks = append(blocks, partition.Range{Start: start, End: min(start+size, r.End)})
	}

	if blocks[len(blocks)-1].End != r.End {
		panic(fmt.Sprintf("block: blocks end at %d, want %d", blocks[len(blocks)-1].End, r.End))
	}

	return blocks
}

// Tiles enumerates the cartesian product of the row blocks of rows and the
// column blocks of cols in row-major block order.
func Tiles(rows, cols partition.Range, blockRows, blockCols int) iter.Seq[Rect] {
	rowBlocks := Within(rows, blockRows)
	colBlocks := Within(cols, blockCols)

	return func(yield func(Rect) bool) {
		for _, rb := range rowBlocks {
			for _, cb := range colBlocks {
				if !yield(Rect{RowMin: rb.Start, RowMax: rb.End, ColMin: cb.Start, ColMax: cb.End}) {
					return
				}
			}
		}
	}
}
