// Package simd implements the 8x8 in-register transpose micro-kernel for
// 8-byte elements.
//
// The kernel moves a tile through three shuffle stages: unpack low/high
// swaps adjacent lanes inside each 128-bit lane, a two-source permute swaps
// 2x2 blocks, and a second permute swaps 4x4 blocks. On amd64 with AVX-512F
// the stages run on ZMM registers; elsewhere a lane-array emulation of the
// same network runs. Both produce bit-identical output.
package simd

import (
	"github.com/cwbudde/cornerturn/internal/fftypes"
	"github.com/cwbudde/cornerturn/internal/partition"
)

// Tile is the edge length of the square tile handled by one kernel call.
const Tile = 8

type kernelFunc func(dst, src []float64, srcStride, dstStride int)

var (
	transpose8x8 kernelFunc = transpose8x8Generic
	level                   = fftypes.SIMDNone
)

// Level reports which implementation Transpose8x8 dispatches to.
func Level() fftypes.SIMDLevel {
	return level
}

// Transpose8x8 transposes the 8x8 tile whose top-left element is src[0]
// (rows srcStride apart) into dst (rows dstStride apart).
func Transpose8x8(dst, src []float64, srcStride, dstStride int) {
	transpose8x8(dst, src, srcStride, dstStride)
}

// Tiles transposes the rectangle rowRange x colRange of a rows x cols
// row-major matrix into the cols x rows destination, one 8x8 tile at a time.
// All four range bounds and both dimensions must be multiples of Tile.
func Tiles(dst, src []float64, rows, cols int, rowRange, colRange partition.Range) {
	kernel := transpose8x8

	for r := rowRange.Start; r < rowRange.End; r += Tile {
		for c := colRange.Start; c < colRange.End; c += Tile {
			kernel(dst[c*rows+r:], src[r*cols+c:], cols, rows)
		}
	}
}
