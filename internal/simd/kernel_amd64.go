//go:build amd64 && !purego

package simd

import (
	"github.com/cwbudde/cornerturn/internal/cpu"
	"github.com/cwbudde/cornerturn/internal/fftypes"
)

// transpose8x8AVX512 is implemented in kernel_amd64.s.
//
//go:noescape
func transpose8x8AVX512(dst, src *float64, srcStride, dstStride int)

func init() {
	if cpu.DetectFeatures().SIMDLevel() == fftypes.SIMDAVX512 {
		transpose8x8 = transpose8x8Asm
		level = fftypes.SIMDAVX512
	}
}

func transpose8x8Asm(dst, src []float64, srcStride, dstStride int) {
	// Bounds of the last row of each tile; the assembly does not check.
	_ = src[7*srcStride+7]
	_ = dst[7*dstStride+7]

	transpose8x8AVX512(&dst[0], &src[0], srcStride, dstStride)
}
