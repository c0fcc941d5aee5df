package cornerturn

import (
	"github.com/cwbudde/cornerturn/internal/fftypes"
	"github.com/cwbudde/cornerturn/internal/memory"
	"github.com/cwbudde/cornerturn/internal/simd"
)

// Float is a type constraint for the real element types of a matrix.
// The canonical definition is in internal/fftypes.
type Float = fftypes.Float

// Complex is a type constraint for the complex element types of a matrix.
// The canonical definition is in internal/fftypes.
type Complex = fftypes.Complex

// Element is a type constraint for all supported element types.
type Element = fftypes.Element

// TransformPlan is a forward 1D transform bound to fixed buffers.
type TransformPlan = fftypes.TransformPlan

// TransformProvider creates forward 1D transform plans over caller buffers.
// Plans must be safe to execute concurrently with other plans from the same
// provider as long as their buffers are disjoint.
type TransformProvider[T Complex] interface {
	NewForwardPlan(n int, in, out []T) (TransformPlan, error)
}

// SIMDLevel describes the instruction set the 8x8 micro-kernel runs with.
type SIMDLevel = fftypes.SIMDLevel

// SIMD level constants.
const (
	SIMDNone   = fftypes.SIMDNone
	SIMDAVX512 = fftypes.SIMDAVX512
)

// Alignment is the byte alignment SIMD strategies require of both buffers.
const Alignment = memory.CacheLine

// AllocAligned returns a zeroed slice of n elements aligned to Alignment.
func AllocAligned[T Element](n int) []T {
	return memory.AllocAligned[T](n)
}

// KernelLevel reports which 8x8 micro-kernel SIMD strategies dispatch to.
func KernelLevel() SIMDLevel {
	return simd.Level()
}

// TypeName returns the name of an element type as used by the command line
// and in wisdom files.
func TypeName[T Element]() string {
	var zero T

	switch any(zero).(type) {
	case float32:
		return "float32"
	case float64:
		return "float64"
	case complex64:
		return "complex64"
	case complex128:
		return "complex128"
	default:
		return "unknown"
	}
}
