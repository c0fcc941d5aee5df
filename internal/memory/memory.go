// Package memory provides cache-line aligned buffers and address checks for
// matrix slices.
package memory

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/cwbudde/cornerturn/internal/fftypes"
)

// CacheLine is the alignment required by the SIMD micro-kernel.
const CacheLine = 64

// MaxElements returns the largest n AllocAligned[T] accepts.
func MaxElements[T fftypes.Element]() int {
	var zero T

	return (math.MaxInt - CacheLine) / int(unsafe.Sizeof(zero))
}

// AllocAligned returns a zeroed slice of n elements whose first element sits on
// a CacheLine boundary. It returns nil for n <= 0 and panics when n exceeds
// MaxElements.
func AllocAligned[T fftypes.Element](n int) []T {
	if n <= 0 {
		return nil
	}

	if n > MaxElements[T]() {
		panic(fmt.Sprintf("memory: %d elements overflow the address space", n))
	}

	var zero T
	size := int(unsafe.Sizeof(zero))

	backing := make([]byte, n*size+CacheLine)
	offset := 0
	if rem := int(uintptr(unsafe.Pointer(&backing[0])) % CacheLine); rem != 0 {
		offset = CacheLine - rem
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&backing[offset])), n)
}

// IsAligned reports whether the first element of s sits on an align-byte
// boundary. Empty slices are never aligned.
func IsAligned[T any](s []T, align uintptr) bool {
	if len(s) == 0 {
		return false
	}

	return uintptr(unsafe.Pointer(&s[0]))%align == 0
}

// Overlaps reports whether the first na elements of a and the first nb
// elements of b share any memory.
func Overlaps[T any](a []T, na int, b []T, nb int) bool {
	if na <= 0 || nb <= 0 || len(a) == 0 || len(b) == 0 {
		return false
	}

	var zero T
	size := unsafe.Sizeof(zero)

	aStart := uintptr(unsafe.Pointer(&a[0]))
	aEnd := aStart + uintptr(na)*size
	bStart := uintptr(unsafe.Pointer(&b[0]))
	bEnd := bStart + uintptr(nb)*size

	return aStart < bEnd && bStart < aEnd
}
