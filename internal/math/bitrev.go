package math

import (
	"fmt"
	"math/bits"
)

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// BitReversalPermutation returns perm with perm[i] equal to i with its low
// log2(n) bits reversed. It is the input order of an in-order radix-2
// decimation-in-time transform. n must be a power of two.
func BitReversalPermutation(n int) []int {
	if !IsPowerOf2(n) {
		panic(fmt.Sprintf("math: bit reversal of non power of 2 length %d", n))
	}

	shift := bits.UintSize - bits.TrailingZeros(uint(n))

	perm := make([]int, n)
	for i := range perm {
		perm[i] = int(bits.Reverse(uint(i)) >> shift)
	}

	return perm
}
