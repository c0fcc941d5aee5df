package math

import "math"

// ComputeTwiddleFactors returns the first n/2 roots of unity of a size-n
// forward transform: W_n^k = exp(-2*pi*i*k/n) for k = 0..n/2-1.
func ComputeTwiddleFactors[T Complex](n int) []T {
	if n <= 1 {
		return nil
	}

	twiddle := make([]T, n/2)
	for k := range twiddle {
		angle := -TwoPi * float64(k) / float64(n)
		twiddle[k] = ComplexFromFloat64[T](math.Cos(angle), math.Sin(angle))
	}

	return twiddle
}

// ComplexFromFloat64 creates a complex number of type T from float64 components.
func ComplexFromFloat64[T Complex](re, im float64) T {
	var zero T

	switch any(zero).(type) {
	case complex64:
		result, _ := any(complex(float32(re), float32(im))).(T)
		return result
	case complex128:
		result, _ := any(complex(re, im)).(T)
		return result
	default:
		panic("unsupported complex type")
	}
}
