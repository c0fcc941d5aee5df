package cornerturn

import (
	"math/rand/v2"
	"testing"
)

// Shared test helper functions used across multiple test files

// valueAt returns a distinct, exactly representable element for index i.
func valueAt[T Element](i int) T {
	var zero T

	switch any(zero).(type) {
	case float32:
		return any(float32(i + 1)).(T)
	case float64:
		return any(float64(i + 1)).(T)
	case complex64:
		return any(complex(float32(i+1), -float32(i)*0.5)).(T)
	case complex128:
		return any(complex(float64(i+1), -float64(i)*0.5)).(T)
	default:
		panic("unsupported element type")
	}
}

// randomAt returns a pseudo-random element in [-0.5, 0.5) per component.
func randomAt[T Element](rng *rand.Rand) T {
	var zero T

	switch any(zero).(type) {
	case float32:
		return any(float32(rng.Float64() - 0.5)).(T)
	case float64:
		return any(rng.Float64() - 0.5).(T)
	case complex64:
		return any(complex(float32(rng.Float64()-0.5), float32(rng.Float64()-0.5))).(T)
	case complex128:
		return any(complex(rng.Float64()-0.5, rng.Float64()-0.5)).(T)
	default:
		panic("unsupported element type")
	}
}

func sequentialMatrix[T Element](rows, cols int) []T {
	m := AllocAligned[T](rows * cols)
	for i := range m {
		m[i] = valueAt[T](i)
	}

	return m
}

func reference[T Element](src []T, rows, cols int) []T {
	dst := make([]T, rows*cols)
	for r := range rows {
		for c := range cols {
			dst[c*rows+r] = src[r*cols+c]
		}
	}

	return dst
}

func assertTransposed[T Element](t *testing.T, dst, src []T, rows, cols int, format string, args ...any) {
	t.Helper()

	for r := range rows {
		for c := range cols {
			if got, want := dst[c*rows+r], src[r*cols+c]; got != want {
				t.Fatalf(format+": dst[%d][%d] = %v, want %v", append(args, c, r, got, want)...)
			}
		}
	}
}
