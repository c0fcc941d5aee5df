package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/cwbudde/cornerturn"
)

// fillRandom sets every component to a uniform value in [-0.5, 0.5).
func fillRandom[T cornerturn.Element](rng *rand.Rand, m []T) {
	var zero T

	switch s := any(m).(type) {
	case []float32:
		for i := range s {
			s[i] = float32(rng.Float64() - 0.5)
		}
	case []float64:
		for i := range s {
			s[i] = rng.Float64() - 0.5
		}
	case []complex64:
		for i := range s {
			s[i] = complex(float32(rng.Float64()-0.5), float32(rng.Float64()-0.5))
		}
	case []complex128:
		for i := range s {
			s[i] = complex(rng.Float64()-0.5, rng.Float64()-0.5)
		}
	default:
		panic(fmt.Sprintf("fill: unsupported element type %T", zero))
	}
}

func formatElement[T cornerturn.Element](v T) string {
	switch x := any(v).(type) {
	case float32:
		return fmt.Sprintf("%9.6f", x)
	case float64:
		return fmt.Sprintf("%9.6f", x)
	case complex64:
		return fmt.Sprintf("%9.6f%+9.6fi", real(x), imag(x))
	case complex128:
		return fmt.Sprintf("%9.6f%+9.6fi", real(x), imag(x))
	default:
		return fmt.Sprint(x)
	}
}

// printMatrix writes a rows x cols row-major matrix, one row per line.
func printMatrix[T cornerturn.Element](out io.Writer, m []T, rows, cols int) {
	var sb strings.Builder

	for r := range rows {
		sb.Reset()

		for c := range cols {
			if c > 0 {
				sb.WriteByte(' ')
			}

			sb.WriteString(formatElement(m[r*cols+c]))
		}

		fmt.Fprintln(out, sb.String())
	}
}

// isTranspose reports whether b is the cols x rows transpose of a.
func isTranspose[T cornerturn.Element](a, b []T, rows, cols int) bool {
	for r := range rows {
		for c := range cols {
			if a[r*cols+c] != b[c*rows+r] {
				return false
			}
		}
	}

	return true
}
