package provider

import (
	"fmt"

	"github.com/cwbudde/cornerturn"
	"github.com/cwbudde/cornerturn/internal/math"
)

// Radix2 plans iterative decimation-in-time transforms of power-of-two
// length.
type Radix2[T cornerturn.Complex] struct{}

// NewRadix2 returns a radix-2 provider.
func NewRadix2[T cornerturn.Complex]() Radix2[T] {
	return Radix2[T]{}
}

// NewForwardPlan implements cornerturn.TransformProvider. It returns
// cornerturn.ErrInvalidLength unless n is a power of two.
func (Radix2[T]) NewForwardPlan(n int, in, out []T) (cornerturn.TransformPlan, error) {
	if err := checkPlanBuffers(n, in, out); err != nil {
		return nil, err
	}

	if !math.IsPowerOf2(n) {
		return nil, fmt.Errorf("%w: %d is not a power of 2", cornerturn.ErrInvalidLength, n)
	}

	return &radix2Plan[T]{
		n:       n,
		in:      in[:n],
		out:     out[:n],
		twiddle: math.ComputeTwiddleFactors[T](n),
		bitrev:  math.BitReversalPermutation(n),
	}, nil
}

type radix2Plan[T cornerturn.Complex] struct {
	n       int
	in, out []T
	twiddle []T
	bitrev  []int
}

func (p *radix2Plan[T]) Len() int { return p.n }

func (p *radix2Plan[T]) Execute() error {
	if p.bitrev == nil {
		return cornerturn.ErrClosed
	}

	in, out := p.in, p.out

	if &in[0] == &out[0] {
		for i, j := range p.bitrev {
			if i < j {
				out[i], out[j] = out[j], out[i]
			}
		}
	} else {
		for i, j := range p.bitrev {
			out[i] = in[j]
		}
	}

	n := p.n
	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size

		for start := 0; start < n; start += size {
			for k := range half {
				w := p.twiddle[k*step]
				a := out[start+k]
				b := out[start+k+half] * w
				out[start+k] = a + b
				out[start+k+half] = a - b
			}
		}
	}

	return nil
}

func (p *radix2Plan[T]) Destroy() {
	p.in, p.out = nil, nil
	p.twiddle, p.bitrev = nil, nil
}
