package provider

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/cornerturn"
)

// Gonum plans transforms of any length with gonum's dsp/fourier package.
// complex64 data is widened into a per-plan complex128 scratch.
type Gonum[T cornerturn.Complex] struct{}

// NewGonum returns a gonum-backed provider.
func NewGonum[T cornerturn.Complex]() Gonum[T] {
	return Gonum[T]{}
}

// NewForwardPlan implements cornerturn.TransformProvider.
func (Gonum[T]) NewForwardPlan(n int, in, out []T) (cornerturn.TransformPlan, error) {
	if err := checkPlanBuffers(n, in, out); err != nil {
		return nil, err
	}

	p := &gonumPlan{n: n, fft: fourier.NewCmplxFFT(n)}

	switch in := any(in[:n]).(type) {
	case []complex128:
		out128, _ := any(out[:n]).([]complex128)
		p.exec = func() { p.fft.Coefficients(out128, in) }

	case []complex64:
		out64, _ := any(out[:n]).([]complex64)
		scratch := make([]complex128, n)

		p.exec = func() {
			for i, v := range in {
				scratch[i] = complex128(v)
			}

			p.fft.Coefficients(scratch, scratch)

			for i, v := range scratch {
				out64[i] = complex64(v)
			}
		}

	default:
		return nil, fmt.Errorf("%w: %T", cornerturn.ErrUnsupportedType, in)
	}

	return p, nil
}

type gonumPlan struct {
	n    int
	fft  *fourier.CmplxFFT
	exec func()
}

func (p *gonumPlan) Len() int { return p.n }

func (p *gonumPlan) Execute() error {
	if p.exec == nil {
		return cornerturn.ErrClosed
	}

	p.exec()

	return nil
}

func (p *gonumPlan) Destroy() {
	p.exec = nil
	p.fft = nil
}
