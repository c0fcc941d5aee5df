package cornerturn_test

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/cornerturn"
	"github.com/cwbudde/cornerturn/provider"
)

// dft2D returns X[k1*cols+k2] for a rows x cols row-major x.
func dft2D(x []complex128, rows, cols int) []complex128 {
	out := make([]complex128, rows*cols)

	for k1 := range rows {
		for k2 := range cols {
			var sum complex128

			for r := range rows {
				for c := range cols {
					phase := -2 * math.Pi * (float64(k1*r)/float64(rows) + float64(k2*c)/float64(cols))
					sum += x[r*cols+c] * cmplx.Exp(complex(0, phase))
				}
			}

			out[k1*cols+k2] = sum
		}
	}

	return out
}

func fillRandom(rng *rand.Rand, dst []complex128) {
	for i := range dst {
		dst[i] = complex(rng.Float64()-0.5, rng.Float64()-0.5)
	}
}

func TestPipelineMatches2DDFT(t *testing.T) {
	t.Parallel()

	const rows, cols = 4, 6

	p, err := cornerturn.NewPipeline[complex128](provider.NewGonum[complex128](), rows, cols, cornerturn.PipelineOptions{})
	require.NoError(t, err)
	defer p.Close()

	x := make([]complex128, rows*cols)
	for i := range x {
		x[i] = complex(float64(i), 0)
	}

	copy(p.Input(), x)
	require.NoError(t, p.Execute())

	want := dft2D(x, rows, cols)
	out := p.Output()

	for k1 := range rows {
		for k2 := range cols {
			got := out[k2*rows+k1]
			assert.InDelta(t, 0, cmplx.Abs(got-want[k1*cols+k2]), 1e-9, "X[%d,%d]", k1, k2)
		}
	}
}

func TestPipelineStrategiesAndThreads(t *testing.T) {
	t.Parallel()

	const rows, cols = 16, 32

	rng := rand.New(rand.NewPCG(4, 4))
	x := make([]complex128, rows*cols)
	fillRandom(rng, x)
	want := dft2D(x, rows, cols)

	configs := []cornerturn.PipelineOptions{
		{},
		{Transpose: cornerturn.Options{Strategy: cornerturn.StrategyBlocked, BlockRows: 4, BlockCols: 8}, TransformThreads: 3},
		{Transpose: cornerturn.Options{Strategy: cornerturn.StrategyThreadsColBlocked, Threads: 4, BlockRows: 8, BlockCols: 8}, TransformThreads: 4},
		{Transpose: cornerturn.Options{Strategy: cornerturn.StrategyThreadsRow, Threads: 64}, TransformThreads: 64},
	}

	for _, opts := range configs {
		for name, prov := range map[string]cornerturn.TransformProvider[complex128]{
			"gonum":  provider.NewGonum[complex128](),
			"radix2": provider.NewRadix2[complex128](),
		} {
			p, err := cornerturn.NewPipeline(prov, rows, cols, opts)
			require.NoError(t, err, "%s %v", name, opts.Transpose)

			copy(p.Input(), x)
			require.NoError(t, p.Execute(), "%s %v", name, opts.Transpose)

			out := p.Output()
			for k1 := range rows {
				for k2 := range cols {
					if d := cmplx.Abs(out[k2*rows+k1] - want[k1*cols+k2]); d > 1e-9 {
						t.Fatalf("%s %v: X[%d,%d] off by %g", name, opts.Transpose, k1, k2, d)
					}
				}
			}

			p.Close()
		}
	}
}

func TestPipelineComplex64SIMD(t *testing.T) {
	t.Parallel()

	const rows, cols = 8, 16

	opts := cornerturn.PipelineOptions{
		Transpose:        cornerturn.Options{Strategy: cornerturn.StrategyThreadsColSIMD, Threads: 2},
		TransformThreads: 2,
	}

	p, err := cornerturn.NewPipeline[complex64](provider.NewRadix2[complex64](), rows, cols, opts)
	require.NoError(t, err)
	defer p.Close()

	rng := rand.New(rand.NewPCG(2, 2))
	x := make([]complex128, rows*cols)
	fillRandom(rng, x)

	for i, v := range x {
		p.Input()[i] = complex64(v)
	}

	require.NoError(t, p.Execute())

	want := dft2D(x, rows, cols)
	for k1 := range rows {
		for k2 := range cols {
			got := complex128(p.Output()[k2*rows+k1])
			assert.InDelta(t, 0, cmplx.Abs(got-want[k1*cols+k2]), 1e-4, "X[%d,%d]", k1, k2)
		}
	}
}

func TestPipelineStagesAndReset(t *testing.T) {
	t.Parallel()

	const rows, cols = 4, 8

	p, err := cornerturn.NewPipeline[complex128](provider.NewRadix2[complex128](), rows, cols, cornerturn.PipelineOptions{})
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, rows, p.Rows())
	assert.Equal(t, cols, p.Cols())

	rng := rand.New(rand.NewPCG(8, 1))
	fillRandom(rng, p.Input())

	require.NoError(t, p.RowTransforms())
	require.NoError(t, p.Turn())
	require.NoError(t, p.ColumnTransforms())

	first := append([]complex128(nil), p.Output()...)

	p.Reset()
	for _, v := range p.Output() {
		require.Zero(t, v)
	}

	require.NoError(t, p.Execute())
	assert.Equal(t, first, p.Output())
}

func TestPipelineClose(t *testing.T) {
	t.Parallel()

	p, err := cornerturn.NewPipeline[complex128](provider.NewGonum[complex128](), 3, 5, cornerturn.PipelineOptions{})
	require.NoError(t, err)

	p.Close()
	p.Close()

	require.ErrorIs(t, p.Execute(), cornerturn.ErrClosed)
	require.ErrorIs(t, p.Turn(), cornerturn.ErrClosed)
}

func TestNewPipelineErrors(t *testing.T) {
	t.Parallel()

	gonum := provider.NewGonum[complex128]()

	_, err := cornerturn.NewPipeline[complex128](nil, 4, 4, cornerturn.PipelineOptions{})
	require.ErrorIs(t, err, cornerturn.ErrNilProvider)

	_, err = cornerturn.NewPipeline[complex128](gonum, 0, 4, cornerturn.PipelineOptions{})
	require.ErrorIs(t, err, cornerturn.ErrInvalidDimensions)

	_, err = cornerturn.NewPipeline[complex128](gonum, math.MaxInt/2+1, 2, cornerturn.PipelineOptions{})
	require.ErrorIs(t, err, cornerturn.ErrInvalidDimensions)

	// Fits in an int but not in bytes.
	_, err = cornerturn.NewPipeline[complex128](gonum, math.MaxInt/16, 1, cornerturn.PipelineOptions{})
	require.ErrorIs(t, err, cornerturn.ErrInvalidDimensions)

	_, err = cornerturn.NewPipeline[complex128](gonum, 4, 4, cornerturn.PipelineOptions{TransformThreads: -1})
	require.ErrorIs(t, err, cornerturn.ErrInvalidThreads)

	_, err = cornerturn.NewPipeline[complex128](gonum, 8, 8, cornerturn.PipelineOptions{
		Transpose: cornerturn.Options{Strategy: cornerturn.StrategySIMD},
	})
	require.ErrorIs(t, err, cornerturn.ErrUnsupportedType)

	_, err = cornerturn.NewPipeline[complex64](provider.NewGonum[complex64](), 8, 12, cornerturn.PipelineOptions{
		Transpose: cornerturn.Options{Strategy: cornerturn.StrategySIMD},
	})
	require.ErrorIs(t, err, cornerturn.ErrNotDivisible)

	_, err = cornerturn.NewPipeline[complex128](provider.NewRadix2[complex128](), 4, 6, cornerturn.PipelineOptions{})
	require.ErrorIs(t, err, cornerturn.ErrInvalidLength)
}

// flakyProvider fails the plan with the given index on Execute.
type flakyProvider struct {
	inner     cornerturn.TransformProvider[complex128]
	failAt    int
	created   atomic.Int64
	destroyed atomic.Int64
}

var errPlanFailed = errors.New("plan failed")

type flakyPlan struct {
	cornerturn.TransformPlan
	owner *flakyProvider
	fail  bool
}

func (p *flakyPlan) Execute() error {
	if p.fail {
		return errPlanFailed
	}

	return p.TransformPlan.Execute()
}

func (p *flakyPlan) Destroy() {
	p.owner.destroyed.Add(1)
	p.TransformPlan.Destroy()
}

func (f *flakyProvider) NewForwardPlan(n int, in, out []complex128) (cornerturn.TransformPlan, error) {
	inner, err := f.inner.NewForwardPlan(n, in, out)
	if err != nil {
		return nil, err
	}

	idx := int(f.created.Add(1)) - 1

	return &flakyPlan{TransformPlan: inner, owner: f, fail: idx == f.failAt}, nil
}

func TestPipelinePropagatesPlanErrors(t *testing.T) {
	t.Parallel()

	const rows, cols = 6, 4

	// Plans 0..5 are row plans, 6..9 column plans.
	for _, failAt := range []int{2, 8} {
		prov := &flakyProvider{inner: provider.NewGonum[complex128](), failAt: failAt}

		p, err := cornerturn.NewPipeline[complex128](prov, rows, cols, cornerturn.PipelineOptions{TransformThreads: 3})
		require.NoError(t, err)

		err = p.Execute()
		require.ErrorIs(t, err, errPlanFailed, "failAt=%d", failAt)

		p.Close()
		assert.Equal(t, int64(rows+cols), prov.destroyed.Load())
	}
}

func TestSeparableMatchesPipeline(t *testing.T) {
	t.Parallel()

	const rows, cols = 12, 10

	rng := rand.New(rand.NewPCG(6, 6))
	x := make([]complex128, rows*cols)
	fillRandom(rng, x)

	s, err := cornerturn.NewSeparable[complex128](provider.NewGonum[complex128](), rows, cols, 3)
	require.NoError(t, err)
	defer s.Close()

	copy(s.Data(), x)
	require.NoError(t, s.Execute())

	p, err := cornerturn.NewPipeline[complex128](provider.NewGonum[complex128](), rows, cols, cornerturn.PipelineOptions{TransformThreads: 2})
	require.NoError(t, err)
	defer p.Close()

	copy(p.Input(), x)
	require.NoError(t, p.Execute())

	want := dft2D(x, rows, cols)

	for k1 := range rows {
		for k2 := range cols {
			assert.InDelta(t, 0, cmplx.Abs(s.Data()[k1*cols+k2]-want[k1*cols+k2]), 1e-9, "separable X[%d,%d]", k1, k2)
			assert.InDelta(t, 0, cmplx.Abs(p.Output()[k2*rows+k1]-s.Data()[k1*cols+k2]), 1e-9, "pipeline X[%d,%d]", k1, k2)
		}
	}
}

func TestNewSeparableErrors(t *testing.T) {
	t.Parallel()

	_, err := cornerturn.NewSeparable[complex128](nil, 4, 4, 1)
	require.ErrorIs(t, err, cornerturn.ErrNilProvider)

	_, err = cornerturn.NewSeparable[complex128](provider.NewGonum[complex128](), 4, 0, 1)
	require.ErrorIs(t, err, cornerturn.ErrInvalidDimensions)

	_, err = cornerturn.NewSeparable[complex128](provider.NewGonum[complex128](), math.MaxInt/16, 1, 1)
	require.ErrorIs(t, err, cornerturn.ErrInvalidDimensions)

	_, err = cornerturn.NewSeparable[complex128](provider.NewGonum[complex128](), 4, 4, 0)
	require.ErrorIs(t, err, cornerturn.ErrInvalidThreads)

	_, err = cornerturn.NewSeparable[complex128](provider.NewRadix2[complex128](), 4, 6, 1)
	require.ErrorIs(t, err, cornerturn.ErrInvalidLength)

	s, err := cornerturn.NewSeparable[complex128](provider.NewGonum[complex128](), 2, 2, 1)
	require.NoError(t, err)

	s.Close()
	require.ErrorIs(t, s.Execute(), cornerturn.ErrClosed)
}

func BenchmarkPipeline(b *testing.B) {
	const rows, cols = 256, 256

	for _, s := range []cornerturn.Strategy{cornerturn.StrategyNaive, cornerturn.StrategyThreadsRowSIMD} {
		b.Run(s.String(), func(b *testing.B) {
			p, err := cornerturn.NewPipeline[complex64](provider.NewRadix2[complex64](), rows, cols, cornerturn.PipelineOptions{
				Transpose:        cornerturn.Options{Strategy: s, Threads: 4},
				TransformThreads: 4,
			})
			if err != nil {
				b.Fatal(err)
			}
			defer p.Close()

			b.ReportAllocs()

			for b.Loop() {
				if err := p.Execute(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
