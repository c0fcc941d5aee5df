package cornerturn

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/cornerturn/internal/partition"
)

// PipelineOptions configures a corner-turn pipeline.
type PipelineOptions struct {
	// Transpose configures the corner turn between the two transform passes.
	Transpose Options

	// TransformThreads is the number of goroutines each transform pass is
	// split over. Zero means one.
	TransformThreads int
}

// Pipeline computes a 2D forward transform as row transforms, a corner turn,
// then transforms along the turned rows.
//
// For an R x C input x, Output holds the C x R matrix whose element
// out[k2*R+k1] is the 2D DFT coefficient X[k1, k2]. A Pipeline owns its
// buffers and plans; it is not safe for concurrent use.
type Pipeline[T Complex] struct {
	rows, cols int
	threads    int

	in, rowOut, turned, out []T

	rowPlans []TransformPlan
	colPlans []TransformPlan

	turn   Transposer[T]
	closed bool
}

// NewPipeline allocates the aligned buffers of an R x C pipeline and creates
// R row plans of length C and C column plans of length R with p.
func NewPipeline[T Complex](p TransformProvider[T], rows, cols int, opts PipelineOptions) (*Pipeline[T], error) {
	if p == nil {
		return nil, ErrNilProvider
	}

	threads := opts.TransformThreads
	if threads == 0 {
		threads = 1
	}

	if threads < 0 {
		return nil, fmt.Errorf("%w: transform threads %d", ErrInvalidThreads, threads)
	}

	turn, err := NewTransposer[T](opts.Transpose)
	if err != nil {
		return nil, err
	}

	if err := checkAlloc[T](rows, cols, opts.Transpose); err != nil {
		return nil, err
	}

	n := rows * cols
	pl := &Pipeline[T]{
		rows:    rows,
		cols:    cols,
		threads: threads,
		in:      AllocAligned[T](n),
		rowOut:  AllocAligned[T](n),
		turned:  AllocAligned[T](n),
		out:     AllocAligned[T](n),
		turn:    turn,
	}

	pl.rowPlans, err = newPlans(p, rows, cols, pl.in, pl.rowOut)
	if err != nil {
		return nil, fmt.Errorf("row plans: %w", err)
	}

	pl.colPlans, err = newPlans(p, cols, rows, pl.turned, pl.out)
	if err != nil {
		destroyPlans(pl.rowPlans)
		return nil, fmt.Errorf("column plans: %w", err)
	}

	return pl, nil
}

// newPlans creates count plans of length n over consecutive n-element
// segments of in and out.
func newPlans[T Complex](p TransformProvider[T], count, n int, in, out []T) ([]TransformPlan, error) {
	plans := make([]TransformPlan, 0, count)

	for i := range count {
		seg := i * n

		plan, err := p.NewForwardPlan(n, in[seg:seg+n:seg+n], out[seg:seg+n:seg+n])
		if err != nil {
			destroyPlans(plans)
			return nil, err
		}

		if plan.Len() != n {
			plan.Destroy()
			destroyPlans(plans)

			return nil, fmt.Errorf("%w: provider planned %d, want %d", ErrInvalidLength, plan.Len(), n)
		}

		plans = append(plans, plan)
	}

	return plans, nil
}

func destroyPlans(plans []TransformPlan) {
	for _, plan := range plans {
		plan.Destroy()
	}
}

// Rows returns the number of input rows.
func (p *Pipeline[T]) Rows() int { return p.rows }

// Cols returns the number of input columns.
func (p *Pipeline[T]) Cols() int { return p.cols }

// Input returns the rows x cols input buffer. Fill it before Execute.
func (p *Pipeline[T]) Input() []T { return p.in }

// Output returns the cols x rows result buffer.
func (p *Pipeline[T]) Output() []T { return p.out }

// RowTransforms runs the length-C transform over every input row.
func (p *Pipeline[T]) RowTransforms() error {
	if p.closed {
		return ErrClosed
	}

	return p.runPlans(p.rowPlans)
}

// Turn transposes the row transform results into the column stage input.
func (p *Pipeline[T]) Turn() error {
	if p.closed {
		return ErrClosed
	}

	return p.turn.Transpose(p.turned, p.rowOut, p.rows, p.cols)
}

// ColumnTransforms runs the length-R transform over every turned row.
func (p *Pipeline[T]) ColumnTransforms() error {
	if p.closed {
		return ErrClosed
	}

	return p.runPlans(p.colPlans)
}

// Execute runs RowTransforms, Turn and ColumnTransforms in order and stops
// at the first error.
func (p *Pipeline[T]) Execute() error {
	if err := p.RowTransforms(); err != nil {
		return fmt.Errorf("row transforms: %w", err)
	}

	if err := p.Turn(); err != nil {
		return fmt.Errorf("corner turn: %w", err)
	}

	if err := p.ColumnTransforms(); err != nil {
		return fmt.Errorf("column transforms: %w", err)
	}

	return nil
}

// Reset zeroes the intermediate and output buffers. The input is kept.
func (p *Pipeline[T]) Reset() {
	clear(p.rowOut)
	clear(p.turned)
	clear(p.out)
}

// Close destroys all plans. Further stage calls return ErrClosed.
func (p *Pipeline[T]) Close() {
	if p.closed {
		return
	}

	p.closed = true

	destroyPlans(p.rowPlans)
	destroyPlans(p.colPlans)
	p.rowPlans, p.colPlans = nil, nil
}

// runPlans executes plans split over the configured goroutines and returns
// the first error.
func (p *Pipeline[T]) runPlans(plans []TransformPlan) error {
	var g errgroup.Group

	for _, r := range partition.Split(len(plans), p.threads) {
		if r.Empty() {
			continue
		}

		g.Go(func() error {
			for _, plan := range plans[r.Start:r.End] {
				if err := plan.Execute(); err != nil {
					return err
				}
			}

			return nil
		})
	}

	return g.Wait()
}
