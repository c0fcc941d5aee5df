package cornerturn

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/cornerturn/internal/partition"
)

// Separable computes a 2D forward transform in place without a corner turn:
// length-C transforms over each row, then length-R transforms over each
// column through a gather/scatter scratch. It is the strided baseline the
// Pipeline is measured against.
//
// After Execute, Data()[k1*C+k2] holds X[k1, k2]. The provider must accept
// plans whose input and output are the same slice.
type Separable[T Complex] struct {
	rows, cols int
	data       []T

	rowPlans []TransformPlan
	workers  []columnWorker[T]
	closed   bool
}

// columnWorker owns a scratch column and the in-place plan over it.
type columnWorker[T Complex] struct {
	span    partition.Range
	scratch []T
	plan    TransformPlan
}

// NewSeparable allocates an aligned rows x cols buffer and its plans. Column
// transforms are split over threads goroutines, each with its own scratch.
func NewSeparable[T Complex](p TransformProvider[T], rows, cols, threads int) (*Separable[T], error) {
	if p == nil {
		return nil, ErrNilProvider
	}

	if err := checkAlloc[T](rows, cols, Options{}); err != nil {
		return nil, err
	}

	if threads < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThreads, threads)
	}

	s := &Separable[T]{
		rows: rows,
		cols: cols,
		data: AllocAligned[T](rows * cols),
	}

	var err error

	s.rowPlans, err = newPlans(p, rows, cols, s.data, s.data)
	if err != nil {
		return nil, fmt.Errorf("row plans: %w", err)
	}

	for _, span := range partition.Split(cols, threads) {
		if span.Empty() {
			continue
		}

		scratch := AllocAligned[T](rows)

		plan, err := p.NewForwardPlan(rows, scratch, scratch)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("column plan: %w", err)
		}

		s.workers = append(s.workers, columnWorker[T]{span: span, scratch: scratch, plan: plan})
	}

	return s, nil
}

// Data returns the rows x cols buffer transformed in place.
func (s *Separable[T]) Data() []T { return s.data }

// Execute runs the row pass then the column pass.
func (s *Separable[T]) Execute() error {
	if s.closed {
		return ErrClosed
	}

	var rowGroup errgroup.Group

	for _, r := range partition.Split(s.rows, len(s.workers)) {
		if r.Empty() {
			continue
		}

		rowGroup.Go(func() error {
			for _, plan := range s.rowPlans[r.Start:r.End] {
				if err := plan.Execute(); err != nil {
					return err
				}
			}

			return nil
		})
	}

	if err := rowGroup.Wait(); err != nil {
		return fmt.Errorf("row transforms: %w", err)
	}

	var colGroup errgroup.Group

	for _, w := range s.workers {
		colGroup.Go(func() error {
			for c := w.span.Start; c < w.span.End; c++ {
				gatherStrided(w.scratch, s.data[c:], s.cols)

				if err := w.plan.Execute(); err != nil {
					return err
				}

				scatterStrided(s.data[c:], w.scratch, s.cols)
			}

			return nil
		})
	}

	if err := colGroup.Wait(); err != nil {
		return fmt.Errorf("column transforms: %w", err)
	}

	return nil
}

// Close destroys all plans.
func (s *Separable[T]) Close() {
	if s.closed {
		return
	}

	s.closed = true

	destroyPlans(s.rowPlans)

	for _, w := range s.workers {
		w.plan.Destroy()
	}

	s.rowPlans, s.workers = nil, nil
}

// gatherStrided copies len(dst) elements spaced stride apart from src.
func gatherStrided[T any](dst, src []T, stride int) {
	for i := range dst {
		dst[i] = src[i*stride]
	}
}

// scatterStrided copies src into dst at positions stride apart.
func scatterStrided[T any](dst, src []T, stride int) {
	for i, v := range src {
		dst[i*stride] = v
	}
}
