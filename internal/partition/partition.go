// Package partition divides an index dimension into contiguous, balanced
// ranges, one per worker.
package partition

import "fmt"

// Range is the half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range holds no indices.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// String formats the range as [start,end).
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Split divides n units among workers ranges. With q = n/workers and
// r = n%workers, the first r ranges receive q+1 units and the rest q, laid out
// in increasing order from 0 with no gaps. When workers > n the trailing
// ranges are empty.
//
// workers must be positive; Split panics otherwise.
func Split(n, workers int) []Range {
	if workers < 1 {
		panic(fmt.Sprintf("partition: worker count %d < 1", workers))
	}

	q := n / workers
	rem := n % workers

	ranges := make([]Range, workers)

	start := 0
	for i := range workers {
		size := q
		if i < rem {
			size++
		}

		ranges[i] = Range{Start: start, End: start + size}
		start += size
	}

	if start != n {
		panic(fmt.Sprintf("partition: ranges cover [0,%d), want [0,%d)", start, n))
	}

	return ranges
}

// SplitAligned is Split over units of width align: every range boundary is a
// multiple of align. n must be a multiple of align.
func SplitAligned(n, workers, align int) []Range {
	if align < 1 || n%align != 0 {
		panic(fmt.Sprintf("partition: %d is not a multiple of alignment %d", n, align))
	}

	ranges := Split(n/align, workers)
	for i := range ranges {
		ranges[i].Start *= align
		ranges[i].End *= align
	}

	return ranges
}
