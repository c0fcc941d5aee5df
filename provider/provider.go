// Package provider implements forward 1D transform providers for
// cornerturn pipelines.
//
// Both providers create plans bound to caller buffers. Input and output may
// be the same slice. Plans are independent, so distinct plans may execute
// concurrently.
package provider

import (
	"fmt"

	"github.com/cwbudde/cornerturn"
)

func checkPlanBuffers[T cornerturn.Complex](n int, in, out []T) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", cornerturn.ErrInvalidLength, n)
	}

	if in == nil || out == nil {
		return cornerturn.ErrNilSlice
	}

	if len(in) < n || len(out) < n {
		return fmt.Errorf("%w: buffers %d/%d, need %d", cornerturn.ErrLengthMismatch, len(in), len(out), n)
	}

	return nil
}
