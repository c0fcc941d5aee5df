// Package math holds the index and twiddle helpers of the radix-2 transform.
package math

import "github.com/cwbudde/cornerturn/internal/fftypes"

// Complex is a type alias for the complex number constraint.
// The canonical definition is in internal/fftypes.
type Complex = fftypes.Complex
