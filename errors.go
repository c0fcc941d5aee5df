package cornerturn

import "errors"

// Sentinel errors returned by transpose and pipeline operations.
var (
	// ErrInvalidDimensions is returned when rows or cols is less than 1.
	ErrInvalidDimensions = errors.New("cornerturn: invalid dimensions")

	// ErrNilSlice is returned when a nil slice is passed to a transpose method.
	ErrNilSlice = errors.New("cornerturn: nil slice")

	// ErrLengthMismatch is returned when a slice holds fewer than rows*cols
	// elements.
	ErrLengthMismatch = errors.New("cornerturn: slice length mismatch")

	// ErrAliasing is returned when source and destination share memory.
	// Transposition is out-of-place only.
	ErrAliasing = errors.New("cornerturn: source and destination overlap")

	// ErrUnknownStrategy is returned for a Strategy value or name the engine
	// does not implement.
	ErrUnknownStrategy = errors.New("cornerturn: unknown strategy")

	// ErrInvalidThreads is returned when a threaded strategy or a pipeline is
	// configured with fewer than one worker.
	ErrInvalidThreads = errors.New("cornerturn: invalid thread count")

	// ErrInvalidBlockSize is returned for negative block dimensions.
	ErrInvalidBlockSize = errors.New("cornerturn: invalid block size")

	// ErrUnsupportedType is returned when a SIMD strategy is used with an
	// element type that is not 8 bytes wide.
	ErrUnsupportedType = errors.New("cornerturn: unsupported element type")

	// ErrNotDivisible is returned when a SIMD strategy is used with a
	// dimension that is not a multiple of the 8x8 tile.
	ErrNotDivisible = errors.New("cornerturn: dimension not divisible by tile size")

	// ErrMisaligned is returned when a SIMD strategy is given a buffer whose
	// first element is not 64-byte aligned. Use AllocAligned.
	ErrMisaligned = errors.New("cornerturn: buffer not 64-byte aligned")

	// ErrInvalidLength is returned by transform providers for lengths they
	// cannot plan.
	ErrInvalidLength = errors.New("cornerturn: invalid transform length")

	// ErrNilProvider is returned when a pipeline is created without a
	// transform provider.
	ErrNilProvider = errors.New("cornerturn: nil transform provider")

	// ErrClosed is returned by pipeline methods after Close.
	ErrClosed = errors.New("cornerturn: pipeline closed")
)
