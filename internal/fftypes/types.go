package fftypes

// Float is a type constraint for the real element types of a matrix.
type Float interface {
	~float32 | ~float64
}

// Complex is a type constraint for the complex element types of a matrix.
type Complex interface {
	~complex64 | ~complex128
}

// Element is a type constraint for every element type the transpose engine
// supports.
type Element interface {
	Float | Complex
}

// TransformPlan is a forward 1D transform bound to fixed input and output
// buffers at creation time.
type TransformPlan interface {
	// Len returns the transform length.
	Len() int
	// Execute runs the transform over the buffers the plan was created with.
	Execute() error
	// Destroy releases the plan. Execute must not be called afterwards.
	Destroy()
}
