package dynamo

import "errors"

// Domain errors for force computations.
var (
	// ErrConfiguration indicates non-positive lengths or discretization counts below 2.
	ErrConfiguration = errors.New("dynamo: invalid assembly configuration")

	// ErrNumericDomain indicates an elliptic modulus outside [0, 1) or a vanishing (m-1) denominator.
	ErrNumericDomain = errors.New("dynamo: elliptic modulus outside numeric domain")

	// ErrDegenerateSweep indicates a sweep with too few samples to derive a slope.
	ErrDegenerateSweep = errors.New("dynamo: degenerate sweep range")
)
