package kinematics

import "errors"

// Domain errors for chain construction and evaluation.
var (
	// ErrDimensionMismatch indicates a parameter vector whose length does not equal the joint count.
	ErrDimensionMismatch = errors.New("kinematics: parameter count does not match joint count")

	// ErrNonFinite indicates a NaN or Inf joint parameter.
	ErrNonFinite = errors.New("kinematics: non-finite joint parameter")

	// ErrBadGeometry indicates an invalid chain definition.
	ErrBadGeometry = errors.New("kinematics: invalid chain geometry")
)
