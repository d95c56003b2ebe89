package swarm

import "errors"

// Domain errors for optimization runs.
var (
	// ErrInvalidConfig indicates a configuration rejected before any iteration ran.
	ErrInvalidConfig = errors.New("swarm: invalid configuration")

	// ErrDimensionMismatch indicates mismatched dimensions between the swarm and the objective.
	ErrDimensionMismatch = errors.New("swarm: dimension mismatch between swarm and objective")

	// ErrNonFinite indicates the objective produced a NaN or Inf cost.
	ErrNonFinite = errors.New("swarm: non-finite cost from objective")
)
