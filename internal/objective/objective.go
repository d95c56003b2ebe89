// Package objective provides batch cost functions for the swarm optimizer:
// the target-reaching adapter over a kinematic chain, and a suite of
// standard benchmark functions.
package objective

import (
	"github.com/san-kum/ikswarm/internal/swarm"
)

// Target is a fixed 3D point the end effector should reach.
type Target [3]float64

// Func lifts a plain scalar function into a batch objective.
type Func struct {
	name string
	dim  int
	fn   func(swarm.Vector) float64
}

func NewFunc(name string, dim int, fn func(swarm.Vector) float64) *Func {
	return &Func{name: name, dim: dim, fn: fn}
}

func (f *Func) Name() string { return f.name }

func (f *Func) Dim() int { return f.dim }

func (f *Func) Evaluate(positions []swarm.Vector) ([]float64, error) {
	costs := make([]float64, len(positions))
	for i, p := range positions {
		costs[i] = f.fn(p)
	}
	return costs, nil
}
