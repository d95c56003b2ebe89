package swarm

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Bounds is the feasible hyper-rectangle, one closed interval per dimension.
type Bounds struct {
	Lower Vector
	Upper Vector
}

func (b Bounds) Dim() int {
	return len(b.Lower)
}

func (b Bounds) Validate() error {
	if len(b.Lower) == 0 || len(b.Lower) != len(b.Upper) {
		return fmt.Errorf("%w: bounds need matching lower/upper vectors, got %d and %d", ErrInvalidConfig, len(b.Lower), len(b.Upper))
	}
	if !b.Lower.IsFinite() || !b.Upper.IsFinite() {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidConfig)
	}
	for d := range b.Lower {
		if b.Lower[d] > b.Upper[d] {
			return fmt.Errorf("%w: lower[%d]=%v exceeds upper[%d]=%v", ErrInvalidConfig, d, b.Lower[d], d, b.Upper[d])
		}
	}
	return nil
}

func (b Bounds) Midpoint() Vector {
	mid := make(Vector, len(b.Lower))
	for d := range mid {
		mid[d] = 0.5 * (b.Lower[d] + b.Upper[d])
	}
	return mid
}

// Sample draws a point uniformly from the hyper-rectangle.
func (b Bounds) Sample(rng *rand.Rand) Vector {
	v := make(Vector, len(b.Lower))
	for d := range v {
		v[d] = b.Lower[d] + rng.Float64()*(b.Upper[d]-b.Lower[d])
	}
	return v
}

func (b Bounds) Contains(v Vector) bool {
	if len(v) != len(b.Lower) {
		return false
	}
	for d := range v {
		if v[d] < b.Lower[d] || v[d] > b.Upper[d] {
			return false
		}
	}
	return true
}

// Objective is a batch cost function. Evaluate returns one cost per input
// position, in input order, with no cross-position dependence.
// Implementations must not retain or modify the position vectors.
type Objective interface {
	Name() string
	Dim() int
	Evaluate(positions []Vector) ([]float64, error)
}

type Particle struct {
	Position     Vector
	Velocity     Vector
	BestPosition Vector
	BestCost     float64
}

type Swarm struct {
	Particles    []Particle
	BestPosition Vector
	BestCost     float64
}

// Spread is the mean distance from particles to the global best position.
func (s *Swarm) Spread() float64 {
	if len(s.Particles) == 0 {
		return 0
	}
	sum := 0.0
	for i := range s.Particles {
		sum += floats.Distance(s.Particles[i].Position, s.BestPosition, 2)
	}
	return sum / float64(len(s.Particles))
}

// IterationStats is delivered to observers after each iteration's
// global-best reduction, before the next move step.
type IterationStats struct {
	Iteration int
	BestCost  float64
	MeanCost  float64
	Spread    float64
	Improved  bool
}

type Observer interface {
	OnIteration(s IterationStats)
}

type Config struct {
	Particles  int
	Dim        int
	Bounds     Bounds
	Inertia    float64
	Cognitive  float64
	Social     float64
	Iterations int

	// SeedPosition places particle 0 at a caller-chosen reference point.
	// When nil the optimizer falls back to the bounds midpoint.
	SeedPosition Vector

	// RandSeed fixes the random stream; 0 seeds from the current time.
	RandSeed int64

	// Tolerance > 0 stops the run at the first iteration boundary whose
	// global best cost is at or below it.
	Tolerance float64

	// VMaxFrac > 0 caps per-dimension velocity magnitude at that fraction
	// of the dimension's bound width.
	VMaxFrac float64
}

func DefaultConfig() Config {
	return Config{
		Particles:  20,
		Iterations: 1000,
		Inertia:    0.5,
		Cognitive:  1.5,
		Social:     1.5,
	}
}

type Result struct {
	BestCost     float64
	BestPosition Vector
	Iterations   int
	Evaluations  int

	// History holds the global best cost after each iteration.
	History []float64
}
