package swarm

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
)

type Optimizer struct {
	obj       Objective
	observers []Observer
}

func New(obj Objective) *Optimizer {
	return &Optimizer{
		obj:       obj,
		observers: make([]Observer, 0),
	}
}

func (o *Optimizer) AddObserver(obs Observer) { o.observers = append(o.observers, obs) }

// Optimize runs a full swarm search of obj over cfg.Bounds.
func Optimize(ctx context.Context, obj Objective, cfg Config) (*Result, error) {
	return New(obj).Run(ctx, cfg)
}

// Run minimizes the objective. Each iteration evaluates the whole swarm in
// one batch call, updates personal bests, reduces the global best (ties keep
// the incumbent), then moves every particle: per dimension,
//
//	v = w*v + c1*r1*(pbest - pos) + c2*r2*(gbest - pos)
//	pos += v
//
// with fresh r1, r2 drawn per dimension. Positions are clamped into the
// bounds; a clamped dimension has its velocity zeroed so particles do not
// keep slamming into the wall. Cancellation is checked once per iteration.
func (o *Optimizer) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := o.validateConfig(cfg); err != nil {
		return nil, err
	}
	if d := o.obj.Dim(); d != cfg.Dim {
		return nil, fmt.Errorf("%w: objective %s has dimension %d, config has %d", ErrDimensionMismatch, o.obj.Name(), d, cfg.Dim)
	}

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	sw := newSwarm(cfg, rng)

	positions := make([]Vector, cfg.Particles)
	for i := range sw.Particles {
		positions[i] = sw.Particles[i].Position
	}

	var vmax Vector
	if cfg.VMaxFrac > 0 {
		vmax = make(Vector, cfg.Dim)
		for d := range vmax {
			vmax[d] = cfg.VMaxFrac * (cfg.Bounds.Upper[d] - cfg.Bounds.Lower[d])
		}
	}

	result := &Result{
		History: make([]float64, 0, cfg.Iterations),
	}

	for it := 0; it < cfg.Iterations; it++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		costs, err := o.obj.Evaluate(positions)
		if err != nil {
			return nil, err
		}
		if len(costs) != len(positions) {
			return nil, fmt.Errorf("%w: objective %s returned %d costs for %d positions", ErrDimensionMismatch, o.obj.Name(), len(costs), len(positions))
		}
		result.Evaluations += len(costs)

		for i, c := range costs {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fmt.Errorf("%w: cost %v for particle %d at iteration %d", ErrNonFinite, c, i, it)
			}
			p := &sw.Particles[i]
			if c < p.BestCost {
				p.BestCost = c
				copy(p.BestPosition, p.Position)
			}
		}

		improved := false
		for i := range sw.Particles {
			if sw.Particles[i].BestCost < sw.BestCost {
				sw.BestCost = sw.Particles[i].BestCost
				copy(sw.BestPosition, sw.Particles[i].BestPosition)
				improved = true
			}
		}

		result.Iterations = it + 1
		result.History = append(result.History, sw.BestCost)

		if len(o.observers) > 0 {
			stats := IterationStats{
				Iteration: it,
				BestCost:  sw.BestCost,
				MeanCost:  floats.Sum(costs) / float64(len(costs)),
				Spread:    sw.Spread(),
				Improved:  improved,
			}
			for _, obs := range o.observers {
				obs.OnIteration(stats)
			}
		}

		if cfg.Tolerance > 0 && sw.BestCost <= cfg.Tolerance {
			break
		}

		for i := range sw.Particles {
			p := &sw.Particles[i]
			for d := 0; d < cfg.Dim; d++ {
				r1 := rng.Float64()
				r2 := rng.Float64()
				v := cfg.Inertia*p.Velocity[d] +
					cfg.Cognitive*r1*(p.BestPosition[d]-p.Position[d]) +
					cfg.Social*r2*(sw.BestPosition[d]-p.Position[d])
				if vmax != nil && math.Abs(v) > vmax[d] {
					v = math.Copysign(vmax[d], v)
				}
				x := p.Position[d] + v
				if x < cfg.Bounds.Lower[d] {
					x = cfg.Bounds.Lower[d]
					v = 0
				} else if x > cfg.Bounds.Upper[d] {
					x = cfg.Bounds.Upper[d]
					v = 0
				}
				p.Velocity[d] = v
				p.Position[d] = x
			}
		}
	}

	result.BestCost = sw.BestCost
	result.BestPosition = sw.BestPosition.Clone()
	return result, nil
}

func (o *Optimizer) validateConfig(cfg Config) error {
	if cfg.Particles < 1 {
		return fmt.Errorf("%w: particles must be positive, got %d", ErrInvalidConfig, cfg.Particles)
	}
	if cfg.Dim < 1 {
		return fmt.Errorf("%w: dimensions must be positive, got %d", ErrInvalidConfig, cfg.Dim)
	}
	if cfg.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, cfg.Iterations)
	}
	if err := cfg.Bounds.Validate(); err != nil {
		return err
	}
	if cfg.Bounds.Dim() != cfg.Dim {
		return fmt.Errorf("%w: bounds have dimension %d, config has %d", ErrInvalidConfig, cfg.Bounds.Dim(), cfg.Dim)
	}
	for _, h := range []float64{cfg.Inertia, cfg.Cognitive, cfg.Social} {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return fmt.Errorf("%w: hyperparameters must be finite, got w=%v c1=%v c2=%v", ErrInvalidConfig, cfg.Inertia, cfg.Cognitive, cfg.Social)
		}
	}
	if cfg.SeedPosition != nil {
		if len(cfg.SeedPosition) != cfg.Dim {
			return fmt.Errorf("%w: seed position has dimension %d, config has %d", ErrInvalidConfig, len(cfg.SeedPosition), cfg.Dim)
		}
		if !cfg.SeedPosition.IsFinite() {
			return fmt.Errorf("%w: seed position must be finite", ErrInvalidConfig)
		}
	}
	if cfg.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative, got %v", ErrInvalidConfig, cfg.Tolerance)
	}
	if cfg.VMaxFrac < 0 {
		return fmt.Errorf("%w: vmax fraction must not be negative, got %v", ErrInvalidConfig, cfg.VMaxFrac)
	}
	return nil
}

// newSwarm seeds particle 0 at the reference position and the rest uniformly
// at random within bounds, all with zero velocity. Personal and global best
// costs start at +Inf and take their real values on the first evaluation.
func newSwarm(cfg Config, rng *rand.Rand) *Swarm {
	sw := &Swarm{
		Particles:    make([]Particle, cfg.Particles),
		BestPosition: make(Vector, cfg.Dim),
		BestCost:     math.Inf(1),
	}
	for i := range sw.Particles {
		p := &sw.Particles[i]
		if i == 0 {
			if cfg.SeedPosition != nil {
				p.Position = cfg.SeedPosition.Clone()
			} else {
				p.Position = cfg.Bounds.Midpoint()
			}
		} else {
			p.Position = cfg.Bounds.Sample(rng)
		}
		p.Velocity = make(Vector, cfg.Dim)
		p.BestPosition = p.Position.Clone()
		p.BestCost = math.Inf(1)
	}
	return sw
}
