// Package solver assembles a configured inverse-kinematics problem and runs
// the swarm optimizer over it.
package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/ikswarm/internal/config"
	"github.com/san-kum/ikswarm/internal/kinematics"
	"github.com/san-kum/ikswarm/internal/metrics"
	"github.com/san-kum/ikswarm/internal/objective"
	"github.com/san-kum/ikswarm/internal/swarm"
)

type Solver struct {
	cfg      *config.Config
	registry *Registry
	metrics  []metrics.Metric
}

func New(cfg *config.Config, registry *Registry) *Solver {
	return &Solver{
		cfg:      cfg,
		registry: registry,
		metrics:  make([]metrics.Metric, 0),
	}
}

func (s *Solver) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }

// Solution is the outcome of one completed solve.
type Solution struct {
	Chain        string
	Target       [3]float64
	BestCost     float64
	BestPosition []float64
	EndEffector  [3]float64
	Iterations   int
	Evaluations  int
	Elapsed      time.Duration
	History      []float64
	Metrics      map[string]float64
}

// Solve builds the chain and cost adapter from the configuration, seeds the
// swarm at the chain's home configuration, and runs the optimizer.
func (s *Solver) Solve(ctx context.Context) (*Solution, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	chain, err := s.buildChain()
	if err != nil {
		return nil, err
	}

	obj := objective.NewReach(chain, objective.Target(s.cfg.Target), s.cfg.Swarm.Parallel)

	lower, upper := chain.Bounds()
	swarmCfg := swarm.Config{
		Particles:    s.cfg.Swarm.Particles,
		Dim:          chain.Dim(),
		Bounds:       swarm.Bounds{Lower: lower, Upper: upper},
		Inertia:      s.cfg.Swarm.Inertia,
		Cognitive:    s.cfg.Swarm.Cognitive,
		Social:       s.cfg.Swarm.Social,
		Iterations:   s.cfg.Swarm.Iterations,
		SeedPosition: chain.Home(),
		RandSeed:     s.cfg.Swarm.Seed,
		Tolerance:    s.cfg.Swarm.Tolerance,
		VMaxFrac:     s.cfg.Swarm.VMaxFrac,
	}

	opt := swarm.New(obj)
	for _, m := range s.metrics {
		m.Reset()
		opt.AddObserver(m)
	}

	start := time.Now()
	res, err := opt.Run(ctx, swarmCfg)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	ee, err := chain.EndEffector(res.BestPosition)
	if err != nil {
		return nil, fmt.Errorf("evaluating best position: %w", err)
	}

	sol := &Solution{
		Chain:        chain.Name(),
		Target:       s.cfg.Target,
		BestCost:     res.BestCost,
		BestPosition: res.BestPosition,
		EndEffector:  ee,
		Iterations:   res.Iterations,
		Evaluations:  res.Evaluations,
		Elapsed:      elapsed,
		History:      res.History,
		Metrics:      make(map[string]float64),
	}
	for _, m := range s.metrics {
		sol.Metrics[m.Name()] = m.Value()
	}
	return sol, nil
}

func (s *Solver) buildChain() (*kinematics.Chain, error) {
	if len(s.cfg.Chain.Joints) == 0 {
		return s.registry.GetChain(s.cfg.Chain.Name)
	}

	joints := make([]kinematics.Joint, len(s.cfg.Chain.Joints))
	for i, jc := range s.cfg.Chain.Joints {
		kind, err := kinematics.ParseKind(jc.Kind)
		if err != nil {
			return nil, err
		}
		joints[i] = kinematics.Joint{
			Kind:  kind,
			D:     jc.D,
			A:     jc.A,
			Alpha: jc.Alpha,
			Min:   jc.Min,
			Max:   jc.Max,
		}
	}
	name := s.cfg.Chain.Name
	if name == "" {
		name = "custom"
	}
	return kinematics.New(name, joints)
}
