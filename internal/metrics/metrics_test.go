package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/ikswarm/internal/swarm"
)

func TestConvergence(t *testing.T) {
	c := NewConvergence()

	c.OnIteration(swarm.IterationStats{Iteration: 0, BestCost: 2.0, Improved: true})
	c.OnIteration(swarm.IterationStats{Iteration: 1, BestCost: 0.5, Improved: true})
	c.OnIteration(swarm.IterationStats{Iteration: 2, BestCost: 0.5, Improved: false})

	if got := c.Value(); got != 0.5 {
		t.Errorf("Value() = %v, want 0.5", got)
	}
	if got := c.LastImproved(); got != 1 {
		t.Errorf("LastImproved() = %d, want 1", got)
	}
	if got := c.Iterations(); got != 3 {
		t.Errorf("Iterations() = %d, want 3", got)
	}

	c.Reset()
	if c.Value() != 0 || c.LastImproved() != -1 || c.Iterations() != 0 {
		t.Errorf("after Reset: Value=%v LastImproved=%d Iterations=%d",
			c.Value(), c.LastImproved(), c.Iterations())
	}
}

func TestSpread(t *testing.T) {
	s := NewSpread()

	s.OnIteration(swarm.IterationStats{Spread: 3.0})
	s.OnIteration(swarm.IterationStats{Spread: 1.2})
	if got := s.Value(); got != 1.2 {
		t.Errorf("Value() = %v, want the latest spread 1.2", got)
	}

	s.Reset()
	if got := s.Value(); got != 0 {
		t.Errorf("Value() after Reset = %v, want 0", got)
	}
}

func TestStagnation(t *testing.T) {
	s := NewStagnation()

	for _, improved := range []bool{true, false, false, true, false} {
		s.OnIteration(swarm.IterationStats{Improved: improved})
	}
	if got := s.Value(); got != 2 {
		t.Errorf("Value() = %v, want longest streak 2", got)
	}

	s.Reset()
	if got := s.Value(); got != 0 {
		t.Errorf("Value() after Reset = %v, want 0", got)
	}
}

func TestRateGeometricDecay(t *testing.T) {
	r := NewRate()

	// Cost drops one decade per iteration, so the log10 slope is -1.
	costs := []float64{1, 0.1, 0.01, 0.001}
	for i, c := range costs {
		r.OnIteration(swarm.IterationStats{Iteration: i, BestCost: c})
	}

	if got := r.Value(); math.Abs(got-(-1)) > 1e-9 {
		t.Errorf("Value() = %v, want -1", got)
	}
}

func TestRateDegenerateInputs(t *testing.T) {
	r := NewRate()
	if got := r.Value(); got != 0 {
		t.Errorf("Value() with no samples = %v, want 0", got)
	}

	r.OnIteration(swarm.IterationStats{Iteration: 0, BestCost: 1})
	if got := r.Value(); got != 0 {
		t.Errorf("Value() with one sample = %v, want 0", got)
	}

	// Non-positive and infinite costs stay out of the fit.
	r.Reset()
	r.OnIteration(swarm.IterationStats{Iteration: 0, BestCost: 0})
	r.OnIteration(swarm.IterationStats{Iteration: 1, BestCost: -2})
	r.OnIteration(swarm.IterationStats{Iteration: 2, BestCost: math.Inf(1)})
	r.OnIteration(swarm.IterationStats{Iteration: 3, BestCost: 10})
	if got := r.Value(); got != 0 {
		t.Errorf("Value() with one usable sample = %v, want 0", got)
	}
}

func TestMetricNames(t *testing.T) {
	tests := []struct {
		m    Metric
		want string
	}{
		{m: NewConvergence(), want: "best_cost"},
		{m: NewSpread(), want: "spread"},
		{m: NewStagnation(), want: "stagnation"},
		{m: NewRate(), want: "convergence_rate"},
	}

	for _, tt := range tests {
		if got := tt.m.Name(); got != tt.want {
			t.Errorf("Name() = %q, want %q", got, tt.want)
		}
	}
}
