package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/ikswarm/internal/swarm"
)

// Rate estimates the convergence rate as the least-squares slope of
// log10(best cost) against the iteration index. A strongly negative value
// means fast geometric convergence; zero means stagnation. Iterations whose
// best cost is not positive are left out of the fit.
type Rate struct {
	name  string
	iters []float64
	logs  []float64
}

func NewRate() *Rate {
	return &Rate{name: "convergence_rate"}
}

func (r *Rate) Name() string { return r.name }

func (r *Rate) OnIteration(s swarm.IterationStats) {
	if s.BestCost <= 0 || math.IsInf(s.BestCost, 0) {
		return
	}
	r.iters = append(r.iters, float64(s.Iteration))
	r.logs = append(r.logs, math.Log10(s.BestCost))
}

func (r *Rate) Value() float64 {
	if len(r.iters) < 2 || r.iters[0] == r.iters[len(r.iters)-1] {
		return 0
	}
	_, slope := stat.LinearRegression(r.iters, r.logs, nil, false)
	if math.IsNaN(slope) {
		return 0
	}
	return slope
}

func (r *Rate) Reset() {
	r.iters = r.iters[:0]
	r.logs = r.logs[:0]
}
