package metrics

import "github.com/san-kum/ikswarm/internal/swarm"

// Convergence tracks the final best cost and the iteration of the last
// improvement.
type Convergence struct {
	name         string
	best         float64
	lastImproved int
	iterations   int
}

func NewConvergence() *Convergence {
	return &Convergence{name: "best_cost", lastImproved: -1}
}

func (c *Convergence) Name() string { return c.name }

func (c *Convergence) OnIteration(s swarm.IterationStats) {
	c.best = s.BestCost
	c.iterations++
	if s.Improved {
		c.lastImproved = s.Iteration
	}
}

func (c *Convergence) Value() float64 { return c.best }

// LastImproved is the iteration index of the most recent improvement, or -1
// if nothing was observed.
func (c *Convergence) LastImproved() int { return c.lastImproved }

func (c *Convergence) Iterations() int { return c.iterations }

func (c *Convergence) Reset() {
	c.best = 0
	c.lastImproved = -1
	c.iterations = 0
}
