package metrics

import "github.com/san-kum/ikswarm/internal/swarm"

// Spread reports the swarm dispersion at the end of a run: the latest mean
// particle distance from the global best position.
type Spread struct {
	name   string
	latest float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) OnIteration(stats swarm.IterationStats) {
	s.latest = stats.Spread
}

func (s *Spread) Value() float64 { return s.latest }

func (s *Spread) Reset() { s.latest = 0 }
