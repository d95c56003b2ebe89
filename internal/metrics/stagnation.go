package metrics

import "github.com/san-kum/ikswarm/internal/swarm"

// Stagnation measures the longest run of consecutive iterations without an
// improvement of the global best.
type Stagnation struct {
	name    string
	current int
	longest int
}

func NewStagnation() *Stagnation {
	return &Stagnation{name: "stagnation"}
}

func (s *Stagnation) Name() string { return s.name }

func (s *Stagnation) OnIteration(stats swarm.IterationStats) {
	if stats.Improved {
		s.current = 0
		return
	}
	s.current++
	if s.current > s.longest {
		s.longest = s.current
	}
}

func (s *Stagnation) Value() float64 { return float64(s.longest) }

func (s *Stagnation) Reset() {
	s.current = 0
	s.longest = 0
}
