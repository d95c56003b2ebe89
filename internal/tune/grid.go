// Package tune searches hyperparameter grids for the swarm settings that
// solve the configured problem most accurately.
package tune

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/san-kum/ikswarm/internal/config"
	"github.com/san-kum/ikswarm/internal/solver"
)

// Grid lists the candidate values for each swarm coefficient. Every
// combination is solved once with a shared seed so samples are comparable;
// a zero base seed is pinned to one time-based seed for the whole search.
type Grid struct {
	Inertia   []float64
	Cognitive []float64
	Social    []float64
}

func DefaultGrid() *Grid {
	return &Grid{
		Inertia:   []float64{0.3, 0.5, 0.7, 0.9},
		Cognitive: []float64{1.0, 1.5, 2.0},
		Social:    []float64{1.0, 1.5, 2.0},
	}
}

func (g *Grid) Size() int {
	return len(g.Inertia) * len(g.Cognitive) * len(g.Social)
}

type Sample struct {
	Inertia    float64
	Cognitive  float64
	Social     float64
	BestCost   float64
	Iterations int
}

// Search solves the configured problem at every grid point and returns the
// winning sample plus all samples sorted best first.
func Search(ctx context.Context, grid *Grid, base *config.Config, registry *solver.Registry) (Sample, []Sample, error) {
	if grid.Size() == 0 {
		return Sample{}, nil, fmt.Errorf("tune: empty grid")
	}

	base = base.Clone()
	if base.Swarm.Seed == 0 {
		base.Swarm.Seed = time.Now().UnixNano()
	}

	best := Sample{BestCost: math.Inf(1)}
	samples := make([]Sample, 0, grid.Size())
	done := 0

	for _, w := range grid.Inertia {
		for _, c1 := range grid.Cognitive {
			for _, c2 := range grid.Social {
				select {
				case <-ctx.Done():
					return best, samples, ctx.Err()
				default:
				}

				cfg := base.Clone()
				cfg.Swarm.Inertia = w
				cfg.Swarm.Cognitive = c1
				cfg.Swarm.Social = c2

				sol, err := solver.New(cfg, registry).Solve(ctx)
				if err != nil {
					return best, samples, fmt.Errorf("tune: w=%.2f c1=%.2f c2=%.2f: %w", w, c1, c2, err)
				}

				s := Sample{
					Inertia:    w,
					Cognitive:  c1,
					Social:     c2,
					BestCost:   sol.BestCost,
					Iterations: sol.Iterations,
				}
				samples = append(samples, s)
				if s.BestCost < best.BestCost {
					best = s
				}

				done++
				fmt.Printf("tune %d/%d: w=%.2f c1=%.2f c2=%.2f cost=%.3e\n",
					done, grid.Size(), w, c1, c2, sol.BestCost)
			}
		}
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].BestCost < samples[j].BestCost })
	return best, samples, nil
}
