package objective

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/ikswarm/internal/kinematics"
	"github.com/san-kum/ikswarm/internal/swarm"
)

// Reach scores a joint configuration by the Euclidean distance between the
// chain's end effector and a fixed target. Costs preserve input order and
// no position's evaluation depends on any other, so the batch may run in
// parallel; Evaluate returns only after the whole batch is done.
type Reach struct {
	chain    *kinematics.Chain
	target   Target
	parallel bool
}

func NewReach(chain *kinematics.Chain, target Target, parallel bool) *Reach {
	return &Reach{chain: chain, target: target, parallel: parallel}
}

func (r *Reach) Name() string { return "reach:" + r.chain.Name() }

func (r *Reach) Dim() int { return r.chain.Dim() }

func (r *Reach) Target() Target { return r.target }

func (r *Reach) Evaluate(positions []swarm.Vector) ([]float64, error) {
	costs := make([]float64, len(positions))

	if !r.parallel || len(positions) < 2 {
		for i, q := range positions {
			c, err := r.cost(q)
			if err != nil {
				return nil, err
			}
			costs[i] = c
		}
		return costs, nil
	}

	var g errgroup.Group
	for i, q := range positions {
		g.Go(func() error {
			c, err := r.cost(q)
			if err != nil {
				return err
			}
			costs[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return costs, nil
}

func (r *Reach) cost(q swarm.Vector) (float64, error) {
	pos, err := r.chain.EndEffector(q)
	if err != nil {
		return 0, err
	}
	return floats.Distance(pos[:], r.target[:], 2), nil
}
