package swarm_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ikswarm/internal/swarm"
)

func TestSwarmSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swarm Suite")
}

// bowlObjective is a smooth convex cost with its minimum at the origin.
type bowlObjective struct{ dim int }

func (b *bowlObjective) Name() string { return "bowl" }
func (b *bowlObjective) Dim() int     { return b.dim }

func (b *bowlObjective) Evaluate(positions []swarm.Vector) ([]float64, error) {
	costs := make([]float64, len(positions))
	for i, p := range positions {
		s := 0.0
		for _, x := range p {
			s += x * x
		}
		costs[i] = s
	}
	return costs, nil
}

func bowlConfig() swarm.Config {
	cfg := swarm.DefaultConfig()
	cfg.Dim = 3
	cfg.Bounds = swarm.Bounds{
		Lower: swarm.Vector{-5, -5, -5},
		Upper: swarm.Vector{5, 5, 5},
	}
	cfg.Iterations = 300
	cfg.RandSeed = 11
	cfg.SeedPosition = swarm.Vector{4, -3, 2.5}
	return cfg
}

var _ = Describe("Optimizer", func() {
	var (
		obj *bowlObjective
		cfg swarm.Config
	)

	BeforeEach(func() {
		obj = &bowlObjective{dim: 3}
		cfg = bowlConfig()
	})

	It("converges on a smooth bowl", func() {
		res, err := swarm.Optimize(context.Background(), obj, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.BestCost).To(BeNumerically("<", 1e-6))
		Expect(res.Iterations).To(Equal(cfg.Iterations))
		Expect(cfg.Bounds.Contains(res.BestPosition)).To(BeTrue())
	})

	It("repeats bit for bit from the same seed", func() {
		first, err := swarm.Optimize(context.Background(), obj, cfg)
		Expect(err).NotTo(HaveOccurred())
		second, err := swarm.Optimize(context.Background(), obj, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("never worsens the recorded best between iterations", func() {
		res, err := swarm.Optimize(context.Background(), obj, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.History).To(HaveLen(res.Iterations))
		for i := 1; i < len(res.History); i++ {
			Expect(res.History[i]).To(BeNumerically("<=", res.History[i-1]))
		}
		Expect(res.History[len(res.History)-1]).To(Equal(res.BestCost))
	})

	It("rejects a swarm without particles", func() {
		cfg.Particles = 0
		res, err := swarm.Optimize(context.Background(), obj, cfg)
		Expect(res).To(BeNil())
		Expect(err).To(MatchError(swarm.ErrInvalidConfig))
	})

	It("stops as soon as the tolerance is met", func() {
		cfg.SeedPosition = swarm.Vector{0, 0, 0}
		cfg.Tolerance = 1e-9
		res, err := swarm.Optimize(context.Background(), obj, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Iterations).To(Equal(1))
		Expect(res.Evaluations).To(Equal(cfg.Particles))
		Expect(res.BestCost).To(BeZero())
	})
})
