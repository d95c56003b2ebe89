package solver

import (
	"fmt"
	"sort"

	"github.com/san-kum/ikswarm/internal/kinematics"
	"github.com/san-kum/ikswarm/internal/objective"
)

// Registry maps names onto chain and benchmark constructors.
type Registry struct {
	chains     map[string]func() *kinematics.Chain
	benchmarks map[string]func(dim int) *objective.Benchmark
}

func NewRegistry() *Registry {
	r := &Registry{
		chains:     make(map[string]func() *kinematics.Chain),
		benchmarks: make(map[string]func(int) *objective.Benchmark),
	}

	r.chains["extension-arm"] = kinematics.NewExtensionArm
	r.chains["planar-3r"] = func() *kinematics.Chain { return kinematics.NewPlanarArm(3) }

	r.benchmarks["sphere"] = objective.Sphere
	r.benchmarks["rosenbrock"] = objective.Rosenbrock
	r.benchmarks["rastrigin"] = objective.Rastrigin
	r.benchmarks["ackley"] = objective.Ackley
	r.benchmarks["griewank"] = objective.Griewank
	r.benchmarks["eggholder"] = func(int) *objective.Benchmark { return objective.Eggholder() }

	return r
}

func (r *Registry) GetChain(name string) (*kinematics.Chain, error) {
	fn, ok := r.chains[name]
	if !ok {
		return nil, fmt.Errorf("unknown chain: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListChains() []string {
	names := make([]string, 0, len(r.chains))
	for name := range r.chains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetBenchmark builds a named benchmark objective. Fixed-dimension
// functions ignore the dim argument.
func (r *Registry) GetBenchmark(name string, dim int) (*objective.Benchmark, error) {
	fn, ok := r.benchmarks[name]
	if !ok {
		return nil, fmt.Errorf("unknown benchmark: %s", name)
	}
	if dim < 1 {
		return nil, fmt.Errorf("benchmark dimension must be positive, got %d", dim)
	}
	return fn(dim), nil
}

func (r *Registry) ListBenchmarks() []string {
	names := make([]string, 0, len(r.benchmarks))
	for name := range r.benchmarks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
