package objective

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/ikswarm/internal/swarm"
)

func TestBenchmarkValues(t *testing.T) {
	tests := []struct {
		name  string
		bench *Benchmark
		at    swarm.Vector
		want  float64
		tol   float64
	}{
		{name: "sphere away from origin", bench: Sphere(3), at: swarm.Vector{1, 2, 3}, want: 14},
		{name: "sphere at origin", bench: Sphere(3), at: swarm.Vector{0, 0, 0}, want: 0},
		{name: "rosenbrock at minimum", bench: Rosenbrock(3), at: swarm.Vector{1, 1, 1}, want: 0},
		{name: "rosenbrock at origin", bench: Rosenbrock(2), at: swarm.Vector{0, 0}, want: 1},
		{name: "rastrigin at origin", bench: Rastrigin(3), at: swarm.Vector{0, 0, 0}, want: 0},
		{name: "rastrigin on the lattice", bench: Rastrigin(2), at: swarm.Vector{1, 1}, want: 2, tol: 1e-12},
		{name: "ackley off origin", bench: Ackley(2), at: swarm.Vector{1, 1}, want: 3.6253849384403627, tol: 1e-12},
		{name: "griewank at origin", bench: Griewank(3), at: swarm.Vector{0, 0, 0}, want: 0},
		{name: "griewank off origin", bench: Griewank(2), at: swarm.Vector{100, 0}, want: 2.637681127712316, tol: 1e-12},
		{name: "eggholder at minimum", bench: Eggholder(), at: swarm.Vector{512, 404.2319}, want: -959.6406627106155, tol: 1e-9},
		{name: "eggholder at origin", bench: Eggholder(), at: swarm.Vector{0, 0}, want: -25.460337185286313, tol: 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			costs, err := tt.bench.Evaluate([]swarm.Vector{tt.at})
			if err != nil {
				t.Fatalf("Evaluate(%v): %v", tt.at, err)
			}
			if math.Abs(costs[0]-tt.want) > tt.tol {
				t.Errorf("%s(%v) = %v, want %v", tt.bench.Name(), tt.at, costs[0], tt.want)
			}
		})
	}
}

func TestAckleyNearZeroAtOrigin(t *testing.T) {
	b := Ackley(3)
	costs, err := b.Evaluate([]swarm.Vector{{0, 0, 0}})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(costs[0]) > 1e-12 {
		t.Errorf("ackley(0) = %v, want ~0", costs[0])
	}
}

func TestBenchmarkDomains(t *testing.T) {
	tests := []struct {
		name string
		b    *Benchmark
		dim  int
		half float64
	}{
		{name: "sphere", b: Sphere(3), dim: 3, half: 5.12},
		{name: "rosenbrock", b: Rosenbrock(4), dim: 4, half: 2.048},
		{name: "rastrigin", b: Rastrigin(2), dim: 2, half: 5.12},
		{name: "ackley", b: Ackley(5), dim: 5, half: 32.768},
		{name: "griewank", b: Griewank(3), dim: 3, half: 600},
		{name: "eggholder", b: Eggholder(), dim: 2, half: 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Dim(); got != tt.dim {
				t.Errorf("Dim() = %d, want %d", got, tt.dim)
			}
			if got := tt.b.Bounds.Dim(); got != tt.dim {
				t.Errorf("Bounds.Dim() = %d, want %d", got, tt.dim)
			}
			for d := 0; d < tt.dim; d++ {
				if tt.b.Bounds.Lower[d] != -tt.half || tt.b.Bounds.Upper[d] != tt.half {
					t.Errorf("bounds[%d] = [%v, %v], want [%v, %v]",
						d, tt.b.Bounds.Lower[d], tt.b.Bounds.Upper[d], -tt.half, tt.half)
				}
			}
		})
	}
}

func TestOptimizeBenchmarks(t *testing.T) {
	tests := []struct {
		bench *Benchmark
		seed  swarm.Vector
		rand  int64
		tol   float64
	}{
		{bench: Sphere(3), seed: swarm.Vector{3, -2, 1}, rand: 7, tol: 1e-9},
		{bench: Rosenbrock(2), seed: swarm.Vector{-1.2, 1}, rand: 13, tol: 1e-4},
		// Rastrigin runs may settle one lattice cell away from the origin.
		{bench: Rastrigin(2), seed: swarm.Vector{2.2, -1.3}, rand: 29, tol: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.bench.Name(), func(t *testing.T) {
			cfg := swarm.DefaultConfig()
			cfg.Dim = tt.bench.Dim()
			cfg.Bounds = tt.bench.Bounds
			cfg.SeedPosition = tt.seed
			cfg.RandSeed = tt.rand

			res, err := swarm.Optimize(context.Background(), tt.bench, cfg)
			if err != nil {
				t.Fatalf("optimize failed: %v", err)
			}
			if res.BestCost > tt.bench.Optimum+tt.tol {
				t.Errorf("best cost %v not within %v of optimum %v", res.BestCost, tt.tol, tt.bench.Optimum)
			}
		})
	}
}

func TestEggholderOptimum(t *testing.T) {
	b := Eggholder()
	if b.Optimum != -959.6407 {
		t.Errorf("Optimum = %v, want -959.6407", b.Optimum)
	}

	costs, err := b.Evaluate([]swarm.Vector{{512, 404.2319}})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if math.Abs(costs[0]-b.Optimum) > 1e-3 {
		t.Errorf("value at the known minimum = %v, Optimum = %v", costs[0], b.Optimum)
	}
}
