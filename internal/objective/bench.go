package objective

import (
	"math"

	"github.com/san-kum/ikswarm/internal/swarm"
)

// Benchmark is a standard test function with its canonical search domain
// and known global minimum value.
type Benchmark struct {
	*Func
	Bounds  swarm.Bounds
	Optimum float64
}

func uniformBounds(dim int, half float64) swarm.Bounds {
	lower := make(swarm.Vector, dim)
	upper := make(swarm.Vector, dim)
	for d := 0; d < dim; d++ {
		lower[d] = -half
		upper[d] = half
	}
	return swarm.Bounds{Lower: lower, Upper: upper}
}

// Sphere is sum x_i^2, minimized at the origin.
func Sphere(dim int) *Benchmark {
	return &Benchmark{
		Func: NewFunc("sphere", dim, func(v swarm.Vector) float64 {
			sum := 0.0
			for _, x := range v {
				sum += x * x
			}
			return sum
		}),
		Bounds:  uniformBounds(dim, 5.12),
		Optimum: 0,
	}
}

// Rosenbrock is the banana valley, minimized at (1, ..., 1).
func Rosenbrock(dim int) *Benchmark {
	return &Benchmark{
		Func: NewFunc("rosenbrock", dim, func(v swarm.Vector) float64 {
			sum := 0.0
			for i := 0; i < len(v)-1; i++ {
				a := v[i+1] - v[i]*v[i]
				b := 1 - v[i]
				sum += 100*a*a + b*b
			}
			return sum
		}),
		Bounds:  uniformBounds(dim, 2.048),
		Optimum: 0,
	}
}

// Rastrigin is highly multimodal with a regular lattice of local minima,
// minimized at the origin.
func Rastrigin(dim int) *Benchmark {
	return &Benchmark{
		Func: NewFunc("rastrigin", dim, func(v swarm.Vector) float64 {
			sum := 10 * float64(len(v))
			for _, x := range v {
				sum += x*x - 10*math.Cos(2*math.Pi*x)
			}
			return sum
		}),
		Bounds:  uniformBounds(dim, 5.12),
		Optimum: 0,
	}
}

// Ackley has a nearly flat outer region and a deep hole at the origin.
func Ackley(dim int) *Benchmark {
	return &Benchmark{
		Func: NewFunc("ackley", dim, func(v swarm.Vector) float64 {
			n := float64(len(v))
			sumSq, sumCos := 0.0, 0.0
			for _, x := range v {
				sumSq += x * x
				sumCos += math.Cos(2 * math.Pi * x)
			}
			return -20*math.Exp(-0.2*math.Sqrt(sumSq/n)) - math.Exp(sumCos/n) + 20 + math.E
		}),
		Bounds:  uniformBounds(dim, 32.768),
		Optimum: 0,
	}
}

// Griewank combines a quadratic bowl with an oscillatory product term,
// minimized at the origin.
func Griewank(dim int) *Benchmark {
	return &Benchmark{
		Func: NewFunc("griewank", dim, func(v swarm.Vector) float64 {
			sum, prod := 0.0, 1.0
			for i, x := range v {
				sum += x * x / 4000
				prod *= math.Cos(x / math.Sqrt(float64(i+1)))
			}
			return sum + 1 - prod
		}),
		Bounds:  uniformBounds(dim, 600),
		Optimum: 0,
	}
}

// Eggholder is a difficult 2D landscape whose global minimum of about
// -959.6407 sits at (512, 404.2319), on the boundary of the domain.
func Eggholder() *Benchmark {
	return &Benchmark{
		Func: NewFunc("eggholder", 2, func(v swarm.Vector) float64 {
			x, y := v[0], v[1]
			return -(y+47)*math.Sin(math.Sqrt(math.Abs(x/2+y+47))) -
				x*math.Sin(math.Sqrt(math.Abs(x-y-47)))
		}),
		Bounds:  uniformBounds(2, 512),
		Optimum: -959.6407,
	}
}
