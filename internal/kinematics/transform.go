package kinematics

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// dhTransform builds the homogeneous transform of one joint frame relative
// to the previous: a rotation theta about z, a translation d along z, a
// translation a along the rotated x, and a twist alpha about that x.
func dhTransform(theta, d, a, alpha float64) *mat.Dense {
	st, ct := math.Sincos(theta)
	sa, ca := math.Sincos(alpha)
	return mat.NewDense(4, 4, []float64{
		ct, -st * ca, st * sa, a * ct,
		st, ct * ca, -ct * sa, a * st,
		0, sa, ca, d,
		0, 0, 0, 1,
	})
}

func identity() *mat.Dense {
	return mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}
