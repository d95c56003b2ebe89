package kinematics

import (
	"fmt"
	"math"
)

// NewExtensionArm returns the six degree of freedom lab arm: five revolute
// joints around a prismatic third joint that extends the forearm between 1
// and 3 units. All link offsets are 3 and all link lengths are zero. At the
// home configuration [0 0 3 0 0 0] the end effector sits at (0, 9, 3).
func NewExtensionArm() *Chain {
	return &Chain{
		name: "extension-arm",
		joints: []Joint{
			{Kind: Revolute, D: 3, Alpha: -math.Pi / 2, Min: -math.Pi, Max: math.Pi},
			{Kind: Revolute, D: 3, Alpha: 0, Min: -math.Pi / 2, Max: math.Pi / 2},
			{Kind: Prismatic, D: 3, Alpha: math.Pi / 2, Min: 1, Max: 3},
			{Kind: Revolute, D: 3, Alpha: -math.Pi / 2, Min: -math.Pi, Max: math.Pi},
			{Kind: Revolute, D: 3, Alpha: -math.Pi / 2, Min: -5 * math.Pi / 36, Max: 5 * math.Pi / 36},
			{Kind: Revolute, D: 3, Alpha: 0, Min: -math.Pi, Max: math.Pi},
		},
	}
}

// NewPlanarArm returns an n-link planar arm with unit link lengths. All
// motion stays in the z=0 plane, which makes it a convenient small chain
// for demos and tests.
func NewPlanarArm(n int) *Chain {
	if n < 1 {
		n = 1
	}
	joints := make([]Joint, n)
	for i := range joints {
		joints[i] = Joint{Kind: Revolute, A: 1, Min: -math.Pi, Max: math.Pi}
	}
	return &Chain{name: fmt.Sprintf("planar-%dr", n), joints: joints}
}
