package kinematics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

type JointKind int

const (
	Revolute JointKind = iota
	Prismatic
)

func (k JointKind) String() string {
	switch k {
	case Revolute:
		return "revolute"
	case Prismatic:
		return "prismatic"
	default:
		return fmt.Sprintf("JointKind(%d)", int(k))
	}
}

// ParseKind maps a config string onto a joint kind.
func ParseKind(s string) (JointKind, error) {
	switch s {
	case "revolute":
		return Revolute, nil
	case "prismatic":
		return Prismatic, nil
	default:
		return 0, fmt.Errorf("%w: unknown joint kind %q", ErrBadGeometry, s)
	}
}

// Joint is one degree of freedom with fixed Denavit-Hartenberg geometry.
// For a revolute joint the parameter is the rotation angle and D is the
// fixed link offset. For a prismatic joint the parameter replaces D, the
// rotation is fixed at zero, and D records the nominal extension used as
// the home value.
type Joint struct {
	Kind  JointKind
	D     float64
	A     float64
	Alpha float64
	Min   float64
	Max   float64
}

func (j Joint) transform(q float64) *mat.Dense {
	if j.Kind == Prismatic {
		return dhTransform(0, q, j.A, j.Alpha)
	}
	return dhTransform(q, j.D, j.A, j.Alpha)
}

// Chain is an immutable serial kinematic chain.
type Chain struct {
	name   string
	joints []Joint
}

func New(name string, joints []Joint) (*Chain, error) {
	if len(joints) == 0 {
		return nil, fmt.Errorf("%w: chain %q has no joints", ErrBadGeometry, name)
	}
	for i, j := range joints {
		for _, v := range []float64{j.D, j.A, j.Alpha, j.Min, j.Max} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: joint %d of chain %q has a non-finite parameter", ErrBadGeometry, i, name)
			}
		}
		if j.Min > j.Max {
			return nil, fmt.Errorf("%w: joint %d of chain %q has limits [%v, %v]", ErrBadGeometry, i, name, j.Min, j.Max)
		}
	}
	c := &Chain{name: name, joints: make([]Joint, len(joints))}
	copy(c.joints, joints)
	return c, nil
}

func (c *Chain) Name() string { return c.name }

// Dim is the number of degrees of freedom.
func (c *Chain) Dim() int { return len(c.joints) }

func (c *Chain) Joints() []Joint {
	joints := make([]Joint, len(c.joints))
	copy(joints, c.joints)
	return joints
}

// Bounds assembles the joint limits into per-dimension lower/upper vectors.
func (c *Chain) Bounds() (lower, upper []float64) {
	lower = make([]float64, len(c.joints))
	upper = make([]float64, len(c.joints))
	for i, j := range c.joints {
		lower[i] = j.Min
		upper[i] = j.Max
	}
	return lower, upper
}

// Home is the reference configuration: zero for revolute joints and the
// nominal extension D for prismatic joints, clamped into the joint limits.
func (c *Chain) Home() []float64 {
	home := make([]float64, len(c.joints))
	for i, j := range c.joints {
		if j.Kind == Prismatic {
			home[i] = j.D
		}
		if home[i] < j.Min {
			home[i] = j.Min
		}
		if home[i] > j.Max {
			home[i] = j.Max
		}
	}
	return home
}

// EndEffector evaluates the forward kinematics of q: the ordered product of
// the per-joint transforms applied to the identity frame, returning the
// translation component of the final frame.
func (c *Chain) EndEffector(q []float64) ([3]float64, error) {
	if len(q) != len(c.joints) {
		return [3]float64{}, fmt.Errorf("%w: chain %q has %d joints, got %d parameters", ErrDimensionMismatch, c.name, len(c.joints), len(q))
	}
	for i, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return [3]float64{}, fmt.Errorf("%w: parameter %d is %v", ErrNonFinite, i, v)
		}
	}

	frame := identity()
	scratch := mat.NewDense(4, 4, nil)
	for i, j := range c.joints {
		scratch.Mul(frame, j.transform(q[i]))
		frame, scratch = scratch, frame
	}
	return [3]float64{frame.At(0, 3), frame.At(1, 3), frame.At(2, 3)}, nil
}
