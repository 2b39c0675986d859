/*package fields provides the position dependent temperature and drift
velocity evaluators consumed by the relativistic momentum distributions.

Temperatures are dimensionless, theta = k T / (m c^2), and drift velocities
are fractions of the speed of light directed along a fixed coordinate axis.
Evaluators are small value types: they can be copied freely, hold no
references to mutable state, and may be evaluated from many goroutines at
once. They do not range check the values they return. The samplers that
consume them do, since a profile that is healthy at one point may be
unphysical at another.
*/
package fields

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/gopic/interpolate"
	"github.com/phil-mansfield/gopic/parse"
)

// An Axis selects the coordinate a tabulated profile is a function of. The
// Radius axis is the spherical radius sqrt(x^2 + y^2 + z^2).
type Axis int

const (
	X Axis = iota
	Y
	Z
	Radius
)

func (a Axis) coordinate(x, y, z float64) float64 {
	switch a {
	case X:
		return x
	case Y:
		return y
	case Z:
		return z
	case Radius:
		return math.Sqrt(x*x + y*y + z*z)
	}
	panic(fmt.Sprintf("Unrecognized Axis %d.", int(a)))
}

// A Profile is a one dimensional tabulated function of a single spatial
// coordinate. Lookups interpolate linearly between table rows and clamp to
// the edge rows outside the tabulated range.
type Profile struct {
	axis Axis
	lin  *interpolate.Linear
}

// NewProfile creates a profile over the given axis from a table of strictly
// increasing points, xs, with the values vals.
func NewProfile(axis Axis, xs, vals []float64) Profile {
	return Profile{axis, interpolate.NewLinear(xs, vals)}
}

// ReadProfile reads a profile over the given axis from the first two columns
// of the named table file, abscissa first.
func ReadProfile(fname string, axis Axis) (Profile, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return Profile{}, err
	}

	xs, vals := cols[0], cols[1]
	if len(xs) < 2 {
		return Profile{}, fmt.Errorf(
			"Profile table %s has %d rows, but needs at least 2.",
			fname, len(xs))
	}
	for i := 0; i < len(xs)-1; i++ {
		if xs[i+1] <= xs[i] {
			return Profile{}, fmt.Errorf(
				"Profile table %s is not sorted on its first column.", fname)
		}
	}

	return NewProfile(axis, xs, vals), nil
}

func (p Profile) at(x, y, z float64) float64 {
	return p.lin.Eval(p.axis.coordinate(x, y, z))
}

type profileKind int

const (
	constantKind profileKind = iota
	parsedKind
	tabulatedKind
)

// A Temperature evaluates the local dimensionless temperature at a point.
type Temperature struct {
	kind profileKind
	c    float64
	expr parse.Expr
	tab  Profile
}

// ConstantTemperature returns the spatially uniform temperature theta.
func ConstantTemperature(theta float64) Temperature {
	return Temperature{kind: constantKind, c: theta}
}

// ParsedTemperature returns a temperature that evaluates ex at each point.
func ParsedTemperature(ex parse.Expr) Temperature {
	return Temperature{kind: parsedKind, expr: ex}
}

// TabulatedTemperature returns a temperature that looks each point up in p.
func TabulatedTemperature(p Profile) Temperature {
	return Temperature{kind: tabulatedKind, tab: p}
}

// At returns the temperature at (x, y, z).
func (t Temperature) At(x, y, z float64) float64 {
	switch t.kind {
	case constantKind:
		return t.c
	case parsedKind:
		return t.expr.Eval(x, y, z)
	default:
		return t.tab.at(x, y, z)
	}
}

// A Velocity evaluates the local bulk drift velocity at a point. The
// velocity is a signed fraction of the speed of light along a fixed
// coordinate axis. The zero Velocity is zero everywhere and points along x.
type Velocity struct {
	kind profileKind
	dir  int
	sign float64
	c    float64
	expr parse.Expr
	tab  Profile
}

// ConstantVelocity returns the uniform velocity beta along the axis dir,
// where dir is 0, 1, or 2 for x, y, or z.
func ConstantVelocity(beta float64, dir int) Velocity {
	checkDir(dir)
	return Velocity{kind: constantKind, dir: dir, sign: 1, c: beta}
}

// ParsedVelocity returns a velocity along the axis dir that evaluates ex at
// each point.
func ParsedVelocity(ex parse.Expr, dir int) Velocity {
	checkDir(dir)
	return Velocity{kind: parsedKind, dir: dir, sign: 1, expr: ex}
}

// TabulatedVelocity returns a velocity along the axis dir that looks each
// point up in p.
func TabulatedVelocity(p Profile, dir int) Velocity {
	checkDir(dir)
	return Velocity{kind: tabulatedKind, dir: dir, sign: 1, tab: p}
}

// Reversed returns v pointed along the negative of its axis.
func (v Velocity) Reversed() Velocity {
	v.sign = -v.sign
	return v
}

// At returns the signed velocity at (x, y, z).
func (v Velocity) At(x, y, z float64) float64 {
	switch v.kind {
	case constantKind:
		return v.sign * v.c
	case parsedKind:
		return v.sign * v.expr.Eval(x, y, z)
	default:
		return v.sign * v.tab.at(x, y, z)
	}
}

// Direction returns the index of the axis the velocity points along.
func (v Velocity) Direction() int {
	return v.dir
}

func checkDir(dir int) {
	if dir < 0 || dir > 2 {
		panic(fmt.Sprintf("Direction %d is not one of the axes 0, 1, or 2.",
			dir))
	}
}
