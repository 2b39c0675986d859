/*package interpolate provides the table interpolators used to evaluate
tabulated temperature and drift velocity profiles.*/
package interpolate

import (
	"math"
)

// searcher locates the table bin that brackets a query point, either with
// O(1) arithmetic for uniformly spaced points or by bisection for general
// sorted points.
type searcher struct {
	xs      []float64
	x0, dx  float64
	n       int
	uniform bool
}

func (s *searcher) init(xs []float64) {
	s.xs = xs
	s.n = len(xs)
	s.uniform = false
}

func (s *searcher) unifInit(x0, dx float64, n int) {
	s.x0, s.dx = x0, dx
	s.n = n
	s.uniform = true
}

// search returns the index i with val(i) <= x < val(i+1), clamped to the
// valid bin range [0, n-2].
func (s *searcher) search(x float64) int {
	if s.uniform {
		i := int(math.Floor((x - s.x0) / s.dx))
		if i < 0 {
			i = 0
		}
		if i > s.n-2 {
			i = s.n - 2
		}
		return i
	}

	lo, hi := 0, s.n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if s.xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func (s *searcher) val(i int) float64 {
	if s.uniform {
		return s.x0 + s.dx*float64(i)
	}
	return s.xs[i]
}

// Linear is a linear interpolator.
type Linear struct {
	xs   searcher
	vals []float64
}

// NewLinear creates a linear interpolator for a sequence of strictly
// increasing points, xs, which take on the values given by vals.
//
// Lookups occur in O(log |xs|).
func NewLinear(xs, vals []float64) *Linear {
	if len(xs) != len(vals) {
		panic("Length of input slices are not equal.")
	}
	if len(xs) < 2 {
		panic("Interpolation tables need at least two points.")
	}
	for i := 0; i < len(xs)-1; i++ {
		if xs[i+1] <= xs[i] {
			panic("Interpolation table x values are not strictly increasing.")
		}
	}

	lin := &Linear{}
	lin.xs.init(xs)
	lin.vals = vals
	return lin
}

// NewUniformLinear creates a linear interpolator for a uniformly spaced
// sequence of x values starting at x0 and separated by dx, whose values are
// given by vals.
//
// Lookups are O(1).
func NewUniformLinear(x0, dx float64, vals []float64) *Linear {
	if len(vals) < 2 {
		panic("Interpolation tables need at least two points.")
	}
	if dx <= 0 {
		panic("Point separations must be positive.")
	}

	lin := &Linear{}
	lin.xs.unifInit(x0, dx, len(vals))
	lin.vals = vals
	return lin
}

// Eval returns the interpolated value at x. Points outside the table are
// clamped to the nearest edge value, so profile lookups stay defined over
// the whole simulation domain.
func (lin *Linear) Eval(x float64) float64 {
	n := lin.xs.n
	if x <= lin.xs.val(0) {
		return lin.vals[0]
	}
	if x >= lin.xs.val(n-1) {
		return lin.vals[n-1]
	}

	i1 := lin.xs.search(x)
	i2 := i1 + 1
	x1, x2 := lin.xs.val(i1), lin.xs.val(i2)
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i, x := range xs {
		out[0][i] = lin.Eval(x)
	}
	return out[0]
}
