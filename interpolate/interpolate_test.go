package interpolate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func line(x float64) float64 {
	return 2*x - 3
}

func TestLinear(t *testing.T) {
	xs := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3}
	vals := make([]float64, len(xs))
	for i, x := range xs {
		vals[i] = line(x)
	}

	lin := NewLinear(xs, vals)
	unif := NewUniformLinear(0, 0.5, vals)

	// points on the grid should work
	assert.Equal(t, line(1.5), lin.Eval(1.5), "on grid")
	assert.Equal(t, line(0.0), lin.Eval(0.0), "left edge")
	assert.Equal(t, line(3.0), lin.Eval(3.0), "right edge")
	// points between grid points should also work
	assert.InDelta(t, line(0.75), lin.Eval(0.75), 1e-12, "between points")
	assert.InDelta(t, line(2.9), lin.Eval(2.9), 1e-12, "near right edge")
	// both searchers should agree
	for _, x := range []float64{0, 0.1, 0.5, 1.25, 2.99, 3} {
		assert.InDelta(t, lin.Eval(x), unif.Eval(x), 1e-12, "uniform")
	}
}

func TestLinearClamps(t *testing.T) {
	lin := NewLinear([]float64{1, 2, 4}, []float64{10, 20, 15})

	assert.Equal(t, 10.0, lin.Eval(0.5), "below range")
	assert.Equal(t, 10.0, lin.Eval(-100), "far below range")
	assert.Equal(t, 15.0, lin.Eval(4.1), "above range")
	assert.Equal(t, 15.0, lin.Eval(1e10), "far above range")
}

func TestLinearNonUniformSpacing(t *testing.T) {
	xs := []float64{0, 1, 10, 100}
	vals := []float64{0, 2, 20, 200}
	lin := NewLinear(xs, vals)

	table := []struct{ x, want float64 }{
		{0.5, 1}, {5.5, 11}, {55, 110}, {1, 2}, {10, 20},
	}
	for i, test := range table {
		if got := lin.Eval(test.x); got != test.want {
			t.Errorf("%d) Expected Eval(%g) = %g, got %g",
				i, test.x, test.want, got)
		}
	}
}

func TestEvalAll(t *testing.T) {
	lin := NewUniformLinear(0, 1, []float64{0, 1, 4, 9})
	xs := []float64{-1, 0.5, 2.5, 7}

	out := lin.EvalAll(xs)
	assert.Equal(t, []float64{0, 0.5, 6.5, 9}, out)

	buf := make([]float64, len(xs))
	out = lin.EvalAll(xs, buf)
	assert.Equal(t, []float64{0, 0.5, 6.5, 9}, buf)
	assert.Same(t, &buf[0], &out[0], "output buffer reused")
}

func TestConstructorPanics(t *testing.T) {
	assert.Panics(t, func() { NewLinear([]float64{1, 2}, []float64{1}) },
		"length mismatch")
	assert.Panics(t, func() { NewLinear([]float64{1}, []float64{1}) },
		"too short")
	assert.Panics(t, func() { NewLinear([]float64{1, 1}, []float64{1, 2}) },
		"not increasing")
	assert.Panics(t, func() { NewLinear([]float64{2, 1}, []float64{1, 2}) },
		"decreasing")
	assert.Panics(t, func() { NewUniformLinear(0, 0, []float64{1, 2}) },
		"zero dx")
	assert.Panics(t, func() { NewUniformLinear(0, 1, []float64{1}) },
		"uniform too short")
}
