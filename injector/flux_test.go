package injector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/gopic/rand"
)

// fluxMoments integrates the target density u*exp(-(u - uM)^2/(2 uTh^2))
// numerically and returns its mean and standard deviation.
func fluxMoments(uM, uTh float64) (mean, std float64) {
	low := uM - 10*uTh
	if low < 0 {
		low = 0
	}
	xs := floats.Span(make([]float64, 20001), low, uM+10*uTh)
	p := make([]float64, len(xs))
	up := make([]float64, len(xs))
	uup := make([]float64, len(xs))
	for i, u := range xs {
		du := u - uM
		p[i] = u * math.Exp(-du*du/(2*uTh*uTh))
		up[i] = u * p[i]
		uup[i] = u * u * p[i]
	}

	norm := integrate.Trapezoidal(xs, p)
	mean = integrate.Trapezoidal(xs, up) / norm
	meanSqr := integrate.Trapezoidal(xs, uup) / norm
	return mean, math.Sqrt(meanSqr - mean*mean)
}

func drawFluxSpeeds(uM, uTh float64, n int, seed uint64) []float64 {
	gen := rand.New(rand.Default, seed)
	us := make([]float64, n)
	for i := range us {
		us[i] = fluxSpeed(uM, uTh, gen)
	}
	return us
}

func TestFluxSpeedZeroSpread(t *testing.T) {
	gen := rand.New(rand.Default, 8)
	table := []float64{0, 0.25, 1, 100}

	for i, uM := range table {
		for j := 0; j < 100; j++ {
			if u := fluxSpeed(uM, 0, gen); u != uM {
				t.Errorf("%d) Expected exactly %g with zero spread, got %g",
					i, uM, u)
			}
		}
	}
}

func TestFluxSpeedPositive(t *testing.T) {
	// One draw set per branch of the sampler.
	for i, test := range []struct{ uM, uTh float64 }{{0, 1}, {5, 1}} {
		us := drawFluxSpeeds(test.uM, test.uTh, 100000, uint64(i+1))
		if lo := floats.Min(us); lo <= 0 {
			t.Errorf("%d) fluxSpeed(%g, %g) gave a non-positive speed %g.",
				i, test.uM, test.uTh, lo)
		}
	}
}

// With no drift the density is u*exp(-u^2/(2 uTh^2)), a Rayleigh
// distribution with scale uTh.
func TestFluxSpeedRayleigh(t *testing.T) {
	uTh := 2.0
	us := drawFluxSpeeds(0, uTh, 200000, 17)

	assert.InDelta(t, uTh*math.Sqrt(math.Pi/2), stat.Mean(us, nil), 0.02)
	assert.InDelta(t, (2-math.Pi/2)*uTh*uTh, stat.Variance(us, nil), 0.03)

	checkDensity(t, "rayleigh", us, 0, 5*uTh, 40, func(u float64) float64 {
		return u * math.Exp(-u*u/(2*uTh*uTh))
	})
}

// The sampler switches branches at uM = 0.6 uTh. Both branches target the
// same density, so moments on either side of the cut must track the same
// numeric integrals.
func TestFluxSpeedMoments(t *testing.T) {
	table := []struct{ uM, uTh float64 }{
		{0.3, 1}, {0.55, 1}, {0.65, 1}, {3, 1}, {5, 0.5},
	}

	for i, test := range table {
		us := drawFluxSpeeds(test.uM, test.uTh, 200000, uint64(100+i))
		mean, std := fluxMoments(test.uM, test.uTh)

		se := std / math.Sqrt(float64(len(us)))
		if got := stat.Mean(us, nil); math.Abs(got-mean) > 8*se {
			t.Errorf("%d) fluxSpeed(%g, %g): expected mean %.5f, got %.5f",
				i, test.uM, test.uTh, mean, got)
		}
		if got := stat.StdDev(us, nil); math.Abs(got-std) > 8*se {
			t.Errorf("%d) fluxSpeed(%g, %g): expected spread %.5f, got %.5f",
				i, test.uM, test.uTh, std, got)
		}
	}
}

func TestFluxSpeedDriftedShape(t *testing.T) {
	uM, uTh := 3.0, 1.0
	us := drawFluxSpeeds(uM, uTh, 200000, 23)

	checkDensity(t, "drifted", us, 0, uM+6*uTh, 45, func(u float64) float64 {
		du := u - uM
		return u * math.Exp(-du*du/(2*uTh*uTh))
	})

	// The u weight drags the statistical mean above the central momentum.
	if got := stat.Mean(us, nil); got <= uM+0.2 {
		t.Errorf("Expected the flux-weighted mean to sit well above %g, "+
			"got %.4f", uM, got)
	}
}
