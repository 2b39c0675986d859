package injector

import (
	"math"

	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/rand"
)

// fluxSpeed draws u from the flux-weighted gaussian distribution
//
//	p(u) ∝ u exp(-(u-uM)^2 / (2 uTh^2)), u >= 0,
//
// the distribution of the surface-normal momentum of particles crossing a
// plane out of a drifting gaussian plasma. uM must be positive or zero.
//
// Both regimes draw from an analytically samplable proposal and correct it
// by rejection, so the loops run until a proposal is accepted. The
// acceptance rate is bounded well away from zero for every valid (uM, uTh),
// but the number of draws a single call consumes is not fixed.
func fluxSpeed(uM, uTh float64, gen *rand.Generator) float64 {
	if uTh == 0 {
		// The distribution degenerates to the drift momentum itself. This
		// also dodges the divisions by uTh below.
		return uM
	}

	if uM < 0.6*uTh {
		// Thermal-dominated regime. Propose from the invertible
		// distribution u*exp(-u^2 (1 - uM/uTh) / (2 uTh^2)) and accept
		// with probability exp(-uM/(2 uTh^3) (u - uTh)^2).
		approxUTh := uTh / math.Sqrt(1-uM/uTh)
		rejectPrefactor := (uM / uTh) / (2 * uTh * uTh)
		for {
			xrand := 1 - gen.Open01()
			u := approxUTh * math.Sqrt(2*math.Log(1/xrand))
			if gen.Uniform(0, 1) < math.Exp(-rejectPrefactor*(u-uTh)*(u-uTh)) {
				return u
			}
		}
	}

	// Drift-dominated regime. Propose from a gaussian centered on
	// uM + uTh^2/uM, keeping only positive u, and accept with probability
	// (u/uM) exp(1 - u/uM), which is always in (0, 1].
	approxUM := uM + uTh*uTh/uM
	invUM := 1 / uM
	for {
		u := -1.0
		for u < 0 {
			u = gen.Normal(approxUM, uTh)
		}
		if gen.Uniform(0, 1) < u*invUM*math.Exp(1-u*invUM) {
			return u
		}
	}
}

// fluxDist is the distribution of particles crossing an injection surface.
// Its normal axis carries the flux-weighted momentum and the other two axes
// carry plain gaussians.
type fluxDist struct {
	uxM, uyM, uzM    float64
	uxTh, uyTh, uzTh float64
	axis             int
	direction        int
}

func (f *fluxDist) sample(gen *rand.Generator) geom.Vec {
	var uM, uTh float64
	switch f.axis {
	case 0:
		uM, uTh = f.uxM, f.uxTh
	case 1:
		uM, uTh = f.uyM, f.uyTh
	case 2:
		uM, uTh = f.uzM, f.uzTh
	}

	u := fluxSpeed(uM, uTh, gen)
	if f.direction < 0 {
		u = -u
	}

	ux, uy, uz := u, u, u
	if f.axis != 0 {
		ux = gen.Normal(f.uxM, f.uxTh)
	}
	if f.axis != 1 {
		uy = gen.Normal(f.uyM, f.uyTh)
	}
	if f.axis != 2 {
		uz = gen.Normal(f.uzM, f.uzTh)
	}
	return geom.Vec{ux, uy, uz}
}

func (f *fluxDist) mean() geom.Vec {
	return geom.Vec{f.uxM, f.uyM, f.uzM}
}
