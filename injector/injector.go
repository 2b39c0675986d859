/*package injector provides the momentum distributions used to set particle
momenta when injecting particles into a simulation volume.

A MomentumDistribution draws single particle momenta, u = gamma*v/c in units
of m*c, from one of eight distributions: constant, gaussian, and uniform
laboratory frame distributions, a flux-weighted gaussian for particles
crossing an injection surface, drifting thermal Maxwell-Boltzmann and
Maxwell-Juttner distributions, a radial expansion profile, and compiled user
expressions. The relativistic samplers and the flux-weighted sampler follow
Zenitani, 2015, Phys. Plasmas 22, 042116.

Distributions are immutable value types. A single distribution can drive any
number of goroutines at once, as long as each goroutine supplies its own
rand.Generator to Sample.
*/
package injector

import (
	"fmt"

	"github.com/phil-mansfield/gopic/fields"
	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/parse"
	"github.com/phil-mansfield/gopic/rand"
)

// Kind identifies which distribution a MomentumDistribution draws from. The
// zero Kind is invalid, so an uninitialized MomentumDistribution cannot pass
// itself off as a constant zero-momentum source.
type Kind int

const (
	Constant Kind = 1 + iota
	Gaussian
	GaussianFlux
	Uniform
	Boltzmann
	Juttner
	RadialExpansion
	Parser
)

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Gaussian:
		return "gaussian"
	case GaussianFlux:
		return "gaussianflux"
	case Uniform:
		return "uniform"
	case Boltzmann:
		return "boltzmann"
	case Juttner:
		return "juttner"
	case RadialExpansion:
		return "radial_expansion"
	case Parser:
		return "parser"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A MomentumDistribution draws particle momenta at positions. It behaves
// like a tagged union: exactly one underlying distribution is active and
// Sample and Mean dispatch on its kind with a single switch, so there is no
// interface indirection in the per-particle path.
//
// Distributions returned by the New functions are immutable and may be
// copied and shared freely. The zero MomentumDistribution has no active
// distribution and panics when used.
type MomentumDistribution struct {
	kind Kind

	constant  constantDist
	gaussian  gaussianDist
	flux      fluxDist
	uniform   uniformDist
	boltzmann boltzmannDist
	juttner   juttnerDist
	radial    radialDist
	parser    parserDist
}

// NewConstant returns a distribution that gives every particle exactly the
// momentum (ux, uy, uz).
func NewConstant(ux, uy, uz float64) MomentumDistribution {
	return MomentumDistribution{
		kind:     Constant,
		constant: constantDist{ux, uy, uz},
	}
}

// NewGaussian returns a distribution whose components are independent
// gaussians with means (uxM, uyM, uzM) and spreads (uxTh, uyTh, uzTh).
func NewGaussian(uxM, uyM, uzM, uxTh, uyTh, uzTh float64) MomentumDistribution {
	return MomentumDistribution{
		kind:     Gaussian,
		gaussian: gaussianDist{uxM, uyM, uzM, uxTh, uyTh, uzTh},
	}
}

// NewGaussianFlux returns the distribution of particles crossing an
// injection surface whose normal is the given axis (0, 1, or 2 for x, y,
// or z) out of a drifting gaussian plasma. Along the normal the momentum
// magnitude follows the flux-weighted distribution
// u*exp(-(u-uM)^2/(2 uTh^2)) and takes the sign of direction, and the other
// two components are plain gaussians.
//
// The central momentum along the normal axis must be positive or zero.
func NewGaussianFlux(
	uxM, uyM, uzM, uxTh, uyTh, uzTh float64, axis, direction int,
) (MomentumDistribution, error) {
	if axis < 0 || axis > 2 {
		return MomentumDistribution{}, fmt.Errorf(
			"Flux normal axis %d is not one of the axes 0, 1, or 2.", axis)
	}

	uM := [3]float64{uxM, uyM, uzM}[axis]
	if uM < 0 {
		return MomentumDistribution{}, fmt.Errorf(
			"The central momentum along the flux axis must be positive "+
				"or zero, but is %g.", uM)
	}

	return MomentumDistribution{
		kind: GaussianFlux,
		flux: fluxDist{uxM, uyM, uzM, uxTh, uyTh, uzTh, axis, direction},
	}, nil
}

// NewUniform returns a distribution whose components are drawn uniformly
// from [uxMin, uxMax), [uyMin, uyMax), and [uzMin, uzMax).
func NewUniform(
	uxMin, uyMin, uzMin, uxMax, uyMax, uzMax float64,
) MomentumDistribution {
	return MomentumDistribution{
		kind:    Uniform,
		uniform: newUniformDist(uxMin, uyMin, uzMin, uxMax, uyMax, uzMax),
	}
}

// NewBoltzmann returns a Maxwell-Boltzmann distribution with the local
// temperature given by temperature and a bulk drift given by velocity.
func NewBoltzmann(
	temperature fields.Temperature, velocity fields.Velocity,
) MomentumDistribution {
	return MomentumDistribution{
		kind:      Boltzmann,
		boltzmann: boltzmannDist{velocity, temperature},
	}
}

// NewJuttner returns a relativistically correct thermal Maxwell-Juttner
// distribution with the local temperature given by temperature and a bulk
// drift given by velocity.
func NewJuttner(
	temperature fields.Temperature, velocity fields.Velocity,
) MomentumDistribution {
	return MomentumDistribution{
		kind:    Juttner,
		juttner: juttnerDist{velocity, temperature},
	}
}

// NewRadialExpansion returns a deterministic radial Hubble-like flow where
// a particle at radius r gets the momentum uOverR*r pointed away from the
// origin.
func NewRadialExpansion(uOverR float64) MomentumDistribution {
	return MomentumDistribution{
		kind:   RadialExpansion,
		radial: radialDist{uOverR},
	}
}

// NewParser returns a deterministic distribution whose components evaluate
// the given expressions at the particle's position.
func NewParser(ux, uy, uz parse.Expr) MomentumDistribution {
	return MomentumDistribution{
		kind:   Parser,
		parser: parserDist{ux, uy, uz},
	}
}

// Kind returns which distribution d draws from.
func (d *MomentumDistribution) Kind() Kind {
	return d.kind
}

// Sample draws the momentum of a single particle at the position (x, y, z).
// All variates come from gen, so identically seeded generators reproduce
// identical momenta no matter how particles are shared out over goroutines.
//
// Sample panics if the local temperature or drift velocity at (x, y, z) is
// unphysical, or if d was not built by one of the New functions.
func (d *MomentumDistribution) Sample(
	x, y, z float64, gen *rand.Generator,
) geom.Vec {
	switch d.kind {
	case Constant:
		return d.constant.value()
	case Gaussian:
		return d.gaussian.sample(gen)
	case GaussianFlux:
		return d.flux.sample(gen)
	case Uniform:
		return d.uniform.sample(gen)
	case Boltzmann:
		return d.boltzmann.sample(x, y, z, gen)
	case Juttner:
		return d.juttner.sample(x, y, z, gen)
	case RadialExpansion:
		return d.radial.at(x, y, z)
	case Parser:
		return d.parser.at(x, y, z)
	}
	panic(fmt.Sprintf("MomentumDistribution has invalid kind %d.",
		int(d.kind)))
}

// Mean returns the nominal mean momentum of the distribution at (x, y, z)
// without drawing any variates. For Boltzmann and Juttner this is the cold
// drift momentum gamma*beta along the drift axis, which neglects thermal
// corrections. For GaussianFlux it is the nominal central momentum, which
// neglects the flux weighting. The true sample mean of both exceeds the
// value reported here.
//
// Mean panics if d was not built by one of the New functions.
func (d *MomentumDistribution) Mean(x, y, z float64) geom.Vec {
	switch d.kind {
	case Constant:
		return d.constant.value()
	case Gaussian:
		return d.gaussian.mean()
	case GaussianFlux:
		return d.flux.mean()
	case Uniform:
		return d.uniform.mean()
	case Boltzmann:
		return d.boltzmann.mean(x, y, z)
	case Juttner:
		return d.juttner.mean(x, y, z)
	case RadialExpansion:
		return d.radial.at(x, y, z)
	case Parser:
		return d.parser.at(x, y, z)
	}
	panic(fmt.Sprintf("MomentumDistribution has invalid kind %d.",
		int(d.kind)))
}

type constantDist struct {
	ux, uy, uz float64
}

func (c *constantDist) value() geom.Vec {
	return geom.Vec{c.ux, c.uy, c.uz}
}

type gaussianDist struct {
	uxM, uyM, uzM    float64
	uxTh, uyTh, uzTh float64
}

func (g *gaussianDist) sample(gen *rand.Generator) geom.Vec {
	return geom.Vec{
		gen.Normal(g.uxM, g.uxTh),
		gen.Normal(g.uyM, g.uyTh),
		gen.Normal(g.uzM, g.uzTh),
	}
}

func (g *gaussianDist) mean() geom.Vec {
	return geom.Vec{g.uxM, g.uyM, g.uzM}
}

type uniformDist struct {
	uxMin, uyMin, uzMin float64
	dUx, dUy, dUz       float64
	uxH, uyH, uzH       float64
}

func newUniformDist(
	uxMin, uyMin, uzMin, uxMax, uyMax, uzMax float64,
) uniformDist {
	return uniformDist{
		uxMin: uxMin, uyMin: uyMin, uzMin: uzMin,
		dUx: uxMax - uxMin, dUy: uyMax - uyMin, dUz: uzMax - uzMin,
		uxH: 0.5 * (uxMax + uxMin),
		uyH: 0.5 * (uyMax + uyMin),
		uzH: 0.5 * (uzMax + uzMin),
	}
}

func (u *uniformDist) sample(gen *rand.Generator) geom.Vec {
	return geom.Vec{
		u.uxMin + gen.Uniform(0, 1)*u.dUx,
		u.uyMin + gen.Uniform(0, 1)*u.dUy,
		u.uzMin + gen.Uniform(0, 1)*u.dUz,
	}
}

func (u *uniformDist) mean() geom.Vec {
	return geom.Vec{u.uxH, u.uyH, u.uzH}
}

type radialDist struct {
	uOverR float64
}

func (r *radialDist) at(x, y, z float64) geom.Vec {
	return geom.Vec{x * r.uOverR, y * r.uOverR, z * r.uOverR}
}

type parserDist struct {
	ux, uy, uz parse.Expr
}

func (p *parserDist) at(x, y, z float64) geom.Vec {
	return geom.Vec{
		p.ux.Eval(x, y, z),
		p.uy.Eval(x, y, z),
		p.uz.Eval(x, y, z),
	}
}
