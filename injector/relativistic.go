package injector

import (
	"math"

	"github.com/phil-mansfield/gopic/fields"
	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/rand"
)

// The drifting thermal samplers share the same frame-change recipe, taken
// from Zenitani, 2015, Phys. Plasmas 22, 042116. A momentum is drawn in the
// plasma rest frame, the component along the drift axis is flipped with
// probability max(0, -beta*u/gamma) (the flipping method, Zenitani eq. 32),
// and the result is boosted into the simulation frame (eq. 17). The flip
// accounts for the flux asymmetry a drifting distribution has through a
// fixed spatial slab, so particle positions can be laid out directly in the
// simulation frame. When beta = 0 neither step changes anything.

// lorentzTransform boosts the drift-axis momentum component u of a particle
// with rest frame Lorentz factor gamma into a frame moving at -beta.
func lorentzTransform(u, gamma, beta float64) float64 {
	return 1 / math.Sqrt(1-beta*beta) * (u + gamma*beta)
}

// checkBeta panics unless beta is a physical velocity fraction.
func checkBeta(beta float64) {
	if beta <= -1 || beta >= 1 {
		panic("The drift velocity magnitude |beta| = |v|/c is greater " +
			"than or equal to 1.")
	}
}

// coldDriftMean returns the momentum of a particle at rest in the drifting
// frame, gamma*beta along the drift axis.
func coldDriftMean(velocity fields.Velocity, x, y, z float64) geom.Vec {
	beta := velocity.At(x, y, z)
	dir := velocity.Direction()
	gamma := 1 / math.Sqrt(1-beta*beta)

	var u geom.Vec
	u[dir] = gamma * beta
	return u
}

// boltzmannDist is a drifting Maxwell-Boltzmann distribution. The rest
// frame momenta are non-relativistic gaussians, so it is only meaningful
// for temperatures theta = kT/(m c^2) well below 1.
type boltzmannDist struct {
	velocity    fields.Velocity
	temperature fields.Temperature
}

func (b *boltzmannDist) sample(x, y, z float64, gen *rand.Generator) geom.Vec {
	theta := b.temperature.At(x, y, z)
	if theta < 0 {
		panic("The temperature parameter theta is negative.")
	}
	beta := b.velocity.At(x, y, z)
	checkBeta(beta)

	vave := math.Sqrt(theta)
	dir := b.velocity.Direction()

	var u geom.Vec
	u[dir] = gen.Normal(0, vave)
	u[(dir+1)%3] = gen.Normal(0, vave)
	u[(dir+2)%3] = gen.Normal(0, vave)
	gamma := math.Sqrt(1 + u.Norm2())

	if -beta*u[dir]/gamma > gen.Uniform(0, 1) {
		u[dir] = -u[dir]
	}
	u[dir] = lorentzTransform(u[dir], gamma, beta)
	return u
}

func (b *boltzmannDist) mean(x, y, z float64) geom.Vec {
	return coldDriftMean(b.velocity, x, y, z)
}

// juttnerDist is a drifting Maxwell-Juttner distribution. Rest frame speeds
// come from the Sobol method (Zenitani eq. 10), which is exact but only
// efficient for theta >= 0.1. Colder plasmas should use boltzmannDist,
// which is the theta << 1 limit.
type juttnerDist struct {
	velocity    fields.Velocity
	temperature fields.Temperature
}

func (j *juttnerDist) sample(x, y, z float64, gen *rand.Generator) geom.Vec {
	theta := j.temperature.At(x, y, z)
	if theta < 0.1 {
		panic("The temperature parameter theta is less than the minimum " +
			"0.1 needed by the Maxwell-Juttner sampler.")
	}
	beta := j.velocity.At(x, y, z)
	checkBeta(beta)

	dir := j.velocity.Direction()

	var u geom.Vec
	x1, gamma := 0.0, 0.0
	for u[dir]-gamma <= x1 {
		u[dir] = -theta *
			math.Log(gen.Open01()*gen.Open01()*gen.Open01())
		gamma = math.Sqrt(1 + u[dir]*u[dir])
		x1 = theta * math.Log(gen.Open01())
	}

	// Spread the sampled speed u[dir] over a random unit vector.
	x1 = gen.Uniform(0, 1)
	x2 := gen.Uniform(0, 1)
	u[(dir+1)%3] = 2 * u[dir] * math.Sqrt(x1*(1-x1)) * math.Sin(2*math.Pi*x2)
	u[(dir+2)%3] = 2 * u[dir] * math.Sqrt(x1*(1-x1)) * math.Cos(2*math.Pi*x2)
	u[dir] = u[dir] * (2*x1 - 1)

	if -beta*u[dir]/gamma > gen.Uniform(0, 1) {
		u[dir] = -u[dir]
	}
	u[dir] = lorentzTransform(u[dir], gamma, beta)
	return u
}

func (j *juttnerDist) mean(x, y, z float64) geom.Vec {
	return coldDriftMean(j.velocity, x, y, z)
}
