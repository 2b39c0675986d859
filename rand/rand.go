/*package rand provides the pseudo-random number generators used when drawing
particle momenta.

Samplers take a *Generator argument instead of sharing global state, so every
worker in a parallel loop can own an independent, deterministically seeded
stream. The Tausworthe backend is L'Ecuyer's LFSR258 generator, Xorshift is
Blackman & Vigna's xoshiro256**, and PCG and Golang wrap the generators from
math/rand/v2.
*/
package rand

import (
	"math"
	"time"
)

type generatorBackend interface {
	Init(seed uint64)
	Next() uint64
}

// Generator supplies the uniform and gaussian variates consumed by the
// momentum distributions. It is not safe for concurrent use. Create one
// generator per goroutine, or reseed a worker's generator with Seed.
type Generator struct {
	backend       generatorBackend
	savedGaussian bool
	nextGaussian  float64
}

type GeneratorType uint8

const (
	Xorshift GeneratorType = iota
	Golang
	Tausworthe
	PCG

	Default = Tausworthe
)

func NewTimeSeed(gt GeneratorType) *Generator {
	return New(gt, uint64(time.Now().UnixNano()))
}

func New(gt GeneratorType, seed uint64) *Generator {
	var backend generatorBackend

	switch gt {
	case Xorshift:
		backend = new(xorshiftGenerator)
	case Golang:
		backend = new(golangGenerator)
	case Tausworthe:
		backend = new(tauswortheGenerator)
	case PCG:
		backend = new(pcgGenerator)
	default:
		panic("Unrecognized GeneratorType")
	}

	backend.Init(seed)
	gen := &Generator{backend, false, 0}
	return gen
}

// Seed reinitializes gen in place, as if it had just been returned by New
// with the given seed. Any cached gaussian variate is discarded.
func (gen *Generator) Seed(seed uint64) {
	gen.backend.Init(seed)
	gen.savedGaussian = false
}

func (gen *Generator) uniform01() float64 {
	return float64(gen.backend.Next()>>11) / (1 << 53)
}

// Uniform returns a float64 drawn uniformly from [low, high).
func (gen *Generator) Uniform(low, high float64) float64 {
	if low == 0.0 && high == 1.0 {
		return gen.uniform01()
	}
	return (gen.uniform01() * (high - low)) + low
}

// Open01 returns a float64 drawn uniformly from the open interval (0, 1).
// Use it where a variate will be passed to a logarithm and an exact zero
// would poison the result.
func (gen *Generator) Open01() float64 {
	return (float64(gen.backend.Next()>>11) + 0.5) / (1 << 53)
}

// UniformInt returns an int drawn uniformly from [low, high).
func (gen *Generator) UniformInt(low, high int) int {
	f := gen.uniform01()
	return int(math.Floor(float64(high-low)*f + float64(low)))
}

// Normal returns a gaussian variate with the given mean and standard
// deviation. Variates are generated in pairs by the Box-Muller transform and
// the spare is cached, so a call consumes either two uniforms or none.
func (gen *Generator) Normal(mean, stddev float64) float64 {
	if gen.savedGaussian {
		gen.savedGaussian = false
		return gen.nextGaussian*stddev + mean
	}

	r := math.Sqrt(-2 * math.Log(gen.Open01()))
	phi := 2 * math.Pi * gen.uniform01()
	gen.nextGaussian = r * math.Sin(phi)
	gen.savedGaussian = true
	return r*math.Cos(phi)*stddev + mean
}

// A Sequence derives an unbounded family of decorrelated generator seeds
// from a single base seed. Stream i always maps to the same seed, so a
// parallel loop that assigns stream i to particle i draws the same momenta
// no matter how the particles are split across workers.
type Sequence struct {
	gt   GeneratorType
	seed uint64
}

func NewSequence(gt GeneratorType, seed uint64) Sequence {
	return Sequence{gt, seed}
}

// SeedAt returns the seed of stream i.
func (seq Sequence) SeedAt(i int64) uint64 {
	return splitmix64(seq.seed + (uint64(i)+1)*0x9e3779b97f4a7c15)
}

// At creates a new generator seeded for stream i.
func (seq Sequence) At(i int64) *Generator {
	return New(seq.gt, seq.SeedAt(i))
}
