package rand

import (
	"encoding/binary"
	"math/bits"
	mrand "math/rand/v2"
)

// splitmix64 is the finalizing mix of Vigna's SplitMix64 generator. It is
// used to expand a single 64 bit seed into backend state, following the
// seeding recommendation from the xoshiro reference implementation: state
// words must not be everywhere zero, and nearby seeds should give unrelated
// streams.
func splitmix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// xorshiftGenerator implements xoshiro256**.
// See Blackman & Vigna, 2018, arXiv:1805.01407.
type xorshiftGenerator struct {
	state [4]uint64
}

func (gen *xorshiftGenerator) Init(seed uint64) {
	for i := range gen.state {
		seed += 0x9e3779b97f4a7c15
		gen.state[i] = splitmix64(seed)
	}
}

func (gen *xorshiftGenerator) Next() uint64 {
	result := bits.RotateLeft64(gen.state[1]*5, 7) * 9

	t := gen.state[1] << 17

	gen.state[2] ^= gen.state[0]
	gen.state[3] ^= gen.state[1]
	gen.state[1] ^= gen.state[2]
	gen.state[0] ^= gen.state[3]

	gen.state[2] ^= t

	gen.state[3] = bits.RotateLeft64(gen.state[3], 45)

	return result
}

// tauswortheGenerator implements the combined LFSR generator lfsr258.
// See L'Ecuyer, 1999, Mathematics of Computation 68, 225.
type tauswortheGenerator struct {
	z1, z2, z3, z4, z5 uint64
}

// lfsr258 requires its five state words to start above 1, 511, 4095, 131071,
// and 8388607 respectively, or the corresponding component degenerates.
var tauswortheSeedFloor = [5]uint64{2, 512, 4096, 131072, 8388608}

func (gen *tauswortheGenerator) Init(seed uint64) {
	var z [5]uint64
	for i := range z {
		seed += 0x9e3779b97f4a7c15
		z[i] = splitmix64(seed)
		if z[i] < tauswortheSeedFloor[i] {
			z[i] += tauswortheSeedFloor[i]
		}
	}
	gen.z1, gen.z2, gen.z3, gen.z4, gen.z5 = z[0], z[1], z[2], z[3], z[4]
}

func (gen *tauswortheGenerator) Next() uint64 {
	b := ((gen.z1 << 1) ^ gen.z1) >> 53
	gen.z1 = ((gen.z1 & 0xfffffffffffffffe) << 10) ^ b
	b = ((gen.z2 << 24) ^ gen.z2) >> 50
	gen.z2 = ((gen.z2 & 0xfffffffffffffe00) << 5) ^ b
	b = ((gen.z3 << 3) ^ gen.z3) >> 23
	gen.z3 = ((gen.z3 & 0xfffffffffffff000) << 29) ^ b
	b = ((gen.z4 << 5) ^ gen.z4) >> 24
	gen.z4 = ((gen.z4 & 0xfffffffffffe0000) << 23) ^ b
	b = ((gen.z5 << 3) ^ gen.z5) >> 33
	gen.z5 = ((gen.z5 & 0xffffffffff800000) << 8) ^ b

	return gen.z1 ^ gen.z2 ^ gen.z3 ^ gen.z4 ^ gen.z5
}

// pcgGenerator wraps the PCG generator from math/rand/v2.
type pcgGenerator struct {
	rng *mrand.PCG
}

func (gen *pcgGenerator) Init(seed uint64) {
	hi := splitmix64(seed + 0x9e3779b97f4a7c15)
	lo := splitmix64(seed + 2*0x9e3779b97f4a7c15)
	gen.rng = mrand.NewPCG(hi, lo)
}

func (gen *pcgGenerator) Next() uint64 {
	return gen.rng.Uint64()
}

// golangGenerator wraps the ChaCha8 generator from math/rand/v2, the same
// generator the standard library seeds its global functions with.
type golangGenerator struct {
	rng *mrand.ChaCha8
}

func (gen *golangGenerator) Init(seed uint64) {
	var key [32]byte
	for i := 0; i < 4; i++ {
		seed += 0x9e3779b97f4a7c15
		binary.LittleEndian.PutUint64(key[8*i:], splitmix64(seed))
	}
	gen.rng = mrand.NewChaCha8(key)
}

func (gen *golangGenerator) Next() uint64 {
	return gen.rng.Uint64()
}
