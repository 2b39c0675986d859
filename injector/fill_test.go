package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/rand"
)

func testPositions(n int) []geom.Vec {
	xs := make([]geom.Vec, n)
	for i := range xs {
		xs[i] = geom.Vec{float64(i), float64(i % 7), float64(i % 3)}
	}
	return xs
}

// Every particle owns a seed derived from its index, so the momenta cannot
// depend on how the buffer is sharded across workers.
func TestFillWorkerCountInvariant(t *testing.T) {
	d := NewGaussian(0, 1, -1, 0.5, 1, 2)
	xs := testPositions(1000)
	seq := rand.NewSequence(rand.Default, 5)

	base := make([]geom.Vec, len(xs))
	Fill(&d, xs, base, seq, 1)

	for _, workers := range []int{2, 4, 9, 64} {
		out := make([]geom.Vec, len(xs))
		Fill(&d, xs, out, seq, workers)
		for i := range out {
			if out[i] != base[i] {
				t.Fatalf("Momentum %d differs between 1 worker and %d "+
					"workers: %v vs %v", i, workers, base[i], out[i])
			}
		}
	}
}

func TestFillMatchesPerParticleStreams(t *testing.T) {
	d := NewGaussian(1, 2, 3, 0.1, 0.2, 0.3)
	xs := testPositions(100)
	seq := rand.NewSequence(rand.Default, 19)

	out := make([]geom.Vec, len(xs))
	Fill(&d, xs, out, seq, 4)

	for i := range xs {
		gen := seq.At(int64(i))
		want := d.Sample(xs[i][0], xs[i][1], xs[i][2], gen)
		if out[i] != want {
			t.Errorf("%d) Expected %v from the particle's own stream, got %v",
				i, want, out[i])
		}
	}
}

func TestFillSeedsDiffer(t *testing.T) {
	d := NewGaussian(0, 0, 0, 1, 1, 1)
	xs := testPositions(100)

	out1 := make([]geom.Vec, len(xs))
	out2 := make([]geom.Vec, len(xs))
	Fill(&d, xs, out1, rand.NewSequence(rand.Default, 1), 4)
	Fill(&d, xs, out2, rand.NewSequence(rand.Default, 2), 4)

	same := 0
	for i := range out1 {
		if out1[i] == out2[i] {
			same++
		}
	}
	if same > 0 {
		t.Errorf("%d momenta survived a seed change.", same)
	}
}

func TestFillPositionDependent(t *testing.T) {
	d := NewRadialExpansion(2)
	xs := testPositions(50)
	seq := rand.NewSequence(rand.Default, 0)

	out := make([]geom.Vec, len(xs))
	Fill(&d, xs, out, seq, 3)

	for i := range xs {
		if out[i] != xs[i].Scaled(2) {
			t.Errorf("%d) Expected %v at position %v, got %v",
				i, xs[i].Scaled(2), xs[i], out[i])
		}
	}
}

func TestFillEdgeCases(t *testing.T) {
	d := NewConstant(1, 2, 3)
	seq := rand.NewSequence(rand.Default, 0)

	assert.Panics(t, func() {
		Fill(&d, make([]geom.Vec, 5), make([]geom.Vec, 4), seq, 2)
	}, "length mismatch")

	assert.NotPanics(t, func() {
		Fill(&d, nil, nil, seq, 4)
	}, "empty buffers")

	// More workers than particles.
	xs := testPositions(3)
	out := make([]geom.Vec, 3)
	Fill(&d, xs, out, seq, 16)
	for i := range out {
		assert.Equal(t, geom.Vec{1, 2, 3}, out[i])
	}
}
