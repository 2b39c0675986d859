package injector

import (
	"runtime"

	"github.com/phil-mansfield/gopic/geom"
	"github.com/phil-mansfield/gopic/rand"
)

// Fill draws one momentum for every position in xs and writes it to the
// matching index of out, splitting the work over the given number of
// workers. If workers is not positive, one worker is run per CPU.
//
// Particle i always draws from stream i of seq, so the output is identical
// for every worker count and only changes when the sequence does. Fill
// panics if xs and out have different lengths.
func Fill(
	d *MomentumDistribution, xs, out []geom.Vec,
	seq rand.Sequence, workers int,
) {
	if len(xs) != len(out) {
		panic("Lengths of position and momentum buffers are not equal.")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(xs) {
		workers = len(xs)
	}
	if len(xs) == 0 {
		return
	}

	done := make(chan int, workers)
	for id := 0; id < workers; id++ {
		low := len(xs) * id / workers
		high := len(xs) * (id + 1) / workers
		go func(id, low, high int) {
			gen := seq.At(int64(low))
			for i := low; i < high; i++ {
				gen.Seed(seq.SeedAt(int64(i)))
				out[i] = d.Sample(xs[i][0], xs[i][1], xs[i][2], gen)
			}
			done <- id
		}(id, low, high)
	}

	for i := 0; i < workers; i++ {
		<-done
	}
}
