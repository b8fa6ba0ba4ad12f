package nn

import (
	"math"
	"math/rand"
)

// DefaultSeed seeds weight initialization unless WithSeed overrides it.
const DefaultSeed int64 = 42

// DefaultXavierGain keeps the initial network close to its linear regime.
const DefaultXavierGain = 0.01

// xavierUniform fills w (fanOut×fanIn) with samples from
// U(-limit, limit), limit = gain·sqrt(6/(fanIn+fanOut)).
func xavierUniform(rng *rand.Rand, w []float64, fanIn, fanOut int, gain float64) {
	limit := gain * math.Sqrt(6/float64(fanIn+fanOut))
	for i := range w {
		w[i] = (rng.Float64()*2 - 1) * limit
	}
}
