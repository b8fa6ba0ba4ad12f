// Package testutil provides deterministic fixtures and tolerance helpers
// shared by package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// ContaminatedPair is a synthetic recording: a clean component plus
// interference that is a filtered copy of the reference channel.
type ContaminatedPair struct {
	Clean     []float64 // wanted component of Signal
	Reference []float64 // noise reference fed to the filter
	Signal    []float64 // Clean plus interference
}

// Interference returns Signal minus Clean.
func (p ContaminatedPair) Interference() []float64 {
	out := make([]float64, len(p.Signal))
	for i := range out {
		out[i] = p.Signal[i] - p.Clean[i]
	}
	return out
}

// PowerLineContamination builds a pair whose reference is a lineHz sine and
// whose signal carries a gain-scaled, phase-shifted copy of it on top of a
// slow cleanHz sine of unit amplitude.
func PowerLineContamination(cleanHz, lineHz, sampleRate, gain, phase float64, length int) ContaminatedPair {
	p := ContaminatedPair{
		Clean:     DeterministicSine(cleanHz, sampleRate, 1, length),
		Reference: DeterministicSine(lineHz, sampleRate, 1, length),
		Signal:    make([]float64, length),
	}

	step := 2 * math.Pi * lineHz / sampleRate
	for i := range p.Signal {
		p.Signal[i] = p.Clean[i] + gain*math.Sin(step*float64(i)+phase)
	}

	return p
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}
