// Package signal generates deterministic test signals: sines, seeded white
// noise and ECG-like pulse trains, plus helpers to mix and shift them into
// contaminated recordings.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-dnf/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	return g.SinePhase(freqHz, amplitude, 0, samples)
}

// SinePhase generates a sine wave starting at phase radians.
func (g *Generator) SinePhase(freqHz, amplitude, phase float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if freqHz < 0 || freqHz > g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("sine frequency must be in [0, %g]: %g", g.cfg.SampleRate/2, freqHz)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i)+phase)
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
// Every call with the same seed returns the same sequence.
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// PulseTrain generates raised-cosine pulses of width seconds repeating at
// rateHz, a crude stand-in for heartbeat or blink artifacts. The first pulse
// is centred at sample 0.
func (g *Generator) PulseTrain(rateHz, width, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("pulse samples must be > 0: %d", samples)
	}
	if rateHz <= 0 {
		return nil, fmt.Errorf("pulse rate must be > 0: %g", rateHz)
	}
	if width <= 0 || width*rateHz > 1 {
		return nil, fmt.Errorf("pulse width must be in (0, %g]: %g", 1/rateHz, width)
	}

	out := make([]float64, samples)
	period := g.cfg.SampleRate / rateHz
	half := width * g.cfg.SampleRate / 2

	for i := range out {
		// distance to the nearest pulse centre in samples
		d := math.Mod(float64(i), period)
		if d > period/2 {
			d = period - d
		}
		if d < half {
			out[i] = amplitude * 0.5 * (1 + math.Cos(math.Pi*d/half))
		}
	}
	return out, nil
}

// Mix returns a + gain*b.
func Mix(a, b []float64, gain float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("mix length mismatch: %d vs %d", len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + gain*b[i]
	}
	return out, nil
}

// Shift returns x delayed by n samples, zero-filled at the start.
func Shift(x []float64, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("shift must be >= 0: %d", n)
	}
	out := make([]float64, len(x))
	if n < len(x) {
		copy(out[n:], x[:len(x)-n])
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
