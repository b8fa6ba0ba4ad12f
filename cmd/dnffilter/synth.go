package main

import (
	"fmt"

	"github.com/cwbudde/algo-dnf/dsp/core"
	"github.com/cwbudde/algo-dnf/dsp/signal"
)

// referencePeak is the peak amplitude of the synthetic ECG reference in volts.
const referencePeak = 1e-3

// synthesize builds a recording in volts: a 10 Hz alpha rhythm with some
// background activity, contaminated by a delayed, attenuated copy of an
// ECG-like reference that also carries mains hum.
func synthesize(seconds, sampleRate float64, seed int64) (*recording, error) {
	n := int(seconds * sampleRate)
	if n <= 0 {
		return nil, fmt.Errorf("synth: duration %gs at %g Hz yields no samples", seconds, sampleRate)
	}

	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(sampleRate)},
		signal.WithSeed(seed),
	)

	alpha, err := g.Sine(10, 20e-6, n)
	if err != nil {
		return nil, err
	}

	background, err := g.WhiteNoise(5e-6, n)
	if err != nil {
		return nil, err
	}

	ecg, err := g.PulseTrain(1.2, 0.08, 1e-3, n)
	if err != nil {
		return nil, err
	}

	hum, err := g.SinePhase(50, 2e-4, 0.4, n)
	if err != nil {
		return nil, err
	}

	clean, err := signal.Mix(alpha, background, 1)
	if err != nil {
		return nil, err
	}

	mixed, err := signal.Mix(ecg, hum, 1)
	if err != nil {
		return nil, err
	}

	noise, err := signal.Normalize(mixed, referencePeak)
	if err != nil {
		return nil, err
	}

	leak, err := signal.Shift(noise, 3)
	if err != nil {
		return nil, err
	}

	contaminated, err := signal.Mix(clean, leak, 0.3)
	if err != nil {
		return nil, err
	}

	rec := &recording{
		t:      make([]float64, n),
		signal: contaminated,
		noise:  noise,
	}
	fs := g.Config().SampleRate
	for i := range rec.t {
		rec.t[i] = float64(i) / fs
	}

	return rec, nil
}
