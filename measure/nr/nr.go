// Package nr measures how much interference a noise canceller removed by
// comparing a recording before and after filtering.
package nr

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-dnf/dsp/core"
	"github.com/cwbudde/algo-dnf/dsp/window"
)

var (
	// ErrInvalidConfig is returned for unusable analyzer settings.
	ErrInvalidConfig = errors.New("nr: invalid config")
	// ErrTooShort is returned when fewer samples than one FFT frame remain.
	ErrTooShort = errors.New("nr: signal too short")
	// ErrLengthMismatch is returned when input and output differ in length.
	ErrLengthMismatch = errors.New("nr: length mismatch")
)

const defaultFFTSize = 1024

// Config holds analysis parameters. Zero values select defaults: 250 Hz,
// a 1024-point FFT, a Hann window and the full band from 0 Hz to Nyquist.
type Config struct {
	SampleRate float64
	FFTSize    int
	// BandLow and BandHigh bound the band whose power is compared, in Hz.
	BandLow  float64
	BandHigh float64
	// Delay is the latency of output relative to input in samples.
	Delay int
	// Skip excludes the first samples (after delay alignment), e.g. a
	// warm-up phase before learning starts.
	Skip int
	// Window weights each spectrum segment; the zero value is Hann.
	Window window.Type
}

// Result holds noise-reduction metrics. Positive dB values mean the output
// is weaker than the input.
type Result struct {
	RMSBefore      float64
	RMSAfter       float64
	RMSReductionDB float64

	BandPowerBefore   float64
	BandPowerAfter    float64
	BandAttenuationDB float64

	Samples int
	FFTSize int
}

// Analyzer compares filter input and output.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer validates cfg and returns an analyzer.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	cfg = normalizeConfig(cfg)

	nyquist := cfg.SampleRate / 2
	switch {
	case !core.IsFinite(cfg.SampleRate) || cfg.SampleRate <= 0:
		return nil, fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, cfg.SampleRate)
	case cfg.BandLow < 0 || cfg.BandHigh > nyquist || cfg.BandLow >= cfg.BandHigh:
		return nil, fmt.Errorf("%w: band [%v, %v] not within [0, %v]", ErrInvalidConfig, cfg.BandLow, cfg.BandHigh, nyquist)
	case cfg.Delay < 0 || cfg.Skip < 0:
		return nil, fmt.Errorf("%w: delay %d and skip %d must be >= 0", ErrInvalidConfig, cfg.Delay, cfg.Skip)
	case window.Generate(cfg.Window, 1) == nil:
		return nil, fmt.Errorf("%w: window %v", ErrInvalidConfig, cfg.Window)
	}

	return &Analyzer{cfg: cfg}, nil
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = core.DefaultProcessorConfig().SampleRate
	}

	if cfg.FFTSize <= 0 {
		cfg.FFTSize = defaultFFTSize
	}

	if cfg.BandHigh == 0 {
		cfg.BandHigh = cfg.SampleRate / 2
	}

	return cfg
}

// Config returns the normalized configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze compares input with output. output[i+Delay] is aligned with
// input[i]; the first Skip aligned samples are ignored. The FFT size shrinks
// to the largest power of two that fits the remaining samples.
func (a *Analyzer) Analyze(input, output []float64) (Result, error) {
	if len(input) != len(output) {
		return Result{}, fmt.Errorf("%w: input %d, output %d", ErrLengthMismatch, len(input), len(output))
	}

	cfg := a.cfg
	n := len(input) - cfg.Delay
	if n <= cfg.Skip {
		return Result{}, fmt.Errorf("%w: %d samples, delay %d, skip %d", ErrTooShort, len(input), cfg.Delay, cfg.Skip)
	}

	before := input[cfg.Skip:n]
	after := output[cfg.Delay+cfg.Skip:]

	if !core.AllFinite(before) || !core.AllFinite(after) {
		return Result{}, fmt.Errorf("%w: non-finite samples", ErrInvalidConfig)
	}

	fftSize := cfg.FFTSize
	for fftSize > len(before) {
		fftSize /= 2
	}

	res := Result{
		RMSBefore: rms(before),
		RMSAfter:  rms(after),
		Samples:   len(before),
		FFTSize:   fftSize,
	}
	res.RMSReductionDB = core.PowerRatioDB(res.RMSBefore*res.RMSBefore, res.RMSAfter*res.RMSAfter)

	specBefore, err := PowerSpectrum(before, fftSize, cfg.Window)
	if err != nil {
		return Result{}, err
	}

	specAfter, err := PowerSpectrum(after, fftSize, cfg.Window)
	if err != nil {
		return Result{}, err
	}

	lo, hi := a.bandBins(fftSize)
	res.BandPowerBefore = floats.Sum(specBefore[lo : hi+1])
	res.BandPowerAfter = floats.Sum(specAfter[lo : hi+1])
	res.BandAttenuationDB = core.PowerRatioDB(res.BandPowerBefore, res.BandPowerAfter)

	return res, nil
}

// bandBins maps the configured band to inclusive bin indices.
func (a *Analyzer) bandBins(fftSize int) (int, int) {
	binHz := a.cfg.SampleRate / float64(fftSize)
	maxBin := fftSize / 2

	lo := int(math.Ceil(a.cfg.BandLow/binHz - 1e-9))
	hi := int(math.Floor(a.cfg.BandHigh/binHz + 1e-9))
	lo = min(max(lo, 0), maxBin)
	hi = min(max(hi, lo), maxBin)

	return lo, hi
}

func rms(x []float64) float64 {
	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}

// String formats r as a short report.
func (r Result) String() string {
	return fmt.Sprintf("samples=%d rms %.4g -> %.4g (%.2f dB), band power %.1f dB -> %.1f dB (%.2f dB)",
		r.Samples, r.RMSBefore, r.RMSAfter, r.RMSReductionDB,
		core.LinearPowerToDB(r.BandPowerBefore), core.LinearPowerToDB(r.BandPowerAfter), r.BandAttenuationDB)
}
