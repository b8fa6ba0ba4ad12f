package nr

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-dnf/dsp/window"
	"github.com/cwbudde/algo-dnf/internal/testutil"
)

const fs = 250.0

func TestPowerSpectrumPeakAndScale(t *testing.T) {
	const fftSize = 256

	freq := 32 * fs / fftSize
	x := testutil.DeterministicSine(freq, fs, 1, 4*fftSize)

	for _, win := range []window.Type{window.TypeHann, window.TypeHamming, window.TypeBlackman, window.TypeBlackmanHarris4Term, window.TypeRectangular} {
		power, err := PowerSpectrum(x, fftSize, win)
		if err != nil {
			t.Fatal(err)
		}

		if len(power) != fftSize/2+1 {
			t.Fatalf("%v bins: got %d want %d", win, len(power), fftSize/2+1)
		}

		if got := floats.MaxIdx(power); got != 32 {
			t.Fatalf("%v peak bin: got %d want 32", win, got)
		}

		if got := floats.Sum(power); math.Abs(got-0.5) > 1e-6 {
			t.Fatalf("%v total power: got %v want 0.5", win, got)
		}
	}
}

func TestPowerSpectrumDC(t *testing.T) {
	x := make([]float64, 512)
	for i := range x {
		x[i] = 2
	}

	for _, win := range []window.Type{window.TypeHann, window.TypeBlackman, window.TypeRectangular} {
		power, err := PowerSpectrum(x, 128, win)
		if err != nil {
			t.Fatal(err)
		}

		if got := floats.Sum(power); math.Abs(got-4) > 1e-9 {
			t.Fatalf("%v total power: got %v want 4", win, got)
		}
	}
}

func TestPowerSpectrumErrors(t *testing.T) {
	if _, err := PowerSpectrum(make([]float64, 100), 100, window.TypeHann); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("non power of two: got %v", err)
	}

	if _, err := PowerSpectrum(make([]float64, 10), 16, window.TypeHann); !errors.Is(err, ErrTooShort) {
		t.Fatalf("short input: got %v", err)
	}

	if _, err := PowerSpectrum(make([]float64, 16), 16, window.Type(99)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("unknown window: got %v", err)
	}
}

func TestAnalyzeMainsRemoval(t *testing.T) {
	const n = 4000

	clean := testutil.DeterministicSine(10, fs, 1, n)
	hum := testutil.DeterministicSine(50, fs, 1, n)

	input := make([]float64, n)
	for i := range input {
		input[i] = clean[i] + hum[i]
	}

	a, err := NewAnalyzer(Config{SampleRate: fs, BandLow: 45, BandHigh: 55})
	if err != nil {
		t.Fatal(err)
	}

	res, err := a.Analyze(input, clean)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(res.RMSBefore-1) > 1e-3 || math.Abs(res.RMSAfter-math.Sqrt(0.5)) > 1e-3 {
		t.Fatalf("rms: before %v after %v", res.RMSBefore, res.RMSAfter)
	}

	if math.Abs(res.RMSReductionDB-3.0103) > 0.01 {
		t.Fatalf("rms reduction: got %.4f dB want 3.01", res.RMSReductionDB)
	}

	if math.Abs(res.BandPowerBefore-0.5) > 0.01 {
		t.Fatalf("band power before: got %v want ~0.5", res.BandPowerBefore)
	}

	if res.BandAttenuationDB < 60 {
		t.Fatalf("band attenuation: got %.1f dB want > 60", res.BandAttenuationDB)
	}

	if res.FFTSize != defaultFFTSize || res.Samples != n {
		t.Fatalf("fft size %d samples %d", res.FFTSize, res.Samples)
	}

	if s := res.String(); !strings.Contains(s, "band power -3.0 dB") {
		t.Fatalf("String: %q", s)
	}
}

func TestAnalyzeDelayAndSkip(t *testing.T) {
	const (
		n     = 2000
		delay = 7
		skip  = 100
	)

	input := testutil.DeterministicNoise(4, 1, n)
	output := make([]float64, n)
	copy(output[delay:], input)

	// garbage during warm-up must be ignored
	for i := delay; i < delay+skip; i++ {
		output[i] = 100
	}

	a, err := NewAnalyzer(Config{Delay: delay, Skip: skip, FFTSize: 256})
	if err != nil {
		t.Fatal(err)
	}

	res, err := a.Analyze(input, output)
	if err != nil {
		t.Fatal(err)
	}

	if res.Samples != n-delay-skip {
		t.Fatalf("samples: got %d want %d", res.Samples, n-delay-skip)
	}

	if math.Abs(res.RMSReductionDB) > 1e-9 || math.Abs(res.BandAttenuationDB) > 1e-9 {
		t.Fatalf("identical aligned signals: %v", res)
	}
}

func TestAnalyzeShrinksFFT(t *testing.T) {
	a, err := NewAnalyzer(Config{})
	if err != nil {
		t.Fatal(err)
	}

	x := testutil.DeterministicNoise(1, 1, 300)
	res, err := a.Analyze(x, x)
	if err != nil {
		t.Fatal(err)
	}

	if res.FFTSize != 256 {
		t.Fatalf("fft size: got %d want 256", res.FFTSize)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	a, err := NewAnalyzer(Config{Delay: 10})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.Analyze(make([]float64, 4), make([]float64, 5)); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch: got %v", err)
	}

	if _, err := a.Analyze(make([]float64, 8), make([]float64, 8)); !errors.Is(err, ErrTooShort) {
		t.Fatalf("too short: got %v", err)
	}

	bad := make([]float64, 64)
	bad[30] = math.NaN()
	if _, err := a.Analyze(bad, make([]float64, 64)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("nan: got %v", err)
	}
}

func TestNewAnalyzerValidation(t *testing.T) {
	for name, cfg := range map[string]Config{
		"negative rate":  {SampleRate: -1},
		"band inverted":  {BandLow: 60, BandHigh: 40},
		"band too high":  {BandHigh: 200},
		"negative delay": {Delay: -1},
		"negative skip":  {Skip: -5},
		"unknown window": {Window: window.Type(99)},
	} {
		if _, err := NewAnalyzer(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: got %v", name, err)
		}
	}

	a, err := NewAnalyzer(Config{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg := a.Config(); cfg.SampleRate != 250 || cfg.BandHigh != 125 || cfg.FFTSize != defaultFFTSize || cfg.Window != window.TypeHann {
		t.Fatalf("defaults: %+v", cfg)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	a, _ := NewAnalyzer(Config{BandLow: 45, BandHigh: 55})
	x := testutil.DeterministicNoise(1, 1, 30000)
	y := testutil.DeterministicNoise(2, 0.1, 30000)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := a.Analyze(x, y); err != nil {
			b.Fatal(err)
		}
	}
}
