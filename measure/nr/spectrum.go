package nr

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-dnf/dsp/window"
)

// PowerSpectrum returns the one-sided power spectrum of x (fftSize/2+1
// bins) averaged over segments with 50% overlap, each weighted by the
// periodic form of win.
//
// Bins are scaled so that their sum equals the windowed mean square of x;
// a unit-amplitude sine therefore sums to about 0.5.
func PowerSpectrum(x []float64, fftSize int, win window.Type) ([]float64, error) {
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: fft size must be a power of two >= 2: %d", ErrInvalidConfig, fftSize)
	}

	if len(x) < fftSize {
		return nil, fmt.Errorf("%w: need %d samples, got %d", ErrTooShort, fftSize, len(x))
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("nr: fft plan: %w", err)
	}

	coeffs := window.Generate(win, fftSize, window.WithPeriodic())
	if coeffs == nil {
		return nil, fmt.Errorf("%w: window %v", ErrInvalidConfig, win)
	}

	winPower := floats.Dot(coeffs, coeffs)

	bins := fftSize/2 + 1
	seg := make([]float64, fftSize)
	in := make([]complex128, fftSize)
	out := make([]complex128, fftSize)
	re := make([]float64, bins)
	im := make([]float64, bins)
	pow := make([]float64, bins)
	acc := make([]float64, bins)

	hop := fftSize / 2
	segments := 0

	for start := 0; start+fftSize <= len(x); start += hop {
		copy(seg, x[start:start+fftSize])
		if err := window.ApplyCoefficientsInPlace(seg, coeffs); err != nil {
			return nil, err
		}

		for i, v := range seg {
			in[i] = complex(v, 0)
		}

		if err := plan.Forward(out, in); err != nil {
			return nil, fmt.Errorf("nr: fft: %w", err)
		}

		for k := range bins {
			re[k] = real(out[k])
			im[k] = imag(out[k])
		}

		vecmath.Power(pow, re, im)
		floats.Add(acc, pow)
		segments++
	}

	scale := 1 / (winPower * float64(fftSize) * float64(segments))
	for k := range acc {
		acc[k] *= scale
		if k != 0 && k != bins-1 {
			acc[k] *= 2
		}
	}

	return acc, nil
}
