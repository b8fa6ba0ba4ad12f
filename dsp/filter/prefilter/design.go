package prefilter

import (
	"fmt"
	"math"
)

// ButterworthHighpass designs a Butterworth highpass cascade. Odd orders
// end in a first-order section (B2 = A2 = 0).
func ButterworthHighpass(cutoff float64, order int, sampleRate float64) ([]Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: order must be > 0: %d", ErrInvalidOrder, order)
	}

	w0, err := normalizedW0(cutoff, sampleRate)
	if err != nil {
		return nil, err
	}

	sections := make([]Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, highpassRBJ(w0, butterworthQ(order, i)))
	}

	if order%2 != 0 {
		sections = append(sections, firstOrderHighpass(w0))
	}

	return sections, nil
}

// Bandstop designs a second-order notch at center Hz with quality q, used
// to suppress mains interference at 50 or 60 Hz.
func Bandstop(center, q, sampleRate float64) (Coefficients, error) {
	w0, err := normalizedW0(center, sampleRate)
	if err != nil {
		return Coefficients{}, err
	}

	if !(q > 0) || math.IsInf(q, 0) {
		return Coefficients{}, fmt.Errorf("%w: q must be finite and > 0: %v", ErrInvalidQ, q)
	}

	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalize(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha), nil
}

func highpassRBJ(w0, q float64) Coefficients {
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalize((1+cw)/2, -(1 + cw), (1+cw)/2, 1+alpha, -2*cw, 1-alpha)
}

func firstOrderHighpass(w0 float64) Coefficients {
	k := math.Tan(w0 / 2)
	norm := 1 / (1 + k)

	return Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}
}

func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))
	return 1 / (2 * math.Sin(theta))
}

func normalizedW0(freq, sampleRate float64) (float64, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("%w: sample rate %v", ErrInvalidFrequency, sampleRate)
	}

	if !(freq > 0) || freq >= sampleRate/2 {
		return 0, fmt.Errorf("%w: %v Hz not in (0, %v)", ErrInvalidFrequency, freq, sampleRate/2)
	}

	return 2 * math.Pi * freq / sampleRate, nil
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
