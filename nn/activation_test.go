package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivation(t *testing.T) {
	tests := map[string]Activation{
		"identity": Identity,
		"none":     Identity,
		"sigmoid":  Logistic,
		"Logistic": Logistic,
		"tanh":     ArcTan,
		"atan":     ArcTan,
		" relu ":   ReLU,
	}

	for name, want := range tests {
		got, err := ParseActivation(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseActivation("softmax")
	require.ErrorIs(t, err, ErrUnknownActivation)
}

func TestTanhLabelComputesArcTan(t *testing.T) {
	a, err := ParseActivation("tanh")
	require.NoError(t, err)

	dst := make([]float64, 1)
	a.apply(dst, []float64{1})

	assert.Equal(t, math.Atan(1), dst[0])
	assert.NotEqual(t, math.Tanh(1), dst[0])
}

func TestActivationValues(t *testing.T) {
	src := []float64{-2, -0.5, 0, 0.5, 2}

	tests := []struct {
		act Activation
		f   func(float64) float64
	}{
		{Identity, func(z float64) float64 { return z }},
		{Logistic, func(z float64) float64 { return 1 / (1 + math.Exp(-z)) }},
		{ArcTan, math.Atan},
		{ReLU, func(z float64) float64 { return math.Max(0, z) }},
	}

	for _, tc := range tests {
		dst := make([]float64, len(src))
		tc.act.apply(dst, src)

		for i, z := range src {
			assert.Equal(t, tc.f(z), dst[i], "%s(%v)", tc.act, z)
		}
	}
}

func TestArcTanBounded(t *testing.T) {
	src := []float64{-1e6, -1e3, -10, -1, 0, 1, 10, 1e3, 1e6}
	dst := make([]float64, len(src))
	ArcTan.apply(dst, src)

	for i, y := range dst {
		assert.Greater(t, y, -math.Pi/2, "z=%v", src[i])
		assert.Less(t, y, math.Pi/2, "z=%v", src[i])
	}
}

func TestActivationDerivativeMatchesFiniteDifference(t *testing.T) {
	const h = 1e-6

	pre := []float64{-1.5, -0.3, 0.2, 0.9, 2.5}
	upstream := []float64{1, -2, 0.5, 3, -1}

	for _, act := range []Activation{Identity, Logistic, ArcTan, ReLU} {
		out := make([]float64, len(pre))
		act.apply(out, pre)

		got := make([]float64, len(pre))
		act.derive(got, pre, out, upstream)

		for i, z := range pre {
			lo := make([]float64, 1)
			hi := make([]float64, 1)
			act.apply(lo, []float64{z - h})
			act.apply(hi, []float64{z + h})

			want := upstream[i] * (hi[0] - lo[0]) / (2 * h)
			assert.InDelta(t, want, got[i], 1e-6, "%s at %v", act, z)
		}
	}
}

func TestActivationString(t *testing.T) {
	assert.Equal(t, "arctan", ArcTan.String())
	assert.Equal(t, "Activation(9)", Activation(9).String())
}
