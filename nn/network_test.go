package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rampInput(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(0.37*float64(i)) + 0.1*float64(i%3)
	}

	return x
}

func TestNewShapes(t *testing.T) {
	n, err := New(4, 125, WithBias(true))
	require.NoError(t, err)

	assert.Equal(t, []int{125, 25, 5, 1}, n.Widths())
	assert.Equal(t, 3, n.NumLayers())
	assert.Equal(t, 125, n.TapCount())
	assert.Equal(t, 125*25+25+25*5+5+5*1+1, n.ParameterCount())

	for i := 0; i < n.NumLayers(); i++ {
		l := n.Layer(i)
		assert.Len(t, l.Weights(), l.In()*l.Out())
		assert.Len(t, l.Bias(), l.Out())
		assert.Equal(t, ArcTan, l.Activation())

		for _, b := range l.Bias() {
			assert.Zero(t, b)
		}
	}

	assert.Equal(t, "fc1_125_25", n.Layer(0).Name(0))
}

func TestNewWithoutBias(t *testing.T) {
	n, err := New(3, 4)
	require.NoError(t, err)

	for i := 0; i < n.NumLayers(); i++ {
		assert.Nil(t, n.Layer(i).Bias())
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(1, 4)
	require.ErrorIs(t, err, ErrInvalidTopology)

	_, err = New(3, 0)
	require.ErrorIs(t, err, ErrInvalidTopology)

	_, err = New(3, 4, WithBackend("tpu"))
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestXavierInitReproducibleAndBounded(t *testing.T) {
	a, err := New(4, 32, WithSeed(7))
	require.NoError(t, err)
	b, err := New(4, 32, WithSeed(7))
	require.NoError(t, err)
	c, err := New(4, 32, WithSeed(8))
	require.NoError(t, err)

	for i := 0; i < a.NumLayers(); i++ {
		assert.Equal(t, a.Layer(i).Weights(), b.Layer(i).Weights())
		assert.NotEqual(t, a.Layer(i).Weights(), c.Layer(i).Weights())

		l := a.Layer(i)
		limit := DefaultXavierGain * math.Sqrt(6/float64(l.In()+l.Out()))
		for _, w := range l.Weights() {
			assert.LessOrEqual(t, math.Abs(w), limit)
		}
	}
}

func TestXavierGainScalesWeights(t *testing.T) {
	small, err := New(3, 16, WithXavierGain(0.01))
	require.NoError(t, err)
	large, err := New(3, 16, WithXavierGain(1))
	require.NoError(t, err)

	ws := small.Layer(0).Weights()
	wl := large.Layer(0).Weights()

	for i := range ws {
		assert.InDelta(t, wl[i]*0.01, ws[i], 1e-15)
	}
}

func TestForwardInputSize(t *testing.T) {
	n, err := New(3, 4)
	require.NoError(t, err)

	_, err = n.Forward(make([]float64, 3))
	require.ErrorIs(t, err, ErrInputSize)
}

func TestForwardZeroInput(t *testing.T) {
	n, err := New(3, 4)
	require.NoError(t, err)

	y, err := n.Forward(make([]float64, 4))
	require.NoError(t, err)
	assert.Zero(t, y)

	logistic, err := New(3, 4, WithActivation(Logistic))
	require.NoError(t, err)

	y, err = logistic.Forward(make([]float64, 4))
	require.NoError(t, err)

	// first layer outputs 0.5 everywhere, second layer sees that vector
	w := logistic.Layer(1).Weights()
	want := 1 / (1 + math.Exp(-(0.5*w[0] + 0.5*w[1])))
	assert.InDelta(t, want, y, 1e-15)
}

func TestForwardMatchesManualEvaluation(t *testing.T) {
	n, err := New(3, 4, WithBias(true), WithXavierGain(1))
	require.NoError(t, err)

	n.Layer(0).Bias()[1] = 0.25
	x := []float64{0.5, -1, 0.25, 2}

	got, err := n.Forward(x)
	require.NoError(t, err)

	in := x
	for i := 0; i < n.NumLayers(); i++ {
		l := n.Layer(i)
		out := make([]float64, l.Out())
		for r := range out {
			z := l.Bias()[r]
			for c := 0; c < l.In(); c++ {
				z += l.Weights()[r*l.In()+c] * in[c]
			}
			out[r] = math.Atan(z)
		}
		in = out
	}

	assert.InDelta(t, in[0], got, 1e-14)
}

func TestForwardDoesNotKeepCallerSlice(t *testing.T) {
	n, err := New(3, 4, WithXavierGain(1))
	require.NoError(t, err)

	x := []float64{1, 2, 3, 4}
	_, err = n.Forward(x)
	require.NoError(t, err)

	x[0] = 100
	n.Backward(1)

	assert.Equal(t, 1.0, n.Layer(0).input[0])
}

// loss returns 0.5·(target−y)² for the current parameters.
func loss(t *testing.T, n *Network, x []float64, target float64) float64 {
	t.Helper()
	y, err := n.Forward(x)
	require.NoError(t, err)
	return 0.5 * (target - y) * (target - y)
}

func TestBackwardMatchesFiniteDifferences(t *testing.T) {
	const (
		h      = 1e-6
		target = 0.7
	)

	for _, act := range []Activation{Identity, Logistic, ArcTan} {
		t.Run(act.String(), func(t *testing.T) {
			n, err := New(4, 9, WithActivation(act), WithBias(true), WithXavierGain(1), WithBackend(BackendGeneric))
			require.NoError(t, err)

			for i := 0; i < n.NumLayers(); i++ {
				for j := range n.Layer(i).bias {
					n.Layer(i).bias[j] = 0.1 * float64(j+1)
				}
			}

			x := rampInput(9)
			y, err := n.Forward(x)
			require.NoError(t, err)

			// d(0.5·f²)/dy with f = target − y
			n.Backward(-(target - y))

			for i := 0; i < n.NumLayers(); i++ {
				l := n.Layer(i)
				params := [][]float64{l.weights, l.bias}
				grads := [][]float64{l.gradW, l.gradB}

				for p := range params {
					for k := range params[p] {
						orig := params[p][k]
						params[p][k] = orig + h
						lp := loss(t, n, x, target)
						params[p][k] = orig - h
						lm := loss(t, n, x, target)
						params[p][k] = orig

						want := (lp - lm) / (2 * h)
						assert.InDelta(t, want, grads[p][k], 1e-7, "layer %d param %d/%d", i, p, k)
					}
				}
			}
		})
	}
}

func TestBackwardDoesNotModifyParameters(t *testing.T) {
	n, err := New(3, 8, WithBias(true))
	require.NoError(t, err)

	before := NewTracker(n)
	_, err = n.Forward(rampInput(8))
	require.NoError(t, err)
	n.Backward(3)

	assert.Zero(t, before.Distance())
}

func TestBackendsAgree(t *testing.T) {
	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			x := rampInput(64)

			n, err := New(4, 64, WithBias(true), WithXavierGain(1), WithBackend(name))
			require.NoError(t, err)
			assert.Equal(t, name, n.Backend())

			sgdRef, err := NewSGD(0.05)
			require.NoError(t, err)
			sgd, err := NewSGD(0.05)
			require.NoError(t, err)

			ref, err := New(4, 64, WithBias(true), WithXavierGain(1), WithBackend(BackendGeneric))
			require.NoError(t, err)

			for step := 0; step < 20; step++ {
				x[step%len(x)] += 0.01

				yr, err := ref.Forward(x)
				require.NoError(t, err)
				y, err := n.Forward(x)
				require.NoError(t, err)
				require.InDelta(t, yr, y, 1e-12)

				ref.Backward(yr - 0.3)
				n.Backward(y - 0.3)
				require.NoError(t, sgdRef.Step(ref))
				require.NoError(t, sgd.Step(n))
			}

			for i := 0; i < n.NumLayers(); i++ {
				wr := ref.Layer(i).Weights()
				w := n.Layer(i).Weights()
				for k := range w {
					require.InDelta(t, wr[k], w[k], 1e-12)
				}
			}
		})
	}
}

func TestAutoBackendSelected(t *testing.T) {
	n, err := New(3, 4)
	require.NoError(t, err)
	assert.Contains(t, Backends(), n.Backend())
}

func TestForwardBackwardStepZeroAlloc(t *testing.T) {
	for _, name := range Backends() {
		n, err := New(4, 125, WithBias(true), WithBackend(name))
		require.NoError(t, err)

		sgd, err := NewSGD(0.01)
		require.NoError(t, err)

		x := rampInput(125)
		allocs := testing.AllocsPerRun(100, func() {
			y, _ := n.Forward(x)
			n.Backward(-y)
			_ = sgd.Step(n)
		})

		assert.Zero(t, allocs, "backend %s", name)
	}
}
