package nn

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Tracker measures the Euclidean distance of a network's parameters from a
// snapshot taken when the tracker was created.
type Tracker struct {
	net     *Network
	weights [][]float64
	biases  [][]float64
}

// NewTracker snapshots the current parameters of n.
func NewTracker(n *Network) *Tracker {
	t := &Tracker{
		net:     n,
		weights: make([][]float64, len(n.layers)),
		biases:  make([][]float64, len(n.layers)),
	}

	for i := range n.layers {
		l := &n.layers[i]
		t.weights[i] = append([]float64(nil), l.weights...)

		if l.bias != nil {
			t.biases[i] = append([]float64(nil), l.bias...)
		}
	}

	return t
}

// LayerDistance returns ‖(W,b) − (W₀,b₀)‖₂ for layer i.
func (t *Tracker) LayerDistance(i int) float64 {
	l := &t.net.layers[i]
	d := floats.Distance(l.weights, t.weights[i], 2)

	if l.bias != nil {
		d = math.Hypot(d, floats.Distance(l.bias, t.biases[i], 2))
	}

	return d
}

// LayerDistances returns the distance of every layer.
func (t *Tracker) LayerDistances() []float64 {
	return t.LayerDistancesInto(make([]float64, 0, len(t.weights)))
}

// LayerDistancesInto appends the distance of every layer to dst[:0] and
// returns the result. It does not allocate when cap(dst) suffices.
func (t *Tracker) LayerDistancesInto(dst []float64) []float64 {
	dst = dst[:0]
	for i := range t.weights {
		dst = append(dst, t.LayerDistance(i))
	}

	return dst
}

// Distance returns the sum of all layer distances.
func (t *Tracker) Distance() float64 {
	var sum float64
	for i := range t.weights {
		sum += t.LayerDistance(i)
	}

	return sum
}
