package nn

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-dnf/dsp/core"
	"github.com/cwbudde/algo-dnf/nn/internal/arch/registry"
)

// Layer is one affine+activation transition of the network.
//
// The slices returned by Weights and Bias alias the live parameters; callers
// must treat them as read-only.
type Layer struct {
	in, out    int
	weights    []float64 // row-major out×in
	bias       []float64 // nil when bias is disabled
	activation Activation

	input    []float64 // previous layer's output, or the network input
	pre      []float64
	output   []float64
	delta    []float64 // dLoss/dpre
	gradW    []float64
	gradB    []float64
	upstream []float64 // dLoss/dinput, unused for the first layer
}

// In returns the number of inputs.
func (l *Layer) In() int { return l.in }

// Out returns the number of neurons.
func (l *Layer) Out() int { return l.out }

// Weights returns the row-major weight matrix.
func (l *Layer) Weights() []float64 { return l.weights }

// Bias returns the bias vector, or nil if bias is disabled.
func (l *Layer) Bias() []float64 { return l.bias }

// Activation returns the layer activation.
func (l *Layer) Activation() Activation { return l.activation }

// Name returns the layer label used in logs, e.g. "fc1_125_25".
func (l *Layer) Name(index int) string {
	return fmt.Sprintf("fc%d_%d_%d", index+1, l.in, l.out)
}

// Network is a fixed chain of layers ending in a single output neuron.
type Network struct {
	layers []Layer
	widths []int
	input  []float64
	seed   []float64
	kernel registry.OpEntry
	cfg    config
}

// New builds a network with layerCount width-defining layers and tapCount
// inputs. Weights are Xavier-uniform initialized from the configured seed.
func New(layerCount, tapCount int, opts ...Option) (*Network, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	widths, err := LayerWidths(layerCount, tapCount)
	if err != nil {
		return nil, err
	}

	kernel, err := selectKernel(cfg.backend)
	if err != nil {
		return nil, err
	}

	n := &Network{
		layers: make([]Layer, len(widths)-1),
		widths: widths,
		input:  make([]float64, tapCount),
		seed:   make([]float64, 1),
		kernel: kernel,
		cfg:    cfg,
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	in := n.input

	for i := range n.layers {
		fanIn, fanOut := widths[i], widths[i+1]
		l := &n.layers[i]
		*l = Layer{
			in:         fanIn,
			out:        fanOut,
			weights:    make([]float64, fanIn*fanOut),
			activation: cfg.activation,
			input:      in,
			pre:        make([]float64, fanOut),
			output:     make([]float64, fanOut),
			delta:      make([]float64, fanOut),
			gradW:      make([]float64, fanIn*fanOut),
		}

		if cfg.bias {
			l.bias = make([]float64, fanOut)
			l.gradB = make([]float64, fanOut)
		}

		if i > 0 {
			l.upstream = make([]float64, fanIn)
		}

		xavierUniform(rng, l.weights, fanIn, fanOut, cfg.gain)
		cfg.logger.Debugf("creating layer %s (%s, bias=%t)", l.Name(i), cfg.activation, cfg.bias)

		in = l.output
	}

	cfg.logger.Debugf("using %s kernel, %d parameters", kernel.Name, n.ParameterCount())

	return n, nil
}

// Forward evaluates the network for input x and returns the scalar output.
// len(x) must equal the tap count. Zero-alloc.
func (n *Network) Forward(x []float64) (float64, error) {
	if len(x) != len(n.input) {
		return 0, fmt.Errorf("%w: got %d want %d", ErrInputSize, len(x), len(n.input))
	}

	copy(n.input, x)

	for i := range n.layers {
		l := &n.layers[i]
		n.kernel.MatVec(l.pre, l.weights, l.input)

		if l.bias != nil {
			n.kernel.AddScaled(l.pre, l.bias, 1)
		}

		l.activation.apply(l.output, l.pre)
	}

	return n.layers[len(n.layers)-1].output[0], nil
}

// Backward propagates the output gradient seed through the values cached by
// the last Forward call and stores per-layer weight and bias gradients.
// Parameters are not modified. Zero-alloc.
func (n *Network) Backward(seed float64) {
	n.seed[0] = seed
	upstream := n.seed

	for i := len(n.layers) - 1; i >= 0; i-- {
		l := &n.layers[i]
		l.activation.derive(l.delta, l.pre, l.output, upstream)
		n.kernel.Outer(l.gradW, l.delta, l.input)

		if l.gradB != nil {
			copy(l.gradB, l.delta)
		}

		if i > 0 {
			n.kernel.MatTVec(l.upstream, l.weights, l.delta)
			upstream = l.upstream
		}
	}
}

// updateFinite reports whether adding scale times the stored gradients keeps
// every parameter finite. Parameters are not modified.
func (n *Network) updateFinite(scale float64) bool {
	for i := range n.layers {
		l := &n.layers[i]
		if !finiteAfter(l.weights, l.gradW, scale) || !finiteAfter(l.bias, l.gradB, scale) {
			return false
		}
	}

	return true
}

func finiteAfter(p, g []float64, scale float64) bool {
	for k, v := range p {
		if !core.IsFinite(v + scale*g[k]) {
			return false
		}
	}

	return true
}

// addGradients adds scale times the stored gradients to the parameters.
func (n *Network) addGradients(scale float64) {
	for i := range n.layers {
		l := &n.layers[i]
		n.kernel.AddScaled(l.weights, l.gradW, scale)

		if l.bias != nil {
			n.kernel.AddScaled(l.bias, l.gradB, scale)
		}
	}
}

// NumLayers returns the number of affine transitions.
func (n *Network) NumLayers() int {
	return len(n.layers)
}

// Layer returns the i-th layer.
func (n *Network) Layer(i int) *Layer {
	return &n.layers[i]
}

// Widths returns a copy of the neuron counts, input width first.
func (n *Network) Widths() []int {
	w := make([]int, len(n.widths))
	copy(w, n.widths)
	return w
}

// TapCount returns the input width.
func (n *Network) TapCount() int {
	return len(n.input)
}

// ParameterCount returns the total number of weights and biases.
func (n *Network) ParameterCount() int {
	total := 0
	for i := range n.layers {
		total += len(n.layers[i].weights) + len(n.layers[i].bias)
	}

	return total
}

// Backend returns the name of the compute kernel in use.
func (n *Network) Backend() string {
	return n.kernel.Name
}

// Activation returns the activation shared by all layers.
func (n *Network) Activation() Activation {
	return n.cfg.activation
}

// Seed returns the weight initialization seed.
func (n *Network) Seed() int64 {
	return n.cfg.seed
}
