package dnf

import (
	"fmt"
	"math"

	"github.com/pion/logging"

	"github.com/cwbudde/algo-dnf/dsp/core"
	"github.com/cwbudde/algo-dnf/dsp/delay"
	"github.com/cwbudde/algo-dnf/nn"
)

// Filter is a deep neuronal filter instance.
type Filter struct {
	signalLine *delay.Line
	noiseLine  *delay.Line
	window     []float64

	net     *nn.Network
	sgd     *nn.SGD
	tracker *nn.Tracker

	delayed float64
	remover float64
	output  float64

	sampleRate float64
	log        logging.LeveledLogger
}

// New creates a filter whose network has layerCount width-defining layers
// and tapCount noise taps. The signal is delayed by tapCount/2 samples, so
// tapCount must be at least 2.
func New(layerCount, tapCount int, opts ...Option) (*Filter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validate(layerCount, tapCount, cfg); err != nil {
		return nil, err
	}

	signalLine, err := delay.New(tapCount / 2)
	if err != nil {
		return nil, fmt.Errorf("%w: signal delay line: %w", ErrInvalidConfig, err)
	}

	noiseLine, err := delay.New(tapCount)
	if err != nil {
		return nil, fmt.Errorf("%w: noise delay line: %w", ErrInvalidConfig, err)
	}

	net, err := nn.New(layerCount, tapCount,
		nn.WithActivation(cfg.activation),
		nn.WithBias(cfg.bias),
		nn.WithXavierGain(cfg.gain),
		nn.WithSeed(cfg.seed),
		nn.WithBackend(cfg.backend),
		nn.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	sgd, err := nn.NewSGD(cfg.learningRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	f := &Filter{
		signalLine: signalLine,
		noiseLine:  noiseLine,
		window:     make([]float64, tapCount),
		net:        net,
		sgd:        sgd,
		tracker:    nn.NewTracker(net),
		sampleRate: cfg.sampleRate,
		log:        cfg.logger,
	}

	f.log.Debugf("%d taps, signal delay %d samples, fs=%g Hz, widths %v",
		tapCount, f.SignalDelaySteps(), f.sampleRate, net.Widths())

	return f, nil
}

func validate(layerCount, tapCount int, cfg config) error {
	if layerCount < 2 {
		return fmt.Errorf("%w: %w: layer count must be >= 2: %d", ErrInvalidConfig, nn.ErrInvalidTopology, layerCount)
	}

	if tapCount < 1 {
		return fmt.Errorf("%w: %w: tap count must be >= 1: %d", ErrInvalidConfig, nn.ErrInvalidTopology, tapCount)
	}

	if tapCount/2 <= 0 {
		return fmt.Errorf("%w: signal delay tapCount/2 must be > 0: %d taps", ErrInvalidConfig, tapCount)
	}

	if !cfg.activation.Valid() {
		return fmt.Errorf("%w: unknown activation %v", ErrInvalidConfig, cfg.activation)
	}

	if !(cfg.gain > 0) || math.IsInf(cfg.gain, 0) {
		return fmt.Errorf("%w: xavier gain must be finite and > 0: %v", ErrInvalidConfig, cfg.gain)
	}

	return nil
}

// ProcessSample filters one sample pair and returns the filtered output
// f_nn = delayed signal − remover. With a non-zero learning rate the network
// then takes one gradient step that minimizes f_nn²/2. Zero-alloc.
//
// Non-finite inputs are rejected with ErrNonFinite and leave the filter
// unchanged. If the network output or the updated weights would be
// non-finite, ErrDiverged is returned and no learning step is applied.
func (f *Filter) ProcessSample(signal, noise float64) (float64, error) {
	if !core.IsFinite(signal) || !core.IsFinite(noise) {
		return 0, fmt.Errorf("%w: signal=%v noise=%v", ErrNonFinite, signal, noise)
	}

	f.delayed = f.signalLine.Process(signal)
	f.noiseLine.Process(noise)
	f.noiseLine.CopyTo(f.window)

	remover, err := f.net.Forward(f.window)
	if err != nil {
		return 0, err
	}

	f.remover = remover
	f.output = f.delayed - remover

	if !core.IsFinite(f.output) {
		f.log.Warnf("non-finite output (remover=%v), skipping learning step", remover)
		return f.output, ErrDiverged
	}

	// minimizing f²/2 w.r.t. the remover gives the gradient seed −f
	f.net.Backward(-f.output)
	if err := f.sgd.Step(f.net); err != nil {
		f.log.Warnf("non-finite weight update (output=%v), skipping learning step", f.output)
		return f.output, ErrDiverged
	}

	return f.output, nil
}

// ProcessBlock filters equal-length signal and noise blocks into dst.
// It stops at the first failing sample and returns its error.
func (f *Filter) ProcessBlock(dst, signal, noise []float64) error {
	if len(signal) != len(noise) || len(dst) < len(signal) {
		return fmt.Errorf("dnf: block length mismatch: dst=%d signal=%d noise=%d",
			len(dst), len(signal), len(noise))
	}

	for i := range signal {
		y, err := f.ProcessSample(signal[i], noise[i])
		if err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}

		dst[i] = y
	}

	return nil
}

// SetLearningRate changes the learning rate. Zero freezes the network;
// negative or non-finite rates are rejected.
func (f *Filter) SetLearningRate(rate float64) error {
	return f.sgd.SetLearningRate(rate)
}

// LearningRate returns the current learning rate.
func (f *Filter) LearningRate() float64 {
	return f.sgd.LearningRate()
}

// Frozen reports whether the learning rate is zero.
func (f *Filter) Frozen() bool {
	return f.sgd.LearningRate() == 0
}

// SignalDelaySteps returns the signal delay in samples (tapCount/2).
func (f *Filter) SignalDelaySteps() int {
	return f.signalLine.Len()
}

// DelayedSignal returns the delayed signal sample used by the last
// ProcessSample call.
func (f *Filter) DelayedSignal() float64 {
	return f.delayed
}

// Remover returns the network output of the last ProcessSample call.
func (f *Filter) Remover() float64 {
	return f.remover
}

// Output returns the last filtered sample, identical to the value returned
// by ProcessSample.
func (f *Filter) Output() float64 {
	return f.output
}

// LayerWeightDistances returns, per layer, the Euclidean distance of the
// current weights and biases from their initial values.
func (f *Filter) LayerWeightDistances() []float64 {
	return f.tracker.LayerDistances()
}

// LayerWeightDistancesInto is the zero-alloc variant of LayerWeightDistances
// for callers that log every sample.
func (f *Filter) LayerWeightDistancesInto(dst []float64) []float64 {
	return f.tracker.LayerDistancesInto(dst)
}

// WeightDistance returns the sum of all layer weight distances.
func (f *Filter) WeightDistance() float64 {
	return f.tracker.Distance()
}

// Network returns the underlying network for inspection.
func (f *Filter) Network() *nn.Network {
	return f.net
}

// SampleRate returns the configured sampling rate in Hz.
func (f *Filter) SampleRate() float64 {
	return f.sampleRate
}
