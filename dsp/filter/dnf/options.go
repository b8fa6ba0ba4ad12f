package dnf

import (
	"io"
	"os"

	"github.com/pion/logging"

	"github.com/cwbudde/algo-dnf/nn"
)

const defaultSampleRate = 250

type config struct {
	activation   nn.Activation
	bias         bool
	gain         float64
	seed         int64
	backend      string
	learningRate float64
	sampleRate   float64
	logger       logging.LeveledLogger
}

func defaultConfig() config {
	return config{
		activation: nn.ArcTan,
		gain:       nn.DefaultXavierGain,
		seed:       nn.DefaultSeed,
		backend:    nn.BackendAuto,
		sampleRate: defaultSampleRate,
		logger:     newLogger(logging.LogLevelDisabled, io.Discard),
	}
}

// Option configures a Filter.
type Option func(*config)

// WithActivation sets the network activation. Default nn.ArcTan.
func WithActivation(a nn.Activation) Option {
	return func(cfg *config) { cfg.activation = a }
}

// WithBias enables bias vectors in every layer. Default disabled.
func WithBias(enabled bool) Option {
	return func(cfg *config) { cfg.bias = enabled }
}

// WithXavierGain sets the weight initialization gain. Default 0.01.
func WithXavierGain(gain float64) Option {
	return func(cfg *config) { cfg.gain = gain }
}

// WithSeed sets the weight initialization seed. Default nn.DefaultSeed.
func WithSeed(seed int64) Option {
	return func(cfg *config) { cfg.seed = seed }
}

// WithBackend selects the network compute kernel ("auto", "generic",
// "simd", "blas"). The choice affects speed only.
func WithBackend(name string) Option {
	return func(cfg *config) { cfg.backend = name }
}

// WithLearningRate sets the initial learning rate. Default 0 (frozen).
func WithLearningRate(rate float64) Option {
	return func(cfg *config) { cfg.learningRate = rate }
}

// WithSampleRate records the sampling rate of the processed signals in Hz.
// It is informational; the algorithm itself is rate independent.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) {
		if sampleRate > 0 {
			cfg.sampleRate = sampleRate
		}
	}
}

// WithLogger routes construction and divergence messages to logger.
func WithLogger(logger logging.LeveledLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithVerbose switches between a debug-level stderr logger and a silent one.
func WithVerbose(verbose bool) Option {
	return func(cfg *config) {
		if verbose {
			cfg.logger = newLogger(logging.LogLevelDebug, os.Stderr)
		} else {
			cfg.logger = newLogger(logging.LogLevelDisabled, io.Discard)
		}
	}
}

func newLogger(level logging.LogLevel, w io.Writer) logging.LeveledLogger {
	return logging.NewDefaultLeveledLoggerForScope("dnf", level, w)
}
