package nn

import (
	"io"
	"math"

	"github.com/pion/logging"
)

type config struct {
	activation Activation
	bias       bool
	gain       float64
	seed       int64
	backend    string
	logger     logging.LeveledLogger
}

func defaultConfig() config {
	return config{
		activation: ArcTan,
		gain:       DefaultXavierGain,
		seed:       DefaultSeed,
		backend:    BackendAuto,
		logger:     logging.NewDefaultLeveledLoggerForScope("nn", logging.LogLevelDisabled, io.Discard),
	}
}

// Option configures a Network.
type Option func(*config)

// WithActivation sets the activation used by every layer. Default ArcTan.
func WithActivation(a Activation) Option {
	return func(cfg *config) {
		if a.Valid() {
			cfg.activation = a
		}
	}
}

// WithBias enables zero-initialized bias vectors. Default disabled.
func WithBias(enabled bool) Option {
	return func(cfg *config) { cfg.bias = enabled }
}

// WithXavierGain scales the Xavier-uniform initialization range.
// Non-positive or non-finite values are ignored.
func WithXavierGain(gain float64) Option {
	return func(cfg *config) {
		if gain > 0 && !math.IsInf(gain, 0) {
			cfg.gain = gain
		}
	}
}

// WithSeed sets the weight initialization seed. Default [DefaultSeed].
func WithSeed(seed int64) Option {
	return func(cfg *config) { cfg.seed = seed }
}

// WithBackend selects the compute kernel by name: [BackendAuto],
// [BackendGeneric], [BackendSIMD] or [BackendBLAS]. An empty name means auto.
func WithBackend(name string) Option {
	return func(cfg *config) {
		if name == "" {
			name = BackendAuto
		}
		cfg.backend = name
	}
}

// WithLogger sets the logger used to report construction details.
func WithLogger(logger logging.LeveledLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
