package nn

import "errors"

var (
	// ErrInvalidTopology reports a layer or tap count that cannot form a network.
	ErrInvalidTopology = errors.New("nn: invalid topology")

	// ErrInputSize reports an input vector whose length differs from the tap count.
	ErrInputSize = errors.New("nn: input size mismatch")

	// ErrUnknownBackend reports a compute kernel name that is not registered
	// or not supported on this CPU.
	ErrUnknownBackend = errors.New("nn: unknown backend")

	// ErrUnknownActivation reports an activation name ParseActivation cannot map.
	ErrUnknownActivation = errors.New("nn: unknown activation")

	// ErrInvalidLearningRate reports a negative or non-finite learning rate.
	ErrInvalidLearningRate = errors.New("nn: invalid learning rate")

	// ErrNonFiniteUpdate reports a gradient step that would leave a
	// parameter NaN or infinite. The step is not applied.
	ErrNonFiniteUpdate = errors.New("nn: non-finite parameter update")
)
