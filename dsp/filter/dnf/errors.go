package dnf

import "errors"

var (
	// ErrInvalidConfig reports construction parameters that cannot form a filter.
	ErrInvalidConfig = errors.New("dnf: invalid configuration")

	// ErrNonFinite reports a NaN or infinite input sample. The sample is
	// rejected before any state changes.
	ErrNonFinite = errors.New("dnf: non-finite input sample")

	// ErrDiverged reports a non-finite network output, or a learning step
	// that would make a weight non-finite, for finite inputs. No learning step
	// is applied for that sample.
	ErrDiverged = errors.New("dnf: network output diverged")
)
