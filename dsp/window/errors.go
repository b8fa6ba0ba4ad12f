package window

import "errors"

var (
	// ErrUnknownType is returned by ParseType for names it cannot map.
	ErrUnknownType = errors.New("window: unknown type")

	errMismatchedLength = errors.New("samples and coefficients must have same length")
)
