package nn

import (
	"fmt"
	"math"
	"strings"
)

// Activation selects the elementwise nonlinearity applied after each
// affine map.
type Activation int

const (
	// Identity passes the pre-activation through unchanged.
	Identity Activation = iota
	// Logistic computes 1/(1+e^-z).
	Logistic
	// ArcTan computes atan(z). It is the filter's default and is what the
	// configuration name "tanh" selects.
	ArcTan
	// ReLU computes max(0, z).
	ReLU
)

// String returns the canonical activation name.
func (a Activation) String() string {
	switch a {
	case Identity:
		return "identity"
	case Logistic:
		return "logistic"
	case ArcTan:
		return "arctan"
	case ReLU:
		return "relu"
	default:
		return fmt.Sprintf("Activation(%d)", int(a))
	}
}

// ParseActivation maps a configuration name to an Activation.
//
// "tanh" deliberately maps to ArcTan, not to the hyperbolic tangent: the
// filter has always computed atan under that label and its dynamics depend
// on it.
func ParseActivation(name string) (Activation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "identity", "none", "linear":
		return Identity, nil
	case "logistic", "sigmoid":
		return Logistic, nil
	case "tanh", "atan", "arctan":
		return ArcTan, nil
	case "relu":
		return ReLU, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
	}
}

// Valid reports whether a is one of the defined activations.
func (a Activation) Valid() bool {
	return a >= Identity && a <= ReLU
}

// apply writes f(src[i]) into dst[i].
func (a Activation) apply(dst, src []float64) {
	_ = dst[len(src)-1] // bounds check hint

	switch a {
	case Logistic:
		for i, z := range src {
			dst[i] = 1 / (1 + math.Exp(-z))
		}
	case ArcTan:
		for i, z := range src {
			dst[i] = math.Atan(z)
		}
	case ReLU:
		for i, z := range src {
			dst[i] = math.Max(0, z)
		}
	default:
		copy(dst, src)
	}
}

// derive writes upstream[i]·f'(pre[i]) into dst[i]. out holds f(pre).
func (a Activation) derive(dst, pre, out, upstream []float64) {
	_ = dst[len(pre)-1] // bounds check hint

	switch a {
	case Logistic:
		for i := range pre {
			s := out[i]
			dst[i] = upstream[i] * s * (1 - s)
		}
	case ArcTan:
		for i, z := range pre {
			dst[i] = upstream[i] / (1 + z*z)
		}
	case ReLU:
		for i, z := range pre {
			if z > 0 {
				dst[i] = upstream[i]
			} else {
				dst[i] = 0
			}
		}
	default:
		copy(dst, upstream[:len(pre)])
	}
}
