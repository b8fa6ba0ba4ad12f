package nn

import (
	"fmt"
	"math"
)

// SGD is a plain stochastic gradient descent optimizer: no momentum, no
// weight decay, one step per sample.
type SGD struct {
	rate float64
}

// NewSGD returns an optimizer with the given learning rate.
func NewSGD(rate float64) (*SGD, error) {
	o := &SGD{}
	if err := o.SetLearningRate(rate); err != nil {
		return nil, err
	}

	return o, nil
}

// SetLearningRate changes the learning rate. Zero freezes the network.
func (o *SGD) SetLearningRate(rate float64) error {
	if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidLearningRate, rate)
	}

	o.rate = rate
	return nil
}

// LearningRate returns the current learning rate.
func (o *SGD) LearningRate() float64 {
	return o.rate
}

// Step applies W -= rate·dW and b -= rate·db using the gradients stored by
// the last Network.Backward call. A zero rate leaves parameters untouched.
//
// If any updated parameter would be non-finite, Step returns
// ErrNonFiniteUpdate and the parameters keep their previous values.
func (o *SGD) Step(n *Network) error {
	if o.rate == 0 {
		return nil
	}

	if !n.updateFinite(-o.rate) {
		return ErrNonFiniteUpdate
	}

	n.addGradients(-o.rate)
	return nil
}
