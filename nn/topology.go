package nn

import (
	"fmt"
	"math"
)

// LayerWidths returns the neuron counts of a network with layerCount
// width-defining layers fed by tapCount inputs. The first element is
// tapCount and the last is always 1; each element is at most the previous
// one.
//
// Widths shrink by b = exp(ln(tapCount)/(layerCount-1)) per transition:
// transition i produces ceil(tapCount/b^i) neurons, the last transition is
// forced to 1 and no transitions follow the first one that reaches 1.
func LayerWidths(layerCount, tapCount int) ([]int, error) {
	if layerCount < 2 {
		return nil, fmt.Errorf("%w: layer count must be >= 2: %d", ErrInvalidTopology, layerCount)
	}

	if tapCount < 1 {
		return nil, fmt.Errorf("%w: tap count must be >= 1: %d", ErrInvalidTopology, tapCount)
	}

	// single precision keeps integral shrink factors such as 5 for 125 taps
	// and 4 layers exact
	b := float64(float32(math.Exp(math.Log(float64(tapCount)) / float64(layerCount-1))))

	// the loop stops at the first width of 1, so huge layer counts with few
	// taps produce short slices
	size := layerCount
	if tapCount < layerCount-1 {
		size = tapCount + 1
	}

	widths := make([]int, 1, size)
	widths[0] = tapCount

	for i := 1; i < layerCount; i++ {
		out := int(math.Ceil(float64(tapCount) / math.Pow(b, float64(i))))
		if i == layerCount-1 {
			out = 1
		}

		widths = append(widths, out)
		if out == 1 {
			break
		}
	}

	return widths, nil
}
