// Package delay provides a fixed-capacity FIFO delay line.
//
// A [Line] always holds exactly Len() samples. Each call to [Line.Process]
// pushes one new sample and returns the oldest one, so a line of capacity C
// delays its input by C samples. The line is zero-filled at construction.
package delay

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by [Line.Get] for indices outside [0, Len()).
var ErrOutOfRange = errors.New("delay: index out of range")

// Line is a circular FIFO delay line.
type Line struct {
	buffer []float64
	head   int // position of the oldest sample
}

// New returns a zero-filled delay line of fixed capacity.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns the line capacity in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Process returns the oldest sample, evicts it and appends x.
func (d *Line) Process(x float64) float64 {
	out := d.buffer[d.head]
	d.buffer[d.head] = x

	d.head++
	if d.head >= len(d.buffer) {
		d.head = 0
	}

	return out
}

// Get returns the i-th oldest sample without modifying the line.
// Index 0 is the sample the next Process call will return.
func (d *Line) Get(i int) (float64, error) {
	size := len(d.buffer)
	if i < 0 || i >= size {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, i, size)
	}

	return d.buffer[d.at(i)], nil
}

// CopyTo copies the line contents into dst in oldest-to-newest order and
// returns the number of samples copied. Zero-alloc.
func (d *Line) CopyTo(dst []float64) int {
	n := copy(dst, d.buffer[d.head:])
	if n < len(dst) {
		n += copy(dst[n:], d.buffer[:d.head])
	}

	return n
}

// Reset zeroes all samples.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}

	d.head = 0
}

func (d *Line) at(i int) int {
	p := d.head + i
	if p >= len(d.buffer) {
		p -= len(d.buffer)
	}

	return p
}
