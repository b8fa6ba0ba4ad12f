// Package prefilter conditions raw biosignals before they reach the deep
// neuronal filter: a Butterworth highpass removes electrode drift and
// optional notches remove mains hum.
package prefilter

import (
	"errors"
	"math"
	"math/cmplx"
)

var (
	// ErrInvalidFrequency is returned for cutoffs outside (0, fs/2).
	ErrInvalidFrequency = errors.New("prefilter: invalid frequency")
	// ErrInvalidOrder is returned for non-positive filter orders.
	ErrInvalidOrder = errors.New("prefilter: invalid order")
	// ErrInvalidQ is returned for non-positive quality factors.
	ErrInvalidQ = errors.New("prefilter: invalid q")
)

type stage struct {
	kind  string
	freq  float64
	order int
	q     float64
}

type config struct {
	stages []stage
}

// Option adds a stage to a Prefilter. Stages run in option order.
type Option func(*config)

// WithHighpass adds a Butterworth highpass of the given order.
func WithHighpass(cutoff float64, order int) Option {
	return func(cfg *config) {
		cfg.stages = append(cfg.stages, stage{kind: "highpass", freq: cutoff, order: order})
	}
}

// WithBandstop adds a notch at center Hz.
func WithBandstop(center, q float64) Option {
	return func(cfg *config) {
		cfg.stages = append(cfg.stages, stage{kind: "bandstop", freq: center, q: q})
	}
}

// Prefilter is a cascade of biquad sections. Without stages it passes
// samples through unchanged.
type Prefilter struct {
	sections   []section
	sampleRate float64
}

// New designs the configured stages for sampleRate.
func New(sampleRate float64, opts ...Option) (*Prefilter, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &Prefilter{sampleRate: sampleRate}

	for _, st := range cfg.stages {
		switch st.kind {
		case "highpass":
			coeffs, err := ButterworthHighpass(st.freq, st.order, sampleRate)
			if err != nil {
				return nil, err
			}

			for _, c := range coeffs {
				p.sections = append(p.sections, section{Coefficients: c})
			}
		case "bandstop":
			c, err := Bandstop(st.freq, st.q, sampleRate)
			if err != nil {
				return nil, err
			}

			p.sections = append(p.sections, section{Coefficients: c})
		}
	}

	return p, nil
}

// ProcessSample filters one sample.
func (p *Prefilter) ProcessSample(x float64) float64 {
	for i := range p.sections {
		x = p.sections[i].processSample(x)
	}

	return x
}

// ProcessBlock filters buf in place. Zero-alloc.
func (p *Prefilter) ProcessBlock(buf []float64) {
	for i := range p.sections {
		p.sections[i].processBlock(buf)
	}
}

// Reset clears all section states.
func (p *Prefilter) Reset() {
	for i := range p.sections {
		p.sections[i].d0 = 0
		p.sections[i].d1 = 0
	}
}

// NumSections returns the number of second-order sections.
func (p *Prefilter) NumSections() int {
	return len(p.sections)
}

// SampleRate returns the design sample rate in Hz.
func (p *Prefilter) SampleRate() float64 {
	return p.sampleRate
}

// Response returns the cascaded complex response at freqHz.
func (p *Prefilter) Response(freqHz float64) complex128 {
	h := complex(1, 0)
	for i := range p.sections {
		h *= p.sections[i].Response(freqHz, p.sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude response at freqHz in dB.
func (p *Prefilter) MagnitudeDB(freqHz float64) float64 {
	return 20 * math.Log10(cmplx.Abs(p.Response(freqHz)))
}
