package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pion/logging"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-dnf/dsp/core"
	"github.com/cwbudde/algo-dnf/dsp/filter/dnf"
	"github.com/cwbudde/algo-dnf/dsp/filter/prefilter"
	"github.com/cwbudde/algo-dnf/dsp/window"
	"github.com/cwbudde/algo-dnf/measure/nr"
	"github.com/cwbudde/algo-dnf/nn"
)

// settings configures one filtering run.
type settings struct {
	layers     int
	taps       int
	sampleRate float64
	blockSize  int // prefilter block length in samples

	highpass      float64 // Hz, 0 disables
	highpassOrder int
	notch         float64 // Hz, 0 disables
	notchQ        float64

	gain         float64
	learningRate float64
	warmup       float64 // seconds before learning starts

	activation nn.Activation
	bias       bool
	seed       int64
	backend    string

	report   bool
	bandLow  float64
	bandHigh float64
	window   window.Type
}

func defaultSettings() settings {
	pc := core.DefaultProcessorConfig()

	return settings{
		layers:        4,
		taps:          125,
		sampleRate:    pc.SampleRate,
		blockSize:     pc.BlockSize,
		highpass:      0.5,
		highpassOrder: 2,
		notchQ:        30,
		gain:          1000,
		learningRate:  0.5,
		warmup:        4,
		activation:    nn.ArcTan,
		seed:          nn.DefaultSeed,
		backend:       nn.BackendAuto,
	}
}

func (s settings) processorConfig() core.ProcessorConfig {
	return core.ApplyProcessorOptions(core.WithSampleRate(s.sampleRate), core.WithBlockSize(s.blockSize))
}

func (s settings) warmupSamples() int {
	return int(s.warmup * s.sampleRate)
}

func (s settings) validate() error {
	switch {
	case s.sampleRate <= 0:
		return fmt.Errorf("sample rate must be > 0: %g", s.sampleRate)
	case s.blockSize <= 0:
		return fmt.Errorf("block size must be > 0: %d", s.blockSize)
	case s.warmup < 0:
		return fmt.Errorf("warm-up must be >= 0: %g", s.warmup)
	case s.gain == 0:
		return errors.New("gain must not be 0")
	}

	return nil
}

type summary struct {
	samples int
	elapsed time.Duration
	report  *nr.Result
}

// maxSampleRate is the sampling rate the run could have sustained in real
// time.
func (s summary) maxSampleRate() float64 {
	if s.elapsed <= 0 {
		return 0
	}

	return float64(s.samples) / s.elapsed.Seconds()
}

func (s settings) prefilterOptions() []prefilter.Option {
	var opts []prefilter.Option
	if s.highpass > 0 {
		opts = append(opts, prefilter.WithHighpass(s.highpass, s.highpassOrder))
	}

	if s.notch > 0 {
		opts = append(opts, prefilter.WithBandstop(s.notch, s.notchQ))
	}

	return opts
}

// condition returns a prefiltered copy of x scaled by gain. The copy is
// filtered in blocks of blockSize samples.
func condition(pf *prefilter.Prefilter, x []float64, gain float64, blockSize int) []float64 {
	out := append([]float64(nil), x...)
	for start := 0; start < len(out); start += blockSize {
		pf.ProcessBlock(out[start:min(start+blockSize, len(out))])
	}

	floats.Scale(gain, out)

	return out
}

func logPrefilter(cfg settings, pf *prefilter.Prefilter, log logging.LeveledLogger) {
	log.Infof("prefilter: %d sections at %g Hz", pf.NumSections(), pf.SampleRate())

	if cfg.highpass > 0 {
		log.Debugf("prefilter: %.2f dB at highpass cutoff %g Hz", pf.MagnitudeDB(cfg.highpass), cfg.highpass)
	}

	if cfg.notch > 0 {
		log.Debugf("prefilter: %.2f dB at notch %g Hz", pf.MagnitudeDB(cfg.notch), cfg.notch)
	}
}

// process pre-filters and scales both channels, runs the deep neuronal
// filter and writes one "f_nn delayed remover dist..." row per sample.
func process(cfg settings, rec *recording, out io.Writer, log, filterLog logging.LeveledLogger) (summary, error) {
	if err := cfg.validate(); err != nil {
		return summary{}, err
	}

	pc := cfg.processorConfig()

	pf, err := prefilter.New(pc.SampleRate, cfg.prefilterOptions()...)
	if err != nil {
		return summary{}, fmt.Errorf("prefilter: %w", err)
	}

	logPrefilter(cfg, pf, log)

	sig := condition(pf, rec.signal, cfg.gain, pc.BlockSize)
	pf.Reset()
	ref := condition(pf, rec.noise, cfg.gain, pc.BlockSize)

	f, err := dnf.New(cfg.layers, cfg.taps,
		dnf.WithActivation(cfg.activation),
		dnf.WithBias(cfg.bias),
		dnf.WithSeed(cfg.seed),
		dnf.WithBackend(cfg.backend),
		dnf.WithSampleRate(pc.SampleRate),
		dnf.WithLogger(filterLog),
	)
	if err != nil {
		return summary{}, err
	}

	log.Infof("filter: %v widths, %s kernel, signal delay %d samples",
		f.Network().Widths(), f.Network().Backend(), f.SignalDelaySteps())

	warmup := cfg.warmupSamples()
	n := rec.len()

	var outputs []float64
	if cfg.report {
		outputs = make([]float64, n)
	}

	rw := newRowWriter(out)
	dists := make([]float64, 0, f.Network().NumLayers())

	var head [3]float64

	start := time.Now()

	for i := range n {
		if i == warmup {
			if err := f.SetLearningRate(cfg.learningRate); err != nil {
				return summary{}, err
			}

			log.Infof("learning enabled at sample %d (%.2fs), rate %g", i, float64(i)/cfg.sampleRate, cfg.learningRate)
		}

		y, err := f.ProcessSample(sig[i], ref[i])
		if err != nil {
			return summary{samples: i}, fmt.Errorf("sample %d (t=%g): %w", i, rec.t[i], err)
		}

		if cfg.report {
			outputs[i] = y
		}

		head[0], head[1], head[2] = y, f.DelayedSignal(), f.Remover()
		rw.rowWith(head[:], f.LayerWeightDistancesInto(dists))
	}

	if err := rw.flush(); err != nil {
		return summary{samples: n}, fmt.Errorf("write output: %w", err)
	}

	sum := summary{samples: n, elapsed: time.Since(start)}

	if cfg.report {
		sum.report = analyze(cfg, f.SignalDelaySteps(), sig, outputs, log)
	}

	return sum, nil
}

func analyze(cfg settings, delay int, inputs, outputs []float64, log logging.LeveledLogger) *nr.Result {
	a, err := nr.NewAnalyzer(nr.Config{
		SampleRate: cfg.sampleRate,
		BandLow:    cfg.bandLow,
		BandHigh:   cfg.bandHigh,
		Delay:      delay,
		Skip:       cfg.warmupSamples(),
		Window:     cfg.window,
	})
	if err != nil {
		log.Warnf("report disabled: %v", err)
		return nil
	}

	res, err := a.Analyze(inputs, outputs)
	if err != nil {
		log.Warnf("report disabled: %v", err)
		return nil
	}

	return &res
}
