// Command dnffilter removes artifacts from a biosignal recording with the
// deep neuronal filter.
//
// Usage:
//
//	dnffilter [flags]
//
// The input holds tab-separated "t signal noise" rows, e.g. EEG and an ECG
// reference. Both channels are highpass filtered and scaled, then fed to the
// filter, which starts learning after a warm-up. Every output row holds
// "f_nn delayed remover" followed by one weight distance per layer.
//
// Examples:
//
//	dnffilter -in rawoutfile.tsv -out eeg_filtered.dat
//	dnffilter -synth 60 -report -out /dev/null
//	dnffilter -in rec.tsv -notch 50 -layers 3 -taps 64 -lr 0.1
//	dnffilter -list-backends
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pion/logging"

	"github.com/cwbudde/algo-dnf/dsp/window"
	"github.com/cwbudde/algo-dnf/nn"
)

func main() {
	cfg := defaultSettings()

	in := flag.String("in", "-", "input TSV file ('-' for stdin)")
	out := flag.String("out", "-", "output file ('-' for stdout)")
	maxSamples := flag.Int("max", 250*120, "maximum number of input rows (0 = all)")
	synth := flag.Float64("synth", 0, "generate a synthetic recording of this many seconds instead of reading -in")
	synthOut := flag.String("synth-out", "", "also write the synthetic recording to this file")
	activation := flag.String("activation", "tanh", "activation: tanh (arctangent), logistic, relu, identity")
	verbose := flag.Bool("v", false, "debug logging")
	listBackends := flag.Bool("list-backends", false, "list compute kernels and exit")
	win := flag.String("window", "hann", "report spectrum window: hann, hamming, blackman, blackman-harris, rectangular")

	flag.IntVar(&cfg.layers, "layers", cfg.layers, "number of width-defining layers")
	flag.IntVar(&cfg.taps, "taps", cfg.taps, "noise delay line taps")
	flag.Float64Var(&cfg.sampleRate, "fs", cfg.sampleRate, "sampling rate in Hz")
	flag.IntVar(&cfg.blockSize, "block", cfg.blockSize, "prefilter block length in samples")
	flag.Float64Var(&cfg.highpass, "hp", cfg.highpass, "highpass cutoff in Hz (0 disables)")
	flag.IntVar(&cfg.highpassOrder, "hp-order", cfg.highpassOrder, "highpass Butterworth order")
	flag.Float64Var(&cfg.notch, "notch", cfg.notch, "mains notch frequency in Hz (0 disables)")
	flag.Float64Var(&cfg.notchQ, "notch-q", cfg.notchQ, "mains notch quality factor")
	flag.Float64Var(&cfg.gain, "gain", cfg.gain, "scale applied to both channels after prefiltering")
	flag.Float64Var(&cfg.learningRate, "lr", cfg.learningRate, "learning rate after warm-up")
	flag.Float64Var(&cfg.warmup, "warmup", cfg.warmup, "seconds before learning starts")
	flag.BoolVar(&cfg.bias, "bias", cfg.bias, "enable layer biases")
	flag.Int64Var(&cfg.seed, "seed", cfg.seed, "weight initialization seed")
	flag.StringVar(&cfg.backend, "backend", cfg.backend, "compute kernel (see -list-backends)")
	flag.BoolVar(&cfg.report, "report", false, "print a noise reduction report")
	flag.Float64Var(&cfg.bandLow, "band-low", 0, "report band lower edge in Hz")
	flag.Float64Var(&cfg.bandHigh, "band-high", 0, "report band upper edge in Hz (0 = Nyquist)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dnffilter [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Filters \"t signal noise\" rows with a deep neuronal filter.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listBackends {
		for _, name := range nn.Backends() {
			fmt.Println(name)
		}
		return
	}

	act, err := nn.ParseActivation(*activation)
	if err != nil {
		fatal(err)
	}
	cfg.activation = act

	if cfg.window, err = window.ParseType(*win); err != nil {
		fatal(err)
	}

	factory := logging.NewDefaultLoggerFactory()
	factory.Writer = os.Stderr
	factory.DefaultLogLevel = logging.LogLevelInfo
	if *verbose {
		factory.DefaultLogLevel = logging.LogLevelDebug
	}

	log := factory.NewLogger("dnffilter")

	rec, err := loadRecording(*in, *synth, cfg, *maxSamples, log)
	if err != nil {
		fatal(err)
	}

	if *synthOut != "" {
		if err := writeFile(*synthOut, func(w io.Writer) error { return writeRecording(w, rec) }); err != nil {
			fatal(err)
		}
	}

	var sum summary
	err = writeFile(*out, func(w io.Writer) error {
		var err error
		sum, err = process(cfg, rec, w, log, factory.NewLogger("dnf"))
		return err
	})
	if err != nil {
		fatal(err)
	}

	log.Infof("time taken = %f s, max sampling rate = %f Hz", sum.elapsed.Seconds(), sum.maxSampleRate())

	if sum.report != nil {
		fmt.Fprintln(os.Stderr, sum.report)
	}
}

func loadRecording(path string, synth float64, cfg settings, maxSamples int, log logging.LeveledLogger) (*recording, error) {
	if synth > 0 {
		log.Infof("generating %gs synthetic recording at %g Hz", synth, cfg.sampleRate)
		return synthesize(synth, cfg.sampleRate, cfg.seed)
	}

	r := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	log.Infof("reading %s", path)

	rec, err := readRecording(r, maxSamples)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if rec.len() == 0 {
		return nil, fmt.Errorf("%s: no samples", path)
	}

	return rec, nil
}

// writeFile runs fn on path, or on stdout for "-".
func writeFile(path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := fn(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
