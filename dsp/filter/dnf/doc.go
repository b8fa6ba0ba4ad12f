// Package dnf implements the deep neuronal filter: an adaptive noise
// canceller that learns online, sample by sample.
//
// A [Filter] receives a contaminated signal and a reference noise channel.
// The signal is delayed by half the tap count while the most recent taps of
// the noise channel feed a small feed-forward network (package nn). The
// network output, the remover, is subtracted from the delayed signal. The
// difference is both the filter output and the error that drives one
// gradient-descent step per sample.
//
// The filter starts frozen (learning rate 0). Callers decide when to start
// adapting, typically after a warm-up period, via [Filter.SetLearningRate].
//
// A Filter is not safe for concurrent use.
package dnf
