// Package nn implements the small feed-forward network used by the deep
// neuronal filter.
//
// The network is a fixed chain of fully connected layers whose widths shrink
// geometrically from the tap count down to a single output neuron (see
// [LayerWidths]). Each layer is an affine map followed by an elementwise
// [Activation]. [Network.Forward] caches every layer's input and
// pre-activation so that [Network.Backward] can compute analytic gradients
// with the chain rule; [SGD] then applies a plain gradient-descent step in
// place. [Tracker] measures how far the weights have moved from their
// initial values.
//
// All buffers are allocated in [New]; Forward, Backward and SGD.Step do not
// allocate. Matrix and vector primitives run on a compute kernel chosen once
// at construction ("generic", "simd" or "blas", see [WithBackend]).
package nn
