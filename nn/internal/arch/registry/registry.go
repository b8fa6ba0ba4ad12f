// Package registry holds the compute kernels available to the network.
//
// Kernel packages register themselves from init functions. The network
// picks one entry at construction, either by name or as the
// highest-priority entry supported by the detected CPU features.
package registry

import (
	"sort"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// MatVecFn computes dst = W·x for a row-major W with len(dst) rows and
// len(x) columns.
type MatVecFn func(dst, w, x []float64)

// MatTVecFn computes dst = Wᵗ·v for a row-major W with len(v) rows and
// len(dst) columns.
type MatTVecFn func(dst, w, v []float64)

// OuterFn computes the row-major outer product dst = u ⊗ v.
type OuterFn func(dst, u, v []float64)

// AddScaledFn computes dst += alpha·src.
type AddScaledFn func(dst, src []float64, alpha float64)

// OpEntry is one registered kernel implementation.
type OpEntry struct {
	Name      string
	SIMDLevel cpu.SIMDLevel
	Priority  int

	MatVec    MatVecFn
	MatTVec   MatTVecFn
	Outer     OuterFn
	AddScaled AddScaledFn
}

// Complete reports whether all operations are populated.
func (e *OpEntry) Complete() bool {
	return e.MatVec != nil && e.MatTVec != nil && e.Outer != nil && e.AddScaled != nil
}

// OpRegistry stores available implementations.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the default kernel registry.
var Global = &OpRegistry{}

// Register adds an implementation entry.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority complete entry supported by features.
func (r *OpRegistry) Lookup(features cpu.Features) *OpEntry {
	r.sortOnce()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := r.entries[i]
		if entry.Complete() && cpu.Supports(features, entry.SIMDLevel) {
			return &entry
		}
	}

	return nil
}

// LookupName returns the complete entry registered under name, provided
// features support it.
func (r *OpRegistry) LookupName(name string, features cpu.Features) *OpEntry {
	r.sortOnce()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := r.entries[i]
		if entry.Name == name && entry.Complete() && cpu.Supports(features, entry.SIMDLevel) {
			return &entry
		}
	}

	return nil
}

// Names returns the registered names in priority order.
func (r *OpRegistry) Names() []string {
	r.sortOnce()

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i := range r.entries {
		names[i] = r.entries[i].Name
	}

	return names
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}

func (r *OpRegistry) sortOnce() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sorted {
		return
	}

	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority > r.entries[j].Priority
	})
	r.sorted = true
}
