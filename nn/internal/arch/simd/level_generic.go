//go:build (!amd64 && !arm64) || purego

package simd

import "github.com/cwbudde/algo-vecmath/cpu"

// Without a SIMD backend vecmath falls back to scalar loops; the entry stays
// selectable by name but loses to blas in automatic selection.
const (
	level    = cpu.SIMDNone
	priority = 1
)
