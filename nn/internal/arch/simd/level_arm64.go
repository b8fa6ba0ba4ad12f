//go:build arm64 && !purego

package simd

import "github.com/cwbudde/algo-vecmath/cpu"

const (
	level    = cpu.SIMDNEON
	priority = 10
)
