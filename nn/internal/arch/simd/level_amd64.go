//go:build amd64 && !purego

package simd

import "github.com/cwbudde/algo-vecmath/cpu"

const (
	level    = cpu.SIMDSSE2
	priority = 10
)
