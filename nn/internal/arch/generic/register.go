// Package generic registers the portable scalar kernel.
package generic

import (
	"github.com/cwbudde/algo-dnf/nn/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "generic",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		MatVec:    MatVec,
		MatTVec:   MatTVec,
		Outer:     Outer,
		AddScaled: AddScaled,
	})
}

// MatVec computes dst = W·x.
func MatVec(dst, w, x []float64) {
	cols := len(x)
	for r := range dst {
		row := w[r*cols : (r+1)*cols]

		var acc float64
		for c, v := range row {
			acc += v * x[c]
		}

		dst[r] = acc
	}
}

// MatTVec computes dst = Wᵗ·v.
func MatTVec(dst, w, v []float64) {
	cols := len(dst)
	for c := range dst {
		dst[c] = 0
	}

	for r, g := range v {
		row := w[r*cols : (r+1)*cols]
		for c, x := range row {
			dst[c] += x * g
		}
	}
}

// Outer computes dst = u ⊗ v.
func Outer(dst, u, v []float64) {
	cols := len(v)
	for r, a := range u {
		row := dst[r*cols : (r+1)*cols]
		for c, b := range v {
			row[c] = a * b
		}
	}
}

// AddScaled computes dst += alpha·src.
func AddScaled(dst, src []float64, alpha float64) {
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] += alpha * x
	}
}
