// Package blas registers a kernel backed by gonum's BLAS level 1/2
// routines. All operations work on views of the caller's slices and do not
// allocate.
package blas

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/cwbudde/algo-dnf/nn/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "blas",
		SIMDLevel: cpu.SIMDNone,
		Priority:  5,
		MatVec:    matVec,
		MatTVec:   matTVec,
		Outer:     outer,
		AddScaled: addScaled,
	})
}

func general(w []float64, rows, cols int) blas64.General {
	return blas64.General{Rows: rows, Cols: cols, Stride: cols, Data: w[:rows*cols]}
}

func vector(x []float64) blas64.Vector {
	return blas64.Vector{N: len(x), Data: x, Inc: 1}
}

func matVec(dst, w, x []float64) {
	blas64.Gemv(blas.NoTrans, 1, general(w, len(dst), len(x)), vector(x), 0, vector(dst))
}

func matTVec(dst, w, v []float64) {
	blas64.Gemv(blas.Trans, 1, general(w, len(v), len(dst)), vector(v), 0, vector(dst))
}

func outer(dst, u, v []float64) {
	n := len(u) * len(v)
	for i := range dst[:n] {
		dst[i] = 0
	}

	blas64.Ger(1, vector(u), vector(v), general(dst, len(u), len(v)))
}

func addScaled(dst, src []float64, alpha float64) {
	blas64.Axpy(alpha, vector(src), vector(dst[:len(src)]))
}
