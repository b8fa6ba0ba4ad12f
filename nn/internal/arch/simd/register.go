// Package simd registers a kernel built on the algo-vecmath block
// primitives, which dispatch to AVX2/SSE2/NEON at runtime.
package simd

import (
	"sync"

	"github.com/cwbudde/algo-dnf/nn/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath"
)

type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) ([]float64, *scratchBuf) {
	buf := scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < n {
		buf.data = make([]float64, n)
	}
	return buf.data[:n], buf
}

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "simd",
		SIMDLevel: level,
		Priority:  priority,
		MatVec:    matVec,
		MatTVec:   matTVec,
		Outer:     outer,
		AddScaled: addScaled,
	})
}

func matVec(dst, w, x []float64) {
	cols := len(x)
	for r := range dst {
		dst[r] = vecmath.DotProduct(w[r*cols:(r+1)*cols], x)
	}
}

func matTVec(dst, w, v []float64) {
	cols := len(dst)
	for c := range dst {
		dst[c] = 0
	}

	tmp, buf := getScratch(cols)
	for r, g := range v {
		vecmath.ScaleBlock(tmp, w[r*cols:(r+1)*cols], g)
		vecmath.AddMulBlock(dst, dst, tmp, 1) // (dst + tmp)·1
	}
	scratchPool.Put(buf)
}

func outer(dst, u, v []float64) {
	cols := len(v)
	for r, a := range u {
		vecmath.ScaleBlock(dst[r*cols:(r+1)*cols], v, a)
	}
}

func addScaled(dst, src []float64, alpha float64) {
	tmp, buf := getScratch(len(src))
	vecmath.ScaleBlock(tmp, src, alpha)
	vecmath.AddMulBlock(dst, dst, tmp, 1)
	scratchPool.Put(buf)
}
