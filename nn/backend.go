package nn

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath/cpu"

	_ "github.com/cwbudde/algo-dnf/nn/internal/arch/blas"    // register gonum BLAS kernel
	_ "github.com/cwbudde/algo-dnf/nn/internal/arch/generic" // register scalar kernel
	"github.com/cwbudde/algo-dnf/nn/internal/arch/registry"
	_ "github.com/cwbudde/algo-dnf/nn/internal/arch/simd" // register algo-vecmath kernel
)

// Compute kernel names accepted by WithBackend.
const (
	BackendAuto    = "auto"
	BackendGeneric = "generic"
	BackendSIMD    = "simd"
	BackendBLAS    = "blas"
)

// Backends lists the registered compute kernels in priority order.
func Backends() []string {
	return registry.Global.Names()
}

func selectKernel(name string) (registry.OpEntry, error) {
	features := cpu.DetectFeatures()

	var entry *registry.OpEntry
	if name == BackendAuto {
		entry = registry.Global.Lookup(features)
	} else {
		entry = registry.Global.LookupName(name, features)
	}

	if entry == nil {
		return registry.OpEntry{}, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}

	return *entry, nil
}
