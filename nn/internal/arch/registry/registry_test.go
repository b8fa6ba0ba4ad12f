package registry

import (
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
)

func stubEntry(name string, level cpu.SIMDLevel, priority int) OpEntry {
	return OpEntry{
		Name:      name,
		SIMDLevel: level,
		Priority:  priority,
		MatVec:    func(dst, w, x []float64) {},
		MatTVec:   func(dst, w, v []float64) {},
		Outer:     func(dst, u, v []float64) {},
		AddScaled: func(dst, src []float64, alpha float64) {},
	}
}

func TestRegistryLookupPrefersHigherPriority(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(stubEntry("generic", cpu.SIMDNone, 0))
	reg.Register(stubEntry("simd", cpu.SIMDSSE2, 10))
	reg.Register(stubEntry("blas", cpu.SIMDNone, 5))

	entry := reg.Lookup(cpu.Features{HasSSE2: true})
	if entry == nil || entry.Name != "simd" {
		t.Fatalf("expected simd, got %#v", entry)
	}

	entry = reg.Lookup(cpu.Features{})
	if entry == nil || entry.Name != "blas" {
		t.Fatalf("expected blas, got %#v", entry)
	}
}

func TestRegistryLookupForceGeneric(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(stubEntry("generic", cpu.SIMDNone, 0))
	reg.Register(stubEntry("simd", cpu.SIMDSSE2, 10))

	entry := reg.Lookup(cpu.Features{HasSSE2: true, ForceGeneric: true})
	if entry == nil || entry.Name != "generic" {
		t.Fatalf("expected generic with ForceGeneric, got %#v", entry)
	}
}

func TestRegistrySkipsIncompleteEntries(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(stubEntry("generic", cpu.SIMDNone, 0))
	reg.Register(OpEntry{Name: "partial", SIMDLevel: cpu.SIMDNone, Priority: 50})

	entry := reg.Lookup(cpu.Features{})
	if entry == nil || entry.Name != "generic" {
		t.Fatalf("expected generic, got %#v", entry)
	}

	if reg.LookupName("partial", cpu.Features{}) != nil {
		t.Fatal("incomplete entry must not be returned by name")
	}
}

func TestRegistryLookupName(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(stubEntry("generic", cpu.SIMDNone, 0))
	reg.Register(stubEntry("simd", cpu.SIMDSSE2, 10))

	if entry := reg.LookupName("generic", cpu.Features{HasSSE2: true}); entry == nil || entry.Name != "generic" {
		t.Fatalf("expected generic, got %#v", entry)
	}

	if entry := reg.LookupName("simd", cpu.Features{}); entry != nil {
		t.Fatalf("simd must not be selectable without SSE2, got %#v", entry)
	}

	if entry := reg.LookupName("missing", cpu.Features{}); entry != nil {
		t.Fatalf("expected nil, got %#v", entry)
	}
}

func TestRegistryNamesAndReset(t *testing.T) {
	reg := &OpRegistry{}
	reg.Register(stubEntry("generic", cpu.SIMDNone, 0))
	reg.Register(stubEntry("simd", cpu.SIMDSSE2, 10))

	names := reg.Names()
	if len(names) != 2 || names[0] != "simd" || names[1] != "generic" {
		t.Fatalf("unexpected names %v", names)
	}

	reg.Reset()

	if len(reg.Names()) != 0 {
		t.Fatal("expected empty registry after Reset")
	}
}
