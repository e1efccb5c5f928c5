package scalar

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures lists the instruction set extensions the intrinsics can take advantage of.
type CPUFeatures struct {
	Arch      string
	HasPOPCNT bool // hardware population count (x86 POPCNT or arm64 CNT)
	HasFMA    bool
	HasAVX2   bool
	HasASIMD  bool
	HasFPHP   bool // arm64 half-precision arithmetic
}

var cpuFeatures = CPUFeatures{
	Arch:      runtime.GOARCH,
	HasPOPCNT: hasPopcount,
	HasFMA:    cpu.X86.HasFMA || cpu.ARM64.HasASIMD,
	HasAVX2:   cpu.X86.HasAVX2,
	HasASIMD:  cpu.ARM64.HasASIMD,
	HasFPHP:   cpu.ARM64.HasFPHP,
}

// Features returns the detected CPU features.
func Features() CPUFeatures {
	return cpuFeatures
}

// String returns a compact description such as "amd64: POPCNT FMA AVX2".
func (f CPUFeatures) String() string {
	var names []string
	if f.HasPOPCNT {
		names = append(names, "POPCNT")
	}
	if f.HasFMA {
		names = append(names, "FMA")
	}
	if f.HasAVX2 {
		names = append(names, "AVX2")
	}
	if f.HasASIMD {
		names = append(names, "ASIMD")
	}
	if f.HasFPHP {
		names = append(names, "FPHP")
	}
	if len(names) == 0 {
		return f.Arch + ": scalar"
	}
	return f.Arch + ": " + strings.Join(names, " ")
}
