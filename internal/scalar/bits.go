package scalar

import (
	"math"
	"math/bits"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// AsUint32 returns the bit pattern of f.
func AsUint32(f float32) uint32 {
	return math.Float32bits(f)
}

// AsInt32 returns the bit pattern of f as a signed word.
func AsInt32(f float32) int32 {
	return int32(math.Float32bits(f)) //nolint:gosec // reinterpretation
}

// AsFloat32 reinterprets u as a float32.
func AsFloat32(u uint32) float32 {
	return math.Float32frombits(u)
}

// IntAsFloat32 reinterprets i as a float32.
func IntAsFloat32(i int32) float32 {
	return math.Float32frombits(uint32(i)) //nolint:gosec // reinterpretation
}

// AsUint64 returns the bit pattern of f.
func AsUint64(f float64) uint64 {
	return math.Float64bits(f)
}

// AsInt64 returns the bit pattern of f as a signed word.
func AsInt64(f float64) int64 {
	return int64(math.Float64bits(f)) //nolint:gosec // reinterpretation
}

// AsFloat64 reinterprets u as a float64.
func AsFloat64(u uint64) float64 {
	return math.Float64frombits(u)
}

// IntAsFloat64 reinterprets i as a float64.
func IntAsFloat64(i int64) float64 {
	return math.Float64frombits(uint64(i)) //nolint:gosec // reinterpretation
}

// SplitFloat64 returns the low and high 32-bit words of f's bit pattern.
func SplitFloat64(f float64) (low, high uint32) {
	u := math.Float64bits(f)
	return uint32(u), uint32(u >> 32)
}

// SplitFloat64Int is SplitFloat64 with signed words.
func SplitFloat64Int(f float64) (low, high int32) {
	l, h := SplitFloat64(f)
	return int32(l), int32(h) //nolint:gosec // reinterpretation
}

// JoinFloat64 rebuilds a float64 from its low and high words.
func JoinFloat64(low, high uint32) float64 {
	return math.Float64frombits(uint64(high)<<32 | uint64(low))
}

var hasPopcount = detectPopcount()

func detectPopcount() bool {
	switch {
	case cpu.X86.HasPOPCNT:
		return true
	case cpu.ARM64.HasASIMD:
		return true
	}
	return false
}

// CountBits32 returns the number of set bits in v.
func CountBits32(v uint32) uint32 {
	if hasPopcount {
		return uint32(bits.OnesCount32(v))
	}
	return CountBits32Portable(v)
}

// CountBits64 returns the number of set bits in v.
func CountBits64(v uint64) uint32 {
	if hasPopcount {
		return uint32(bits.OnesCount64(v))
	}
	return CountBits64Portable(v)
}

// CountBits32Portable clears the lowest set bit until none remain.
func CountBits32Portable(v uint32) uint32 {
	var c uint32
	for v != 0 {
		v &= v - 1
		c++
	}
	return c
}

// CountBits64Portable is the 64-bit form of CountBits32Portable.
func CountBits64Portable(v uint64) uint32 {
	var c uint32
	for v != 0 {
		v &= v - 1
		c++
	}
	return c
}

// InterlockedAdd atomically adds v to *dest and returns the previous value.
func InterlockedAdd(dest *uint32, v uint32) uint32 {
	return atomic.AddUint32(dest, v) - v
}

// InterlockedAddInt32 is InterlockedAdd for signed counters.
func InterlockedAddInt32(dest *int32, v int32) int32 {
	return atomic.AddInt32(dest, v) - v
}

// AtomicAddFloat32 adds v to the float32 stored as bits in *dest and returns the
// previous value. Concurrent callers serialise through compare-and-swap.
func AtomicAddFloat32(dest *uint32, v float32) float32 {
	for {
		old := atomic.LoadUint32(dest)
		prev := math.Float32frombits(old)
		if atomic.CompareAndSwapUint32(dest, old, math.Float32bits(prev+v)) {
			return prev
		}
	}
}
