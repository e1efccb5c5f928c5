// Package launch runs compute kernels over a grid of thread blocks.
//
// The CPU launcher mirrors the device launch contract: Launch validates the
// configuration and enqueues the kernel on a stream, errors are polled with
// GetLastError, and Synchronize waits for completion. Threads of a block execute
// sequentially on one goroutine; blocks are spread across workers.
package launch

import (
	"fmt"

	"github.com/born-ml/kernelrt/internal/vecmath"
)

// Dim3 is a grid or block extent, or a position within one.
type Dim3 struct {
	X, Y, Z uint32
}

// DimFrom converts a three-component vector; the layouts are identical.
func DimFrom(v vecmath.Vec3[uint32]) Dim3 {
	return Dim3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// Vec returns d as a three-component vector.
func (d Dim3) Vec() vecmath.Vec3[uint32] {
	return vecmath.New3(d.X, d.Y, d.Z)
}

// Size returns the number of positions in the extent.
func (d Dim3) Size() int {
	return int(d.X) * int(d.Y) * int(d.Z)
}

// String formats d as "(x, y, z)".
func (d Dim3) String() string {
	return fmt.Sprintf("(%d, %d, %d)", d.X, d.Y, d.Z)
}

// at converts a linear index within extent d to a position, X varying fastest.
func (d Dim3) at(linear int) Dim3 {
	x, y := int(d.X), int(d.Y)
	//nolint:gosec // results are bounded by the extent's own components
	return Dim3{
		X: uint32(linear % x),
		Y: uint32((linear / x) % y),
		Z: uint32(linear / (x * y)),
	}
}

// ThreadID identifies one thread within a launch.
type ThreadID struct {
	BlockIdx  Dim3 // Block index within the grid
	ThreadIdx Dim3 // Thread index within the block
	BlockDim  Dim3 // Dimensions of the block
	GridDim   Dim3 // Dimensions of the grid

	// Shared is the block's shared memory, visible to every thread of the block.
	Shared []byte
}

// GlobalX returns the global X index.
func (tid ThreadID) GlobalX() int {
	return int(tid.BlockIdx.X)*int(tid.BlockDim.X) + int(tid.ThreadIdx.X)
}

// GlobalY returns the global Y index.
func (tid ThreadID) GlobalY() int {
	return int(tid.BlockIdx.Y)*int(tid.BlockDim.Y) + int(tid.ThreadIdx.Y)
}

// GlobalZ returns the global Z index.
func (tid ThreadID) GlobalZ() int {
	return int(tid.BlockIdx.Z)*int(tid.BlockDim.Z) + int(tid.ThreadIdx.Z)
}
