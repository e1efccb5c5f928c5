// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel turns host tensors into kernel arguments and runs kernels.
//
// # Overview
//
// A kernel receives each tensor argument as a TensorView: a data address plus byte
// strides and sizes for up to MaxDims dimensions. A Marshaler builds TensorViews,
// relocating and converting tensors through a tensor.Host first when needed.
// A Launcher runs a kernel over a grid of thread blocks on a stream, and a Function
// ties both together behind a fixed host signature.
//
// # Basic Usage
//
//	rt := kernel.NewCPURuntime(kernel.DefaultLaunchConfig())
//	defer rt.Close()
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	_, out, err := kernel.RunCompute(rt, x, 2) // out = x * 2
//
// # Errors
//
// Marshaling errors are *ArgError values naming the offending argument, e.g.
// "weights: number of dimensions exceeds limit (5)". Launch configuration errors
// are returned by Launch and also kept until GetLastError clears them. A kernel that
// panics is reported as a *KernelFault when its stream is synchronized.
package kernel

import (
	"unsafe"

	"github.com/born-ml/kernelrt/internal/launch"
	"github.com/born-ml/kernelrt/internal/marshal"
	"github.com/born-ml/kernelrt/tensor"
)

// MaxDims is the highest tensor rank a kernel argument can describe.
const MaxDims = marshal.MaxDims

// TensorView is the kernel-side descriptor of a tensor argument.
type TensorView = marshal.TensorView

// DiffTensorView pairs a tensor with the tensor its gradient accumulates into.
type DiffTensorView = marshal.DiffTensorView

// ArgList is the untyped argument array handed to a launch.
type ArgList = marshal.ArgList

// ArgError ties a marshaling failure to an argument name.
type ArgError = marshal.ArgError

// Marshaling errors.
var (
	ErrRankExceeded   = marshal.ErrRankExceeded
	ErrInvalidData    = marshal.ErrInvalidData
	ErrStrideOverflow = marshal.ErrStrideOverflow
	ErrArgListFull    = marshal.ErrArgListFull
)

// Marshaler builds kernel argument descriptors for one target device.
type Marshaler = marshal.Marshaler

// NewMarshaler returns a Marshaler that prepares tensors with host for device.
func NewMarshaler(host tensor.Host, device tensor.Device) *Marshaler {
	return marshal.New(host, device)
}

// NewArgList returns an empty argument list with room for capacity arguments.
func NewArgList(capacity int) *ArgList { return marshal.NewArgList(capacity) }

// Elem returns a typed pointer to the element of v at idx.
func Elem[T any](v TensorView, idx ...int) *T { return marshal.Elem[T](v, idx...) }

// Arg reinterprets kernel argument i as *T.
func Arg[T any](args []unsafe.Pointer, i int) *T { return marshal.Arg[T](args, i) }

// Launch primitives.
type (
	Dim3         = launch.Dim3
	ThreadID     = launch.ThreadID
	Kernel       = launch.Kernel
	KernelFunc   = launch.KernelFunc
	Attributes   = launch.Attributes
	Stream       = launch.Stream
	Launcher     = launch.Launcher
	LaunchConfig = launch.Config
	KernelFault  = launch.KernelFault
)

// Launch errors.
var (
	ErrInvalidConfiguration = launch.ErrInvalidConfiguration
	ErrInvalidKernel        = launch.ErrInvalidKernel
	ErrStreamClosed         = launch.ErrStreamClosed
)

// DefaultLaunchConfig returns the default CPU launcher limits.
func DefaultLaunchConfig() LaunchConfig { return launch.DefaultConfig() }

// NewCPULauncher creates a launcher that runs kernels on host goroutines.
func NewCPULauncher(cfg LaunchConfig) *Launcher { return launch.NewCPU(cfg) }

// FuncAttributes queries k's resource needs.
func FuncAttributes(k *Kernel) (Attributes, error) { return launch.FuncAttributes(k) }
