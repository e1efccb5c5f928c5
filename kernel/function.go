// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package kernel

import (
	"github.com/born-ml/kernelrt/internal/binding"
	"github.com/born-ml/kernelrt/internal/launch"
	"github.com/born-ml/kernelrt/tensor"
)

// Host-callable functions.
type (
	Param     = binding.Param
	Kind      = binding.Kind
	Signature = binding.Signature
	Function  = binding.Function
	Plan      = binding.Plan
	Planner   = binding.Planner
	Inputs    = binding.Inputs
	DiffInput = binding.DiffInput
	Runtime   = binding.Runtime
	Module    = binding.Module
)

// Parameter kinds.
const (
	KindTensor     = binding.KindTensor
	KindDiffTensor = binding.KindDiffTensor
	KindScalar     = binding.KindScalar
	KindArray      = binding.KindArray
	KindVector     = binding.KindVector
	KindMatrix     = binding.KindMatrix
)

// Parameter declarations.
var (
	TensorParam     = binding.Tensor
	DiffTensorParam = binding.DiffTensor
	ScalarParam     = binding.Scalar
	ArrayParam      = binding.Array
	VectorParam     = binding.Vector
	MatrixParam     = binding.Matrix
)

// ScaleKernel computes out = in * s over a 2-D float32 tensor.
var ScaleKernel = binding.ScaleKernel

// NewRuntime assembles a runtime that marshals with host for device and launches with l.
func NewRuntime(host tensor.Host, device tensor.Device, l *Launcher) *Runtime {
	return binding.NewRuntime(host, device, l)
}

// NewCPURuntime returns a runtime on the CPU backend and CPU launcher.
func NewCPURuntime(cfg LaunchConfig) *Runtime { return binding.NewCPURuntime(cfg) }

// NewFunction binds k to rt with the given host signature and kernel parameter list.
func NewFunction(rt *Runtime, sig Signature, kernelParams []Param, k *launch.Kernel, plan Planner) *Function {
	return binding.NewFunction(rt, sig, kernelParams, k, plan)
}

// NewModule returns an empty module.
func NewModule(name string) *Module { return binding.NewModule(name) }

// NewCompute binds ScaleKernel as the runCompute function.
func NewCompute(rt *Runtime) *Function { return binding.NewCompute(rt) }

// RunCompute scales a 2-D float32 tensor by s and returns the input and the result.
func RunCompute(rt *Runtime, input *tensor.RawTensor, s float32) (x, out *tensor.RawTensor, err error) {
	return binding.RunCompute(rt, input, s)
}
