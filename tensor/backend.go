// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

// Host is implemented by tensor libraries that kernel arguments are marshaled from.
// It relocates tensors between devices and coerces element types.
//
// Implementations:
//   - backend/cpu: host memory copies and dtype casts
//
// Example:
//
//	import (
//	    "github.com/born-ml/kernelrt/backend/cpu"
//	    "github.com/born-ml/kernelrt/kernel"
//	    "github.com/born-ml/kernelrt/tensor"
//	)
//
//	m := kernel.NewMarshaler(cpu.New(), tensor.CPU)
//	view, err := m.MakeTensorView(x, "x", tensor.Float32)
type Host interface {
	// ToDevice returns t on device d, copying if needed.
	ToDevice(t *RawTensor, d Device) *RawTensor

	// Cast returns t converted to dtype, copying if needed.
	Cast(t *RawTensor, dtype DataType) *RawTensor
}
