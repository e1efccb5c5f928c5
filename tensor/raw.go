// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/kernelrt/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape, stride and type information via Shape(), Strides(), DType(), Device()
//   - Typed data access via AsFloat32(), AsInt64(), etc.
//   - Strided views via Permute()
//   - Reference counting for efficient memory management
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()  // Type-safe access
//	clone := raw.Clone()     // Independent copy
type RawTensor = tensor.RawTensor

// NewRaw creates a zero-initialized contiguous tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// NewRawStrided wraps data with an explicit element-stride layout.
func NewRawStrided(data []byte, shape Shape, strides []int, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRawStrided(data, shape, strides, dtype, device)
}

// FromSlice copies values into a new CPU tensor of the given shape.
func FromSlice[T DType](values []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(values, shape)
}

// ZerosLike allocates a zeroed contiguous tensor with t's shape and device.
func ZerosLike(t *RawTensor, dtype DataType) (*RawTensor, error) {
	return tensor.ZerosLike(t, dtype)
}

// View returns the tensor's storage as a []T. T must match the tensor's data type.
func View[T DType](t *RawTensor) []T {
	return tensor.View[T](t)
}
