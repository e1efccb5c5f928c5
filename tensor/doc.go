// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the host tensor handle kernels receive their arguments from.
//
// # Overview
//
// A RawTensor is a reference-counted byte buffer described by a shape, element
// strides, a data type and a device tag. Kernel arguments are built from RawTensors
// by the kernel package; this package only creates and inspects them.
//
// # Basic Usage
//
//	import "github.com/born-ml/kernelrt/tensor"
//
//	func main() {
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	    xt, _ := x.Permute(1, 0) // strided view, shares x's buffer
//	    fmt.Println(xt.Shape(), xt.Strides()) // [3 2] [1 3]
//	}
//
// # Supported Data Types
//
//   - float16, bfloat16, float32, float64
//   - int8, int16, int32, int64
//   - uint8, uint16, uint32, uint64
//   - bool
//
// Half-precision elements are stored as their 16-bit encodings; see the half package.
//
// # Memory Management
//
// Storage is reference-counted. Permute shares the buffer, Clone copies it and
// Release drops one reference. Data returns nil once the last reference is gone.
package tensor
