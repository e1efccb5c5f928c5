// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go host backend for kernel argument preparation.
//
// # Overview
//
// This package implements:
//   - Device relocation: ToDevice copies a tensor into fresh storage tagged with
//     the target device, densifying strided layouts on the way
//   - Type coercion: Cast converts between all tensor data types, including
//     float16 and bfloat16, with a parallel fast path for float32 <-> half
//   - Densification: Contiguous returns a row-major copy of a strided view
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/kernelrt/backend/cpu"
//	    "github.com/born-ml/kernelrt/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.FromSlice([]float32{1.5, -2}, tensor.Shape{2})
//	    h := backend.Cast(x, tensor.Float16)
//	}
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each operation allocates its result
// and does not share mutable state.
package cpu
