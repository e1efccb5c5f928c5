// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/kernelrt/internal/backend/cpu"
	"github.com/born-ml/kernelrt/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend relocates tensors between device tags and converts element types,
// which is everything the kernel argument marshaler asks of a tensor library.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Host.
var _ tensor.Host = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/kernelrt/backend/cpu"
//	    "github.com/born-ml/kernelrt/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x, _ := tensor.FromSlice([]float64{1, 2}, tensor.Shape{2})
//	    y := backend.Cast(x, tensor.Float16)
//	}
func New() *Backend {
	return internalcpu.New()
}
