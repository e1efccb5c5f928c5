// Package cpu implements the host collaborator the argument marshaler calls on:
// relocating tensors between devices and coercing element types.
package cpu

import (
	"fmt"

	"github.com/born-ml/kernelrt/internal/tensor"
)

// CPUBackend moves and converts tensors in host memory.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// ToDevice returns x placed on device d. A tensor already on d is returned as is;
// otherwise its elements are copied into fresh contiguous storage tagged with d.
func (cpu *CPUBackend) ToDevice(x *tensor.RawTensor, d tensor.Device) *tensor.RawTensor {
	if x.Device() == d {
		return x
	}

	result, err := tensor.NewRaw(x.Shape(), x.DType(), d)
	if err != nil {
		panic(fmt.Sprintf("to_device: %v", err))
	}
	copyElements(result, x)
	return result
}

// Contiguous returns x if it is densely laid out, else a dense copy.
func (cpu *CPUBackend) Contiguous(x *tensor.RawTensor) *tensor.RawTensor {
	if x.IsContiguous() {
		return x
	}
	result, err := tensor.NewRaw(x.Shape(), x.DType(), x.Device())
	if err != nil {
		panic(fmt.Sprintf("contiguous: %v", err))
	}
	copyElements(result, x)
	return result
}

// copyElements writes x's elements into the contiguous tensor dst in logical order.
func copyElements(dst, x *tensor.RawTensor) {
	size := x.DType().Size()
	src := x.Data()
	out := dst.Data()
	if x.IsContiguous() {
		copy(out, src[:x.ByteSize()])
		return
	}
	x.ForEachOffset(func(i, off int) {
		copy(out[i*size:(i+1)*size], src[off:off+size])
	})
}
