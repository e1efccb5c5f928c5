package marshal

import (
	"math"

	"github.com/born-ml/kernelrt/internal/tensor"
)

// Host is the tensor library collaborator: it relocates tensors between devices and
// coerces element types.
type Host interface {
	ToDevice(t *tensor.RawTensor, d tensor.Device) *tensor.RawTensor
	Cast(t *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor
}

// Marshaler builds kernel argument descriptors for one target device.
type Marshaler struct {
	Host   Host
	Device tensor.Device
}

// New returns a Marshaler that targets device.
func New(host Host, device tensor.Device) *Marshaler {
	return &Marshaler{Host: host, Device: device}
}

// Prepare moves t to the target device and coerces it to dtype, returning t itself
// when neither step is needed.
func (m *Marshaler) Prepare(t *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	if t.Device() != m.Device {
		t = m.Host.ToDevice(t, m.Device)
	}
	if t.DType() != dtype {
		t = m.Host.Cast(t, dtype)
	}
	return t
}

// MakeTensorView describes t as a kernel argument of element type dtype. name is
// used only in error messages.
//
// Relocation and coercion may produce a new tensor; the returned view then refers
// to that tensor's storage, which stays reachable through the view's address.
func (m *Marshaler) MakeTensorView(t *tensor.RawTensor, name string, dtype tensor.DataType) (TensorView, error) {
	var view TensorView
	if t == nil {
		return view, argError(name, ErrInvalidData)
	}

	// Storage that is already gone cannot be moved or converted; the view is still
	// checked in order and then fails on the data pointer.
	if t.DataPtr() != nil {
		t = m.Prepare(t, dtype)
	}

	rank := t.Dim()
	if rank > MaxDims {
		return view, argError(name, ErrRankExceeded)
	}

	elemSize := uint64(dtype.Size())
	for i := range rank {
		stride, err := byteStride(t.Stride(i), elemSize)
		if err != nil {
			return view, argError(name, err)
		}
		size := t.Size(i)
		if size < 0 || uint64(size) > math.MaxUint32 {
			return view, argError(name, ErrStrideOverflow)
		}
		view.Strides[i] = stride
		view.Sizes[i] = uint32(size)
	}
	view.DimensionCount = uint32(rank) //nolint:gosec // rank <= MaxDims

	view.Data = t.DataPtr()
	if view.Data == nil {
		return view, argError(name, ErrInvalidData)
	}
	return view, nil
}

// byteStride converts an element stride to a byte stride that fits in 32 bits.
func byteStride(stride int, elemSize uint64) (uint32, error) {
	if stride < 0 {
		return 0, ErrStrideOverflow
	}
	s := uint64(stride)
	if s != 0 && elemSize > math.MaxUint32/s {
		return 0, ErrStrideOverflow
	}
	return uint32(s * elemSize), nil //nolint:gosec // checked above
}
