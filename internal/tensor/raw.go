package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Device represents the compute device a tensor's storage lives on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// tensorBuffer is a reference-counted shared buffer.
// Views created by Clone or Permute share it; storage is dropped with the last reference.
type tensorBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newTensorBuffer creates a new reference-counted buffer with refCount = 1.
func newTensorBuffer(size int) *tensorBuffer {
	buf := &tensorBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for Clone operations).
func (tb *tensorBuffer) addRef() {
	tb.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (tb *tensorBuffer) release() {
	if tb.refCount.Add(-1) == 0 {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		tb.data = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (tb *tensorBuffer) isUnique() bool {
	return tb.refCount.Load() == 1
}

// RawTensor is the low-level tensor representation.
// Strides are in elements; offset is in bytes from the start of the buffer.
type RawTensor struct {
	buffer *tensorBuffer // Shared reference-counted buffer
	shape  Shape         // Tensor dimensions
	stride []int         // Element strides per dimension
	dtype  DataType      // Runtime type information
	device Device        // Compute device
	offset int           // Byte offset for views
}

// NewRaw creates a new contiguous RawTensor with the given shape and type.
// Memory is zero-initialized.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	numElements := shape.NumElements()
	byteSize := numElements * dtype.Size()

	return &RawTensor{
		buffer: newTensorBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
		offset: 0,
	}, nil
}

// NewRawStrided wraps data with an explicit element-stride layout. The buffer must
// cover the furthest element the strides can reach.
func NewRawStrided(data []byte, shape Shape, strides []int, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(strides) != len(shape) {
		return nil, fmt.Errorf("strides %v do not match rank %d", strides, len(shape))
	}
	last := 0
	for i, s := range strides {
		if s < 0 {
			return nil, fmt.Errorf("negative stride %d at dimension %d", s, i)
		}
		last += (shape[i] - 1) * s
	}
	if need := (last + 1) * dtype.Size(); need > len(data) {
		return nil, fmt.Errorf("buffer of %d bytes too small for layout needing %d", len(data), need)
	}

	buf := &tensorBuffer{data: data}
	buf.refCount.Store(1)
	return &RawTensor{
		buffer: buf,
		shape:  shape.Clone(),
		stride: append([]int(nil), strides...),
		dtype:  dtype,
		device: device,
	}, nil
}

// FromSlice copies values into a new CPU tensor of the given shape.
func FromSlice[T DType](values []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d", shape, shape.NumElements(), len(values))
	}
	r, err := NewRaw(shape, DataTypeOf[T](), CPU)
	if err != nil {
		return nil, err
	}
	copy(View[T](r), values)
	return r, nil
}

// ZerosLike allocates a zeroed contiguous tensor with t's shape and device.
func ZerosLike(t *RawTensor, dtype DataType) (*RawTensor, error) {
	return NewRaw(t.shape, dtype, t.device)
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's element strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// Dim returns the number of dimensions.
func (r *RawTensor) Dim() int {
	return len(r.shape)
}

// Size returns the extent of dimension i.
func (r *RawTensor) Size(i int) int {
	return r.shape[i]
}

// Stride returns the element stride of dimension i.
func (r *RawTensor) Stride(i int) int {
	return r.stride[i]
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the logical size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// IsContiguous reports whether the tensor is laid out densely in row-major order.
func (r *RawTensor) IsContiguous() bool {
	return r.shape.IsContiguous(r.stride)
}

// Data returns the raw byte slice starting at the tensor's offset.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	if r.buffer.data == nil {
		return nil
	}
	return r.buffer.data[r.offset:]
}

// DataPtr returns the address of the first element, or nil once the storage is gone.
func (r *RawTensor) DataPtr() unsafe.Pointer {
	data := r.Data()
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

// ForEachOffset calls fn for every element in row-major logical order with the
// element's byte offset relative to Data().
func (r *RawTensor) ForEachOffset(fn func(i, byteOffset int)) {
	n := r.NumElements()
	size := r.dtype.Size()
	idx := make([]int, len(r.shape))
	off := 0
	for i := range n {
		fn(i, off*size)
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			off += r.stride[d]
			if idx[d] < r.shape[d] {
				break
			}
			off -= idx[d] * r.stride[d]
			idx[d] = 0
		}
	}
}

// Permute returns a view with dimensions reordered by dims. No data is moved.
func (r *RawTensor) Permute(dims ...int) (*RawTensor, error) {
	if len(dims) != len(r.shape) {
		return nil, fmt.Errorf("permute: got %d dims for rank %d", len(dims), len(r.shape))
	}
	seen := make([]bool, len(dims))
	shape := make(Shape, len(dims))
	stride := make([]int, len(dims))
	for i, d := range dims {
		if d < 0 || d >= len(dims) || seen[d] {
			return nil, fmt.Errorf("permute: invalid dims %v", dims)
		}
		seen[d] = true
		shape[i] = r.shape[d]
		stride[i] = r.stride[d]
	}
	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  shape,
		stride: stride,
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}, nil
}

// WithDevice returns a copy of the tensor tagged with another device.
func (r *RawTensor) WithDevice(d Device) *RawTensor {
	c := r.Clone()
	c.device = d
	return c
}

// View interprets a contiguous tensor's data as []T.
// Panics if T does not match the tensor's dtype.
func View[T DType](r *RawTensor) []T {
	if dt := DataTypeOf[T](); dt != r.dtype {
		panic(fmt.Sprintf("tensor dtype is %s, not %s", r.dtype, dt))
	}
	data := r.Data()
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 { return View[float32](r) }

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 { return View[float64](r) }

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 { return View[int32](r) }

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 { return View[int64](r) }

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 { return View[uint8](r) }

// AsBool interprets the data as []bool.
// Panics if the tensor's dtype is not Bool.
func (r *RawTensor) AsBool() []bool { return View[bool](r) }

// Clone creates a shallow copy of the RawTensor that shares the buffer.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef() // Increment reference count
	return &RawTensor{
		buffer: r.buffer, // Share the same buffer
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...), // Copy strides
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}
}

// Release decrements the reference count and deallocates if it reaches 0.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique returns true if this tensor is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.isUnique()
}

// String summarizes the tensor's metadata.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor(shape=%v, strides=%v, dtype=%s, device=%s)", r.shape, r.stride, r.dtype, r.device)
}
