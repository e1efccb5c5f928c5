// Package marshal converts host tensors into the fixed-layout descriptors compiled
// kernels take as arguments, and assembles the untyped argument array passed to the
// launch primitive.
package marshal

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// MaxDims is the highest tensor rank a kernel argument can describe.
const MaxDims = 5

// TensorViewSize is the encoded size of a TensorView: an 8-byte address, MaxDims
// strides, MaxDims sizes and the dimension count, all little-endian.
const TensorViewSize = 8 + 4*MaxDims + 4*MaxDims + 4

// TensorView is the kernel-side descriptor of a tensor argument.
//
// A TensorView borrows the tensor's storage. It must not outlive the tensor it was
// made from, and it is only meaningful within the call that created it.
type TensorView struct {
	Data           unsafe.Pointer
	Strides        [MaxDims]uint32 // byte strides
	Sizes          [MaxDims]uint32 // extents in elements
	DimensionCount uint32
}

// Rank returns the number of live dimensions.
func (v TensorView) Rank() int { return int(v.DimensionCount) }

// NumElements returns the product of the live sizes.
func (v TensorView) NumElements() int {
	n := 1
	for i := range v.Rank() {
		n *= int(v.Sizes[i])
	}
	return n
}

// AppendBinary appends the descriptor in kernel ABI layout.
func (v TensorView) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint64(b, uint64(uintptr(v.Data)))
	for _, s := range v.Strides {
		b = binary.LittleEndian.AppendUint32(b, s)
	}
	for _, s := range v.Sizes {
		b = binary.LittleEndian.AppendUint32(b, s)
	}
	return binary.LittleEndian.AppendUint32(b, v.DimensionCount), nil
}

// MarshalBinary encodes the descriptor in kernel ABI layout.
func (v TensorView) MarshalBinary() ([]byte, error) {
	return v.AppendBinary(make([]byte, 0, TensorViewSize))
}

// String describes the view without its address.
func (v TensorView) String() string {
	return fmt.Sprintf("TensorView(sizes=%v, strides=%v)", v.Sizes[:v.Rank()], v.Strides[:v.Rank()])
}

// Offset returns the byte offset of the element at idx. It panics if idx does not
// name an element of the view.
func (v TensorView) Offset(idx ...int) uintptr {
	if len(idx) != v.Rank() {
		panic(fmt.Sprintf("marshal: %d indices for rank %d view", len(idx), v.Rank()))
	}
	var off uintptr
	for d, i := range idx {
		if uint(i) >= uint(v.Sizes[d]) {
			panic(fmt.Sprintf("marshal: index %d out of range [0, %d) in dimension %d", i, v.Sizes[d], d))
		}
		off += uintptr(i) * uintptr(v.Strides[d])
	}
	return off
}

// Elem returns a pointer to the element at idx, typed as T. T must match the element
// type the view was made for.
func Elem[T any](v TensorView, idx ...int) *T {
	if v.Data == nil {
		panic("marshal: element access through a nil view")
	}
	return (*T)(unsafe.Add(v.Data, v.Offset(idx...)))
}
