package bounds

import (
	"encoding/binary"
	"unsafe"
)

// Word is a 4- or 8-byte element that can live in a ByteView.
type Word interface {
	~int32 | ~uint32 | ~float32 | ~int64 | ~uint64 | ~float64
}

// ByteView is a byte-addressed view over a raw buffer, the storage behind generic
// buffer parameters. Offsets are in bytes and must be 4-byte aligned.
type ByteView struct {
	buf []byte
	chk Checker
}

// NewByteView wraps buf without copying it.
func NewByteView(buf []byte, chk Checker) ByteView {
	return ByteView{buf: buf, chk: chk}
}

// SizeInBytes returns the length of the underlying buffer.
func (v ByteView) SizeInBytes() int { return len(v.buf) }

// Load32 reads a little-endian uint32 at byte offset index.
func (v ByteView) Load32(index int) uint32 {
	i := v.chk.CheckByteAddress(index, 4, len(v.buf))
	return binary.LittleEndian.Uint32(v.buf[i:])
}

// Store32 writes a little-endian uint32 at byte offset index.
func (v ByteView) Store32(index int, x uint32) {
	i := v.chk.CheckByteAddress(index, 4, len(v.buf))
	binary.LittleEndian.PutUint32(v.buf[i:], x)
}

// Load reads a T at byte offset index.
func Load[T Word](v ByteView, index int) T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	i := v.chk.CheckByteAddress(index, size, len(v.buf))
	if size == 4 {
		return fromBits32[T](binary.LittleEndian.Uint32(v.buf[i:]))
	}
	return fromBits64[T](binary.LittleEndian.Uint64(v.buf[i:]))
}

// Store writes x at byte offset index.
func Store[T Word](v ByteView, index int, x T) {
	size := int(unsafe.Sizeof(x))
	i := v.chk.CheckByteAddress(index, size, len(v.buf))
	if size == 4 {
		binary.LittleEndian.PutUint32(v.buf[i:], toBits32(x))
		return
	}
	binary.LittleEndian.PutUint64(v.buf[i:], toBits64(x))
}

// The helpers below reinterpret same-size values; callers pick them by unsafe.Sizeof.

func fromBits32[T Word](b uint32) T {
	//nolint:gosec // same-size reinterpretation
	return *(*T)(unsafe.Pointer(&b))
}

func fromBits64[T Word](b uint64) T {
	//nolint:gosec // same-size reinterpretation
	return *(*T)(unsafe.Pointer(&b))
}

func toBits32[T Word](x T) uint32 {
	//nolint:gosec // same-size reinterpretation
	return *(*uint32)(unsafe.Pointer(&x))
}

func toBits64[T Word](x T) uint64 {
	//nolint:gosec // same-size reinterpretation
	return *(*uint64)(unsafe.Pointer(&x))
}
