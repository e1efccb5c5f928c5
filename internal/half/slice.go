package half

import (
	"encoding/binary"
	"fmt"

	"github.com/born-ml/kernelrt/internal/parallel"
)

// Bulk conversions split the work with the parallel package. Element i of dst depends
// only on element i of src, so chunks never overlap.

var bulkConfig = parallel.DefaultConfig()

func checkLen(op string, dst, src int) {
	if dst != src {
		panic(fmt.Sprintf("half.%s: length mismatch: dst %d, src %d", op, dst, src))
	}
}

// EncodeSlice encodes src into dst. The slices must have equal length.
func EncodeSlice(dst []Float16, src []float32) {
	checkLen("EncodeSlice", len(dst), len(src))
	parallel.ForRange(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = Float16(Encode(src[i]))
		}
	}, bulkConfig)
}

// DecodeSlice decodes src into dst. The slices must have equal length.
func DecodeSlice(dst []float32, src []Float16) {
	checkLen("DecodeSlice", len(dst), len(src))
	parallel.ForRange(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = Decode(uint16(src[i]))
		}
	}, bulkConfig)
}

// EncodeBFloat16Slice encodes src into dst. The slices must have equal length.
func EncodeBFloat16Slice(dst []BFloat16, src []float32) {
	checkLen("EncodeBFloat16Slice", len(dst), len(src))
	parallel.ForRange(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = BFloat16(EncodeBFloat16(src[i]))
		}
	}, bulkConfig)
}

// DecodeBFloat16Slice decodes src into dst. The slices must have equal length.
func DecodeBFloat16Slice(dst []float32, src []BFloat16) {
	checkLen("DecodeBFloat16Slice", len(dst), len(src))
	parallel.ForRange(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = DecodeBFloat16(uint16(src[i]))
		}
	}, bulkConfig)
}

// PutFloat16 encodes f into the first two bytes of b, little-endian.
func PutFloat16(b []byte, f float32) {
	binary.LittleEndian.PutUint16(b, Encode(f))
}

// Float16At decodes the little-endian binary16 value at the start of b.
func Float16At(b []byte) float32 {
	return Decode(binary.LittleEndian.Uint16(b))
}

// PutBFloat16 encodes f into the first two bytes of b, little-endian.
func PutBFloat16(b []byte, f float32) {
	binary.LittleEndian.PutUint16(b, EncodeBFloat16(f))
}

// BFloat16At decodes the little-endian bfloat16 value at the start of b.
func BFloat16At(b []byte) float32 {
	return DecodeBFloat16(binary.LittleEndian.Uint16(b))
}
