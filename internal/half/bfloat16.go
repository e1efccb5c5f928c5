package half

import (
	"math"
	"strconv"
)

// BFloat16 is a bfloat16 value held as its bit pattern: the upper half of a float32.
type BFloat16 uint16

// EncodeBFloat16 converts f to bfloat16 bits, rounding to nearest even. NaNs stay
// NaN with the quiet bit set.
func EncodeBFloat16(f float32) uint16 {
	bits := math.Float32bits(f)
	if bits&0x7fffffff > 0x7f800000 {
		return uint16(bits>>16) | 0x0040
	}
	rounding := uint32(0x7fff) + ((bits >> 16) & 1)
	return uint16((bits + rounding) >> 16)
}

// DecodeBFloat16 widens bfloat16 bits to float32 exactly.
func DecodeBFloat16(b uint16) float32 {
	return math.Float32frombits(uint32(b) << 16)
}

// BFloat16FromFloat32 encodes f.
func BFloat16FromFloat32(f float32) BFloat16 { return BFloat16(EncodeBFloat16(f)) }

// Float32 decodes b.
func (b BFloat16) Float32() float32 { return DecodeBFloat16(uint16(b)) }

// Bits returns the raw bit pattern.
func (b BFloat16) Bits() uint16 { return uint16(b) }

// IsNaN reports whether b is a NaN.
func (b BFloat16) IsNaN() bool { return b&0x7f80 == 0x7f80 && b&0x007f != 0 }

// String formats the decoded value.
func (b BFloat16) String() string {
	return strconv.FormatFloat(float64(b.Float32()), 'g', -1, 32)
}
