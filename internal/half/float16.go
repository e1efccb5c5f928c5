// Package half converts between float32 and the 16-bit IEEE-754 binary16 and bfloat16
// formats.
//
// The binary16 codec is bit-exact with the device-side conversion kernels use, so a
// value encoded on the host decodes identically on the device and vice versa. In
// particular encoding rounds half away from zero on the retained mantissa bit and
// flushes magnitudes below 2^-24 to signed zero.
package half

import (
	"math"
	"strconv"

	"github.com/x448/float16"
)

// Float16 is a binary16 value held as its bit pattern.
type Float16 uint16

// Special binary16 bit patterns.
const (
	PositiveInfinity Float16 = 0x7C00
	NegativeInfinity Float16 = 0xFC00
	QuietNaN         Float16 = 0x7E00
	MaxValue         Float16 = 0x7BFF // 65504
)

// f16tof32Magic is 2^112, which moves a binary16 denormal reinterpreted as a float32
// denormal into the correct float32 exponent range.
var f16tof32Magic = math.Float32frombits((127 + (127 - 15)) << 23)

// Encode converts f to binary16 bits.
func Encode(f float32) uint16 {
	in := math.Float32bits(f)

	bits := (in >> 16) & 0x8000
	// m keeps one extra low bit for rounding.
	m := (in >> 12) & 0x07ff
	e := (in >> 23) & 0xff

	switch {
	case e < 103:
		return uint16(bits)
	case e == 0xff:
		// Inf if the source mantissa is zero, otherwise NaN. A NaN whose payload lived
		// only in the dropped low bits must not collapse into Inf.
		m >>= 1
		if m == 0 && in&0x007fffff != 0 {
			m = 1
		}
		return uint16(bits | 0x7c00 | m)
	case e > 142:
		return uint16(bits | 0x7c00)
	case e < 113:
		m |= 0x0800
		bits |= (m >> (114 - e)) + ((m >> (113 - e)) & 1)
		return uint16(bits)
	}
	bits |= ((e - 112) << 10) | (m >> 1)
	bits += m & 1
	return uint16(bits) //nolint:gosec // rounding carry stays within 16 bits
}

// Decode converts binary16 bits to float32. Every binary16 value is exactly
// representable, so Decode never rounds.
func Decode(h uint16) float32 {
	v := uint32(h)
	sign := (v & 0x8000) << 16
	exponent := (v & 0x7c00) >> 10
	mantissa := v & 0x03ff

	switch exponent {
	case 0:
		if mantissa != 0 {
			return math.Float32frombits(sign|((v&0x7fff)<<13)) * f16tof32Magic
		}
	case 0x1f:
		exponent = 0xff
	default:
		exponent += 127 - 15
	}
	return math.Float32frombits(sign | (exponent << 23) | (mantissa << 13))
}

// FromFloat32 encodes f.
func FromFloat32(f float32) Float16 { return Float16(Encode(f)) }

// FromBits wraps a raw bit pattern.
func FromBits(b uint16) Float16 { return Float16(b) }

// Float32 decodes h.
func (h Float16) Float32() float32 { return Decode(uint16(h)) }

// Bits returns the raw bit pattern.
func (h Float16) Bits() uint16 { return uint16(h) }

// IsNaN reports whether h is a NaN.
func (h Float16) IsNaN() bool { return h&0x7c00 == 0x7c00 && h&0x03ff != 0 }

// IsInf reports whether h is an infinity; sign > 0 tests +Inf, sign < 0 tests -Inf and
// sign == 0 tests either.
func (h Float16) IsInf(sign int) bool {
	switch {
	case h&0x7fff != 0x7c00:
		return false
	case sign > 0:
		return h&0x8000 == 0
	case sign < 0:
		return h&0x8000 != 0
	}
	return true
}

// Signbit reports whether the sign bit is set.
func (h Float16) Signbit() bool { return h&0x8000 != 0 }

// String formats the decoded value.
func (h Float16) String() string {
	return strconv.FormatFloat(float64(h.Float32()), 'g', -1, 32)
}

// ToX448 returns the same bit pattern as a github.com/x448/float16 value, for
// interop with code built on that package.
func (h Float16) ToX448() float16.Float16 { return float16.Frombits(uint16(h)) }

// FromX448 wraps a github.com/x448/float16 value.
func FromX448(f float16.Float16) Float16 { return Float16(f.Bits()) }

// Precision classifies how f survives a binary16 round trip, using the
// round-to-nearest-even rules of IEEE-754 conversion.
func Precision(f float32) float16.Precision {
	return float16.PrecisionFromfloat32(f)
}
