// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package half provides the 16-bit floating-point formats kernels exchange with the
// host.
//
// Float16 is IEEE-754 binary16 with a codec that is bit-exact with device-side
// conversion: encoding rounds half away from zero and flushes magnitudes below 2^-24
// to signed zero. BFloat16 keeps the float32 exponent and rounds to nearest even.
//
// Example:
//
//	h := half.FromFloat32(1.5)
//	fmt.Println(h.Bits(), h.Float32()) // 15872 1.5
package half

import (
	"github.com/born-ml/kernelrt/internal/half"
)

// Float16 is a binary16 value held as its bit pattern.
type Float16 = half.Float16

// BFloat16 is a bfloat16 value held as its bit pattern.
type BFloat16 = half.BFloat16

// Special binary16 bit patterns.
const (
	PositiveInfinity = half.PositiveInfinity
	NegativeInfinity = half.NegativeInfinity
	QuietNaN         = half.QuietNaN
	MaxValue         = half.MaxValue
)

// Encode converts f to binary16 bits.
func Encode(f float32) uint16 { return half.Encode(f) }

// Decode converts binary16 bits to float32. Every binary16 value is exact in float32.
func Decode(h uint16) float32 { return half.Decode(h) }

// FromFloat32 encodes f as a Float16.
func FromFloat32(f float32) Float16 { return half.FromFloat32(f) }

// BFloat16FromFloat32 encodes f as a BFloat16.
func BFloat16FromFloat32(f float32) BFloat16 { return half.BFloat16FromFloat32(f) }

// EncodeSlice encodes src into dst, which must have the same length.
func EncodeSlice(dst []Float16, src []float32) { half.EncodeSlice(dst, src) }

// DecodeSlice decodes src into dst, which must have the same length.
func DecodeSlice(dst []float32, src []Float16) { half.DecodeSlice(dst, src) }
