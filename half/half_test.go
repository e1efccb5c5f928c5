// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package half_test

import (
	"math"
	"testing"

	"github.com/born-ml/kernelrt/half"
	"github.com/stretchr/testify/assert"
)

func TestPublicCodec(t *testing.T) {
	assert.Equal(t, uint16(0x3E00), half.Encode(1.5))
	assert.Equal(t, float32(1.5), half.Decode(0x3E00))
	assert.Equal(t, half.PositiveInfinity, half.FromFloat32(float32(math.Inf(1))))
	assert.Equal(t, half.MaxValue, half.FromFloat32(65504))
	assert.Equal(t, float32(1), half.BFloat16FromFloat32(1).Float32())

	src := []float32{0, -1, 0.5, 2048}
	enc := make([]half.Float16, len(src))
	dec := make([]float32, len(src))
	half.EncodeSlice(enc, src)
	half.DecodeSlice(dec, enc)
	assert.Equal(t, src, dec)
}
