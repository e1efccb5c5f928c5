package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/kernelrt/internal/half"
	"github.com/born-ml/kernelrt/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCPUBackend_New tests backend creation.
func TestCPUBackend_New(t *testing.T) {
	backend := New()
	if backend == nil {
		t.Fatal("New() returned nil")
	}
	if backend.Name() != "CPU" {
		t.Errorf("Expected name 'CPU', got '%s'", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Expected device CPU, got %v", backend.Device())
	}
}

func TestToDevice(t *testing.T) {
	backend := New()
	x, err := tensor.FromSlice([]int32{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)

	same := backend.ToDevice(x, tensor.CPU)
	assert.Same(t, x, same, "no relocation when already on the device")

	moved := backend.ToDevice(x, tensor.CUDA)
	assert.Equal(t, tensor.CUDA, moved.Device())
	assert.NotEqual(t, x.DataPtr(), moved.DataPtr(), "relocation copies storage")
	assert.Equal(t, []int32{1, 2, 3, 4}, moved.AsInt32())
}

func TestToDevice_StridedSourceBecomesContiguous(t *testing.T) {
	backend := New()
	x, err := tensor.FromSlice([]int32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)
	xt, err := x.Permute(1, 0)
	require.NoError(t, err)

	moved := backend.ToDevice(xt, tensor.Metal)
	assert.True(t, moved.IsContiguous())
	assert.Equal(t, []int32{1, 4, 2, 5, 3, 6}, moved.AsInt32())

	c := backend.Contiguous(xt)
	assert.Equal(t, tensor.CPU, c.Device())
	assert.Equal(t, moved.AsInt32(), c.AsInt32())
	assert.Same(t, x, backend.Contiguous(x))
}

func TestCast_SameTypeIsNoop(t *testing.T) {
	backend := New()
	x, _ := tensor.FromSlice([]float32{1}, tensor.Shape{1})
	assert.Same(t, x, backend.Cast(x, tensor.Float32))
}

func TestCast_Numeric(t *testing.T) {
	backend := New()
	x, err := tensor.FromSlice([]float64{-1.75, 0, 2.5, 300}, tensor.Shape{4})
	require.NoError(t, err)

	assert.Equal(t, []float32{-1.75, 0, 2.5, 300}, backend.Cast(x, tensor.Float32).AsFloat32())
	assert.Equal(t, []int32{-1, 0, 2, 300}, backend.Cast(x, tensor.Int32).AsInt32())
	assert.Equal(t, []int64{-1, 0, 2, 300}, backend.Cast(x, tensor.Int64).AsInt64())
	assert.Equal(t, []bool{true, false, true, true}, backend.Cast(x, tensor.Bool).AsBool())
	assert.Equal(t, []int8{-1, 0, 2, 44}, tensor.View[int8](backend.Cast(x, tensor.Int8)), "300 wraps in 8 bits")

	u, _ := tensor.FromSlice([]uint64{math.MaxUint64, 7}, tensor.Shape{2})
	assert.Equal(t, []int64{-1, 7}, backend.Cast(u, tensor.Int64).AsInt64())
	assert.Equal(t, []uint16{0xFFFF, 7}, tensor.View[uint16](backend.Cast(u, tensor.Uint16)))

	b, _ := tensor.FromSlice([]bool{true, false}, tensor.Shape{2})
	assert.Equal(t, []float64{1, 0}, backend.Cast(b, tensor.Float64).AsFloat64())
}

func TestCast_HalfPrecision(t *testing.T) {
	backend := New()
	x, err := tensor.FromSlice([]float32{1, -2.5, 65504, 1e6}, tensor.Shape{2, 2})
	require.NoError(t, err)

	h := backend.Cast(x, tensor.Float16)
	assert.Equal(t, tensor.Float16, h.DType())
	assert.Equal(t, []half.Float16{0x3C00, 0xC100, half.MaxValue, half.PositiveInfinity}, tensor.View[half.Float16](h))

	back := backend.Cast(h, tensor.Float32).AsFloat32()
	assert.Equal(t, float32(-2.5), back[1])
	assert.True(t, math.IsInf(float64(back[3]), 1))

	bf := backend.Cast(x, tensor.BFloat16)
	assert.Equal(t, []float32{1, -2.5}, backend.Cast(bf, tensor.Float32).AsFloat32()[:2])

	// Non-float32 sources take the element-wise path.
	i, _ := tensor.FromSlice([]int16{-3, 4}, tensor.Shape{2})
	assert.Equal(t, []half.Float16{half.FromFloat32(-3), half.FromFloat32(4)}, tensor.View[half.Float16](backend.Cast(i, tensor.Float16)))
	assert.Equal(t, []int16{-3, 4}, tensor.View[int16](backend.Cast(backend.Cast(i, tensor.BFloat16), tensor.Int16)))
}

func TestCast_StridedSource(t *testing.T) {
	backend := New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	xt, err := x.Permute(1, 0)
	require.NoError(t, err)

	h := backend.Cast(xt, tensor.Float16)
	assert.True(t, h.IsContiguous())
	got := make([]float32, 6)
	half.DecodeSlice(got, tensor.View[half.Float16](h))
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, got)
}
