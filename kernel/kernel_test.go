// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package kernel_test

import (
	"testing"
	"unsafe"

	"github.com/born-ml/kernelrt/backend/cpu"
	"github.com/born-ml/kernelrt/kernel"
	"github.com/born-ml/kernelrt/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCompute(t *testing.T) {
	rt := kernel.NewCPURuntime(kernel.DefaultLaunchConfig())
	defer rt.Close()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	_, out, err := kernel.RunCompute(rt, x, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 4, 6, 8}, out.AsFloat32())
}

func TestMarshalerThroughPublicHost(t *testing.T) {
	m := kernel.NewMarshaler(cpu.New(), tensor.CPU)
	x, err := tensor.FromSlice([]int64{7, 8, 9}, tensor.Shape{3})
	require.NoError(t, err)

	v, err := m.MakeTensorView(x, "x", tensor.Int32)
	require.NoError(t, err)
	assert.Equal(t, int32(9), *kernel.Elem[int32](v, 2))

	big, err := tensor.NewRaw(tensor.Shape{1, 1, 1, 1, 1, 1}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	_, err = m.MakeTensorView(big, "weights", tensor.Float32)
	assert.ErrorIs(t, err, kernel.ErrRankExceeded)
}

func TestCustomFunction(t *testing.T) {
	rt := kernel.NewCPURuntime(kernel.LaunchConfig{Workers: 1})
	defer rt.Close()

	fill := &kernel.Kernel{Name: "fill", Func: func(tid kernel.ThreadID, args []unsafe.Pointer) {
		out := *kernel.Arg[kernel.TensorView](args, 0)
		v := *kernel.Arg[int32](args, 1)
		*kernel.Elem[int32](out, tid.GlobalX()) = v + int32(tid.GlobalX())
	}}
	sig := kernel.Signature{
		Name:    "fill",
		Params:  []kernel.Param{kernel.ScalarParam("v", tensor.Int32)},
		Results: []kernel.Param{kernel.TensorParam("out", tensor.Int32)},
	}
	params := []kernel.Param{kernel.TensorParam("out", tensor.Int32), kernel.ScalarParam("v", tensor.Int32)}
	f := kernel.NewFunction(rt, sig, params, fill, func(rt *kernel.Runtime, in kernel.Inputs) (kernel.Plan, error) {
		out, err := tensor.NewRaw(tensor.Shape{4}, tensor.Int32, tensor.CPU)
		if err != nil {
			return kernel.Plan{}, err
		}
		return kernel.Plan{
			Grid:    kernel.Dim3{X: 2, Y: 1, Z: 1},
			Block:   kernel.Dim3{X: 2, Y: 1, Z: 1},
			Args:    []any{out, in[0]},
			Outputs: []*tensor.RawTensor{out},
		}, nil
	})

	res, err := f.Call(10)
	require.NoError(t, err)
	assert.Equal(t, []int32{10, 11, 12, 13}, res[0].AsInt32())
}
