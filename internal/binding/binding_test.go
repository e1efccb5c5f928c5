package binding

import (
	"errors"
	"sync"
	"testing"
	"unsafe"

	"github.com/born-ml/kernelrt/internal/half"
	"github.com/born-ml/kernelrt/internal/launch"
	"github.com/born-ml/kernelrt/internal/marshal"
	"github.com/born-ml/kernelrt/internal/tensor"
	"github.com/born-ml/kernelrt/internal/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var one = launch.Dim3{X: 1, Y: 1, Z: 1}

func newRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt := NewCPURuntime(launch.Config{Workers: 2})
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func TestRunCompute(t *testing.T) {
	rt := newRuntime(t)
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)

	in, out, err := RunCompute(rt, x, 1.5)
	require.NoError(t, err)
	assert.Same(t, x, in)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []float32{1.5, 3, 4.5, 6, 7.5, 9}, out.AsFloat32())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, x.AsFloat32(), "input is not modified")
	assert.NoError(t, rt.Launcher.PeekAtLastError())
}

func TestRunCompute_CoercesInput(t *testing.T) {
	rt := newRuntime(t)
	x, err := tensor.FromSlice([]float64{1, -2, 0.5, 8}, tensor.Shape{2, 2})
	require.NoError(t, err)

	// An integer scale is accepted and converted to float32.
	res, err := NewCompute(rt).Call(x, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{2, -4, 1, 16}, res[1].AsFloat32())
}

func TestRunCompute_StridedInput(t *testing.T) {
	rt := newRuntime(t)
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)
	xt, err := x.Permute(1, 0)
	require.NoError(t, err)

	_, out, err := RunCompute(rt, xt, 10)
	require.NoError(t, err)
	assert.Equal(t, []float32{10, 40, 20, 50, 30, 60}, out.AsFloat32())
}

func TestRunCompute_Errors(t *testing.T) {
	rt := newRuntime(t)
	f := NewCompute(rt)
	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{1, 2})

	_, err := f.Call(x)
	require.Error(t, err)
	assert.Equal(t, "runCompute: expected tuple of length 2, got 1", err.Error())

	_, err = f.Call(2.0, x)
	assert.ErrorIs(t, err, ErrWrongKind)
	var argErr *marshal.ArgError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "input", argErr.Name)

	_, err = f.Call(x, "two")
	assert.ErrorIs(t, err, ErrNotNumeric)

	flat, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	_, err = f.Call(flat, float32(1))
	assert.ErrorContains(t, err, "rank 2")

	six, _ := tensor.NewRaw(tensor.Shape{1, 1, 1, 1, 1, 1}, tensor.Float32, tensor.CPU)
	_, err = f.Call(six, float32(1))
	assert.ErrorContains(t, err, "rank 2")

	// 64 x 32 threads exceed the 1024-thread block limit.
	big, _ := tensor.NewRaw(tensor.Shape{64, 32}, tensor.Float32, tensor.CPU)
	_, err = f.Call(big, float32(1))
	assert.ErrorIs(t, err, launch.ErrInvalidConfiguration)
	assert.NoError(t, rt.Launcher.PeekAtLastError(), "launch failure does not leak into later calls")

	_, err = f.Call(x, float32(3))
	require.NoError(t, err)
}

func TestFunction_RankLimitFromMarshaler(t *testing.T) {
	rt := newRuntime(t)
	sig := Signature{Name: "touch", Params: []Param{Tensor("t", tensor.Float32)}}
	k := &launch.Kernel{Name: "touch", Func: func(launch.ThreadID, []unsafe.Pointer) {}}
	f := NewFunction(rt, sig, sig.Params, k, func(_ *Runtime, in Inputs) (Plan, error) {
		return Plan{Grid: one, Block: one, Args: []any{in[0]}}, nil
	})

	six, _ := tensor.NewRaw(tensor.Shape{1, 1, 1, 1, 1, 2}, tensor.Float32, tensor.CPU)
	_, err := f.Call(six)
	assert.ErrorIs(t, err, marshal.ErrRankExceeded)
	assert.Equal(t, "touch: t: number of dimensions exceeds limit (5)", err.Error())
}

func TestFunction_FaultIsReported(t *testing.T) {
	rt := newRuntime(t)
	sig := Signature{Name: "crash"}
	k := &launch.Kernel{Name: "crash", Func: func(launch.ThreadID, []unsafe.Pointer) { panic("bad access") }}
	f := NewFunction(rt, sig, nil, k, func(*Runtime, Inputs) (Plan, error) {
		return Plan{Grid: one, Block: launch.Dim3{X: 2, Y: 1, Z: 1}}, nil
	})

	_, err := f.Call()
	var fault *launch.KernelFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "bad access", fault.Value)
	assert.NoError(t, rt.Launcher.PeekAtLastError())
}

func TestFunction_ConcurrentCallsKeepTheirOwnErrors(t *testing.T) {
	rt := newRuntime(t)
	crash := NewFunction(rt, Signature{Name: "crash"}, nil,
		&launch.Kernel{Name: "crash", Func: func(launch.ThreadID, []unsafe.Pointer) { panic("bad access") }},
		func(*Runtime, Inputs) (Plan, error) { return Plan{Grid: one, Block: one}, nil })
	compute := NewCompute(rt)

	const calls = 16
	errs := make([]error, calls)
	var wg sync.WaitGroup
	for i := range calls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_, errs[i] = crash.Call()
				return
			}
			x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
			if err != nil {
				errs[i] = err
				return
			}
			_, errs[i] = compute.Call(x, float32(2))
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if i%2 == 0 {
			var fault *launch.KernelFault
			assert.ErrorAs(t, err, &fault, "call %d", i)
		} else {
			assert.NoError(t, err, "call %d", i)
		}
	}
	assert.NoError(t, rt.Launcher.PeekAtLastError())
}

// sumKernel adds an array, a vector and a matrix into out[0].
var sumKernel = &launch.Kernel{
	Name: "sum",
	Func: func(_ launch.ThreadID, args []unsafe.Pointer) {
		arr := marshal.Arg[[3]int32](args, 0)
		vec := marshal.Arg[[2]float32](args, 1)
		mat := marshal.Arg[[2 * 3]float32](args, 2)
		out := *marshal.Arg[marshal.TensorView](args, 3)

		var s float32
		for _, v := range arr {
			s += float32(v)
		}
		for _, v := range vec {
			s += v
		}
		for _, v := range mat {
			s += v
		}
		*marshal.Elem[float32](out, 0) = s
	},
}

func newSum(rt *Runtime) *Function {
	params := []Param{
		Array("arr", tensor.Int32, 3),
		Vector("vec", tensor.Float32, 2),
		Matrix("mat", tensor.Float32, 2, 3),
	}
	sig := Signature{Name: "sum", Params: params, Results: []Param{Tensor("out", tensor.Float32)}}
	kernelParams := append(params[:3:3], Tensor("out", tensor.Float32))
	return NewFunction(rt, sig, kernelParams, sumKernel, func(rt *Runtime, in Inputs) (Plan, error) {
		out, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, rt.Marshaler.Device)
		if err != nil {
			return Plan{}, err
		}
		return Plan{
			Grid:    one,
			Block:   one,
			Args:    []any{in[0], in[1], in[2], out},
			Outputs: []*tensor.RawTensor{out},
		}, nil
	})
}

func TestFunction_ByValueKinds(t *testing.T) {
	rt := newRuntime(t)
	f := newSum(rt)

	m, err := vecmath.FromRows[float32, vecmath.N2, vecmath.N3](
		vecmath.New3[float32](1, 2, 3),
		vecmath.New3[float32](4, 5, 6),
	)
	require.NoError(t, err)

	res, err := f.Call(
		[]int{1, 2, 3},
		VectorArg(vecmath.New2[float32](0.5, 0.25)),
		MatrixArg(m),
	)
	require.NoError(t, err)
	assert.Equal(t, []float32{6 + 0.75 + 21}, res[0].AsFloat32())

	// Arrays of interfaces and half values are accepted too.
	res, err = f.Call(
		[3]any{int8(1), uint16(1), true},
		[]half.Float16{half.FromFloat32(1), half.FromFloat32(2)},
		[][]float64{{1, 1, 1}, {1, 1, 1}},
	)
	require.NoError(t, err)
	assert.Equal(t, []float32{3 + 3 + 6}, res[0].AsFloat32())
}

func TestFunction_LengthMessages(t *testing.T) {
	rt := newRuntime(t)
	f := newSum(rt)
	vec := []float32{1, 2}
	mat := [][]float32{{1, 2, 3}, {4, 5, 6}}

	_, err := f.Call([]int{1, 2}, vec, mat)
	assert.ErrorContains(t, err, "arr: expected tuple of length 3, got 2, when marshalling type int32[3]")
	var lenErr *vecmath.LengthError
	require.True(t, errors.As(err, &lenErr))
	assert.Equal(t, 3, lenErr.Want)

	_, err = f.Call([]int{1, 2, 3}, []float32{1, 2, 3}, mat)
	assert.ErrorContains(t, err, "vec: expected tuple of length 2, got 3, when marshalling type vector<float32,2>")

	_, err = f.Call([]int{1, 2, 3}, vec, [][]float32{{1, 2, 3}})
	assert.ErrorContains(t, err, "mat: expected tuple of length 2, got 1")

	_, err = f.Call([]int{1, 2, 3}, vec, [][]float32{{1, 2, 3}, {4, 5}})
	assert.ErrorContains(t, err, "mat: row 1: expected tuple of length 3, got 2")

	_, err = f.Call([]int{1, 2, 3}, vec, []float32{1, 2})
	assert.ErrorIs(t, err, ErrWrongKind)

	_, err = f.Call(7, vec, mat)
	assert.ErrorIs(t, err, ErrWrongKind)
}

func TestFunction_DiffTensor(t *testing.T) {
	rt := newRuntime(t)
	sig := Signature{
		Name:   "accumulate",
		Params: []Param{DiffTensor("x", tensor.Float32)},
	}
	k := &launch.Kernel{Name: "accumulate", Func: func(tid launch.ThreadID, args []unsafe.Pointer) {
		d := *marshal.Arg[marshal.DiffTensorView](args, 0)
		i := tid.GlobalX()
		v := *marshal.Elem[float32](d.Value, i)
		if d.Grad.Sizes[0] > 1 {
			marshal.AtomicAddGrad(d, v, i)
		} else {
			marshal.AtomicAddGrad(d, v, 0)
		}
	}}
	plan := func(_ *Runtime, in Inputs) (Plan, error) {
		n := in.Tensor(0).NumElements()
		return Plan{Grid: one, Block: launch.Dim3{X: uint32(n), Y: 1, Z: 1}, Args: []any{in[0]}}, nil
	}
	f := NewFunction(rt, sig, sig.Params, k, plan)

	x, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	grad, _ := tensor.NewRaw(tensor.Shape{3}, tensor.Float32, tensor.CPU)

	_, err := f.Call(DiffInput{Value: x, Grad: grad})
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, grad.AsFloat32())

	_, err = f.Call([]*tensor.RawTensor{x, grad})
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 4, 6}, grad.AsFloat32())

	// Without a gradient the kernel writes to a placeholder.
	_, err = f.Call(x)
	require.NoError(t, err)

	_, err = f.Call([]*tensor.RawTensor{x, grad, grad})
	assert.ErrorContains(t, err, "expected tuple of length 1 or 2, got 3")
}

func TestModule(t *testing.T) {
	rt := newRuntime(t)
	m := NewModule("smoke")
	m.Def(NewCompute(rt))
	m.Def(newSum(rt))
	assert.Equal(t, []string{"runCompute", "sum"}, m.Functions())
	assert.Panics(t, func() { m.Def(NewCompute(rt)) })

	f, ok := m.Lookup("runCompute")
	require.True(t, ok)
	assert.Equal(t, "runCompute(input: TensorView<float32>, scale: float32) -> (input: TensorView<float32>, outValues: TensorView<float32>)",
		f.Signature.String())

	x, _ := tensor.FromSlice([]float32{2}, tensor.Shape{1, 1})
	res, err := m.Call("runCompute", x, float32(4))
	require.NoError(t, err)
	assert.Equal(t, []float32{8}, res[1].AsFloat32())

	_, err = m.Call("missing")
	assert.ErrorIs(t, err, ErrUnknownFunction)
}

func TestParamDeclarations(t *testing.T) {
	assert.Equal(t, "float16[4]", Array("a", tensor.Float16, 4).TypeName())
	assert.Equal(t, "matrix<int32,2,4>", Matrix("m", tensor.Int32, 2, 4).TypeName())
	assert.Equal(t, "DiffTensorView<float32>", DiffTensor("d", tensor.Float32).TypeName())
	assert.Equal(t, 8, Matrix("m", tensor.Int32, 2, 4).count())
	assert.Equal(t, "matrix", KindMatrix.String())
	assert.Panics(t, func() { Vector("v", tensor.Float32, 5) })
	assert.Panics(t, func() { Matrix("m", tensor.Float32, 0, 2) })
}
