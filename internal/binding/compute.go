package binding

import (
	"fmt"
	"unsafe"

	"github.com/born-ml/kernelrt/internal/launch"
	"github.com/born-ml/kernelrt/internal/marshal"
	"github.com/born-ml/kernelrt/internal/tensor"
)

// ScaleKernel computes out[i, j] = in[i, j] * s with one thread per element.
// Parameters: (input TensorView, output TensorView, s float32).
var ScaleKernel = &launch.Kernel{
	Name: "myKernel",
	Func: func(tid launch.ThreadID, args []unsafe.Pointer) {
		in := *marshal.Arg[marshal.TensorView](args, 0)
		out := *marshal.Arg[marshal.TensorView](args, 1)
		s := *marshal.Arg[float32](args, 2)

		i, j := tid.GlobalX(), tid.GlobalY()
		*marshal.Elem[float32](out, i, j) = *marshal.Elem[float32](in, i, j) * s
	},
}

// ComputeSignature is the host signature of RunCompute. It returns the input alongside
// the result.
var ComputeSignature = Signature{
	Name: "runCompute",
	Params: []Param{
		Tensor("input", tensor.Float32),
		Scalar("scale", tensor.Float32),
	},
	Results: []Param{
		Tensor("input", tensor.Float32),
		Tensor("outValues", tensor.Float32),
	},
}

var computeKernelParams = []Param{
	Tensor("input", tensor.Float32),
	Tensor("outValues", tensor.Float32),
	Scalar("scale", tensor.Float32),
}

// planCompute launches one block of size0 x size1 threads.
func planCompute(rt *Runtime, in Inputs) (Plan, error) {
	x := in.Tensor(0)
	if x.Dim() != 2 {
		return Plan{}, fmt.Errorf("input: expected a rank 2 tensor, got shape %v", x.Shape())
	}
	out, err := tensor.NewRaw(x.Shape(), tensor.Float32, rt.Marshaler.Device)
	if err != nil {
		return Plan{}, err
	}
	//nolint:gosec // block extents beyond the thread limit are rejected at launch
	block := launch.Dim3{X: uint32(x.Size(0)), Y: uint32(x.Size(1)), Z: 1}
	return Plan{
		Grid:    launch.Dim3{X: 1, Y: 1, Z: 1},
		Block:   block,
		Args:    []any{x, out, in[1]},
		Outputs: []*tensor.RawTensor{x, out},
	}, nil
}

// NewCompute binds the scale kernel as runCompute.
func NewCompute(rt *Runtime) *Function {
	return NewFunction(rt, ComputeSignature, computeKernelParams, ScaleKernel, planCompute)
}

// RunCompute scales a 2-D float32 tensor by s and returns the input and the result.
func RunCompute(rt *Runtime, input *tensor.RawTensor, s float32) (x, out *tensor.RawTensor, err error) {
	res, err := NewCompute(rt).Call(input, s)
	if err != nil {
		return nil, nil, err
	}
	return res[0], res[1], nil
}
