package marshal

import (
	"github.com/born-ml/kernelrt/internal/scalar"
	"github.com/born-ml/kernelrt/internal/tensor"
)

// DiffTensorView pairs a primal tensor with the tensor its gradient accumulates into.
type DiffTensorView struct {
	Value TensorView
	Grad  TensorView
}

// MakeDiffTensorView describes a differentiable argument. A nil grad is replaced by a
// one-element zero tensor on the target device, so kernels always see valid storage.
// The substitute is returned so the caller can keep it alive for the call.
func (m *Marshaler) MakeDiffTensorView(value, grad *tensor.RawTensor, name string, dtype tensor.DataType) (DiffTensorView, *tensor.RawTensor, error) {
	var d DiffTensorView
	v, err := m.MakeTensorView(value, name, dtype)
	if err != nil {
		return d, grad, err
	}
	if grad == nil {
		grad, err = tensor.NewRaw(tensor.Shape{1}, dtype, m.Device)
		if err != nil {
			return d, nil, argError(name+".grad", err)
		}
	}
	g, err := m.MakeTensorView(grad, name+".grad", dtype)
	if err != nil {
		return d, grad, err
	}
	d.Value, d.Grad = v, g
	return d, grad, nil
}

// AtomicAddGrad adds x to the float32 gradient element at idx and returns the previous
// value. Safe for concurrent use by kernel threads.
func AtomicAddGrad(d DiffTensorView, x float32, idx ...int) float32 {
	return scalar.AtomicAddFloat32(Elem[uint32](d.Grad, idx...), x)
}
