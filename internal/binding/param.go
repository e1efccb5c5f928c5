// Package binding exposes kernels as host-callable functions with a fixed signature.
//
// A Function validates the caller's inputs against its Signature, marshals every
// kernel parameter in declaration order, launches the kernel and waits for it, then
// returns the declared output tensors.
package binding

import (
	"fmt"
	"strings"

	"github.com/born-ml/kernelrt/internal/tensor"
)

// Kind classifies a parameter by how it is marshaled.
type Kind uint8

// Parameter kinds.
const (
	KindTensor     Kind = iota // TensorView
	KindDiffTensor             // DiffTensorView: value plus gradient
	KindScalar                 // a single element passed by value
	KindArray                  // fixed-length element array
	KindVector                 // 1..4 component vector
	KindMatrix                 // row-major matrix of 1..4 by 1..4
)

var kindNames = [...]string{"tensor", "diff tensor", "scalar", "array", "vector", "matrix"}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Param describes one parameter or result.
type Param struct {
	Name  string
	Kind  Kind
	DType tensor.DataType // element type
	Len   int             // arrays and vectors
	Rows  int             // matrices
	Cols  int             // matrices
}

// Tensor declares a tensor parameter.
func Tensor(name string, dtype tensor.DataType) Param {
	return Param{Name: name, Kind: KindTensor, DType: dtype}
}

// DiffTensor declares a differentiable tensor parameter.
func DiffTensor(name string, dtype tensor.DataType) Param {
	return Param{Name: name, Kind: KindDiffTensor, DType: dtype}
}

// Scalar declares a by-value scalar parameter.
func Scalar(name string, dtype tensor.DataType) Param {
	return Param{Name: name, Kind: KindScalar, DType: dtype}
}

// Array declares a fixed-length array parameter.
func Array(name string, elem tensor.DataType, n int) Param {
	return Param{Name: name, Kind: KindArray, DType: elem, Len: n}
}

// Vector declares an n-component vector parameter, 1 <= n <= 4.
func Vector(name string, elem tensor.DataType, n int) Param {
	if n < 1 || n > 4 {
		panic(fmt.Sprintf("binding: vector %s has %d components, want 1..4", name, n))
	}
	return Param{Name: name, Kind: KindVector, DType: elem, Len: n}
}

// Matrix declares a rows x cols matrix parameter, each between 1 and 4.
func Matrix(name string, elem tensor.DataType, rows, cols int) Param {
	if rows < 1 || rows > 4 || cols < 1 || cols > 4 {
		panic(fmt.Sprintf("binding: matrix %s is %dx%d, want 1..4 by 1..4", name, rows, cols))
	}
	return Param{Name: name, Kind: KindMatrix, DType: elem, Rows: rows, Cols: cols}
}

// count returns the number of elements the parameter occupies when passed by value.
func (p Param) count() int {
	switch p.Kind {
	case KindScalar:
		return 1
	case KindArray, KindVector:
		return p.Len
	case KindMatrix:
		return p.Rows * p.Cols
	default:
		return 0
	}
}

// TypeName renders the parameter's type, e.g. "vector<float32,3>".
func (p Param) TypeName() string {
	switch p.Kind {
	case KindTensor:
		return fmt.Sprintf("TensorView<%s>", p.DType)
	case KindDiffTensor:
		return fmt.Sprintf("DiffTensorView<%s>", p.DType)
	case KindArray:
		return fmt.Sprintf("%s[%d]", p.DType, p.Len)
	case KindVector:
		return fmt.Sprintf("vector<%s,%d>", p.DType, p.Len)
	case KindMatrix:
		return fmt.Sprintf("matrix<%s,%d,%d>", p.DType, p.Rows, p.Cols)
	default:
		return p.DType.String()
	}
}

// String renders "name: type".
func (p Param) String() string {
	return p.Name + ": " + p.TypeName()
}

// Signature is the host-facing shape of a function: its inputs and output tensors.
type Signature struct {
	Name    string
	Params  []Param
	Results []Param
}

// String renders the signature as "name(a: T, b: U) -> (out: V)".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") -> (")
	for i, p := range s.Results {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}
