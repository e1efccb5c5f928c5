package marshal

import (
	"unsafe"

	"github.com/born-ml/kernelrt/internal/bounds"
)

// ArgList is the untyped argument array handed to the launch primitive: one pointer
// per kernel parameter, in declaration order. Its capacity is fixed when it is made.
type ArgList struct {
	ptrs bounds.Array[unsafe.Pointer]
	n    int
}

// NewArgList returns an empty list with room for capacity arguments.
func NewArgList(capacity int) *ArgList {
	return &ArgList{ptrs: bounds.NewArray[unsafe.Pointer](capacity, bounds.Assert)}
}

// Add appends a raw argument pointer.
func (l *ArgList) Add(p unsafe.Pointer) error {
	if l.n >= l.ptrs.Count() {
		return ErrArgListFull
	}
	l.ptrs.Set(l.n, p)
	l.n++
	return nil
}

// AddView appends a tensor descriptor. The list keeps its own copy of v.
func (l *ArgList) AddView(v TensorView) error {
	p := new(TensorView)
	*p = v
	return l.Add(unsafe.Pointer(p))
}

// AddDiffView appends a differentiable tensor descriptor.
func (l *ArgList) AddDiffView(v DiffTensorView) error {
	p := new(DiffTensorView)
	*p = v
	return l.Add(unsafe.Pointer(p))
}

// AddScalar appends a by-value argument. The list keeps its own copy of x.
func AddScalar[T any](l *ArgList, x T) error {
	p := new(T)
	*p = x
	return l.Add(unsafe.Pointer(p))
}

// Len returns the number of arguments added.
func (l *ArgList) Len() int { return l.n }

// Cap returns the declared capacity.
func (l *ArgList) Cap() int { return l.ptrs.Count() }

// Pointers returns the argument array in kernel parameter order.
func (l *ArgList) Pointers() []unsafe.Pointer {
	return l.ptrs.Data()[:l.n]
}

// Arg reinterprets argument i as *T.
func Arg[T any](args []unsafe.Pointer, i int) *T {
	return (*T)(args[i])
}
