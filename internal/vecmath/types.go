// Package vecmath implements the fixed-size vector and matrix value types used by
// kernels and by host-side result construction.
//
// Element types are restricted to the eight integer widths and the two float widths.
// The component count (arity) of a vector is a phantom type parameter, so Vector[T, N3]
// and Vector[T, N4] are distinct types and mixing them is a compile-time error.
package vecmath

import "github.com/born-ml/kernelrt/internal/scalar"

// Element constraints are shared with the scalar intrinsics.
type (
	Signed   = scalar.Signed
	Unsigned = scalar.Unsigned
	Integer  = scalar.Integer
	Float    = scalar.Float
	Number   = scalar.Number
)

// Arity is the component count carried as a type parameter.
type Arity interface {
	N1 | N2 | N3 | N4
	Len() int
}

// Arity markers.
type (
	N1 struct{}
	N2 struct{}
	N3 struct{}
	N4 struct{}
)

// Len returns 1.
func (N1) Len() int { return 1 }

// Len returns 2.
func (N2) Len() int { return 2 }

// Len returns 3.
func (N3) Len() int { return 3 }

// Len returns 4.
func (N4) Len() int { return 4 }

// arity returns the component count of A.
func arity[A Arity]() int {
	var a A
	return a.Len()
}

// maxLanes is the storage width shared by every arity.
const maxLanes = 4
