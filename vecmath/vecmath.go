// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vecmath provides fixed-size vectors and matrices of 1 to 4 components.
//
// The component count is a type parameter, so mixing a 3-vector with a 4-vector is a
// compile-time error:
//
//	a := vecmath.New3[float32](1, 2, 3)
//	b := vecmath.Splat[float32, vecmath.N3](2)
//	c := a.Mul(b)                  // (2, 4, 6)
//	d := vecmath.Dot(a, b)         // 12
//	m := vecmath.Identity[float32, vecmath.N3]()
//	e := m.MulVec(c)               // (2, 4, 6)
//
// Component access is bounds-checked and panics on an out-of-range index.
package vecmath

import (
	"github.com/born-ml/kernelrt/internal/vecmath"
)

// Element constraints.
type (
	Integer = vecmath.Integer
	Float   = vecmath.Float
	Number  = vecmath.Number
)

// Arity is the component count carried as a type parameter.
type Arity = vecmath.Arity

// Arity markers.
type (
	N1 = vecmath.N1
	N2 = vecmath.N2
	N3 = vecmath.N3
	N4 = vecmath.N4
)

// Vector is a value of A components of type T.
type Vector[T Number, A Arity] = vecmath.Vector[T, A]

// Matrix is an R x C matrix stored as R row vectors.
type Matrix[T Number, R, C Arity] = vecmath.Matrix[T, R, C]

// Mask is the per-component result of a vector comparison.
type Mask[A Arity] = vecmath.Mask[A]

// Fixed-arity aliases.
type (
	Vec1[T Number] = vecmath.Vec1[T]
	Vec2[T Number] = vecmath.Vec2[T]
	Vec3[T Number] = vecmath.Vec3[T]
	Vec4[T Number] = vecmath.Vec4[T]
)

// LengthError is returned when a component list does not match the target arity.
type LengthError = vecmath.LengthError

// ShapeError is returned when values cannot fill a matrix.
type ShapeError = vecmath.ShapeError

// New1 returns a one-component vector.
func New1[T Number](x T) Vec1[T] { return vecmath.New1(x) }

// New2 returns a two-component vector.
func New2[T Number](x, y T) Vec2[T] { return vecmath.New2(x, y) }

// New3 returns a three-component vector.
func New3[T Number](x, y, z T) Vec3[T] { return vecmath.New3(x, y, z) }

// New4 returns a four-component vector.
func New4[T Number](x, y, z, w T) Vec4[T] { return vecmath.New4(x, y, z, w) }

// Splat returns a vector with every component set to s.
func Splat[T Number, A Arity](s T) Vector[T, A] { return vecmath.Splat[T, A](s) }

// FromSlice builds a vector from exactly A values.
func FromSlice[T Number, A Arity](vals []T) (Vector[T, A], error) {
	return vecmath.FromSlice[T, A](vals)
}

// Dot returns the dot product of a and b.
func Dot[T Number, A Arity](a, b Vector[T, A]) T { return vecmath.Dot(a, b) }

// Select picks components of a where m is set and of b elsewhere.
func Select[T Number, A Arity](m Mask[A], a, b Vector[T, A]) Vector[T, A] {
	return vecmath.Select(m, a, b)
}

// Convert changes element type and arity, truncating or zero-filling components.
func Convert[T Number, A Arity, U Number, B Arity](v Vector[U, B]) Vector[T, A] {
	return vecmath.Convert[T, A](v)
}

// FromRows builds a matrix from up to R rows; missing rows are zero.
func FromRows[T Number, R, C Arity](rows ...Vector[T, C]) (Matrix[T, R, C], error) {
	return vecmath.FromRows[T, R, C](rows...)
}

// FromScalars builds a matrix from a flat list of values.
func FromScalars[T Number, R, C Arity](vals ...T) (Matrix[T, R, C], error) {
	return vecmath.FromScalars[T, R, C](vals...)
}

// Identity returns the N x N identity matrix.
func Identity[T Number, N Arity]() Matrix[T, N, N] { return vecmath.Identity[T, N]() }

// MatMul returns the matrix product a * b.
func MatMul[T Number, R, K, C Arity](a Matrix[T, R, K], b Matrix[T, K, C]) Matrix[T, R, C] {
	return vecmath.MatMul(a, b)
}
