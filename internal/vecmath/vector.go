package vecmath

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/born-ml/kernelrt/internal/scalar"
)

// Vector is a fixed-size tuple of A.Len() components of type T.
//
// Storage is always four lanes; lanes at or beyond the arity are kept at zero so that
// equality of two vectors is equality of their live components.
type Vector[T Number, A Arity] struct {
	lanes [maxLanes]T
}

// Fixed-arity aliases.
type (
	Vec1[T Number] = Vector[T, N1]
	Vec2[T Number] = Vector[T, N2]
	Vec3[T Number] = Vector[T, N3]
	Vec4[T Number] = Vector[T, N4]
)

// LengthError is returned when a component list does not match the target arity.
type LengthError struct {
	Want, Got int
}

// Error implements the error interface.
func (e *LengthError) Error() string {
	return fmt.Sprintf("expected tuple of length %d, got %d", e.Want, e.Got)
}

// New1 returns a one-component vector.
func New1[T Number](x T) Vector[T, N1] {
	return Vector[T, N1]{lanes: [maxLanes]T{x}}
}

// New2 returns a two-component vector.
func New2[T Number](x, y T) Vector[T, N2] {
	return Vector[T, N2]{lanes: [maxLanes]T{x, y}}
}

// New3 returns a three-component vector.
func New3[T Number](x, y, z T) Vector[T, N3] {
	return Vector[T, N3]{lanes: [maxLanes]T{x, y, z}}
}

// New4 returns a four-component vector.
func New4[T Number](x, y, z, w T) Vector[T, N4] {
	return Vector[T, N4]{lanes: [maxLanes]T{x, y, z, w}}
}

// Splat broadcasts s into every component.
func Splat[T Number, A Arity](s T) Vector[T, A] {
	var v Vector[T, A]
	for i := range arity[A]() {
		v.lanes[i] = s
	}
	return v
}

// FromSlice builds a vector from exactly A.Len() values.
func FromSlice[T Number, A Arity](vals []T) (Vector[T, A], error) {
	var v Vector[T, A]
	if n := arity[A](); len(vals) != n {
		return v, &LengthError{Want: n, Got: len(vals)}
	}
	copy(v.lanes[:], vals)
	return v, nil
}

func (v Vector[T, A]) check(i int) int {
	n := arity[A]()
	if uint(i) >= uint(n) {
		panic(fmt.Sprintf("vecmath: component %d out of range [0, %d)", i, n))
	}
	return i
}

// Len returns the number of components.
func (v Vector[T, A]) Len() int { return arity[A]() }

// At returns component i. It panics if i is outside the arity.
func (v Vector[T, A]) At(i int) T { return v.lanes[v.check(i)] }

// Ptr returns the address of component i. Components are contiguous.
func (v *Vector[T, A]) Ptr(i int) *T { return &v.lanes[v.check(i)] }

// Set stores x in component i.
func (v *Vector[T, A]) Set(i int, x T) { v.lanes[v.check(i)] = x }

// Array returns the live components, sharing storage with v.
func (v *Vector[T, A]) Array() []T { return v.lanes[:arity[A]()] }

// X returns component 0.
func (v Vector[T, A]) X() T { return v.At(0) }

// Y returns component 1; it panics below arity 2.
func (v Vector[T, A]) Y() T { return v.At(1) }

// Z returns component 2; it panics below arity 3.
func (v Vector[T, A]) Z() T { return v.At(2) }

// W returns component 3; it panics below arity 4.
func (v Vector[T, A]) W() T { return v.At(3) }

func (v Vector[T, A]) apply(f func(T) T) Vector[T, A] {
	var r Vector[T, A]
	for i := range arity[A]() {
		r.lanes[i] = f(v.lanes[i])
	}
	return r
}

func (v Vector[T, A]) zip(o Vector[T, A], f func(a, b T) T) Vector[T, A] {
	var r Vector[T, A]
	for i := range arity[A]() {
		r.lanes[i] = f(v.lanes[i], o.lanes[i])
	}
	return r
}

// Add adds component-wise.
func (v Vector[T, A]) Add(o Vector[T, A]) Vector[T, A] {
	return v.zip(o, func(a, b T) T { return a + b })
}

// Sub subtracts component-wise.
func (v Vector[T, A]) Sub(o Vector[T, A]) Vector[T, A] {
	return v.zip(o, func(a, b T) T { return a - b })
}

// Mul multiplies component-wise.
func (v Vector[T, A]) Mul(o Vector[T, A]) Vector[T, A] {
	return v.zip(o, func(a, b T) T { return a * b })
}

// Div divides component-wise. Integer division by zero panics.
func (v Vector[T, A]) Div(o Vector[T, A]) Vector[T, A] {
	return v.zip(o, func(a, b T) T { return a / b })
}

// Rem is the component-wise remainder, fmod for floats.
func (v Vector[T, A]) Rem(o Vector[T, A]) Vector[T, A] {
	return v.zip(o, scalar.Rem[T])
}

// Neg negates each component; unsigned components wrap.
func (v Vector[T, A]) Neg() Vector[T, A] {
	return v.apply(func(a T) T { return -a })
}

// Min takes the smaller component; floats use the active runtime's min.
func (v Vector[T, A]) Min(o Vector[T, A]) Vector[T, A] { return v.zip(o, scalar.Min[T]) }

// Max takes the larger component; floats use the active runtime's max.
func (v Vector[T, A]) Max(o Vector[T, A]) Vector[T, A] { return v.zip(o, scalar.Max[T]) }

// AddScalar adds s to every component.
func (v Vector[T, A]) AddScalar(s T) Vector[T, A] { return v.Add(Splat[T, A](s)) }

// SubScalar subtracts s from every component.
func (v Vector[T, A]) SubScalar(s T) Vector[T, A] { return v.Sub(Splat[T, A](s)) }

// MulScalar multiplies every component by s.
func (v Vector[T, A]) MulScalar(s T) Vector[T, A] { return v.Mul(Splat[T, A](s)) }

// DivScalar divides every component by s.
func (v Vector[T, A]) DivScalar(s T) Vector[T, A] { return v.Div(Splat[T, A](s)) }

// Sum adds the live components.
func (v Vector[T, A]) Sum() T {
	var s T
	for i := range arity[A]() {
		s += v.lanes[i]
	}
	return s
}

// Dot returns the inner product of a and b.
func Dot[T Number, A Arity](a, b Vector[T, A]) T {
	return a.Mul(b).Sum()
}

// Lerp interpolates between a and b.
func Lerp[T Float, A Arity](a, b Vector[T, A], t T) Vector[T, A] {
	return a.Add(b.Sub(a).MulScalar(t))
}

func (v Vector[T, A]) compare(o Vector[T, A], f func(a, b T) bool) Mask[A] {
	var m Mask[A]
	for i := range arity[A]() {
		m.lanes[i] = f(v.lanes[i], o.lanes[i])
	}
	return m
}

// Less compares component-wise with <.
func (v Vector[T, A]) Less(o Vector[T, A]) Mask[A] {
	return v.compare(o, func(a, b T) bool { return a < b })
}

// LessEqual compares component-wise with <=.
func (v Vector[T, A]) LessEqual(o Vector[T, A]) Mask[A] {
	return v.compare(o, func(a, b T) bool { return a <= b })
}

// Greater compares component-wise with >.
func (v Vector[T, A]) Greater(o Vector[T, A]) Mask[A] {
	return v.compare(o, func(a, b T) bool { return a > b })
}

// GreaterEqual compares component-wise with >=.
func (v Vector[T, A]) GreaterEqual(o Vector[T, A]) Mask[A] {
	return v.compare(o, func(a, b T) bool { return a >= b })
}

// Equal compares component-wise with ==.
func (v Vector[T, A]) Equal(o Vector[T, A]) Mask[A] {
	return v.compare(o, func(a, b T) bool { return a == b })
}

// NotEqual compares component-wise with !=.
func (v Vector[T, A]) NotEqual(o Vector[T, A]) Mask[A] {
	return v.compare(o, func(a, b T) bool { return a != b })
}

// String formats the live components, e.g. "(1, 2, 3)".
func (v Vector[T, A]) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := range arity[A]() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v.lanes[i])
	}
	sb.WriteByte(')')
	return sb.String()
}

// AppendBinary appends the live components in little-endian order, the layout a
// kernel reads for a by-value vector argument.
func (v Vector[T, A]) AppendBinary(b []byte) ([]byte, error) {
	return binary.Append(b, binary.LittleEndian, v.lanes[:arity[A]()])
}

// Convert casts each component to T. Target lanes past the source arity are zero and
// source lanes past the target arity are dropped.
func Convert[T Number, A Arity, U Number, B Arity](v Vector[U, B]) Vector[T, A] {
	var r Vector[T, A]
	for i := range min(arity[A](), arity[B]()) {
		r.lanes[i] = T(v.lanes[i])
	}
	return r
}

// Reshape changes the arity, keeping the element type.
func Reshape[A Arity, T Number, B Arity](v Vector[T, B]) Vector[T, A] {
	return Convert[T, A](v)
}
