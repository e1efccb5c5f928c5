package vecmath

import "strings"

// Mask is the boolean vector produced by component-wise comparison.
type Mask[A Arity] struct {
	lanes [maxLanes]bool
}

// MaskOf builds a mask from exactly A.Len() flags. Extra flags are ignored.
func MaskOf[A Arity](flags ...bool) Mask[A] {
	var m Mask[A]
	copy(m.lanes[:arity[A]()], flags)
	return m
}

// Len returns the number of components.
func (m Mask[A]) Len() int { return arity[A]() }

// At returns component i.
func (m Mask[A]) At(i int) bool {
	n := arity[A]()
	if uint(i) >= uint(n) {
		panic("vecmath: mask component out of range")
	}
	return m.lanes[i]
}

func (m Mask[A]) zip(o Mask[A], f func(a, b bool) bool) Mask[A] {
	var r Mask[A]
	for i := range arity[A]() {
		r.lanes[i] = f(m.lanes[i], o.lanes[i])
	}
	return r
}

// And is the component-wise conjunction.
func (m Mask[A]) And(o Mask[A]) Mask[A] { return m.zip(o, func(a, b bool) bool { return a && b }) }

// Or is the component-wise disjunction.
func (m Mask[A]) Or(o Mask[A]) Mask[A] { return m.zip(o, func(a, b bool) bool { return a || b }) }

// Xor is true where exactly one of the masks is set.
func (m Mask[A]) Xor(o Mask[A]) Mask[A] { return m.zip(o, func(a, b bool) bool { return a != b }) }

// Not inverts the live components.
func (m Mask[A]) Not() Mask[A] {
	var r Mask[A]
	for i := range arity[A]() {
		r.lanes[i] = !m.lanes[i]
	}
	return r
}

// Any reports whether at least one component is set.
func (m Mask[A]) Any() bool {
	for i := range arity[A]() {
		if m.lanes[i] {
			return true
		}
	}
	return false
}

// All reports whether every component is set.
func (m Mask[A]) All() bool {
	for i := range arity[A]() {
		if !m.lanes[i] {
			return false
		}
	}
	return true
}

// String formats the live components, e.g. "(true, false)".
func (m Mask[A]) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i := range arity[A]() {
		if i > 0 {
			sb.WriteString(", ")
		}
		if m.lanes[i] {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	}
	sb.WriteByte(')')
	return sb.String()
}

// Select picks a's component where m is set and b's elsewhere.
func Select[T Number, A Arity](m Mask[A], a, b Vector[T, A]) Vector[T, A] {
	var r Vector[T, A]
	for i := range arity[A]() {
		if m.lanes[i] {
			r.lanes[i] = a.lanes[i]
		} else {
			r.lanes[i] = b.lanes[i]
		}
	}
	return r
}
