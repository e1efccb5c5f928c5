package vecmath

// Operators below exist only for integer element types.

// And returns the component-wise bitwise AND.
func And[T Integer, A Arity](a, b Vector[T, A]) Vector[T, A] {
	return a.zip(b, func(x, y T) T { return x & y })
}

// Or returns the component-wise bitwise OR.
func Or[T Integer, A Arity](a, b Vector[T, A]) Vector[T, A] {
	return a.zip(b, func(x, y T) T { return x | y })
}

// Xor returns the component-wise bitwise XOR.
func Xor[T Integer, A Arity](a, b Vector[T, A]) Vector[T, A] {
	return a.zip(b, func(x, y T) T { return x ^ y })
}

// Shl shifts left by the unsigned reinterpretation of each count; counts at or past
// the width yield zero.
func Shl[T Integer, A Arity](a, count Vector[T, A]) Vector[T, A] {
	return a.zip(count, func(x, n T) T { return x << shiftCount(n) })
}

// Shr shifts right: arithmetic for signed T, logical for unsigned T.
func Shr[T Integer, A Arity](a, count Vector[T, A]) Vector[T, A] {
	return a.zip(count, func(x, n T) T { return x >> shiftCount(n) })
}

// shiftCount widens n's bit pattern to 64 bits. Negative counts become huge, which
// saturates the shift the same way an unsigned count of the original width would.
func shiftCount[T Integer](n T) uint64 {
	return uint64(n) //nolint:gosec // reinterpretation
}

// LogicalAnd yields 1 where both components are non-zero, else 0.
func LogicalAnd[T Integer, A Arity](a, b Vector[T, A]) Vector[T, A] {
	return a.zip(b, func(x, y T) T { return boolTo[T](x != 0 && y != 0) })
}

// LogicalOr yields 1 where either component is non-zero, else 0.
func LogicalOr[T Integer, A Arity](a, b Vector[T, A]) Vector[T, A] {
	return a.zip(b, func(x, y T) T { return boolTo[T](x != 0 || y != 0) })
}

// LogicalNot yields 1 where the component is zero, else 0.
func LogicalNot[T Integer, A Arity](a Vector[T, A]) Vector[T, A] {
	return a.apply(func(x T) T { return boolTo[T](x == 0) })
}

// BitNot complements every bit.
func BitNot[T Integer, A Arity](a Vector[T, A]) Vector[T, A] {
	return a.apply(func(x T) T { return ^x })
}

func boolTo[T Integer](b bool) T {
	if b {
		return 1
	}
	return 0
}
