package scalar

// IsFloatType reports whether T is float32 or float64.
func IsFloatType[T Number]() bool {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return true
	}
	return false
}

// Min returns the smaller of a and b. Floats use the active runtime's min.
func Min[T Number](a, b T) T {
	if IsFloatType[T]() {
		return T(Active().Min(float64(a), float64(b)))
	}
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b. Floats use the active runtime's max.
func Max[T Number](a, b T) T {
	if IsFloatType[T]() {
		return T(Active().Max(float64(a), float64(b)))
	}
	if a > b {
		return a
	}
	return b
}

// Abs returns |x|. Unsigned values are returned unchanged and the most negative signed
// value wraps to itself.
func Abs[T Number](x T) T {
	if IsFloatType[T]() {
		return T(Active().Abs(float64(x)))
	}
	if x < 0 {
		return -x
	}
	return x
}

// Rem returns a % b for integers and fmod(a, b) for floats; the result takes the sign
// of the dividend either way. Integer division by zero panics.
func Rem[T Number](a, b T) T {
	switch x := any(a).(type) {
	case float32:
		return any(Fmod(x, any(b).(float32))).(T)
	case float64:
		return any(Fmod(x, any(b).(float64))).(T)
	case int8:
		return any(x % any(b).(int8)).(T)
	case int16:
		return any(x % any(b).(int16)).(T)
	case int32:
		return any(x % any(b).(int32)).(T)
	case int64:
		return any(x % any(b).(int64)).(T)
	case uint8:
		return any(x % any(b).(uint8)).(T)
	case uint16:
		return any(x % any(b).(uint16)).(T)
	case uint32:
		return any(x % any(b).(uint32)).(T)
	case uint64:
		return any(x % any(b).(uint64)).(T)
	}
	panic("scalar: unsupported element type")
}

// Clamp limits x to [lo, hi].
func Clamp[T Number](x, lo, hi T) T {
	return Min(Max(x, lo), hi)
}
