package scalar

import "math"

// Float intrinsics route through the active runtime in float64 and round back to T.
// float32 results therefore match the runtime's float64 result rounded once. FMA is the
// exception: it has a float32 entry so the freestanding product rounds in float32.

func unary[T Float](f func(float64) float64, x T) T {
	return T(f(float64(x)))
}

func binary[T Float](f func(float64, float64) float64, a, b T) T {
	return T(f(float64(a), float64(b)))
}

// Ceil rounds up.
func Ceil[T Float](x T) T { return unary(Active().Ceil, x) }

// Floor rounds down.
func Floor[T Float](x T) T { return unary(Active().Floor, x) }

// Round rounds half away from zero.
func Round[T Float](x T) T { return unary(Active().Round, x) }

// Trunc rounds toward zero.
func Trunc[T Float](x T) T { return unary(Active().Trunc, x) }

// FAbs returns |x|.
func FAbs[T Float](x T) T { return unary(Active().Abs, x) }

// Sqrt returns the square root.
func Sqrt[T Float](x T) T { return unary(Active().Sqrt, x) }

// Sin returns the sine.
func Sin[T Float](x T) T { return unary(Active().Sin, x) }

// Cos returns the cosine.
func Cos[T Float](x T) T { return unary(Active().Cos, x) }

// Tan returns the tangent.
func Tan[T Float](x T) T { return unary(Active().Tan, x) }

// Asin returns the arcsine.
func Asin[T Float](x T) T { return unary(Active().Asin, x) }

// Acos returns the arccosine.
func Acos[T Float](x T) T { return unary(Active().Acos, x) }

// Atan returns the arctangent.
func Atan[T Float](x T) T { return unary(Active().Atan, x) }

// Sinh returns the hyperbolic sine.
func Sinh[T Float](x T) T { return unary(Active().Sinh, x) }

// Cosh returns the hyperbolic cosine.
func Cosh[T Float](x T) T { return unary(Active().Cosh, x) }

// Tanh returns the hyperbolic tangent.
func Tanh[T Float](x T) T { return unary(Active().Tanh, x) }

// Log returns the natural logarithm.
func Log[T Float](x T) T { return unary(Active().Log, x) }

// Log2 returns the base-2 logarithm.
func Log2[T Float](x T) T { return unary(Active().Log2, x) }

// Log10 returns the base-10 logarithm.
func Log10[T Float](x T) T { return unary(Active().Log10, x) }

// Exp returns e**x.
func Exp[T Float](x T) T { return unary(Active().Exp, x) }

// Exp2 returns 2**x.
func Exp2[T Float](x T) T { return unary(Active().Exp2, x) }

// Pow returns a**b.
func Pow[T Float](a, b T) T { return binary(Active().Pow, a, b) }

// Fmod returns the remainder of a/b truncated toward zero.
func Fmod[T Float](a, b T) T { return binary(Active().Mod, a, b) }

// Remainder returns the IEEE remainder of a/b.
func Remainder[T Float](a, b T) T { return binary(Active().Remainder, a, b) }

// Atan2 returns the arctangent of y/x using the signs of both.
func Atan2[T Float](y, x T) T { return binary(Active().Atan2, y, x) }

// FMin returns the smaller operand using the runtime's min; NaN handling differs
// between Host and Freestanding.
func FMin[T Float](a, b T) T { return binary(Active().Min, a, b) }

// FMax is FMin's counterpart for the larger operand.
func FMax[T Float](a, b T) T { return binary(Active().Max, a, b) }

// FMA computes a*b+c in T. Host fuses; freestanding rounds the product to T first.
func FMA[T Float](a, b, c T) T {
	if x, ok := any(a).(float32); ok {
		return T(Active().FMA32(x, float32(b), float32(c)))
	}
	return T(Active().FMA(float64(a), float64(b), float64(c)))
}

// Rsqrt returns 1/sqrt(x).
func Rsqrt[T Float](x T) T { return 1 / Sqrt(x) }

// Sign returns -1 or 1 by sign, and x itself for either zero. NaN yields 1.
func Sign[T Float](x T) T {
	switch {
	case x == 0:
		return x
	case x < 0:
		return -1
	}
	return 1
}

// Frac returns x - floor(x), always in [0, 1).
func Frac[T Float](x T) T { return x - Floor(x) }

// SafeRadians wraps an angle into [0, 2*pi).
func SafeRadians[T Float](radians T) T {
	const twoPi = 2 * math.Pi
	a := radians * T(1/twoPi)
	a -= Floor(a)
	return a * T(twoPi)
}

// Frexp splits x into a fraction in [0.5, 1) and a power of two, returned as T.
func Frexp[T Float](x T) (frac, exp T) {
	f, e := Active().Frexp(float64(x))
	return T(f), T(e)
}

// Modf splits x into fractional and integral parts, both carrying the sign of x.
func Modf[T Float](x T) (frac, whole T) {
	w, f := Active().Modf(float64(x))
	return T(f), T(w)
}

// IsNaN reports whether x is a NaN.
func IsNaN[T Float](x T) bool { return math.IsNaN(float64(x)) }

// IsInf reports whether x is an infinity of either sign.
func IsInf[T Float](x T) bool {
	return math.IsInf(float64(x), 0)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite[T Float](x T) bool {
	return !IsNaN(x) && !IsInf(x)
}
