// Package scalar provides per-width numeric intrinsics: elementary float functions,
// min/max/abs, bit reinterpretation, population count and atomic accumulation.
//
// Float functions are served by the active Runtime. Host (the default) calls Go's math
// package; a Freestanding runtime is assembled from externally supplied entry points for
// environments that bring their own minimal math library. Callers never branch on
// which runtime is active.
package scalar

// Signed is the set of signed integer widths.
type Signed interface {
	int8 | int16 | int32 | int64
}

// Unsigned is the set of unsigned integer widths.
type Unsigned interface {
	uint8 | uint16 | uint32 | uint64
}

// Integer is every integer width.
type Integer interface {
	Signed | Unsigned
}

// Float is the set of float widths.
type Float interface {
	float32 | float64
}

// Number is every supported scalar type.
type Number interface {
	Integer | Float
}
