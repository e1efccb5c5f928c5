package bounds

import (
	"fmt"
	"reflect"
	"unsafe"
)

// FixedArray holds exactly N elements of T by value. S is the storage type and must
// be [N]T, e.g. FixedArray[float32, [4]float32]. Assigning a FixedArray copies its
// elements; nothing is allocated separately.
type FixedArray[T, S any] struct {
	data S
	chk  Checker
}

// NewFixedArray returns a zeroed FixedArray. It panics if S is not an array of T.
func NewFixedArray[S, T any](chk Checker) FixedArray[T, S] {
	checkStorage[T, S]()
	return FixedArray[T, S]{chk: chk}
}

// FixedArrayOf returns a FixedArray holding vals, which must fill it exactly:
//
//	a := FixedArrayOf[[3]int](Assert, 1, 2, 3)
func FixedArrayOf[S, T any](chk Checker, vals ...T) FixedArray[T, S] {
	a := NewFixedArray[S, T](chk)
	if n := a.Len(); len(vals) != n {
		panic(fmt.Sprintf("bounds: FixedArray of %d elements initialized with %d values", n, len(vals)))
	}
	copy(a.elems(), vals)
	return a
}

func checkStorage[T, S any]() {
	st := reflect.TypeFor[S]()
	if st.Kind() != reflect.Array || st.Elem() != reflect.TypeFor[T]() {
		panic(fmt.Sprintf("bounds: FixedArray storage %v is not an array of %v", st, reflect.TypeFor[T]()))
	}
}

// elems views the storage as a slice. The result aliases a.
func (a *FixedArray[T, S]) elems() []T {
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		return unsafe.Slice((*T)(unsafe.Pointer(&a.data)), reflect.TypeFor[S]().Len())
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&a.data)), unsafe.Sizeof(a.data)/unsafe.Sizeof(zero))
}

// Len returns the fixed element count.
func (a FixedArray[T, S]) Len() int { return len(a.elems()) }

// Checker returns the bound-check configuration.
func (a FixedArray[T, S]) Checker() Checker { return a.chk }

// At returns element i after applying the bound-check policy.
func (a FixedArray[T, S]) At(i int) T {
	e := a.elems()
	return e[a.chk.Check(i, len(e))]
}

// Ptr returns the address of element i after applying the bound-check policy.
func (a *FixedArray[T, S]) Ptr(i int) *T {
	e := a.elems()
	return &e[a.chk.Check(i, len(e))]
}

// Set stores v at element i after applying the bound-check policy.
func (a *FixedArray[T, S]) Set(i int, v T) {
	e := a.elems()
	e[a.chk.Check(i, len(e))] = v
}

// Array returns the elements as a plain Go array.
func (a FixedArray[T, S]) Array() S { return a.data }

// Slice views the elements in place. It aliases a and must not outlive it.
func (a *FixedArray[T, S]) Slice() []T { return a.elems() }

// Array is a runtime-sized sequence. It either owns its storage or borrows a slice
// that belongs to someone else; a borrowed Array must not outlive its source.
type Array[T any] struct {
	data  []T
	count int
	chk   Checker
}

// NewArray allocates an Array of count elements.
func NewArray[T any](count int, chk Checker) Array[T] {
	if count < 0 {
		panic("bounds: negative Array count")
	}
	return Array[T]{data: make([]T, count), count: count, chk: chk}
}

// ArrayView borrows data without copying it.
func ArrayView[T any](data []T, chk Checker) Array[T] {
	return Array[T]{data: data, count: len(data), chk: chk}
}

// Count returns the number of addressable elements.
func (a Array[T]) Count() int { return a.count }

// At returns element i after applying the bound-check policy against Count.
func (a Array[T]) At(i int) T {
	return a.data[a.chk.Check(i, a.count)]
}

// Ptr returns the address of element i.
func (a Array[T]) Ptr(i int) *T {
	return &a.data[a.chk.Check(i, a.count)]
}

// Set stores v at element i.
func (a Array[T]) Set(i int, v T) {
	a.data[a.chk.Check(i, a.count)] = v
}

// Data returns the underlying storage limited to Count elements.
func (a Array[T]) Data() []T { return a.data[:a.count] }
