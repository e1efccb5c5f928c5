package binding

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/born-ml/kernelrt/internal/tensor"
	"github.com/born-ml/kernelrt/internal/vecmath"
)

// Input validation errors.
var (
	ErrWrongKind    = errors.New("wrong input kind")
	ErrNotNumeric   = errors.New("value is not numeric")
	ErrNilTensor    = errors.New("tensor is nil")
	ErrUnknownParam = errors.New("unknown parameter kind")
)

// DiffInput is the caller-side form of a differentiable tensor. A nil Grad gets a
// placeholder during marshaling.
type DiffInput struct {
	Value *tensor.RawTensor
	Grad  *tensor.RawTensor
}

// VectorArg converts a vector to the slice form vector parameters accept.
func VectorArg[T vecmath.Number, A vecmath.Arity](v vecmath.Vector[T, A]) []T {
	return v.Array()
}

// MatrixArg converts a matrix to the row form matrix parameters accept.
func MatrixArg[T vecmath.Number, R, C vecmath.Arity](m vecmath.Matrix[T, R, C]) [][]T {
	rows := make([][]T, m.Rows())
	for i := range rows {
		r := m.Row(i)
		rows[i] = r.Array()
	}
	return rows
}

// lengthError reports a tuple of the wrong length for type p.
func lengthError(p Param, want, got int) error {
	return fmt.Errorf("%w, when marshalling type %s", &vecmath.LengthError{Want: want, Got: got}, p.TypeName())
}

// accept checks v against p and normalizes it. Tensors stay *tensor.RawTensor,
// differentiable tensors become DiffInput and by-value kinds become a contiguous
// host tensor of p.DType holding the elements in row-major order.
func (rt *Runtime) accept(p Param, v any) (any, error) {
	switch p.Kind {
	case KindTensor:
		t, ok := v.(*tensor.RawTensor)
		if !ok {
			return nil, fmt.Errorf("%w: expected tensor, got %T", ErrWrongKind, v)
		}
		if t == nil {
			return nil, ErrNilTensor
		}
		return t, nil

	case KindDiffTensor:
		return acceptDiff(v)

	case KindScalar, KindArray, KindVector, KindMatrix:
		if t, ok := v.(*tensor.RawTensor); ok {
			if t == nil {
				return nil, ErrNilTensor
			}
			if n := t.NumElements(); n != p.count() {
				return nil, lengthError(p, p.count(), n)
			}
			return rt.Marshaler.Host.Cast(t, p.DType), nil
		}
		elems, err := flatten(p, v)
		if err != nil {
			return nil, err
		}
		return rt.hostValues(elems, p.DType)

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownParam, p.Kind)
	}
}

func acceptDiff(v any) (DiffInput, error) {
	switch x := v.(type) {
	case DiffInput:
		if x.Value == nil {
			return x, ErrNilTensor
		}
		return x, nil
	case *tensor.RawTensor:
		if x == nil {
			return DiffInput{}, ErrNilTensor
		}
		return DiffInput{Value: x}, nil
	case []*tensor.RawTensor:
		if len(x) != 1 && len(x) != 2 {
			return DiffInput{}, fmt.Errorf("failed to convert to DiffTensorView: expected tuple of length 1 or 2, got %d", len(x))
		}
		d := DiffInput{Value: x[0]}
		if len(x) == 2 {
			d.Grad = x[1]
		}
		if d.Value == nil {
			return d, ErrNilTensor
		}
		return d, nil
	default:
		return DiffInput{}, fmt.Errorf("%w: expected DiffInput, tensor or tensor pair, got %T", ErrWrongKind, v)
	}
}

// flatten collects the elements of a by-value argument in row-major order.
func flatten(p Param, v any) ([]reflect.Value, error) {
	rv := reflect.ValueOf(v)
	switch p.Kind {
	case KindScalar:
		if isSequence(rv) {
			return nil, fmt.Errorf("%w: expected scalar, got %T", ErrWrongKind, v)
		}
		return []reflect.Value{rv}, nil

	case KindArray, KindVector:
		if !isSequence(rv) {
			return nil, fmt.Errorf("%w: expected slice or array, got %T", ErrWrongKind, v)
		}
		if rv.Len() != p.Len {
			return nil, lengthError(p, p.Len, rv.Len())
		}
		return elements(rv), nil

	default:
		if !isSequence(rv) {
			return nil, fmt.Errorf("%w: expected rows, got %T", ErrWrongKind, v)
		}
		if rv.Len() != p.Rows {
			return nil, lengthError(p, p.Rows, rv.Len())
		}
		out := make([]reflect.Value, 0, p.Rows*p.Cols)
		for i := range rv.Len() {
			row := indirect(rv.Index(i))
			if !isSequence(row) {
				return nil, fmt.Errorf("%w: expected tuple of tuples, got row of %s", ErrWrongKind, row.Type())
			}
			if row.Len() != p.Cols {
				return nil, fmt.Errorf("row %d: %w", i, lengthError(p, p.Cols, row.Len()))
			}
			out = append(out, elements(row)...)
		}
		return out, nil
	}
}

func isSequence(rv reflect.Value) bool {
	return rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array)
}

// indirect unwraps interface values, as found in []any.
func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func elements(rv reflect.Value) []reflect.Value {
	out := make([]reflect.Value, rv.Len())
	for i := range out {
		out[i] = indirect(rv.Index(i))
	}
	return out
}

// halfLike matches the half-precision types, whose underlying kind is an integer.
type halfLike interface {
	Float32() float32
}

// hostValues packs numeric values into a contiguous tensor of dtype. Integers travel
// as int64 and everything else as float64 before the final cast.
func (rt *Runtime) hostValues(elems []reflect.Value, dtype tensor.DataType) (*tensor.RawTensor, error) {
	floats := make([]float64, len(elems))
	ints := make([]int64, len(elems))
	allInts := true
	for i, e := range elems {
		if !e.IsValid() {
			return nil, fmt.Errorf("%w: element %d is nil", ErrNotNumeric, i)
		}
		if h, ok := e.Interface().(halfLike); ok {
			floats[i] = float64(h.Float32())
			allInts = false
			continue
		}
		switch e.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			ints[i] = e.Int()
			floats[i] = float64(ints[i])
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			ints[i] = int64(e.Uint()) //nolint:gosec // reinterpreted by the cast to unsigned types
			floats[i] = float64(e.Uint())
		case reflect.Float32, reflect.Float64:
			floats[i] = e.Float()
			allInts = false
		case reflect.Bool:
			if e.Bool() {
				ints[i], floats[i] = 1, 1
			}
		default:
			return nil, fmt.Errorf("%w: element %d has type %s", ErrNotNumeric, i, e.Type())
		}
	}

	shape := tensor.Shape{len(elems)}
	var (
		t   *tensor.RawTensor
		err error
	)
	if allInts && !dtype.IsFloat() {
		t, err = tensor.FromSlice(ints, shape)
	} else {
		t, err = tensor.FromSlice(floats, shape)
	}
	if err != nil {
		return nil, err
	}
	return rt.Marshaler.Host.Cast(t, dtype), nil
}
