package cpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/born-ml/kernelrt/internal/half"
	"github.com/born-ml/kernelrt/internal/tensor"
)

// Cast converts the tensor to a different data type. The result is contiguous and
// lives on the same device as x.
func (cpu *CPUBackend) Cast(x *tensor.RawTensor, dtype tensor.DataType) *tensor.RawTensor {
	// No-op if same dtype
	if x.DType() == dtype {
		return x
	}

	result, err := tensor.NewRaw(x.Shape(), dtype, x.Device())
	if err != nil {
		panic(fmt.Sprintf("cast: %v", err))
	}

	if x.IsContiguous() && castBulk(result, x) {
		return result
	}
	castImpl(result, x)
	return result
}

// castBulk handles the half-precision pairs with the parallel slice codecs.
func castBulk(result, x *tensor.RawTensor) bool {
	switch {
	case x.DType() == tensor.Float32 && result.DType() == tensor.Float16:
		half.EncodeSlice(tensor.View[half.Float16](result), x.AsFloat32())
	case x.DType() == tensor.Float16 && result.DType() == tensor.Float32:
		half.DecodeSlice(result.AsFloat32(), tensor.View[half.Float16](x))
	case x.DType() == tensor.Float32 && result.DType() == tensor.BFloat16:
		half.EncodeBFloat16Slice(tensor.View[half.BFloat16](result), x.AsFloat32())
	case x.DType() == tensor.BFloat16 && result.DType() == tensor.Float32:
		half.DecodeBFloat16Slice(result.AsFloat32(), tensor.View[half.BFloat16](x))
	default:
		return false
	}
	return true
}

// element is one value in transit between dtypes. Integers keep full 64-bit
// precision; floats travel as float64.
type element struct {
	f    float64
	i    int64
	u    uint64
	kind elementKind
}

type elementKind int

const (
	kindFloat elementKind = iota
	kindSigned
	kindUnsigned
)

func castImpl(result, x *tensor.RawTensor) {
	from, to := x.DType(), result.DType()
	fromSize, toSize := from.Size(), to.Size()
	src, dst := x.Data(), result.Data()

	x.ForEachOffset(func(i, off int) {
		e := loadElement(from, src[off:off+fromSize])
		storeElement(to, dst[i*toSize:(i+1)*toSize], e)
	})
}

func loadElement(dt tensor.DataType, b []byte) element {
	le := binary.LittleEndian
	switch dt {
	case tensor.Float32:
		return element{f: float64(math.Float32frombits(le.Uint32(b))), kind: kindFloat}
	case tensor.Float64:
		return element{f: math.Float64frombits(le.Uint64(b)), kind: kindFloat}
	case tensor.Float16:
		return element{f: float64(half.Float16At(b)), kind: kindFloat}
	case tensor.BFloat16:
		return element{f: float64(half.BFloat16At(b)), kind: kindFloat}
	case tensor.Int8:
		return element{i: int64(int8(b[0])), kind: kindSigned}
	case tensor.Int16:
		return element{i: int64(int16(le.Uint16(b))), kind: kindSigned}
	case tensor.Int32:
		return element{i: int64(int32(le.Uint32(b))), kind: kindSigned}
	case tensor.Int64:
		return element{i: int64(le.Uint64(b)), kind: kindSigned} //nolint:gosec // two's complement reinterpretation
	case tensor.Uint8:
		return element{u: uint64(b[0]), kind: kindUnsigned}
	case tensor.Bool:
		if b[0] != 0 {
			return element{u: 1, kind: kindUnsigned}
		}
		return element{kind: kindUnsigned}
	case tensor.Uint16:
		return element{u: uint64(le.Uint16(b)), kind: kindUnsigned}
	case tensor.Uint32:
		return element{u: uint64(le.Uint32(b)), kind: kindUnsigned}
	case tensor.Uint64:
		return element{u: le.Uint64(b), kind: kindUnsigned}
	default:
		panic(fmt.Sprintf("cast: unsupported source dtype %v", dt))
	}
}

func (e element) float() float64 {
	switch e.kind {
	case kindSigned:
		return float64(e.i)
	case kindUnsigned:
		return float64(e.u)
	}
	return e.f
}

// signed and unsigned return the value as a 64-bit integer. Floats truncate toward
// zero; integers keep their two's complement bits.
func (e element) signed() int64 {
	switch e.kind {
	case kindSigned:
		return e.i
	case kindUnsigned:
		return int64(e.u) //nolint:gosec // two's complement reinterpretation
	}
	return int64(e.f)
}

func (e element) unsigned() uint64 {
	switch e.kind {
	case kindSigned:
		return uint64(e.i) //nolint:gosec // two's complement reinterpretation
	case kindUnsigned:
		return e.u
	}
	if e.f < 0 {
		return uint64(int64(e.f)) //nolint:gosec // negative floats wrap like signed ints
	}
	return uint64(e.f)
}

func (e element) nonZero() bool {
	switch e.kind {
	case kindSigned:
		return e.i != 0
	case kindUnsigned:
		return e.u != 0
	}
	return e.f != 0
}

//nolint:gosec // narrowing conversions truncate
func storeElement(dt tensor.DataType, b []byte, e element) {
	le := binary.LittleEndian
	switch dt {
	case tensor.Float32:
		le.PutUint32(b, math.Float32bits(float32(e.float())))
	case tensor.Float64:
		le.PutUint64(b, math.Float64bits(e.float()))
	case tensor.Float16:
		half.PutFloat16(b, float32(e.float()))
	case tensor.BFloat16:
		half.PutBFloat16(b, float32(e.float()))
	case tensor.Int8:
		b[0] = byte(int8(e.signed()))
	case tensor.Int16:
		le.PutUint16(b, uint16(e.signed()))
	case tensor.Int32:
		le.PutUint32(b, uint32(e.signed()))
	case tensor.Int64:
		le.PutUint64(b, uint64(e.signed()))
	case tensor.Uint8:
		b[0] = byte(e.unsigned())
	case tensor.Uint16:
		le.PutUint16(b, uint16(e.unsigned()))
	case tensor.Uint32:
		le.PutUint32(b, uint32(e.unsigned()))
	case tensor.Uint64:
		le.PutUint64(b, e.unsigned())
	case tensor.Bool:
		b[0] = 0
		if e.nonZero() {
			b[0] = 1
		}
	default:
		panic(fmt.Sprintf("cast: unsupported target dtype %v", dt))
	}
}
