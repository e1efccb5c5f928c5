package vecmath

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorConstruction(t *testing.T) {
	v := New3[float32](1, 2, 3)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, float32(1), v.X())
	assert.Equal(t, float32(2), v.Y())
	assert.Equal(t, float32(3), v.Z())
	assert.Panics(t, func() { v.W() }, "fourth component is outside arity 3")
	assert.Panics(t, func() { v.At(-1) })

	s := Splat[int32, N4](7)
	assert.Equal(t, New4[int32](7, 7, 7, 7), s)

	f, err := FromSlice[uint8, N2]([]uint8{4, 5})
	require.NoError(t, err)
	assert.Equal(t, New2[uint8](4, 5), f)

	_, err = FromSlice[uint8, N2]([]uint8{1, 2, 3})
	var lerr *LengthError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "expected tuple of length 2, got 3", err.Error())
}

// splatCases checks Splat for every arity of one element type.
func splatCases[T Number](s T) []func(*testing.T) {
	return []func(*testing.T){
		func(t *testing.T) { checkSplat[T, N1](t, s) },
		func(t *testing.T) { checkSplat[T, N2](t, s) },
		func(t *testing.T) { checkSplat[T, N3](t, s) },
		func(t *testing.T) { checkSplat[T, N4](t, s) },
	}
}

func checkSplat[T Number, A Arity](t *testing.T, s T) {
	t.Helper()
	v := Splat[T, A](s)
	var a A
	require.Equal(t, a.Len(), v.Len())
	for i := range v.Len() {
		assert.Equal(t, s, v.At(i), "lane %d", i)
	}
	for i := v.Len(); i < maxLanes; i++ {
		assert.Zero(t, v.lanes[i], "dead lane %d", i)
	}
}

func TestSplatEveryArity(t *testing.T) {
	tests := []struct {
		name  string
		cases []func(*testing.T)
	}{
		{"int8", splatCases[int8](-7)},
		{"int64", splatCases[int64](math.MinInt64)},
		{"uint16", splatCases[uint16](0xBEEF)},
		{"uint32", splatCases[uint32](math.MaxUint32)},
		{"float32", splatCases[float32](-0.5)},
		{"float64", splatCases[float64](math.Pi)},
	}
	for _, tt := range tests {
		for n, run := range tt.cases {
			t.Run(fmt.Sprintf("%s/N%d", tt.name, n+1), run)
		}
	}
}

func TestVectorPtrMatchesArray(t *testing.T) {
	v := New4[float64](1, 2, 3, 4)
	arr := v.Array()
	for i := range v.Len() {
		assert.Same(t, &arr[i], v.Ptr(i))
	}
	*v.Ptr(2) = 30
	v.Set(3, 40)
	assert.Equal(t, []float64{1, 2, 30, 40}, v.Array())
}

func TestVectorArithmetic(t *testing.T) {
	a := New3[int32](7, -7, 9)
	b := New3[int32](2, 3, 4)

	assert.Equal(t, New3[int32](9, -4, 13), a.Add(b))
	assert.Equal(t, New3[int32](5, -10, 5), a.Sub(b))
	assert.Equal(t, New3[int32](14, -21, 36), a.Mul(b))
	assert.Equal(t, New3[int32](3, -2, 2), a.Div(b))
	assert.Equal(t, New3[int32](1, -1, 1), a.Rem(b))
	assert.Equal(t, New3[int32](-7, 7, -9), a.Neg())
	assert.Equal(t, New3[int32](2, -7, 4), a.Min(b))
	assert.Equal(t, New3[int32](7, 3, 9), a.Max(b))

	assert.Equal(t, New3[int32](8, -6, 10), a.AddScalar(1))
	assert.Equal(t, New3[int32](6, -8, 8), a.SubScalar(1))
	assert.Equal(t, New3[int32](14, -14, 18), a.MulScalar(2))
	assert.Equal(t, New3[int32](3, -3, 4), a.DivScalar(2))

	assert.Panics(t, func() { a.Div(New3[int32](1, 0, 1)) })
}

func TestVectorUnsignedNegWraps(t *testing.T) {
	v := New2[uint8](1, 0)
	assert.Equal(t, New2[uint8](255, 0), v.Neg())
}

func TestVectorFloatRem(t *testing.T) {
	a := New2(5.5, -5.5)
	b := New2(2.0, 2.0)
	r := a.Rem(b)
	assert.InDelta(t, 1.5, r.X(), 1e-12)
	assert.InDelta(t, -1.5, r.Y(), 1e-12, "fmod keeps the dividend's sign")

	d := New2[float32](1, -1).Div(New2[float32](0, 0))
	assert.True(t, math.IsInf(float64(d.X()), 1))
	assert.True(t, math.IsInf(float64(d.Y()), -1))
}

func TestVectorHelpers(t *testing.T) {
	a := New3(1.0, 2.0, 3.0)
	b := New3(4.0, 5.0, 6.0)
	assert.Equal(t, 32.0, Dot(a, b))
	assert.Equal(t, 6.0, a.Sum())
	assert.Equal(t, New3(2.5, 3.5, 4.5), Lerp(a, b, 0.5))
	assert.Equal(t, "(1, 2, 3)", a.String())
}

func TestVectorAppendBinary(t *testing.T) {
	v := New3[uint16](0x0102, 0x0304, 0x0506)
	b, err := v.AppendBinary([]byte{0xFF})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0x02, 0x01, 0x04, 0x03, 0x06, 0x05}, b)

	f, err := New1[float32](1).AppendBinary(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, f)
}

func TestComparisonsAndMask(t *testing.T) {
	a := New4[int16](1, 5, 3, 3)
	b := New4[int16](2, 4, 3, 0)

	assert.Equal(t, MaskOf[N4](true, false, false, false), a.Less(b))
	assert.Equal(t, MaskOf[N4](true, false, true, false), a.LessEqual(b))
	assert.Equal(t, MaskOf[N4](false, true, false, true), a.Greater(b))
	assert.Equal(t, MaskOf[N4](false, true, true, true), a.GreaterEqual(b))
	assert.Equal(t, MaskOf[N4](false, false, true, false), a.Equal(b))
	assert.Equal(t, MaskOf[N4](true, true, false, true), a.NotEqual(b))

	m := a.Less(b)
	assert.True(t, m.Any())
	assert.False(t, m.All())
	assert.True(t, m.Or(m.Not()).All())
	assert.False(t, m.And(m.Not()).Any())
	assert.Equal(t, m.Not(), m.Xor(MaskOf[N4](true, true, true, true)))
	assert.Equal(t, 4, m.Len())
	assert.True(t, m.At(0))
	assert.Panics(t, func() { m.At(4) })
	assert.Equal(t, "(true, false, false, false)", m.String())

	assert.Equal(t, New4[int16](1, 4, 3, 0), Select(a.Less(b), a, b))
}

func TestMaskNotStaysWithinArity(t *testing.T) {
	m := MaskOf[N2](false, false).Not()
	assert.True(t, m.All())
	assert.Equal(t, MaskOf[N2](true, true), m)
}

func TestIntegerOperators(t *testing.T) {
	a := New4[uint8](0b1100, 0b1010, 0, 0xFF)
	b := New4[uint8](0b1010, 0b0110, 3, 1)

	assert.Equal(t, New4[uint8](0b1000, 0b0010, 0, 1), And(a, b))
	assert.Equal(t, New4[uint8](0b1110, 0b1110, 3, 0xFF), Or(a, b))
	assert.Equal(t, New4[uint8](0b0110, 0b1100, 3, 0xFE), Xor(a, b))
	assert.Equal(t, New4[uint8](1, 1, 0, 1), LogicalAnd(a, b))
	assert.Equal(t, New4[uint8](1, 1, 1, 1), LogicalOr(a, b))
	assert.Equal(t, New4[uint8](0, 0, 1, 0), LogicalNot(a))
	assert.Equal(t, New4[uint8](0xF3, 0xF5, 0xFF, 0), BitNot(a))
}

func TestShifts(t *testing.T) {
	s := New4[int32](-8, 1, 1, -1)
	n := New4[int32](1, 31, 32, -1)

	assert.Equal(t, New4[int32](-16, math.MinInt32, 0, 0), Shl(s, n), "counts >= width yield zero")
	assert.Equal(t, New4[int32](-4, 0, 0, -1), Shr(s, n), "arithmetic shift fills with the sign")

	u := New2[uint32](0x80000000, 5)
	assert.Equal(t, New2[uint32](0x40000000, 0), Shr(u, New2[uint32](1, 40)))
}

func TestConvertReshape(t *testing.T) {
	v := New2[int32](3, -4)
	assert.Equal(t, New4[float64](3, -4, 0, 0), Convert[float64, N4](v))

	w := New4[float32](1.9, 2.1, 3, 4)
	assert.Equal(t, New2[int8](1, 2), Convert[int8, N2](w))

	assert.Equal(t, New3[float32](1.9, 2.1, 3), Reshape[N3](w))
	assert.Equal(t, New4[int32](3, -4, 0, 0), Reshape[N4](v))
}

func TestDistinctArityTypes(t *testing.T) {
	var a Vec3[float32]
	var b Vector[float32, N3]
	assert.Equal(t, a, b, "alias and spelled-out form name the same type")
	assert.Equal(t, 3, a.Len())
}

func TestFromScalarsDispatch(t *testing.T) {
	tests := []struct {
		name       string
		n          int
		rows, cols int // dispatched shape
		build      func(vals []float32) (rows, cols int, err error)
	}{
		{"4 -> 2x2", 4, 2, 2, shapeOf[N2, N2]},
		{"6 -> 2x3", 6, 2, 3, shapeOf[N2, N3]},
		{"6 -> 3x2", 6, 3, 2, shapeOf[N3, N2]},
		{"8 -> 2x4", 8, 2, 4, shapeOf[N2, N4]},
		{"8 -> 4x2", 8, 4, 2, shapeOf[N4, N2]},
		{"9 -> 3x3", 9, 3, 3, shapeOf[N3, N3]},
		{"12 -> 3x4", 12, 3, 4, shapeOf[N3, N4]},
		{"12 -> 4x3", 12, 4, 3, shapeOf[N4, N3]},
		{"16 -> 4x4", 16, 4, 4, shapeOf[N4, N4]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vals := make([]float32, tt.n)
			for i := range vals {
				vals[i] = float32(i + 1)
			}
			rows, cols, err := tt.build(vals)
			require.NoError(t, err)
			assert.Equal(t, tt.rows, rows)
			assert.Equal(t, tt.cols, cols)
		})
	}
}

// shapeOf builds an R x C matrix and reports the extent of its non-zero block.
func shapeOf[R, C Arity](vals []float32) (rows, cols int, err error) {
	m, err := FromScalars[float32, R, C](vals...)
	if err != nil {
		return 0, 0, err
	}
	for i := range m.Rows() {
		for j := range m.Cols() {
			if m.At(i, j) != 0 {
				rows = max(rows, i+1)
				cols = max(cols, j+1)
			}
		}
	}
	return rows, cols, nil
}

func TestFromScalarsRowMajor(t *testing.T) {
	m, err := FromScalars[int32, N2, N3](1, 2, 3, 4, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, New3[int32](1, 2, 3), m.Row(0))
	assert.Equal(t, New3[int32](4, 5, 6), m.Row(1))

	// 4 scalars into a 3x3 fill the top-left 2x2 block.
	m3, err := FromScalars[int32, N3, N3](1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, New3[int32](1, 2, 0), m3.Row(0))
	assert.Equal(t, New3[int32](3, 4, 0), m3.Row(1))
	assert.Equal(t, New3[int32](0, 0, 0), m3.Row(2))
}

func TestFromScalarsErrors(t *testing.T) {
	_, err := FromScalars[float32, N4, N4](1, 2, 3)
	var serr *ShapeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 3, serr.Count)

	// 6 scalars with C=2 dispatch to 3x2, which does not fit 2 rows.
	_, err = FromScalars[float32, N2, N2](1, 2, 3, 4, 5, 6)
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "2x2")
}

func TestFromRows(t *testing.T) {
	m, err := FromRows[int8, N3](New2[int8](1, 2), New2[int8](3, 4))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.Equal(t, New2[int8](0, 0), m.Row(2))

	_, err = FromRows[int8, N1](New2[int8](1, 2), New2[int8](3, 4))
	assert.Error(t, err)
	_, err = FromRows[int8, N1, N2]()
	assert.Error(t, err)
}

func TestMatrixAccessAndElementwise(t *testing.T) {
	m := SplatMatrix[int32, N2, N2](3)
	m.Set(0, 1, 5)
	m.SetRow(1, New2[int32](-1, 4))
	assert.Equal(t, int32(5), m.At(0, 1))
	assert.Panics(t, func() { m.At(2, 0) })
	assert.Panics(t, func() { m.At(0, 2) })

	o := SplatMatrix[int32, N2, N2](2)
	sum := m.Add(o)
	assert.Equal(t, New2[int32](5, 7), sum.Row(0))
	assert.Equal(t, New2[int32](1, 3), m.Sub(o).Row(0))
	assert.Equal(t, New2[int32](-2, 8), m.Mul(o).Row(1))
	assert.Equal(t, New2[int32](1, 2), m.Div(o).Row(0))
	assert.Equal(t, New2[int32](-1, 0), m.Rem(o).Row(1))
	assert.Equal(t, New2[int32](1, -4), m.Neg().Row(1))
}

func TestMatrixIntegerOps(t *testing.T) {
	a, err := FromScalars[uint16, N2, N2](0b11, 0, 5, 1)
	require.NoError(t, err)
	b := SplatMatrix[uint16, N2, N2](1)

	assert.Equal(t, New2[uint16](1, 0), MatAnd(a, b).Row(0))
	assert.Equal(t, New2[uint16](0b11, 1), MatOr(a, b).Row(0))
	assert.Equal(t, New2[uint16](4, 0), MatXor(a, b).Row(1))
	assert.Equal(t, New2[uint16](1, 0), MatLogicalAnd(a, b).Row(0))
	assert.Equal(t, New2[uint16](1, 1), MatLogicalOr(a, b).Row(0))
	assert.Equal(t, New2[uint16](0, 1), MatLogicalNot(a).Row(0))
	assert.Equal(t, New2[uint16](0xFFFA, 0xFFFE), MatBitNot(a).Row(1))
}

func TestMatrixProducts(t *testing.T) {
	a, err := FromScalars[float64, N2, N3](1, 2, 3, 4, 5, 6)
	require.NoError(t, err)

	at := a.Transpose()
	assert.Equal(t, 3, at.Rows())
	assert.Equal(t, New2(2.0, 5.0), at.Row(1))

	p := MatMul(a, at)
	assert.Equal(t, New2(14.0, 32.0), p.Row(0))
	assert.Equal(t, New2(32.0, 77.0), p.Row(1))

	assert.Equal(t, New2(6.0, 15.0), a.MulVec(New3(1.0, 1.0, 1.0)))

	id := Identity[float64, N3]()
	assert.Equal(t, a, MatMul(a, id))
}

func TestConvertMatrix(t *testing.T) {
	m, err := FromScalars[float32, N3, N3](1, 2, 3, 4, 5, 6, 7, 8, 9)
	require.NoError(t, err)

	small := ConvertMatrix[int32, N2, N2](m)
	assert.Equal(t, New2[int32](1, 2), small.Row(0))
	assert.Equal(t, New2[int32](4, 5), small.Row(1))

	big := ConvertMatrix[float64, N4, N4](m)
	assert.Equal(t, New4(7.0, 8.0, 9.0, 0.0), big.Row(2))
	assert.Equal(t, New4(0.0, 0.0, 0.0, 0.0), big.Row(3))
	assert.Equal(t, "[(1, 2), (4, 5)]", small.String())
}
