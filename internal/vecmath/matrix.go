package vecmath

import (
	"fmt"
	"strings"
)

// Matrix is an R x C matrix stored as R row vectors of arity C.
type Matrix[T Number, R, C Arity] struct {
	rows [maxLanes]Vector[T, C]
}

// ShapeError is returned when a constructor's inputs do not describe a matrix that
// fits the target dimensions.
type ShapeError struct {
	Op         string
	Count      int // values or rows supplied
	Rows, Cols int // target dimensions
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("vecmath: %s: %d values do not fit a %dx%d matrix", e.Op, e.Count, e.Rows, e.Cols)
}

// SplatMatrix fills every element with s.
func SplatMatrix[T Number, R, C Arity](s T) Matrix[T, R, C] {
	var m Matrix[T, R, C]
	row := Splat[T, C](s)
	for i := range arity[R]() {
		m.rows[i] = row
	}
	return m
}

// FromRows builds a matrix from 1..R rows. Missing rows stay zero.
func FromRows[T Number, R, C Arity](rows ...Vector[T, C]) (Matrix[T, R, C], error) {
	var m Matrix[T, R, C]
	if len(rows) == 0 || len(rows) > arity[R]() {
		return m, &ShapeError{Op: "FromRows", Count: len(rows), Rows: arity[R](), Cols: arity[C]()}
	}
	copy(m.rows[:], rows)
	return m, nil
}

// scalarShape maps a flat scalar count to the matrix shape it denotes. The column
// count breaks ties between transposed shapes with the same element count.
func scalarShape(count, cols int) (r, c int, ok bool) {
	switch count {
	case 4:
		return 2, 2, true
	case 6:
		if cols == 3 {
			return 2, 3, true
		}
		return 3, 2, true
	case 8:
		if cols == 4 {
			return 2, 4, true
		}
		return 4, 2, true
	case 9:
		return 3, 3, true
	case 12:
		if cols == 4 {
			return 3, 4, true
		}
		return 4, 3, true
	case 16:
		return 4, 4, true
	}
	return 0, 0, false
}

// FromScalars builds a matrix from a row-major list of values. The count selects the
// shape (see scalarShape); elements outside that shape stay zero.
func FromScalars[T Number, R, C Arity](vals ...T) (Matrix[T, R, C], error) {
	var m Matrix[T, R, C]
	rows, cols := arity[R](), arity[C]()
	r, c, ok := scalarShape(len(vals), cols)
	if !ok || r > rows || c > cols {
		return m, &ShapeError{Op: "FromScalars", Count: len(vals), Rows: rows, Cols: cols}
	}
	for i := range r {
		for j := range c {
			m.rows[i].lanes[j] = vals[i*c+j]
		}
	}
	return m, nil
}

// Identity returns the N x N identity matrix.
func Identity[T Number, N Arity]() Matrix[T, N, N] {
	var m Matrix[T, N, N]
	for i := range arity[N]() {
		m.rows[i].lanes[i] = 1
	}
	return m
}

// Rows returns R.
func (m Matrix[T, R, C]) Rows() int { return arity[R]() }

// Cols returns C.
func (m Matrix[T, R, C]) Cols() int { return arity[C]() }

func (m Matrix[T, R, C]) checkRow(i int) int {
	n := arity[R]()
	if uint(i) >= uint(n) {
		panic(fmt.Sprintf("vecmath: row %d out of range [0, %d)", i, n))
	}
	return i
}

// Row returns a copy of row i.
func (m Matrix[T, R, C]) Row(i int) Vector[T, C] { return m.rows[m.checkRow(i)] }

// At returns the element at row i, column j.
func (m Matrix[T, R, C]) At(i, j int) T { return m.rows[m.checkRow(i)].At(j) }

// Set stores x at row i, column j.
func (m *Matrix[T, R, C]) Set(i, j int, x T) { m.rows[m.checkRow(i)].Set(j, x) }

// SetRow replaces row i.
func (m *Matrix[T, R, C]) SetRow(i int, v Vector[T, C]) { m.rows[m.checkRow(i)] = v }

func (m Matrix[T, R, C]) mapRows(f func(Vector[T, C]) Vector[T, C]) Matrix[T, R, C] {
	var r Matrix[T, R, C]
	for i := range arity[R]() {
		r.rows[i] = f(m.rows[i])
	}
	return r
}

func (m Matrix[T, R, C]) zipRows(o Matrix[T, R, C], f func(a, b Vector[T, C]) Vector[T, C]) Matrix[T, R, C] {
	var r Matrix[T, R, C]
	for i := range arity[R]() {
		r.rows[i] = f(m.rows[i], o.rows[i])
	}
	return r
}

// Add adds element-wise.
func (m Matrix[T, R, C]) Add(o Matrix[T, R, C]) Matrix[T, R, C] {
	return m.zipRows(o, Vector[T, C].Add)
}

// Sub subtracts element-wise.
func (m Matrix[T, R, C]) Sub(o Matrix[T, R, C]) Matrix[T, R, C] {
	return m.zipRows(o, Vector[T, C].Sub)
}

// Mul is the element-wise product; see MatMul for the matrix product.
func (m Matrix[T, R, C]) Mul(o Matrix[T, R, C]) Matrix[T, R, C] {
	return m.zipRows(o, Vector[T, C].Mul)
}

// Div divides element-wise. Integer division by zero panics.
func (m Matrix[T, R, C]) Div(o Matrix[T, R, C]) Matrix[T, R, C] {
	return m.zipRows(o, Vector[T, C].Div)
}

// Rem is the element-wise remainder, fmod for floats.
func (m Matrix[T, R, C]) Rem(o Matrix[T, R, C]) Matrix[T, R, C] {
	return m.zipRows(o, Vector[T, C].Rem)
}

// Neg negates every element.
func (m Matrix[T, R, C]) Neg() Matrix[T, R, C] {
	return m.mapRows(Vector[T, C].Neg)
}

// Transpose swaps rows and columns.
func (m Matrix[T, R, C]) Transpose() Matrix[T, C, R] {
	var t Matrix[T, C, R]
	for i := range arity[R]() {
		for j := range arity[C]() {
			t.rows[j].lanes[i] = m.rows[i].lanes[j]
		}
	}
	return t
}

// MulVec returns m * v.
func (m Matrix[T, R, C]) MulVec(v Vector[T, C]) Vector[T, R] {
	var r Vector[T, R]
	for i := range arity[R]() {
		r.lanes[i] = Dot(m.rows[i], v)
	}
	return r
}

// MatMul returns the matrix product a * b.
func MatMul[T Number, R, K, C Arity](a Matrix[T, R, K], b Matrix[T, K, C]) Matrix[T, R, C] {
	var r Matrix[T, R, C]
	bt := b.Transpose()
	for i := range arity[R]() {
		for j := range arity[C]() {
			r.rows[i].lanes[j] = Dot(a.rows[i], bt.rows[j])
		}
	}
	return r
}

// ConvertMatrix casts the overlapping block of m into an R x C matrix of T.
func ConvertMatrix[T Number, R, C Arity, U Number, R2, C2 Arity](m Matrix[U, R2, C2]) Matrix[T, R, C] {
	var r Matrix[T, R, C]
	for i := range min(arity[R](), arity[R2]()) {
		r.rows[i] = Convert[T, C](m.rows[i])
	}
	return r
}

// String formats the matrix row by row, e.g. "[(1, 2), (3, 4)]".
func (m Matrix[T, R, C]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range arity[R]() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(m.rows[i].String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Integer-only element-wise operators.

// MatAnd is the element-wise bitwise AND.
func MatAnd[T Integer, R, C Arity](a, b Matrix[T, R, C]) Matrix[T, R, C] {
	return a.zipRows(b, And[T, C])
}

// MatOr is the element-wise bitwise OR.
func MatOr[T Integer, R, C Arity](a, b Matrix[T, R, C]) Matrix[T, R, C] {
	return a.zipRows(b, Or[T, C])
}

// MatXor is the element-wise bitwise XOR.
func MatXor[T Integer, R, C Arity](a, b Matrix[T, R, C]) Matrix[T, R, C] {
	return a.zipRows(b, Xor[T, C])
}

// MatLogicalAnd yields 1 where both elements are non-zero, else 0.
func MatLogicalAnd[T Integer, R, C Arity](a, b Matrix[T, R, C]) Matrix[T, R, C] {
	return a.zipRows(b, LogicalAnd[T, C])
}

// MatLogicalOr yields 1 where either element is non-zero, else 0.
func MatLogicalOr[T Integer, R, C Arity](a, b Matrix[T, R, C]) Matrix[T, R, C] {
	return a.zipRows(b, LogicalOr[T, C])
}

// MatLogicalNot yields 1 for zero elements, else 0.
func MatLogicalNot[T Integer, R, C Arity](a Matrix[T, R, C]) Matrix[T, R, C] {
	return a.mapRows(LogicalNot[T, C])
}

// MatBitNot complements every element.
func MatBitNot[T Integer, R, C Arity](a Matrix[T, R, C]) Matrix[T, R, C] {
	return a.mapRows(BitNot[T, C])
}
