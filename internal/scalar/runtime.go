package scalar

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// Runtime supplies the elementary float functions. All methods work in float64;
// float32 callers round the result back.
type Runtime interface {
	Name() string

	Ceil(x float64) float64
	Floor(x float64) float64
	Round(x float64) float64
	Trunc(x float64) float64
	Abs(x float64) float64
	Sqrt(x float64) float64

	Sin(x float64) float64
	Cos(x float64) float64
	Tan(x float64) float64
	Asin(x float64) float64
	Acos(x float64) float64
	Atan(x float64) float64
	Sinh(x float64) float64
	Cosh(x float64) float64
	Tanh(x float64) float64

	Log(x float64) float64
	Log2(x float64) float64
	Log10(x float64) float64
	Exp(x float64) float64
	Exp2(x float64) float64

	Min(a, b float64) float64
	Max(a, b float64) float64
	Pow(a, b float64) float64
	Mod(a, b float64) float64
	Remainder(a, b float64) float64
	Atan2(y, x float64) float64

	Frexp(x float64) (frac float64, exp int)
	Modf(x float64) (whole, frac float64)
	FMA(a, b, c float64) float64
	FMA32(a, b, c float32) float32
}

var active atomic.Pointer[Runtime]

func init() {
	Use(Host{})
}

// Use installs rt as the active runtime and returns the previous one.
func Use(rt Runtime) Runtime {
	if rt == nil {
		panic("scalar: nil runtime")
	}
	prev := active.Swap(&rt)
	if prev == nil {
		return nil
	}
	return *prev
}

// Active returns the runtime currently serving float intrinsics.
func Active() Runtime {
	return *active.Load()
}

// Host is the runtime linked against Go's math package.
type Host struct{}

// Name implements Runtime.
func (Host) Name() string { return "host" }

// Ceil rounds up.
func (Host) Ceil(x float64) float64 { return math.Ceil(x) }

// Floor rounds down.
func (Host) Floor(x float64) float64 { return math.Floor(x) }

// Round rounds half away from zero.
func (Host) Round(x float64) float64 { return math.Round(x) }

// Trunc rounds toward zero.
func (Host) Trunc(x float64) float64 { return math.Trunc(x) }

// Abs returns |x|.
func (Host) Abs(x float64) float64 { return math.Abs(x) }

// Sqrt returns the square root.
func (Host) Sqrt(x float64) float64 { return math.Sqrt(x) }

// Sin returns the sine.
func (Host) Sin(x float64) float64 { return math.Sin(x) }

// Cos returns the cosine.
func (Host) Cos(x float64) float64 { return math.Cos(x) }

// Tan returns the tangent.
func (Host) Tan(x float64) float64 { return math.Tan(x) }

// Asin returns the arcsine.
func (Host) Asin(x float64) float64 { return math.Asin(x) }

// Acos returns the arccosine.
func (Host) Acos(x float64) float64 { return math.Acos(x) }

// Atan returns the arctangent.
func (Host) Atan(x float64) float64 { return math.Atan(x) }

// Sinh returns the hyperbolic sine.
func (Host) Sinh(x float64) float64 { return math.Sinh(x) }

// Cosh returns the hyperbolic cosine.
func (Host) Cosh(x float64) float64 { return math.Cosh(x) }

// Tanh returns the hyperbolic tangent.
func (Host) Tanh(x float64) float64 { return math.Tanh(x) }

// Log returns the natural logarithm.
func (Host) Log(x float64) float64 { return math.Log(x) }

// Log2 returns the base-2 logarithm.
func (Host) Log2(x float64) float64 { return math.Log2(x) }

// Log10 returns the base-10 logarithm.
func (Host) Log10(x float64) float64 { return math.Log10(x) }

// Exp returns e**x.
func (Host) Exp(x float64) float64 { return math.Exp(x) }

// Exp2 returns 2**x.
func (Host) Exp2(x float64) float64 { return math.Exp2(x) }

// Min follows fmin: a NaN operand is ignored in favour of the other one.
func (Host) Min(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	}
	return math.Min(a, b)
}

// Max follows fmax: a NaN operand is ignored in favour of the other one.
func (Host) Max(a, b float64) float64 {
	switch {
	case math.IsNaN(a):
		return b
	case math.IsNaN(b):
		return a
	}
	return math.Max(a, b)
}

// Pow returns a**b.
func (Host) Pow(a, b float64) float64 { return math.Pow(a, b) }

// Mod returns the remainder of a/b truncated toward zero.
func (Host) Mod(a, b float64) float64 { return math.Mod(a, b) }

// Remainder returns the IEEE remainder of a/b.
func (Host) Remainder(a, b float64) float64 { return math.Remainder(a, b) }

// Atan2 returns the arctangent of y/x using the signs of both.
func (Host) Atan2(y, x float64) float64 { return math.Atan2(y, x) }

// Frexp splits x into a fraction and a power of two.
func (Host) Frexp(x float64) (float64, int) { return math.Frexp(x) }

// Modf returns the integral and fractional parts of x.
func (Host) Modf(x float64) (float64, float64) { return math.Modf(x) }

// FMA is fused: a*b+c with a single rounding.
func (Host) FMA(a, b, c float64) float64 { return math.FMA(a, b, c) }

// FMA32 is FMA for float32; the float32 product is exact in float64.
func (Host) FMA32(a, b, c float32) float32 {
	return float32(math.FMA(float64(a), float64(b), float64(c)))
}

// Symbols are the external entry points a freestanding runtime links against.
// Min, Max and FMA are not symbols: the freestanding prelude defines them inline.
type Symbols struct {
	Ceil, Floor, Round, Trunc, Abs, Sqrt func(float64) float64
	Sin, Cos, Tan, Asin, Acos, Atan      func(float64) float64
	Sinh, Cosh, Tanh                     func(float64) float64
	Log, Log2, Log10, Exp, Exp2          func(float64) float64
	Pow, Mod, Remainder, Atan2           func(float64, float64) float64
	Frexp                                func(float64) (float64, int)
	Modf                                 func(float64) (float64, float64)
}

// SymbolError lists entry points a freestanding runtime could not resolve.
type SymbolError struct {
	Missing []string
}

// Error implements the error interface.
func (e *SymbolError) Error() string {
	return fmt.Sprintf("scalar: unresolved runtime symbols: %s", strings.Join(e.Missing, ", "))
}

// Freestanding is a runtime built from externally supplied symbols.
type Freestanding struct {
	name string
	sym  Symbols
}

// NewFreestanding resolves every symbol up front, the way a linker would, and fails
// with a *SymbolError naming each missing one.
func NewFreestanding(name string, sym Symbols) (*Freestanding, error) {
	unary := []struct {
		name string
		fn   func(float64) float64
	}{
		{"ceil", sym.Ceil}, {"floor", sym.Floor}, {"round", sym.Round}, {"trunc", sym.Trunc},
		{"abs", sym.Abs}, {"sqrt", sym.Sqrt}, {"sin", sym.Sin}, {"cos", sym.Cos},
		{"tan", sym.Tan}, {"asin", sym.Asin}, {"acos", sym.Acos}, {"atan", sym.Atan},
		{"sinh", sym.Sinh}, {"cosh", sym.Cosh}, {"tanh", sym.Tanh}, {"log", sym.Log},
		{"log2", sym.Log2}, {"log10", sym.Log10}, {"exp", sym.Exp}, {"exp2", sym.Exp2},
	}
	binary := []struct {
		name string
		fn   func(float64, float64) float64
	}{
		{"pow", sym.Pow}, {"fmod", sym.Mod}, {"remainder", sym.Remainder}, {"atan2", sym.Atan2},
	}

	var missing []string
	for _, s := range unary {
		if s.fn == nil {
			missing = append(missing, s.name)
		}
	}
	for _, s := range binary {
		if s.fn == nil {
			missing = append(missing, s.name)
		}
	}
	if sym.Frexp == nil {
		missing = append(missing, "frexp")
	}
	if sym.Modf == nil {
		missing = append(missing, "modf")
	}
	if len(missing) > 0 {
		return nil, &SymbolError{Missing: missing}
	}
	return &Freestanding{name: name, sym: sym}, nil
}

// HostSymbols returns a symbol table backed by Go's math package. It lets tests and
// tools assemble a freestanding runtime without a foreign math library.
func HostSymbols() Symbols {
	return Symbols{
		Ceil: math.Ceil, Floor: math.Floor, Round: math.Round, Trunc: math.Trunc,
		Abs: math.Abs, Sqrt: math.Sqrt,
		Sin: math.Sin, Cos: math.Cos, Tan: math.Tan,
		Asin: math.Asin, Acos: math.Acos, Atan: math.Atan,
		Sinh: math.Sinh, Cosh: math.Cosh, Tanh: math.Tanh,
		Log: math.Log, Log2: math.Log2, Log10: math.Log10, Exp: math.Exp, Exp2: math.Exp2,
		Pow: math.Pow, Mod: math.Mod, Remainder: math.Remainder, Atan2: math.Atan2,
		Frexp: math.Frexp, Modf: math.Modf,
	}
}

// Name implements Runtime.
func (f *Freestanding) Name() string { return f.name }

// Ceil calls the resolved ceil symbol.
func (f *Freestanding) Ceil(x float64) float64 { return f.sym.Ceil(x) }

// Floor calls the resolved floor symbol.
func (f *Freestanding) Floor(x float64) float64 { return f.sym.Floor(x) }

// Round calls the resolved round symbol.
func (f *Freestanding) Round(x float64) float64 { return f.sym.Round(x) }

// Trunc calls the resolved trunc symbol.
func (f *Freestanding) Trunc(x float64) float64 { return f.sym.Trunc(x) }

// Abs calls the resolved abs symbol.
func (f *Freestanding) Abs(x float64) float64 { return f.sym.Abs(x) }

// Sqrt calls the resolved sqrt symbol.
func (f *Freestanding) Sqrt(x float64) float64 { return f.sym.Sqrt(x) }

// Sin calls the resolved sin symbol.
func (f *Freestanding) Sin(x float64) float64 { return f.sym.Sin(x) }

// Cos calls the resolved cos symbol.
func (f *Freestanding) Cos(x float64) float64 { return f.sym.Cos(x) }

// Tan calls the resolved tan symbol.
func (f *Freestanding) Tan(x float64) float64 { return f.sym.Tan(x) }

// Asin calls the resolved asin symbol.
func (f *Freestanding) Asin(x float64) float64 { return f.sym.Asin(x) }

// Acos calls the resolved acos symbol.
func (f *Freestanding) Acos(x float64) float64 { return f.sym.Acos(x) }

// Atan calls the resolved atan symbol.
func (f *Freestanding) Atan(x float64) float64 { return f.sym.Atan(x) }

// Sinh calls the resolved sinh symbol.
func (f *Freestanding) Sinh(x float64) float64 { return f.sym.Sinh(x) }

// Cosh calls the resolved cosh symbol.
func (f *Freestanding) Cosh(x float64) float64 { return f.sym.Cosh(x) }

// Tanh calls the resolved tanh symbol.
func (f *Freestanding) Tanh(x float64) float64 { return f.sym.Tanh(x) }

// Log calls the resolved log symbol.
func (f *Freestanding) Log(x float64) float64 { return f.sym.Log(x) }

// Log2 calls the resolved log2 symbol.
func (f *Freestanding) Log2(x float64) float64 { return f.sym.Log2(x) }

// Log10 calls the resolved log10 symbol.
func (f *Freestanding) Log10(x float64) float64 { return f.sym.Log10(x) }

// Exp calls the resolved exp symbol.
func (f *Freestanding) Exp(x float64) float64 { return f.sym.Exp(x) }

// Exp2 calls the resolved exp2 symbol.
func (f *Freestanding) Exp2(x float64) float64 { return f.sym.Exp2(x) }

// Min is a plain compare; a NaN in b is returned as is.
func (f *Freestanding) Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max is a plain compare; a NaN in b is returned as is.
func (f *Freestanding) Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Pow calls the resolved pow symbol.
func (f *Freestanding) Pow(a, b float64) float64 { return f.sym.Pow(a, b) }

// Mod calls the resolved fmod symbol.
func (f *Freestanding) Mod(a, b float64) float64 { return f.sym.Mod(a, b) }

// Remainder calls the resolved remainder symbol.
func (f *Freestanding) Remainder(a, b float64) float64 { return f.sym.Remainder(a, b) }

// Atan2 calls the resolved atan2 symbol.
func (f *Freestanding) Atan2(y, x float64) float64 { return f.sym.Atan2(y, x) }

// Frexp calls the resolved frexp symbol.
func (f *Freestanding) Frexp(x float64) (float64, int) { return f.sym.Frexp(x) }

// Modf calls the resolved modf symbol.
func (f *Freestanding) Modf(x float64) (float64, float64) { return f.sym.Modf(x) }

// FMA is unfused: the product is rounded before the add.
func (f *Freestanding) FMA(a, b, c float64) float64 {
	return float64(a*b) + c
}

// FMA32 is unfused in float32: the product is rounded to float32 before the add.
func (f *Freestanding) FMA32(a, b, c float32) float32 {
	return float32(a*b) + c
}
