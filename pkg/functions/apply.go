package functions

import (
	"fmt"
	"math"

	"github.com/acarlucci/gocalc/pkg/types"
)

// AngleMode selects how trigonometric functions interpret angles.
type AngleMode uint8

const (
	// Radians is the default: angles pass through unchanged.
	Radians AngleMode = iota
	// Degrees converts the input of forward trigonometric functions and
	// the output of inverse ones. All other functions ignore the mode.
	Degrees
)

// String returns "rad" or "deg".
func (m AngleMode) String() string {
	if m == Degrees {
		return "deg"
	}
	return "rad"
}

func (m AngleMode) toRadians(x float64) float64 {
	if m == Degrees {
		return x * math.Pi / 180
	}
	return x
}

func (m AngleMode) fromRadians(x float64) float64 {
	if m == Degrees {
		return x * 180 / math.Pi
	}
	return x
}

// Apply evaluates the named function at x. Arguments outside the
// function's real domain yield an error with code [types.ErrDomain], a
// pole yields [types.ErrDivisionByZero], and a finite argument whose
// result exceeds the float64 range yields [types.ErrOverflow]. Names
// outside the table are rejected with [types.ErrUnsupportedConstruct].
func Apply(name string, x float64, mode AngleMode) (float64, error) {
	fn, ok := table[name]
	if !ok {
		return 0, types.NewError(types.ErrUnsupportedConstruct,
			fmt.Sprintf("unknown function: %s", name), -1)
	}
	result, err := fn(x, mode)
	if err != nil {
		return 0, err
	}
	if math.IsInf(result, 0) {
		return 0, types.NewError(types.ErrOverflow,
			fmt.Sprintf("number out of range: %s(%v)", name, x), -1)
	}
	if math.IsNaN(result) {
		return 0, domainErr(name, x)
	}
	return result, nil
}

func domainErr(name string, x float64) error {
	return types.NewError(types.ErrDomain,
		fmt.Sprintf("out of domain: %s(%v)", name, x), -1)
}

func poleErr(name string, x float64) error {
	return types.NewError(types.ErrDivisionByZero,
		fmt.Sprintf("division by zero: %s(%v)", name, x), -1)
}

// --- Forward trigonometry ---

func fnSin(x float64, mode AngleMode) (float64, error) {
	return math.Sin(mode.toRadians(x)), nil
}

func fnCos(x float64, mode AngleMode) (float64, error) {
	return math.Cos(mode.toRadians(x)), nil
}

func fnTan(x float64, mode AngleMode) (float64, error) {
	return math.Tan(mode.toRadians(x)), nil
}

func fnSec(x float64, mode AngleMode) (float64, error) {
	c := math.Cos(mode.toRadians(x))
	if c == 0 {
		return 0, poleErr("sec", x)
	}
	return 1 / c, nil
}

func fnCsc(x float64, mode AngleMode) (float64, error) {
	s := math.Sin(mode.toRadians(x))
	if s == 0 {
		return 0, poleErr("csc", x)
	}
	return 1 / s, nil
}

func fnCot(x float64, mode AngleMode) (float64, error) {
	r := mode.toRadians(x)
	s := math.Sin(r)
	if s == 0 {
		return 0, poleErr("cot", x)
	}
	return math.Cos(r) / s, nil
}

// --- Inverse trigonometry ---

func fnAsin(x float64, mode AngleMode) (float64, error) {
	if x < -1 || x > 1 {
		return 0, domainErr("asin", x)
	}
	return mode.fromRadians(math.Asin(x)), nil
}

func fnAcos(x float64, mode AngleMode) (float64, error) {
	if x < -1 || x > 1 {
		return 0, domainErr("acos", x)
	}
	return mode.fromRadians(math.Acos(x)), nil
}

func fnAtan(x float64, mode AngleMode) (float64, error) {
	return mode.fromRadians(math.Atan(x)), nil
}

// --- Hyperbolics ---

func fnSinh(x float64, _ AngleMode) (float64, error) {
	return math.Sinh(x), nil
}

func fnCosh(x float64, _ AngleMode) (float64, error) {
	return math.Cosh(x), nil
}

func fnTanh(x float64, _ AngleMode) (float64, error) {
	return math.Tanh(x), nil
}

func fnAsinh(x float64, _ AngleMode) (float64, error) {
	return math.Asinh(x), nil
}

func fnAcosh(x float64, _ AngleMode) (float64, error) {
	if x < 1 {
		return 0, domainErr("acosh", x)
	}
	return math.Acosh(x), nil
}

func fnAtanh(x float64, _ AngleMode) (float64, error) {
	if x <= -1 || x >= 1 {
		return 0, domainErr("atanh", x)
	}
	return math.Atanh(x), nil
}

// --- Logarithms and powers ---

// fnLog is the base-10 logarithm; the natural logarithm is spelled "ln".
func fnLog(x float64, _ AngleMode) (float64, error) {
	if x <= 0 {
		return 0, domainErr("log", x)
	}
	return math.Log10(x), nil
}

func fnLn(x float64, _ AngleMode) (float64, error) {
	if x <= 0 {
		return 0, domainErr("ln", x)
	}
	return math.Log(x), nil
}

func fnExp(x float64, _ AngleMode) (float64, error) {
	return math.Exp(x), nil
}

func fnSqrt(x float64, _ AngleMode) (float64, error) {
	if x < 0 {
		return 0, domainErr("sqrt", x)
	}
	return math.Sqrt(x), nil
}

// --- Rounding and magnitude ---

func fnAbs(x float64, _ AngleMode) (float64, error) {
	return math.Abs(x), nil
}

func fnCeil(x float64, _ AngleMode) (float64, error) {
	return math.Ceil(x), nil
}

func fnFloor(x float64, _ AngleMode) (float64, error) {
	return math.Floor(x), nil
}
