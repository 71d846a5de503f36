// Package bignum provides the arbitrary-precision complex fixed-point
// arithmetic (CInt, spec.md §3) and the root-of-unity transforms (NumUtils,
// spec.md §4.1) that the Encoder uses to implement the canonical embedding.
package bignum

import (
	"math/big"

	"github.com/ALTree/bigfloat"
)

// NewFloat builds a *big.Float from a float64 at the given precision,
// matching the constructor shape the rest of the package expects.
func NewFloat(x float64, prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

// Pi returns pi at the given precision.
func Pi(prec uint) *big.Float {
	return bigfloat.Pi(prec)
}

// Cos returns cos(x) at x's precision.
func Cos(x *big.Float) *big.Float {
	return bigfloat.Cos(x)
}

// Sin returns sin(x) at x's precision.
func Sin(x *big.Float) *big.Float {
	return bigfloat.Sin(x)
}

// Exp returns e^x at x's precision.
func Exp(x *big.Float) *big.Float {
	return bigfloat.Exp(x)
}

// Log returns ln(x) at x's precision.
func Log(x *big.Float) *big.Float {
	return bigfloat.Log(x)
}

// Pow returns x^y at x's precision.
func Pow(x, y *big.Float) *big.Float {
	return bigfloat.Pow(x, y)
}
