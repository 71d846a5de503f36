package bignum

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPiMatchesMathPi(t *testing.T) {
	pi := Pi(128)
	got, _ := pi.Float64()
	require.InDelta(t, math.Pi, got, 1e-12)
}

func TestCosSinPythagorean(t *testing.T) {
	x := NewFloat(0.37, 128)
	c := Cos(x)
	s := Sin(x)

	cc := new(big.Float).SetPrec(128).Mul(c, c)
	ss := new(big.Float).SetPrec(128).Mul(s, s)
	sum := new(big.Float).SetPrec(128).Add(cc, ss)

	got, _ := sum.Float64()
	require.InDelta(t, 1.0, got, 1e-12)
}

func TestExpLogInverse(t *testing.T) {
	x := NewFloat(2.5, 128)
	y := Exp(x)
	back := Log(y)

	got, _ := back.Float64()
	require.InDelta(t, 2.5, got, 1e-9)
}

func TestPowMatchesRepeatedMultiplication(t *testing.T) {
	base := NewFloat(1.001, 128)
	exp := NewFloat(10, 128)

	got := Pow(base, exp)
	gotF, _ := got.Float64()
	require.InDelta(t, math.Pow(1.001, 10), gotF, 1e-9)
}
