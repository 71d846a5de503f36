package ring

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func modFor(logQ int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(logQ))
}

func TestAddSubNeg(t *testing.T) {
	r := NewRing(8)
	mod := modFor(20)

	a := NewPoly(8)
	b := NewPoly(8)
	for i := 0; i < 8; i++ {
		a.Coeffs[i].SetInt64(int64(i))
		b.Coeffs[i].SetInt64(int64(8 - i))
	}

	sum := NewPoly(8)
	r.Add(a, b, mod, sum)
	for i := 0; i < 8; i++ {
		require.Equal(t, int64(8), sum.Coeffs[i].Int64())
	}

	diff := NewPoly(8)
	r.Sub(sum, b, mod, diff)
	require.True(t, equalPoly(diff, a))

	neg := NewPoly(8)
	r.Neg(a, mod, neg)
	for i := 0; i < 8; i++ {
		require.Equal(t, -a.Coeffs[i].Int64(), neg.Coeffs[i].Int64())
	}
}

func TestReduceCenters(t *testing.T) {
	r := NewRing(4)
	mod := big.NewInt(16)

	a := NewPoly(4)
	a.Coeffs[0].SetInt64(9) // should center to -7
	a.Coeffs[1].SetInt64(8) // should center to 8
	a.Coeffs[2].SetInt64(-100)
	a.Coeffs[3].SetInt64(0)

	out := NewPoly(4)
	r.Reduce(a, mod, out)
	require.Equal(t, int64(-7), out.Coeffs[0].Int64())
	require.Equal(t, int64(8), out.Coeffs[1].Int64())
	require.True(t, r.InRange(out, mod))
}

func TestMulCoeffsNegacyclic(t *testing.T) {
	r := NewRing(4)
	mod := modFor(30)

	// (X) * (X^3) = X^4 = -1 mod (X^4+1)
	a := NewPoly(4)
	a.Coeffs[1].SetInt64(1)
	b := NewPoly(4)
	b.Coeffs[3].SetInt64(1)

	out := NewPoly(4)
	r.MulCoeffs(a, b, mod, out)
	require.Equal(t, int64(-1), out.Coeffs[0].Int64())
	for i := 1; i < 4; i++ {
		require.Equal(t, int64(0), out.Coeffs[i].Int64())
	}
}

func TestMulByMonomialMatchesMulCoeffs(t *testing.T) {
	r := NewRing(8)
	mod := modFor(30)

	a := NewPoly(8)
	for i := range a.Coeffs {
		a.Coeffs[i].SetInt64(int64(i + 1))
	}

	for _, k := range []int{0, 1, 3, 8, 9, -1} {
		mono := NewPoly(8)
		kk := ((k % 16) + 16) % 16
		if kk >= 8 {
			mono.Coeffs[kk-8].SetInt64(-1)
		} else {
			mono.Coeffs[kk].SetInt64(1)
		}

		viaMul := NewPoly(8)
		r.MulCoeffs(a, mono, mod, viaMul)

		viaMonomial := NewPoly(8)
		r.MulByMonomial(a, k, mod, viaMonomial)

		require.True(t, equalPoly(viaMul, viaMonomial), "k=%d", k)
	}
}

func TestAutomorphismConjugateInvolution(t *testing.T) {
	r := NewRing(8)
	mod := modFor(30)
	N := 8

	a := NewPoly(N)
	for i := range a.Coeffs {
		a.Coeffs[i].SetInt64(int64(i - 3))
	}

	once := NewPoly(N)
	r.Automorphism(a, 2*N-1, mod, once)
	twice := NewPoly(N)
	r.Automorphism(once, 2*N-1, mod, twice)

	require.True(t, equalPoly(a, twice))
}

func TestDivRoundByRoundsToNearest(t *testing.T) {
	r := NewRing(4)
	mod := modFor(30)

	a := NewPoly(4)
	a.Coeffs[0].SetInt64(100)
	a.Coeffs[1].SetInt64(-100)
	a.Coeffs[2].SetInt64(3)
	a.Coeffs[3].SetInt64(-3)

	out := NewPoly(4)
	r.DivRoundBy(a, 4, mod, out)
	require.Equal(t, int64(6), out.Coeffs[0].Int64())
	require.Equal(t, int64(-6), out.Coeffs[1].Int64())
	require.Equal(t, int64(0), out.Coeffs[2].Int64())
	require.Equal(t, int64(0), out.Coeffs[3].Int64())
}

func equalPoly(a, b *Poly) bool {
	if len(a.Coeffs) != len(b.Coeffs) {
		return false
	}
	for i := range a.Coeffs {
		if a.Coeffs[i].Cmp(b.Coeffs[i]) != 0 {
			return false
		}
	}
	return true
}
