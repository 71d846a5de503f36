package bignum

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func scaledCInts(n int, scale int64) []*CInt {
	v := make([]*CInt, n)
	for i := 0; i < n; i++ {
		v[i] = NewCInt(int64(i+1)*scale, int64(-i)*scale)
	}
	return v
}

func closeEnough(t *testing.T, a, b *CInt, tolerance int64) {
	t.Helper()
	diffR := new(big.Int).Sub(a.R, b.R)
	diffI := new(big.Int).Sub(a.I, b.I)
	require.LessOrEqual(t, new(big.Int).Abs(diffR).Int64(), tolerance)
	require.LessOrEqual(t, new(big.Int).Abs(diffI).Int64(), tolerance)
}

func TestFFTRoundTrip(t *testing.T) {
	n := 8
	M := 4 * n
	rt := NewRootTable(M, 200)

	const scale = 1 << 20
	original := scaledCInts(n, scale)
	v := make([]*CInt, n)
	for i := range v {
		v[i] = original[i].Clone()
	}

	rt.FFT(v, n)
	rt.FFTInv(v, n)

	for i := range v {
		closeEnough(t, v[i], original[i], 2)
	}
}

func TestFFTInvLazyMatchesFFTInvTimesN(t *testing.T) {
	n := 8
	M := 4 * n
	rt := NewRootTable(M, 200)
	const scale = 1 << 20

	lazy := scaledCInts(n, scale)
	strict := scaledCInts(n, scale)

	rt.FFTInvLazy(lazy, n)
	rt.FFTInv(strict, n)

	logn := uint(3)
	for i := range lazy {
		scaledDown := lazy[i].Rsh(logn)
		closeEnough(t, scaledDown, strict[i], 2)
	}
}

func TestFFTSpecialRoundTrip(t *testing.T) {
	n := 4
	M := 4 * n // M/4 = n slots in RotGroup
	rt := NewRootTable(M, 200)

	const scale = 1 << 20
	original := scaledCInts(n, scale)
	coeffs := make([]*CInt, n)
	for i := range coeffs {
		coeffs[i] = original[i].Clone()
	}

	slots := rt.FFTSpecial(coeffs, n)
	back := rt.FFTSpecialInv(slots, n)

	for i := range back {
		closeEnough(t, back[i], original[i], scale/1000+2)
	}
}

func TestKsiAgreesWithInternalTable(t *testing.T) {
	M := 32
	rt := NewRootTable(M, 100)

	r, i := rt.Ksi(1)
	require.InDelta(t, 0.9807852804, r, 1e-6)
	require.InDelta(t, 0.1950903220, i, 1e-6)
}
