package sampling

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, seed string) *KeyedPRNG {
	t.Helper()
	s, err := NewKeyedPRNG([]byte(seed))
	require.NoError(t, err)
	return s
}

func TestKeyedPRNGDeterministic(t *testing.T) {
	s1, err := NewKeyedPRNG([]byte("same-seed-aaaaaaaaaaaaaaaaaaaaaa"))
	require.NoError(t, err)
	s2, err := NewKeyedPRNG([]byte("same-seed-aaaaaaaaaaaaaaaaaaaaaa"))
	require.NoError(t, err)

	buf1 := make([]byte, 64)
	buf2 := make([]byte, 64)
	_, err = s1.Read(buf1)
	require.NoError(t, err)
	_, err = s2.Read(buf2)
	require.NoError(t, err)
	require.Equal(t, buf1, buf2)
}

func TestKeyedPRNGReset(t *testing.T) {
	s := newTestSource(t, "reset-seed")

	first := make([]byte, 32)
	_, err := s.Read(first)
	require.NoError(t, err)

	s.Reset()
	second := make([]byte, 32)
	_, err = s.Read(second)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestDeriveThreadSourceDiffersByIndex(t *testing.T) {
	master := newTestSource(t, "master-seed")

	t0, err := master.DeriveThreadSource(0)
	require.NoError(t, err)
	t1, err := master.DeriveThreadSource(1)
	require.NoError(t, err)

	b0 := make([]byte, 32)
	b1 := make([]byte, 32)
	_, err = t0.Read(b0)
	require.NoError(t, err)
	_, err = t1.Read(b1)
	require.NoError(t, err)

	require.NotEqual(t, b0, b1)
}

func TestSampleHWTHammingWeight(t *testing.T) {
	s := newTestSource(t, "hwt-seed")
	n, h := 64, 20

	coeffs := SampleHWT(s, n, h)
	require.Len(t, coeffs, n)

	nonZero := 0
	for _, c := range coeffs {
		if c.Sign() != 0 {
			nonZero++
			abs := new(big.Int).Abs(c)
			require.Equal(t, int64(1), abs.Int64())
		}
	}
	require.Equal(t, h, nonZero)
}

func TestSampleZORange(t *testing.T) {
	s := newTestSource(t, "zo-seed")
	coeffs := SampleZO(s, 256)
	for _, c := range coeffs {
		v := c.Int64()
		require.Contains(t, []int64{-1, 0, 1}, v)
	}
}

func TestSampleBinaryFixedWeight(t *testing.T) {
	s := newTestSource(t, "binary-seed")
	n, h := 32, 10
	coeffs := SampleBinary(s, n, h)

	ones := 0
	for _, c := range coeffs {
		v := c.Int64()
		require.Contains(t, []int64{0, 1}, v)
		if v == 1 {
			ones++
		}
	}
	require.Equal(t, h, ones)
}

func TestSampleUniform2Bounds(t *testing.T) {
	s := newTestSource(t, "uniform2-seed")
	logB := 10
	bound := new(big.Int).Lsh(big.NewInt(1), uint(logB))

	coeffs := SampleUniform2(s, 100, logB)
	for _, c := range coeffs {
		require.True(t, c.Sign() >= 0)
		require.True(t, c.Cmp(bound) < 0)
	}
}

func TestSampleUniformCentered(t *testing.T) {
	s := newTestSource(t, "uniform-seed")
	mod := big.NewInt(1000)
	half := new(big.Int).Rsh(mod, 1)
	negHalf := new(big.Int).Neg(half)

	coeffs := SampleUniform(s, 200, mod)
	for _, c := range coeffs {
		require.True(t, c.Cmp(negHalf) > 0)
		require.True(t, c.Cmp(half) <= 0)
	}
}

func TestSampleGaussPolyLength(t *testing.T) {
	s := newTestSource(t, "gauss-seed")
	coeffs := SampleGaussPoly(s, 50, 3.2)
	require.Len(t, coeffs, 50)
}
