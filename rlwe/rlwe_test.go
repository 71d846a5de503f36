package rlwe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldsec/heaan/utils/sampling"
)

func TestParamsValidate(t *testing.T) {
	_, err := NewParams(3, 100, 3.2, 8) // logN < 4
	require.ErrorIs(t, err, ErrParameterInvalid)

	_, err = NewParams(10, 0, 3.2, 8) // logQ <= 0
	require.ErrorIs(t, err, ErrParameterInvalid)

	_, err = NewParams(10, 100, 0, 8) // sigma <= 0
	require.ErrorIs(t, err, ErrParameterInvalid)

	_, err = NewParams(10, 100, 3.2, 0) // h < 1
	require.ErrorIs(t, err, ErrParameterInvalid)

	p, err := NewParams(10, 100, 3.2, 8)
	require.NoError(t, err)
	require.Equal(t, 1<<10, p.N())
	require.Equal(t, 2<<10, p.M())
}

func TestParamsEquals(t *testing.T) {
	p1, err := NewParams(10, 100, 3.2, 8)
	require.NoError(t, err)
	p2, err := NewParams(10, 100, 3.2, 8)
	require.NoError(t, err)
	require.True(t, p1.Equals(p2))

	p3, err := NewParams(10, 100, 3.2, 9)
	require.NoError(t, err)
	require.False(t, p1.Equals(p3))
}

func TestSuggestLogN(t *testing.T) {
	logN, err := SuggestLogN(128, 300)
	require.NoError(t, err)
	require.GreaterOrEqual(t, logN, 11)

	_, err = SuggestLogN(42, 300)
	require.ErrorIs(t, err, ErrParameterInvalid)
}

func TestNewContext(t *testing.T) {
	params, err := NewParams(6, 60, 3.2, 8)
	require.NoError(t, err)

	ctx, err := NewContext(params)
	require.NoError(t, err)
	require.Equal(t, 1<<6, ctx.N)
	require.Equal(t, 2<<6, ctx.M)
	require.Equal(t, ctx.Q.BitLen()-1, 60)
	require.Equal(t, 0, ctx.Q.Cmp(ctx.P))
}

func TestKeyStoreMissingKeyError(t *testing.T) {
	ks := NewKeyStore()
	require.False(t, ks.Has(KeyTag{Kind: KeyMult}))

	_, err := ks.Get(KeyTag{Kind: KeyMult})
	require.ErrorIs(t, err, ErrMissingKey)

	ek := &EvaluationKey{}
	ks.Set(KeyTag{Kind: KeyMult}, ek)
	require.True(t, ks.Has(KeyTag{Kind: KeyMult}))

	got, err := ks.Get(KeyTag{Kind: KeyMult})
	require.NoError(t, err)
	require.Same(t, ek, got)
}

func TestSecretKeyHammingWeight(t *testing.T) {
	params, err := NewParams(6, 60, 3.2, 12)
	require.NoError(t, err)
	ctx, err := NewContext(params)
	require.NoError(t, err)

	source, err := sampling.NewKeyedPRNG([]byte("test-seed-0000000000000000000000"))
	require.NoError(t, err)

	sk := NewSecretKey(ctx, source)
	nonZero := 0
	for _, c := range sk.Sx.Coeffs {
		if c.Sign() != 0 {
			nonZero++
			require.Contains(t, []int64{1, -1}, c.Int64())
		}
	}
	require.Equal(t, params.H, nonZero)
}

func TestKeySwitcherOutputLength(t *testing.T) {
	params, err := NewParams(6, 60, 3.2, 8)
	require.NoError(t, err)
	ctx, err := NewContext(params)
	require.NoError(t, err)

	source, err := sampling.NewKeyedPRNG([]byte("test-seed-0000000000000000000001"))
	require.NoError(t, err)

	sk := NewSecretKey(ctx, source)
	ks := NewKeySwitcher(ctx)

	// Generate a key switching sk back to itself: sPrime = sk.
	ek := ks.GenEvaluationKey(sk, sk.Sx, source)

	ax, bx := ks.Switch(sk.Sx, ek)
	require.Equal(t, ctx.N, ax.N())
	require.Equal(t, ctx.N, bx.N())
}
