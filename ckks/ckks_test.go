package ckks

import (
	"math/big"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldsec/heaan/rlwe"
	"github.com/ldsec/heaan/utils/sampling"
)

func testSource(t *testing.T, seed string) sampling.Source {
	t.Helper()
	s, err := sampling.NewKeyedPRNG([]byte(seed))
	require.NoError(t, err)
	return s
}

func testScheme(t *testing.T, logN, logQ int, seed string) (*Scheme, *rlwe.Context, *rlwe.SecretKey) {
	t.Helper()
	params, err := rlwe.NewParams(logN, logQ, 3.2, 1<<(logN-1))
	require.NoError(t, err)
	ctx, err := rlwe.NewContext(params)
	require.NoError(t, err)

	source := testSource(t, seed)
	sk := rlwe.NewSecretKey(ctx, source)
	scheme := NewScheme(sk, ctx, source)
	return scheme, ctx, sk
}

func requireClose(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for i := range want {
		require.Less(t, cmplx.Abs(want[i]-got[i]), tol, "slot %d: want %v got %v", i, want[i], got[i])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "encode-decode-seed")
	enc := scheme.Encoder()

	slots := 4
	msg := make([]complex128, slots)
	for i := range msg {
		msg[i] = complex(float64(i)+0.25, float64(-i)*0.5)
	}

	logp := 30
	pt, err := enc.Encode(msg, slots, logp, 60)
	require.NoError(t, err)

	got, err := enc.Decode(pt, logp)
	require.NoError(t, err)
	requireClose(t, msg, got, 1e-4)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "enc-dec-seed")

	slots := 4
	msg := []complex128{1, 2, 3, 4}
	logp, logq := 30, 90
	ct, err := scheme.Encrypt(msg, slots, logp, logq)
	require.NoError(t, err)

	got, err := scheme.Decrypt(ct, logp)
	require.NoError(t, err)
	requireClose(t, msg, got, 1e-2)
}

func TestHomomorphicAdd(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "add-seed")

	slots := 4
	a := []complex128{1, 2, 3, 4}
	b := []complex128{0.5, -1, 2, 0}
	logp, logq := 30, 90

	ca, err := scheme.Encrypt(a, slots, logp, logq)
	require.NoError(t, err)
	cb, err := scheme.Encrypt(b, slots, logp, logq)
	require.NoError(t, err)

	sum, err := scheme.Add(ca, cb)
	require.NoError(t, err)

	got, err := scheme.Decrypt(sum, logp)
	require.NoError(t, err)

	want := make([]complex128, slots)
	for i := range want {
		want[i] = a[i] + b[i]
	}
	requireClose(t, want, got, 1e-2)
}

func TestHomomorphicMult(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 150, "mult-seed")
	scheme.AddMultKey()

	slots := 4
	a := []complex128{1, 2, 3, 4}
	b := []complex128{2, 0.5, 1, -1}
	logp, logq := 30, 150

	ca, err := scheme.Encrypt(a, slots, logp, logq)
	require.NoError(t, err)
	cb, err := scheme.Encrypt(b, slots, logp, logq)
	require.NoError(t, err)

	prod, err := scheme.Mult(ca, cb, logp)
	require.NoError(t, err)
	rescaled, err := scheme.ReScaleBy(prod, logp)
	require.NoError(t, err)

	got, err := scheme.Decrypt(rescaled, logp)
	require.NoError(t, err)

	want := make([]complex128, slots)
	for i := range want {
		want[i] = a[i] * b[i]
	}
	requireClose(t, want, got, 1e-1)
}

func TestLeftRotate(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "rotate-seed")
	scheme.AddLeftRotKeys()

	slots := 4
	msg := []complex128{1, 2, 3, 4}
	logp, logq := 30, 90

	ct, err := scheme.Encrypt(msg, slots, logp, logq)
	require.NoError(t, err)

	rotated, err := scheme.LeftRotate(ct, 3)
	require.NoError(t, err)

	got, err := scheme.Decrypt(rotated, logp)
	require.NoError(t, err)

	want := []complex128{msg[3], msg[0], msg[1], msg[2]}
	requireClose(t, want, got, 1e-2)
}

func TestHomomorphicSub(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "sub-seed")

	slots := 4
	a := []complex128{1, 2, 3, 4}
	b := []complex128{0.5, -1, 2, 0}
	logp, logq := 30, 90

	ca, err := scheme.Encrypt(a, slots, logp, logq)
	require.NoError(t, err)
	cb, err := scheme.Encrypt(b, slots, logp, logq)
	require.NoError(t, err)

	diff, err := scheme.Sub(ca, cb)
	require.NoError(t, err)

	got, err := scheme.Decrypt(diff, logp)
	require.NoError(t, err)

	want := make([]complex128, slots)
	for i := range want {
		want[i] = a[i] - b[i]
	}
	requireClose(t, want, got, 1e-2)
}

func TestImult(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "imult-seed")

	slots := 4
	msg := []complex128{1, 2, 3, 4}
	logp, logq := 30, 90

	ct, err := scheme.Encrypt(msg, slots, logp, logq)
	require.NoError(t, err)

	prod, err := scheme.Imult(ct, logp)
	require.NoError(t, err)
	rescaled, err := scheme.ReScaleBy(prod, logp)
	require.NoError(t, err)

	got, err := scheme.Decrypt(rescaled, logp)
	require.NoError(t, err)

	want := make([]complex128, slots)
	for i := range want {
		want[i] = complex(0, 1) * msg[i]
	}
	requireClose(t, want, got, 1e-2)
}

// TestMultByMonomialRoundTrip multiplies by X^k then by its inverse X^(2N-k)
// (X^(2N) = (X^N)^2 = (-1)^2 = 1 mod X^N+1), checking the round trip lands
// back on the original message rather than asserting MultByMonomial's raw
// coefficient permutation directly.
func TestMultByMonomialRoundTrip(t *testing.T) {
	scheme, ctx, _ := testScheme(t, 6, 90, "monomial-seed")

	slots := 4
	msg := []complex128{1, 2, 3, 4}
	logp, logq := 30, 90

	ct, err := scheme.Encrypt(msg, slots, logp, logq)
	require.NoError(t, err)

	k := 5
	shifted := scheme.MultByMonomial(ct, k)
	back := scheme.MultByMonomial(shifted, 2*ctx.N-k)

	got, err := scheme.Decrypt(back, logp)
	require.NoError(t, err)
	requireClose(t, msg, got, 1e-2)
}

func TestModDownBy(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "moddown-seed")

	slots := 4
	msg := []complex128{1, 2, 3, 4}
	logp, logq := 30, 90

	ct, err := scheme.Encrypt(msg, slots, logp, logq)
	require.NoError(t, err)

	down, err := scheme.ModDownBy(ct, 20)
	require.NoError(t, err)
	require.Equal(t, ct.Cbits-20, down.Cbits)

	got, err := scheme.Decrypt(down, logp)
	require.NoError(t, err)
	requireClose(t, msg, got, 1e-2)
}

func TestRightRotate(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "right-rotate-seed")
	scheme.AddRightRotKeys()

	slots := 4
	msg := []complex128{1, 2, 3, 4}
	logp, logq := 30, 90

	ct, err := scheme.Encrypt(msg, slots, logp, logq)
	require.NoError(t, err)

	rotated, err := scheme.RightRotate(ct, 1)
	require.NoError(t, err)

	got, err := scheme.Decrypt(rotated, logp)
	require.NoError(t, err)

	want := []complex128{msg[3], msg[0], msg[1], msg[2]}
	requireClose(t, want, got, 1e-2)
}

func TestLeftRightRotateInverse(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "rotate-inverse-seed")
	scheme.AddLeftRotKeys()
	scheme.AddRightRotKeys()

	slots := 4
	msg := []complex128{1, 2, 3, 4}
	logp, logq := 30, 90

	ct, err := scheme.Encrypt(msg, slots, logp, logq)
	require.NoError(t, err)

	left, err := scheme.LeftRotate(ct, 1)
	require.NoError(t, err)
	back, err := scheme.RightRotate(left, 1)
	require.NoError(t, err)

	got, err := scheme.Decrypt(back, logp)
	require.NoError(t, err)
	requireClose(t, msg, got, 1e-2)
}

func TestNormalizeAndEqual(t *testing.T) {
	scheme, ctx, _ := testScheme(t, 6, 90, "normalize-seed")

	slots := 4
	msg := []complex128{1, 2, 3, 4}
	logp, logq := 30, 90

	ct, err := scheme.Encrypt(msg, slots, logp, logq)
	require.NoError(t, err)

	scheme.NormalizeAndEqual(ct)

	half := new(big.Int).Rsh(ctx.Q, 1)
	negHalf := new(big.Int).Neg(half)
	for _, c := range ct.Ax.Coeffs {
		require.True(t, c.Cmp(negHalf) > 0)
		require.True(t, c.Cmp(half) <= 0)
	}
	for _, c := range ct.Bx.Coeffs {
		require.True(t, c.Cmp(negHalf) > 0)
		require.True(t, c.Cmp(half) <= 0)
	}

	got, err := scheme.Decrypt(ct, logp)
	require.NoError(t, err)
	requireClose(t, msg, got, 1e-2)
}

func TestConjugate(t *testing.T) {
	scheme, _, _ := testScheme(t, 6, 90, "conj-seed")
	scheme.AddConjKey()

	slots := 4
	msg := []complex128{complex(1, 2), complex(3, -4), complex(-1, 1), complex(0, 0)}
	logp, logq := 30, 90

	ct, err := scheme.Encrypt(msg, slots, logp, logq)
	require.NoError(t, err)

	conj, err := scheme.Conjugate(ct)
	require.NoError(t, err)

	got, err := scheme.Decrypt(conj, logp)
	require.NoError(t, err)

	want := make([]complex128, slots)
	for i := range want {
		want[i] = cmplx.Conj(msg[i])
	}
	requireClose(t, want, got, 1e-2)
}
