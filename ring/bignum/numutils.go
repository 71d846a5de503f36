package bignum

import (
	"math/big"
	"math/bits"

	"github.com/ldsec/heaan/utils"
)

// RootTable holds the precomputed primitive 2M-th roots of unity at high
// precision (spec.md §4.1 NumUtils) and the power-of-five rotation group
// used by the special FFT. It is built once per Context and never mutated.
type RootTable struct {
	M        int
	Prec     uint
	ksiReal  []*big.Float // length M+1, ksiReal[k] = cos(2*pi*k/M)
	ksiImag  []*big.Float // length M+1, ksiImag[k] = sin(2*pi*k/M)
	RotGroup []int        // length N/2 = M/4, RotGroup[j] = 5^j mod M
}

// NewRootTable precomputes the root-of-unity table for ring degree N = M/2
// at the given bit precision. Precision should cover at least logq+log2(N)
// fractional bits (spec.md §4.1) for encode/decode error to stay negligible.
func NewRootTable(M int, prec uint) *RootTable {
	rt := &RootTable{M: M, Prec: prec}

	pi := Pi(prec)
	two := new(big.Float).SetPrec(prec).SetInt64(2)
	twoPi := new(big.Float).SetPrec(prec).Mul(two, pi)

	rt.ksiReal = make([]*big.Float, M+1)
	rt.ksiImag = make([]*big.Float, M+1)
	for k := 0; k <= M; k++ {
		angle := new(big.Float).SetPrec(prec).Mul(twoPi, new(big.Float).SetPrec(prec).SetInt64(int64(k)))
		angle.Quo(angle, new(big.Float).SetPrec(prec).SetInt64(int64(M)))
		rt.ksiReal[k] = Cos(angle)
		rt.ksiImag[k] = Sin(angle)
	}

	n2 := M / 4
	rt.RotGroup = make([]int, n2)
	pow := 1
	for j := 0; j < n2; j++ {
		rt.RotGroup[j] = pow
		pow = (pow * 5) % M
	}

	return rt
}

// ksi returns (cos, sin) of the k-th primitive 2M-th root of unity, k taken
// modulo M.
func (rt *RootTable) ksi(k int) (*big.Float, *big.Float) {
	k %= rt.M
	if k < 0 {
		k += rt.M
	}
	return rt.ksiReal[k], rt.ksiImag[k]
}

// Ksi returns (cos(2*pi*k/M), sin(2*pi*k/M)) as float64, for callers outside
// this package that only need machine precision (e.g. the bootstrapper's
// plaintext-constant linear-transform diagonals, which are re-quantized to
// logp bits before ever touching a ciphertext).
func (rt *RootTable) Ksi(k int) (float64, float64) {
	wr, wi := rt.ksi(k)
	r, _ := wr.Float64()
	i, _ := wi.Float64()
	return r, i
}

func bitReversePermute(v []*CInt, n int) {
	logn := bits.Len(uint(n)) - 1
	for i := 0; i < n; i++ {
		j := int(utils.BitReverse64(uint64(i), logn))
		if i < j {
			v[i], v[j] = v[j], v[i]
		}
	}
}

// fftRaw runs an in-place iterative Cooley-Tukey FFT on v[0:n] (n a power of
// two), using twiddles selected by stride M/n (spec.md §4.1 fftRaw). The
// forward transform uses ω^{+k}; the inverse uses ω^{-k}; both share the
// same butterfly network.
func (rt *RootTable) fftRaw(v []*CInt, n int, isForward bool) {
	bitReversePermute(v, n)

	for length := 2; length <= n; length <<= 1 {
		half := length / 2
		stride := rt.M / length
		for i := 0; i < n; i += length {
			for j := 0; j < half; j++ {
				idx := j * stride
				if !isForward {
					idx = -idx
				}
				wr, wi := rt.ksi(idx)
				u := v[i+j]
				t := v[i+j+half].MulComplexFloat(wr, wi)
				v[i+j] = u.Add(t)
				v[i+j+half] = u.Sub(t)
			}
		}
	}
}

// FFT runs the forward transform in place.
func (rt *RootTable) FFT(v []*CInt, n int) {
	rt.fftRaw(v, n, true)
}

// FFTInv runs the inverse transform in place, dividing every output
// coefficient by n.
func (rt *RootTable) FFTInv(v []*CInt, n int) {
	rt.fftRaw(v, n, false)
	logn := uint(bits.Len(uint(n)) - 1)
	for i := range v {
		v[i] = v[i].Rsh(logn)
	}
}

// FFTInvLazy runs the inverse transform without the final division by n; the
// caller is expected to absorb the 1/n scale elsewhere (spec.md §4.1).
func (rt *RootTable) FFTInvLazy(v []*CInt, n int) {
	rt.fftRaw(v, n, false)
}

// FFTSpecial evaluates the length-n coefficient array v at the odd roots
// ω_M^{5^j}, j = 0..n-1 (the canonical embedding used by Decode). It is a
// direct O(n^2) evaluation rather than the group-walk fast algorithm the
// original source uses: correctness is easy to verify by inspection, which
// matters more here than asymptotic speed since FFT and FFTInv already
// provide the fast power-of-two path.
func (rt *RootTable) FFTSpecial(v []*CInt, n int) []*CInt {
	out := make([]*CInt, n)
	for k := 0; k < n; k++ {
		acc := Zero()
		root := rt.RotGroup[k]
		for j := 0; j < n; j++ {
			wr, wi := rt.ksi(root * j)
			acc = acc.Add(v[j].MulComplexFloat(wr, wi))
		}
		out[k] = acc
	}
	return out
}

// FFTSpecialInv is the inverse of FFTSpecial: given slot values, recovers
// the coefficient array via interpolation at the same odd-root set, dividing
// by n (the canonical embedding inverse used by Encode).
func (rt *RootTable) FFTSpecialInv(v []*CInt, n int) []*CInt {
	out := make([]*CInt, n)
	for j := 0; j < n; j++ {
		acc := Zero()
		for k := 0; k < n; k++ {
			root := rt.RotGroup[k]
			wr, wi := rt.ksi(-root * j)
			acc = acc.Add(v[k].MulComplexFloat(wr, wi))
		}
		logn := uint(bits.Len(uint(n)) - 1)
		out[j] = acc.Rsh(logn)
	}
	return out
}
