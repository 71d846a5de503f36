// Package ckks implements the Encoder and Scheme (spec.md §4.3, §4.4): the
// bidirectional mapping between complex vectors and plaintext polynomials,
// and homomorphic encryption/arithmetic over ring-LWE ciphertexts.
package ckks

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"

	"github.com/ldsec/heaan/ring"
	"github.com/ldsec/heaan/ring/bignum"
	"github.com/ldsec/heaan/rlwe"
)

// Encoder implements spec.md §4.3: encode/decode via the special inverse
// FFT at precision logp.
type Encoder struct {
	ctx *rlwe.Context
}

// NewEncoder returns an Encoder bound to ctx.
func NewEncoder(ctx *rlwe.Context) *Encoder {
	return &Encoder{ctx: ctx}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Encode maps values (length slots, slots a power of two <= N/2) into a
// Plaintext at scale logp and modulus 2^logq, via the special inverse FFT
// (spec.md §4.3 encode).
func (e *Encoder) Encode(values []complex128, slots, logp, logq int) (*rlwe.Plaintext, error) {
	N := e.ctx.N
	if !isPowerOfTwo(slots) || slots > N/2 {
		return nil, fmt.Errorf("%w: slots=%d must be a power of two <= N/2=%d", rlwe.ErrParameterInvalid, slots, N/2)
	}
	if len(values) < slots {
		return nil, fmt.Errorf("%w: need %d values, got %d", rlwe.ErrParameterInvalid, slots, len(values))
	}

	isComplex := false
	v := make([]*bignum.CInt, slots)
	scale := math.Ldexp(1, logp)
	for i := 0; i < slots; i++ {
		r := roundFloat(real(values[i]) * scale)
		im := roundFloat(imag(values[i]) * scale)
		if im.Sign() != 0 {
			isComplex = true
		}
		v[i] = &bignum.CInt{R: r, I: im}
	}

	coeffs := e.ctx.Roots.FFTSpecialInv(v, slots)

	mx := ring.NewPoly(N)
	for j := 0; j < slots; j++ {
		mx.Coeffs[j].Set(coeffs[j].R)
		mx.Coeffs[j+N/2].Set(coeffs[j].I)
	}

	mod := new(big.Int).Lsh(big.NewInt(1), uint(logq))
	return &rlwe.Plaintext{Mx: mx, Mod: mod, Cbits: logq, Slots: slots, IsComplex: isComplex}, nil
}

// Decode recovers the slots complex values a Plaintext was built from
// (spec.md §4.3 decode), given the scale logp it was encoded at.
func (e *Encoder) Decode(pt *rlwe.Plaintext, logp int) ([]complex128, error) {
	N := e.ctx.N
	slots := pt.Slots
	if !isPowerOfTwo(slots) || slots > N/2 {
		return nil, fmt.Errorf("%w: slots=%d must be a power of two <= N/2=%d", rlwe.ErrParameterInvalid, slots, N/2)
	}

	v := make([]*bignum.CInt, slots)
	for j := 0; j < slots; j++ {
		v[j] = &bignum.CInt{R: new(big.Int).Set(pt.Mx.Coeffs[j]), I: new(big.Int).Set(pt.Mx.Coeffs[j+N/2])}
	}

	values := e.ctx.Roots.FFTSpecial(v, slots)

	scale := math.Ldexp(1, -logp)
	out := make([]complex128, slots)
	for j := 0; j < slots; j++ {
		rf := new(big.Float).SetInt(values[j].R)
		imf := new(big.Float).SetInt(values[j].I)
		rv, _ := rf.Float64()
		iv, _ := imf.Float64()
		out[j] = complex(rv*scale, iv*scale)
	}
	return out, nil
}

func roundFloat(f float64) *big.Int {
	return big.NewInt(int64(math.Round(f)))
}

// logSlots returns log2(slots); slots is guaranteed a power of two by the
// Encode/Decode validation above.
func logSlots(slots int) int {
	return bits.Len(uint(slots)) - 1
}
