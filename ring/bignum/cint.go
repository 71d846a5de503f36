package bignum

import "math/big"

// CInt is a fixed-point complex number: a pair of arbitrary-precision
// integers (r, i) representing a scaled complex sample (spec.md §3). The
// scale is tracked by the caller (Encoder, NumUtils), not by CInt itself.
type CInt struct {
	R, I *big.Int
}

// NewCInt builds a CInt from two int64s.
func NewCInt(r, i int64) *CInt {
	return &CInt{R: big.NewInt(r), I: big.NewInt(i)}
}

// Zero returns the additive identity.
func Zero() *CInt {
	return &CInt{R: new(big.Int), I: new(big.Int)}
}

// Clone returns a deep copy.
func (c *CInt) Clone() *CInt {
	return &CInt{R: new(big.Int).Set(c.R), I: new(big.Int).Set(c.I)}
}

// Add returns c + other.
func (c *CInt) Add(other *CInt) *CInt {
	return &CInt{R: new(big.Int).Add(c.R, other.R), I: new(big.Int).Add(c.I, other.I)}
}

// Sub returns c - other.
func (c *CInt) Sub(other *CInt) *CInt {
	return &CInt{R: new(big.Int).Sub(c.R, other.R), I: new(big.Int).Sub(c.I, other.I)}
}

// Neg returns -c.
func (c *CInt) Neg() *CInt {
	return &CInt{R: new(big.Int).Neg(c.R), I: new(big.Int).Neg(c.I)}
}

// Conjugate negates the imaginary part.
func (c *CInt) Conjugate() *CInt {
	return &CInt{R: new(big.Int).Set(c.R), I: new(big.Int).Neg(c.I)}
}

// MulFloat multiplies both components by a high-precision real scalar and
// rounds to the nearest integer (the butterfly primitive used by fftRaw:
// "multiply BigInt by a precomputed high-precision real, then round to
// BigInt").
func (c *CInt) MulFloat(f *big.Float) *CInt {
	return &CInt{R: roundBigFloat(mulIntFloat(c.R, f)), I: roundBigFloat(mulIntFloat(c.I, f))}
}

// MulComplexFloat multiplies c by a complex scalar (fr, fi) given as
// high-precision reals, rounding each resulting component.
func (c *CInt) MulComplexFloat(fr, fi *big.Float) *CInt {
	rr := mulIntFloat(c.R, fr)
	ii := mulIntFloat(c.I, fi)
	ri := mulIntFloat(c.R, fi)
	ir := mulIntFloat(c.I, fr)
	real := new(big.Float).Sub(rr, ii)
	imag := new(big.Float).Add(ri, ir)
	return &CInt{R: roundBigFloat(real), I: roundBigFloat(imag)}
}

// Rsh shifts both components right by p bits, rounding toward -infinity
// independently on each component (spec.md §6: "right-shift of CInt by p is
// arithmetic rounding toward −∞ on each component independently").
func (c *CInt) Rsh(p uint) *CInt {
	return &CInt{R: shiftRightRound(c.R, p), I: shiftRightRound(c.I, p)}
}

// Lsh shifts both components left by p bits (exact).
func (c *CInt) Lsh(p uint) *CInt {
	return &CInt{R: new(big.Int).Lsh(c.R, p), I: new(big.Int).Lsh(c.I, p)}
}

func mulIntFloat(a *big.Int, f *big.Float) *big.Float {
	af := new(big.Float).SetPrec(f.Prec()).SetInt(a)
	return new(big.Float).SetPrec(f.Prec()).Mul(af, f)
}

func roundBigFloat(f *big.Float) *big.Int {
	z, _ := f.Int(nil)
	frac := new(big.Float).Sub(f, new(big.Float).SetPrec(f.Prec()).SetInt(z))
	half := big.NewFloat(0.5)
	if frac.Cmp(half) >= 0 {
		z.Add(z, big.NewInt(1))
	} else if frac.Cmp(new(big.Float).Neg(half)) <= 0 {
		z.Sub(z, big.NewInt(1))
	}
	return z
}

// shiftRightRound implements floor(a / 2^p), i.e. arithmetic right shift
// rounding toward -infinity, which for big.Int's sign-magnitude Rsh is
// exactly Go's Rsh semantics on two's-complement values: big.Int.Rsh already
// rounds toward -infinity for negative numbers, matching the spec.
func shiftRightRound(a *big.Int, p uint) *big.Int {
	return new(big.Int).Rsh(a, p)
}
