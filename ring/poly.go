// Package ring implements the BigNum/Polynomial kernel (spec.md §4, "BigNum
// / Polynomial kernel"): arbitrary-precision integers and polynomials in the
// ring R = Z[X]/(X^N+1), reduced modulo a power-of-two modulus.
package ring

import "math/big"

// Poly is a length-N array of arbitrary-precision coefficients representing
// an element of R = Z[X]/(X^N+1) (spec.md §3 Polynomial).
type Poly struct {
	Coeffs []*big.Int
}

// NewPoly allocates a zero polynomial of degree N.
func NewPoly(N int) *Poly {
	c := make([]*big.Int, N)
	for i := range c {
		c[i] = new(big.Int)
	}
	return &Poly{Coeffs: c}
}

// NewPolyFrom wraps an existing coefficient slice (taking ownership).
func NewPolyFrom(coeffs []*big.Int) *Poly {
	return &Poly{Coeffs: coeffs}
}

// N returns the polynomial's degree bound.
func (p *Poly) N() int { return len(p.Coeffs) }

// Copy returns a deep copy of p.
func (p *Poly) Copy() *Poly {
	out := NewPoly(p.N())
	for i, c := range p.Coeffs {
		out.Coeffs[i].Set(c)
	}
	return out
}

// CopyFrom overwrites p's coefficients with a copy of src's.
func (p *Poly) CopyFrom(src *Poly) {
	for i, c := range src.Coeffs {
		p.Coeffs[i].Set(c)
	}
}

// Zero clears all coefficients to 0.
func (p *Poly) Zero() {
	for _, c := range p.Coeffs {
		c.SetInt64(0)
	}
}
