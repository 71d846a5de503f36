package ring

import (
	"math/big"
	"sync"

	"github.com/ldsec/heaan/utils"
)

// Ring is the process-lifetime context for arithmetic in
// R = Z[X]/(X^N+1): ring degree, and helpers for reduction modulo a
// power-of-two modulus and modulo the ring polynomial (spec.md §4
// "BigNum / Polynomial kernel"). It holds no modulus itself — every method
// takes the modulus explicitly so the same Ring serves every ciphertext
// level.
type Ring struct {
	N int
}

// NewRing returns a ring context for degree N (N must be a power of two,
// validated by the caller — rlwe.Params is the validation boundary).
func NewRing(N int) *Ring {
	return &Ring{N: N}
}

// Add computes c = a + b coefficient-wise mod modulus, centered.
func (r *Ring) Add(a, b *Poly, modulus *big.Int, c *Poly) {
	r.elementWise(a, b, c, func(x, y, z *big.Int) { z.Add(x, y) }, modulus)
}

// Sub computes c = a - b coefficient-wise mod modulus, centered.
func (r *Ring) Sub(a, b *Poly, modulus *big.Int, c *Poly) {
	r.elementWise(a, b, c, func(x, y, z *big.Int) { z.Sub(x, y) }, modulus)
}

// Neg computes c = -a coefficient-wise mod modulus, centered.
func (r *Ring) Neg(a *Poly, modulus *big.Int, c *Poly) {
	utils.RunGoRoutines(r.N, func(start, end int) {
		for i := start; i < end; i++ {
			c.Coeffs[i].Neg(a.Coeffs[i])
		}
	})
	r.Reduce(c, modulus, c)
}

func (r *Ring) elementWise(a, b, c *Poly, op func(x, y, z *big.Int), modulus *big.Int) {
	utils.RunGoRoutines(r.N, func(start, end int) {
		for i := start; i < end; i++ {
			op(a.Coeffs[i], b.Coeffs[i], c.Coeffs[i])
		}
	})
	r.Reduce(c, modulus, c)
}

// Reduce centers every coefficient of a into (-modulus/2, modulus/2], writing
// the result into c (which may alias a).
func (r *Ring) Reduce(a *Poly, modulus *big.Int, c *Poly) {
	half := new(big.Int).Rsh(modulus, 1)
	utils.RunGoRoutines(r.N, func(start, end int) {
		tmp := new(big.Int)
		for i := start; i < end; i++ {
			tmp.Mod(a.Coeffs[i], modulus)
			if tmp.Cmp(half) > 0 {
				tmp.Sub(tmp, modulus)
			}
			c.Coeffs[i].Set(tmp)
		}
	})
}

// InRange reports whether every coefficient of a lies in the centered
// representative range (-modulus/2, modulus/2]; violations indicate an
// Internal invariant failure (spec.md §7).
func (r *Ring) InRange(a *Poly, modulus *big.Int) bool {
	half := new(big.Int).Rsh(modulus, 1)
	negHalf := new(big.Int).Neg(half)
	for _, c := range a.Coeffs {
		if c.Cmp(negHalf) <= 0 || c.Cmp(half) > 0 {
			return false
		}
	}
	return true
}

// MulCoeffs computes the negacyclic polynomial product c = a*b mod (X^N+1),
// reduced mod modulus, using schoolbook convolution (spec.md §9: "schoolbook
// with FFT-of-BigInts is acceptable if performance targets are met"). Every
// goroutine accumulates into its own private buffer over the outer index i
// and merges into the shared acc once at the end of its chunk, rather than
// having distinct goroutines race on acc[k] for overlapping k (every i
// contributes to every k = (i+j) mod N, so partitioning the outer loop
// alone does not partition the output indices).
func (r *Ring) MulCoeffs(a, b *Poly, modulus *big.Int, c *Poly) {
	N := r.N
	acc := make([]*big.Int, N)
	for i := range acc {
		acc[i] = new(big.Int)
	}
	var mu sync.Mutex

	utils.RunGoRoutines(N, func(start, end int) {
		local := make([]*big.Int, N)
		for i := range local {
			local[i] = new(big.Int)
		}

		for i := start; i < end; i++ {
			if a.Coeffs[i].Sign() == 0 {
				continue
			}
			for j := 0; j < N; j++ {
				if b.Coeffs[j].Sign() == 0 {
					continue
				}
				k := i + j
				term := new(big.Int).Mul(a.Coeffs[i], b.Coeffs[j])
				if k >= N {
					k -= N
					term.Neg(term)
				}
				local[k].Add(local[k], term)
			}
		}

		mu.Lock()
		for k := range local {
			acc[k].Add(acc[k], local[k])
		}
		mu.Unlock()
	})

	for i := 0; i < N; i++ {
		c.Coeffs[i].Set(acc[i])
	}
	r.Reduce(c, modulus, c)
}

// MulScalarBigInt multiplies every coefficient of a by the scalar z, mod
// modulus.
func (r *Ring) MulScalarBigInt(a *Poly, z *big.Int, modulus *big.Int, c *Poly) {
	utils.RunGoRoutines(r.N, func(start, end int) {
		for i := start; i < end; i++ {
			c.Coeffs[i].Mul(a.Coeffs[i], z)
		}
	})
	r.Reduce(c, modulus, c)
}

// MulByMonomial multiplies a by X^k modulo X^N+1 (rotating coefficients,
// negating those that wrap past degree N), spec.md §4.4 multByMonomial. k
// may be negative or >= 2N; it is reduced mod 2N first.
func (r *Ring) MulByMonomial(a *Poly, k int, modulus *big.Int, c *Poly) {
	N := r.N
	k = ((k % (2 * N)) + 2*N) % (2 * N)

	out := make([]*big.Int, N)
	for i := 0; i < N; i++ {
		j := i + k
		neg := false
		for j >= 2*N {
			j -= 2 * N
		}
		if j >= N {
			j -= N
			neg = true
		}
		v := new(big.Int).Set(a.Coeffs[i])
		if neg {
			v.Neg(v)
		}
		if out[j] == nil {
			out[j] = v
		} else {
			out[j].Add(out[j], v)
		}
	}
	for i := 0; i < N; i++ {
		if out[i] == nil {
			out[i] = new(big.Int)
		}
		c.Coeffs[i].Set(out[i])
	}
	r.Reduce(c, modulus, c)
}

// Automorphism applies the Galois map X -> X^k (k odd, coprime with 2N) to
// a, writing the result into c. This realizes σ_{5^e} for rotations and
// σ_{-1} (k = 2N-1) for conjugation (spec.md §4.4).
func (r *Ring) Automorphism(a *Poly, k int, modulus *big.Int, c *Poly) {
	N := r.N
	k = ((k % (2 * N)) + 2*N) % (2 * N)

	out := make([]*big.Int, N)
	for i := 0; i < N; i++ {
		out[i] = new(big.Int)
	}

	for i := 0; i < N; i++ {
		j := (i * k) % (2 * N)
		neg := false
		if j >= N {
			j -= N
			neg = true
		}
		v := new(big.Int).Set(a.Coeffs[i])
		if neg {
			v.Neg(v)
		}
		out[j].Add(out[j], v)
	}
	for i := 0; i < N; i++ {
		c.Coeffs[i].Set(out[i])
	}
	r.Reduce(c, modulus, c)
}

// DivRoundBy divides every coefficient of a by 2^delta with rounding,
// writing the result into c, centered mod modulus when modulus is non-nil
// (callers pass the already-reduced modulus). Used by rescale (spec.md §4.4
// reScaleBy).
func (r *Ring) DivRoundBy(a *Poly, delta uint, modulus *big.Int, c *Poly) {
	half := new(big.Int).Lsh(big.NewInt(1), delta-1)
	utils.RunGoRoutines(r.N, func(start, end int) {
		tmp := new(big.Int)
		for i := start; i < end; i++ {
			tmp.Set(a.Coeffs[i])
			if tmp.Sign() >= 0 {
				tmp.Add(tmp, half)
				tmp.Rsh(tmp, delta)
			} else {
				tmp.Neg(tmp)
				tmp.Add(tmp, half)
				tmp.Rsh(tmp, delta)
				tmp.Neg(tmp)
			}
			c.Coeffs[i].Set(tmp)
		}
	})
	if modulus != nil {
		r.Reduce(c, modulus, c)
	}
}

// DivExactBy divides every coefficient of a by p exactly (used by
// key-switching's division by the special modulus P, which is exact on the
// lifted result up to the key-switch noise), rounding to nearest.
func (r *Ring) DivExactBy(a *Poly, p *big.Int, c *Poly) {
	half := new(big.Int).Rsh(p, 1)
	utils.RunGoRoutines(r.N, func(start, end int) {
		q, rem := new(big.Int), new(big.Int)
		for i := start; i < end; i++ {
			q.QuoRem(a.Coeffs[i], p, rem)
			rem.Abs(rem)
			if rem.Cmp(half) >= 0 {
				if a.Coeffs[i].Sign() >= 0 {
					q.Add(q, big.NewInt(1))
				} else {
					q.Sub(q, big.NewInt(1))
				}
			}
			c.Coeffs[i].Set(q)
		}
	})
}
