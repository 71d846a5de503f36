package rlwe

import (
	"github.com/ldsec/heaan/ring"
	"github.com/ldsec/heaan/utils/sampling"
)

// KeySwitcher carries out key-switching (spec.md §4.4 "Key switching"):
// rewriting a ciphertext component under a different secret sPrime into one
// under sk, using a gadget decomposition modulo the Context's special
// modulus P.
type KeySwitcher struct {
	ctx *Context
}

// NewKeySwitcher returns a KeySwitcher bound to ctx.
func NewKeySwitcher(ctx *Context) *KeySwitcher {
	return &KeySwitcher{ctx: ctx}
}

// GenEvaluationKey generates an EvaluationKey encrypting P*sPrime under sk,
// i.e. Bx + Ax*sk = P*sPrime + e (mod P*Q). Used for the mult-relinearization
// key (sPrime = s^2), rotation keys (sPrime = sigma_{5^r}(s)) and the
// conjugation key (sPrime = sigma_{-1}(s)).
func (ks *KeySwitcher) GenEvaluationKey(sk *SecretKey, sPrime *ring.Poly, source sampling.Source) *EvaluationKey {
	ctx := ks.ctx
	pq := ctx.PQ()

	ax := ring.NewPolyFrom(sampling.SampleUniform(source, ctx.N, pq))
	e := ring.NewPolyFrom(sampling.SampleGaussPoly(source, ctx.N, ctx.Params.Sigma))

	// bx = -ax*sk + e + P*sPrime (mod P*Q)
	axs := ring.NewPoly(ctx.N)
	ctx.Ring.MulCoeffs(ax, sk.Sx, pq, axs)

	pTimesSPrime := ring.NewPoly(ctx.N)
	ctx.Ring.MulScalarBigInt(sPrime, ctx.P, pq, pTimesSPrime)

	bx := ring.NewPoly(ctx.N)
	ctx.Ring.Neg(axs, pq, bx)
	ctx.Ring.Add(bx, e, pq, bx)
	ctx.Ring.Add(bx, pTimesSPrime, pq, bx)

	return &EvaluationKey{Ax: ax, Bx: bx}
}

// Switch rewrites d (a polynomial meant to be "times sPrime") into a
// ciphertext component pair under sk, using ek: computes
// (ax', bx') = round(d*ek / P), rounded to nearest (spec.md §4.4). The caller adds these into
// the surviving (d1, d0) components and reduces mod the ciphertext's current
// modulus.
func (ks *KeySwitcher) Switch(d *ring.Poly, ek *EvaluationKey) (ax, bx *ring.Poly) {
	ctx := ks.ctx
	pq := ctx.PQ()

	rawAx := ring.NewPoly(ctx.N)
	ctx.Ring.MulCoeffs(d, ek.Ax, pq, rawAx)

	rawBx := ring.NewPoly(ctx.N)
	ctx.Ring.MulCoeffs(d, ek.Bx, pq, rawBx)

	ax = ring.NewPoly(ctx.N)
	bx = ring.NewPoly(ctx.N)
	ctx.Ring.DivExactBy(rawAx, ctx.P, ax)
	ctx.Ring.DivExactBy(rawBx, ctx.P, bx)

	return ax, bx
}
