package rlwe

import (
	"math/big"

	"github.com/ldsec/heaan/ring"
	"github.com/ldsec/heaan/ring/bignum"
)

// Context owns the process-lifetime constants derived from Params: ring
// degree, M=2N, Q, the precomputed root-of-unity table, and the "big"
// modulus P used by key-switching (spec.md §3 Context). Built once and
// never mutated.
type Context struct {
	Params Params

	N int
	M int
	Q *big.Int
	P *big.Int // special modulus for key-switching gadget decomposition

	Ring  *ring.Ring
	Roots *bignum.RootTable
}

// NewContext builds a Context from validated Params. The root table is
// precomputed at logQ+logN+20 bits of precision (spec.md §4.1: "at least
// ~logq + log2 N fractional bits"; +20 is slack matching the encode/decode
// error bound of spec.md §8).
func NewContext(params Params) (*Context, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	N := params.N()
	M := params.M()
	Q := params.Q()

	// P is chosen as large as Q (spec.md §4.5: "typically P = Q or larger"),
	// giving a key-switch noise contribution e/P comparable to the fresh
	// encryption noise.
	P := new(big.Int).Set(Q)

	prec := uint(params.LogQ + params.LogN + 20)

	return &Context{
		Params: params,
		N:      N,
		M:      M,
		Q:      Q,
		P:      P,
		Ring:   ring.NewRing(N),
		Roots:  bignum.NewRootTable(M, prec),
	}, nil
}

// PQ returns P*Q, the modulus key-switching arithmetic is carried out under.
func (c *Context) PQ() *big.Int {
	return new(big.Int).Mul(c.P, c.Q)
}
