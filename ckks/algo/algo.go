// Package algo implements SchemeAlgo (spec.md §4.5): higher-level
// algorithms composed from ckks.Scheme operations.
package algo

import (
	"fmt"
	"math/bits"

	"github.com/ldsec/heaan/ckks"
	"github.com/ldsec/heaan/rlwe"
)

// SchemeAlgo is a thin view over a Scheme (spec.md §9: "SchemeAlgo is a
// thin view"), exposing composite algorithms.
type SchemeAlgo struct {
	scheme *ckks.Scheme
}

// NewSchemeAlgo binds a SchemeAlgo to scheme.
func NewSchemeAlgo(scheme *ckks.Scheme) *SchemeAlgo {
	return &SchemeAlgo{scheme: scheme}
}

// matchLevel mod-downs whichever of a, b sits at a higher level so both
// share the same (Cbits, Mod) before a Mult. Composite algorithms here
// repeatedly rescale one operand while carrying the other across
// iterations unrescaled, so their levels drift apart; ModDownBy re-aligns
// them without touching either's encoded scale (spec.md §4.4 modDownBy).
func matchLevel(s *ckks.Scheme, a, b *rlwe.Ciphertext) (*rlwe.Ciphertext, *rlwe.Ciphertext, error) {
	switch {
	case a.Cbits == b.Cbits:
		return a, b, nil
	case a.Cbits > b.Cbits:
		down, err := s.ModDownBy(a, a.Cbits-b.Cbits)
		if err != nil {
			return nil, nil, err
		}
		return down, b, nil
	default:
		down, err := s.ModDownBy(b, b.Cbits-a.Cbits)
		if err != nil {
			return nil, nil, err
		}
		return a, down, nil
	}
}

// PowerOf2 squares-and-rescales c d times, producing c^(2^d) at scale logp
// (spec.md §4.5 powerOf2).
func (a *SchemeAlgo) PowerOf2(c *rlwe.Ciphertext, logp, d int) (*rlwe.Ciphertext, error) {
	cur := c
	for i := 0; i < d; i++ {
		sq, err := a.scheme.Mult(cur, cur, logp)
		if err != nil {
			return nil, err
		}
		cur, err = a.scheme.ReScaleBy(sq, logp)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Power raises c to the integer power d via binary decomposition, chaining
// PowerOf2 stages with level-aligned multiplications (spec.md §4.5 power).
func (a *SchemeAlgo) Power(c *rlwe.Ciphertext, logp, d int) (*rlwe.Ciphertext, error) {
	if d < 1 {
		return nil, fmt.Errorf("%w: power degree must be >= 1, got %d", rlwe.ErrParameterInvalid, d)
	}

	logd := bits.Len(uint(d)) - 1

	cur := c
	var result *rlwe.Ciphertext
	for i := 0; i <= logd; i++ {
		if d&(1<<i) != 0 {
			if result == nil {
				result = cur
			} else {
				lr, lc, err := matchLevel(a.scheme, result, cur)
				if err != nil {
					return nil, err
				}
				prod, err := a.scheme.Mult(lr, lc, logp)
				if err != nil {
					return nil, err
				}
				result, err = a.scheme.ReScaleBy(prod, logp)
				if err != nil {
					return nil, err
				}
			}
		}
		if i < logd {
			sq, err := a.scheme.Mult(cur, cur, logp)
			if err != nil {
				return nil, err
			}
			cur, err = a.scheme.ReScaleBy(sq, logp)
			if err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// Prod multiplies cs[0..len(cs)) pairwise in a logarithmic-depth tree,
// rescaling by logp at each level (spec.md §4.5 prod). Pairs at the same
// level are independent and could be dispatched to the worker pool; this
// implementation computes them sequentially within a level for simplicity,
// matching the pool-size-independent determinism requirement of spec.md §5.
func (a *SchemeAlgo) Prod(cs []*rlwe.Ciphertext, logp int) (*rlwe.Ciphertext, error) {
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: prod requires at least one ciphertext", rlwe.ErrParameterInvalid)
	}

	level := make([]*rlwe.Ciphertext, len(cs))
	copy(level, cs)

	for len(level) > 1 {
		next := make([]*rlwe.Ciphertext, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			lhs, rhs, err := matchLevel(a.scheme, level[i], level[i+1])
			if err != nil {
				return nil, err
			}
			prod, err := a.scheme.Mult(lhs, rhs, logp)
			if err != nil {
				return nil, err
			}
			rescaled, err := a.scheme.ReScaleBy(prod, logp)
			if err != nil {
				return nil, err
			}
			next = append(next, rescaled)
		}
		level = next
	}
	return level[0], nil
}

// Inverse computes an approximate multiplicative inverse of m via the
// telescoping product 1/m = prod_{i=0}^{steps-1} (1 + y^{2^i}), where
// y = 1-m, applied `steps` times (spec.md §4.5 inverse): the caller passes
// c already encoding y = (1-m); valid when |y| < 1 (for real m, 0 < m < 2),
// where the product converges. This is Newton's iteration x <- x(2-m*x) unrolled into
// its closed form, which avoids needing an unencrypted "2" minus a
// ciphertext at every step.
func (a *SchemeAlgo) Inverse(c *rlwe.Ciphertext, logp, steps int) (*rlwe.Ciphertext, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: inverse requires steps >= 1, got %d", rlwe.ErrParameterInvalid, steps)
	}

	s := a.scheme

	cpow := c
	res := s.AddConst(c, complex(1, 0), logp)

	for i := 1; i < steps; i++ {
		sq, err := s.Mult(cpow, cpow, logp)
		if err != nil {
			return nil, err
		}
		cpow, err = s.ReScaleBy(sq, logp)
		if err != nil {
			return nil, err
		}

		factor := s.AddConst(cpow, complex(1, 0), logp)

		lf, lres, err := matchLevel(s, factor, res)
		if err != nil {
			return nil, err
		}
		prod, err := s.Mult(lf, lres, logp)
		if err != nil {
			return nil, err
		}
		res, err = s.ReScaleBy(prod, logp)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}
