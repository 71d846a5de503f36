package bootstrapping

import (
	"math"
	"math/big"

	"github.com/ldsec/heaan/ckks"
	"github.com/ldsec/heaan/ckks/algo"
	"github.com/ldsec/heaan/rlwe"
)

// Bootstrapper refreshes a near-exhausted ciphertext by homomorphically
// evaluating CoeffToSlot, a sine-approximation I-part removal, and
// SlotToCoeff (spec.md §4.6).
type Bootstrapper struct {
	scheme *ckks.Scheme
	algo   *algo.SchemeAlgo

	coeffToSlot *LinearTransform
	slotToCoeff *LinearTransform
	dim         int
}

// NewBootstrapper precomputes the CoeffToSlot/SlotToCoeff linear-transform
// diagonals for ciphertexts carrying `dim` slots (dim must equal the
// Context's N/2 for the full-slots path; spec.md §4.6 full-slots case).
func NewBootstrapper(s *ckks.Scheme, dim int) *Bootstrapper {
	roots := s.Context().Roots
	return &Bootstrapper{
		scheme:      s,
		algo:        algo.NewSchemeAlgo(s),
		coeffToSlot: NewLinearTransform(coeffToSlotMatrix(roots, dim)),
		slotToCoeff: NewLinearTransform(slotToCoeffMatrix(roots, dim)),
		dim:         dim,
	}
}

// AddBootKeys generates every evaluation key the Bootstrapper needs: the
// conjugation key and the power-of-two rotation keys (spec.md §6
// addBootKeys; spec.md §4.6: "Bootstrap keys are the union of: conjugation
// key, all power-of-two rotation keys"). LinearTransform.Apply rotates by
// every index in [0, dim) via Scheme.LeftRotate, which already decomposes
// an arbitrary rotation amount into a chain of power-of-two rotations, so
// no additional per-index keys are needed. The CoeffToSlot/SlotToCoeff
// constants themselves are plaintexts, not evaluation keys, and are built
// by NewBootstrapper.
func (b *Bootstrapper) AddBootKeys() {
	b.scheme.AddConjKey()
	b.scheme.AddLeftRotKeys()
	b.scheme.AddRightRotKeys()
}

// CoeffToSlotAndEqual applies the CoeffToSlot linear transform to c
// (spec.md §4.6 step 3, spec.md §6 linearTransformAndEqual), at scale logp.
func (b *Bootstrapper) CoeffToSlotAndEqual(c *rlwe.Ciphertext, logp int) (*rlwe.Ciphertext, error) {
	return b.coeffToSlot.Apply(b.scheme, c, logp)
}

// SlotToCoeffAndEqual applies the inverse linear transform
// (spec.md §4.6 step 5, spec.md §6 linearTransformInvAndEqual).
func (b *Bootstrapper) SlotToCoeffAndEqual(c *rlwe.Ciphertext, logp int) (*rlwe.Ciphertext, error) {
	return b.slotToCoeff.Apply(b.scheme, c, logp)
}

// RemoveIpartAndEqual evaluates the sine-approximation that removes the
// I-part introduced by the modulus raise (spec.md §4.6 step 4, spec.md §6
// removeIpartAndEqual): rescale the slot values into [-1,1] by
// 2^(logT+logI+logq0), evaluate a truncated sin(2*pi*x) Taylor series at
// that reduced scale, square-and-double logI times to recover sin(2*pi*x)
// at the original argument (the double-angle identity
// sin(2y) = 2*sin(y)*cos(y) = 1-2*(1-2*sin(y)^2)... applied as
// 2*sin(y)^2-1 folded logI times doubles the angle each round), then scale
// back by q0/(2*pi) (spec.md §4.6: "Taylor expansion of sin/cos").
func (b *Bootstrapper) RemoveIpartAndEqual(c *rlwe.Ciphertext, logp, logq0, logT, logI int) (*rlwe.Ciphertext, error) {
	if logT < 1 {
		return nil, &domainError{"logT must be >= 1"}
	}

	s := b.scheme

	shift := logT + logI + logq0
	scaleConst := pow2Inv(shift)
	x, err := s.MultByConst(c, complex(scaleConst, 0), logp)
	if err != nil {
		return nil, err
	}
	x, err = s.ReScaleBy(x, logp)
	if err != nil {
		return nil, err
	}

	degree := 2*logT + 1
	cur, err := b.algo.Function(x, algo.SIN, logp, degree)
	if err != nil {
		return nil, err
	}

	for i := 0; i < logI; i++ {
		sq, err := s.Mult(cur, cur, logp)
		if err != nil {
			return nil, err
		}
		sq, err = s.ReScaleBy(sq, logp)
		if err != nil {
			return nil, err
		}
		two, err := s.MultByConst(sq, complex(2, 0), logp)
		if err != nil {
			return nil, err
		}
		two, err = s.ReScaleBy(two, logp)
		if err != nil {
			return nil, err
		}
		cur = s.AddConst(two, complex(-1, 0), logp)
	}

	q0 := new(big.Int).Lsh(big.NewInt(1), uint(logq0))
	q0f, _ := new(big.Float).SetInt(q0).Float64()
	result, err := s.MultByConst(cur, complex(q0f/(2*math.Pi), 0), logp)
	if err != nil {
		return nil, err
	}
	return s.ReScaleBy(result, logp)
}

// raiseModulus lifts c back onto the full context modulus Q without
// touching its coefficients; Mod becomes Q and Cbits becomes logQ (spec.md §4.6 step 1,
// "modulus raise"): a near-exhausted ciphertext's Mod is small, so every
// coefficient is already reduced mod that small value; re-centering the
// same representative under the full Q buys back headroom to spend on
// CoeffToSlot, removeIpart, and SlotToCoeff before the first real rescale.
func (b *Bootstrapper) raiseModulus(c *rlwe.Ciphertext) *rlwe.Ciphertext {
	ctx := b.scheme.Context()
	return &rlwe.Ciphertext{
		Ax:        c.Ax.Copy(),
		Bx:        c.Bx.Copy(),
		Mod:       new(big.Int).Set(ctx.Q),
		Cbits:     ctx.Params.LogQ,
		Slots:     c.Slots,
		IsComplex: c.IsComplex,
	}
}

// Bootstrap refreshes c end to end (spec.md §4.6): raise the modulus,
// evaluate CoeffToSlot to move the coefficients into slots, recover the real
// part of each slot by folding in the conjugate, remove the I-part the
// modulus raise introduced via a sine approximation, then evaluate
// SlotToCoeff to move the cleaned values back into coefficient form. logp is
// the scale to carry through every intermediate step; logq0, logT, logI
// parameterize removeIpart exactly as in RemoveIpartAndEqual.
func (b *Bootstrapper) Bootstrap(c *rlwe.Ciphertext, logp, logq0, logT, logI int) (*rlwe.Ciphertext, error) {
	raised := b.raiseModulus(c)

	afterC2S, err := b.CoeffToSlotAndEqual(raised, logp)
	if err != nil {
		return nil, err
	}

	real, err := b.extractRealPart(afterC2S, logp)
	if err != nil {
		return nil, err
	}

	cleaned, err := b.RemoveIpartAndEqual(real, logp, logq0, logT, logI)
	if err != nil {
		return nil, err
	}

	return b.SlotToCoeffAndEqual(cleaned, logp)
}

// extractRealPart implements spec.md §4.6 step 3's "add the ciphertext and
// its conjugate" — the modulus raise interprets ax, bx mod the larger Q, so
// decryption now yields m + q0*I for a small-integer polynomial I; after
// CoeffToSlot, m's slots are real-valued but I's imaginary contribution is
// not, so folding each slot with its conjugate (c + conj(c) = 2*Re(c))
// cancels it. The fold doubles the true scale, so it is immediately halved
// back by a matching MultByConst+ReScaleBy, keeping the scale at logp for
// removeIpart. This is the only place the conjugation key AddBootKeys
// generates is exercised.
func (b *Bootstrapper) extractRealPart(c *rlwe.Ciphertext, logp int) (*rlwe.Ciphertext, error) {
	conj, err := b.scheme.Conjugate(c)
	if err != nil {
		return nil, err
	}
	sum, err := b.scheme.Add(c, conj)
	if err != nil {
		return nil, err
	}
	halved, err := b.scheme.MultByConst(sum, complex(0.5, 0), logp)
	if err != nil {
		return nil, err
	}
	return b.scheme.ReScaleBy(halved, logp)
}

func pow2Inv(shift int) float64 {
	f := 1.0
	for i := 0; i < shift; i++ {
		f /= 2
	}
	return f
}

type domainError struct{ msg string }

func (e *domainError) Error() string { return "bootstrapping: " + e.msg }

func (e *domainError) Unwrap() error { return rlwe.ErrDomainError }
