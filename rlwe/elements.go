package rlwe

import (
	"fmt"
	"math/big"

	"github.com/ldsec/heaan/ring"
)

// Plaintext is a polynomial in R_mod carrying an encoded message
// (spec.md §3 Plaintext).
type Plaintext struct {
	Mx        *ring.Poly
	Mod       *big.Int
	Cbits     int
	Slots     int
	IsComplex bool
}

// Ciphertext is a ring-LWE ciphertext: decryption satisfies
// bx + ax*s = encode(m) + e (mod mod) (spec.md §3 Ciphertext).
type Ciphertext struct {
	Ax, Bx    *ring.Poly
	Mod       *big.Int
	Cbits     int
	Slots     int
	IsComplex bool
}

// Copy returns a deep copy of c.
func (c *Ciphertext) Copy() *Ciphertext {
	return &Ciphertext{
		Ax:        c.Ax.Copy(),
		Bx:        c.Bx.Copy(),
		Mod:       new(big.Int).Set(c.Mod),
		Cbits:     c.Cbits,
		Slots:     c.Slots,
		IsComplex: c.IsComplex,
	}
}

// CheckLevel returns ErrLevelMismatch if c1 and c2 do not share the same
// (mod, cbits) level (spec.md §4.4: "both inputs must share the same
// modulus/level").
func CheckLevel(c1, c2 *Ciphertext) error {
	if c1.Cbits != c2.Cbits || c1.Mod.Cmp(c2.Mod) != 0 {
		return fmt.Errorf("%w: cbits %d/%d mod %s/%s", ErrLevelMismatch, c1.Cbits, c2.Cbits, c1.Mod, c2.Mod)
	}
	return nil
}

// CheckBudget returns ErrBudgetExhausted unless c has more than delta bits
// of remaining budget, i.e. it fails when cbits <= delta (spec.md §7: "fails
// ... if remaining cbits <= logp").
func CheckBudget(c *Ciphertext, delta int) error {
	if c.Cbits <= delta {
		return fmt.Errorf("%w: cbits=%d requested delta=%d", ErrBudgetExhausted, c.Cbits, delta)
	}
	return nil
}
