package algo

import (
	"math/bits"

	"github.com/ldsec/heaan/rlwe"
)

// PartialSlotsSumAndEqual sums the first `slots` slots of c into every one
// of those slots via log2(slots) doubling: at step i, rotate by 2^i and add
// (spec.md §4.5 partialSlotsSumAndEqual).
func (a *SchemeAlgo) PartialSlotsSumAndEqual(c *rlwe.Ciphertext, slots int) (*rlwe.Ciphertext, error) {
	s := a.scheme

	logSlots := bits.Len(uint(slots)) - 1
	cur := c
	for i := 0; i < logSlots; i++ {
		rotated, err := s.LeftRotate(cur, 1<<i)
		if err != nil {
			return nil, err
		}
		cur, err = s.Add(cur, rotated)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}
