// Package bootstrapping implements the Bootstrapper (spec.md §4.6):
// CoeffToSlot, the removeIpart sine approximation, and SlotToCoeff, composed
// into an end-to-end refresh of a near-exhausted ciphertext.
package bootstrapping

import (
	"github.com/ldsec/heaan/ckks"
	"github.com/ldsec/heaan/ring/bignum"
	"github.com/ldsec/heaan/rlwe"
)

// LinearTransform evaluates a dense dim x dim complex matrix homomorphically
// via the Halevi-Shoup diagonal method: dim rotations, each paired with a
// per-slot diagonal constant, summed (spec.md §6
// linearTransformAndEqual/linearTransformInvAndEqual). This is the
// mechanism CoeffToSlot and SlotToCoeff are built on.
type LinearTransform struct {
	Dim      int
	Diagonal [][]complex128 // Diagonal[r][k] = Mat[k][(k+r) mod Dim]
}

// NewLinearTransform builds a LinearTransform from a dense matrix, mat[k][j]
// being the coefficient multiplying input slot j in output slot k.
func NewLinearTransform(mat [][]complex128) *LinearTransform {
	dim := len(mat)
	diag := make([][]complex128, dim)
	for r := 0; r < dim; r++ {
		d := make([]complex128, dim)
		for k := 0; k < dim; k++ {
			d[k] = mat[k][(k+r)%dim]
		}
		diag[r] = d
	}
	return &LinearTransform{Dim: dim, Diagonal: diag}
}

// Apply evaluates the transform on c at scale logp
// (spec.md §6 linearTransformAndEqual).
func (lt *LinearTransform) Apply(s *ckks.Scheme, c *rlwe.Ciphertext, logp int) (*rlwe.Ciphertext, error) {
	var result *rlwe.Ciphertext
	for r := 0; r < lt.Dim; r++ {
		rotated, err := s.LeftRotate(c, r)
		if err != nil {
			return nil, err
		}
		term, err := s.MultByVector(rotated, lt.Diagonal[r], logp)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = term
		} else {
			result, err = s.Add(result, term)
			if err != nil {
				return nil, err
			}
		}
	}
	return s.ReScaleBy(result, logp)
}

// coeffToSlotMatrix builds the dense dim x dim matrix implementing the
// canonical-embedding evaluation (FFTSpecial): Mat[k][j] = ksi(rotGroup[k]*j)
// (spec.md §4.1 fftSpecial, reused here as the CoeffToSlot transform).
func coeffToSlotMatrix(roots *bignum.RootTable, dim int) [][]complex128 {
	mat := make([][]complex128, dim)
	for k := 0; k < dim; k++ {
		row := make([]complex128, dim)
		root := roots.RotGroup[k]
		for j := 0; j < dim; j++ {
			row[j] = ksiComplex(roots, root*j)
		}
		mat[k] = row
	}
	return mat
}

// slotToCoeffMatrix builds the dense dim x dim matrix implementing the
// canonical-embedding interpolation (FFTSpecialInv):
// Mat[j][k] = ksi(-rotGroup[k]*j)/dim.
func slotToCoeffMatrix(roots *bignum.RootTable, dim int) [][]complex128 {
	mat := make([][]complex128, dim)
	for j := 0; j < dim; j++ {
		row := make([]complex128, dim)
		for k := 0; k < dim; k++ {
			root := roots.RotGroup[k]
			row[k] = ksiComplex(roots, -root*j) / complex(float64(dim), 0)
		}
		mat[j] = row
	}
	return mat
}

func ksiComplex(roots *bignum.RootTable, k int) complex128 {
	r, i := roots.Ksi(k)
	return complex(r, i)
}
