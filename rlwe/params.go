package rlwe

import (
	"fmt"
	"math/big"

	"github.com/google/go-cmp/cmp"
)

// Params holds the process-lifetime constants from which a Context is
// derived (spec.md §3 Params): logN, logQ, the Gaussian noise parameter
// sigma, and the Hamming weight h of the secret key.
type Params struct {
	LogN  int
	LogQ  int
	Sigma float64
	H     int
}

// DefaultParams mirrors HEAANBOOT/src/Params.h's default fixture
// (logN=16, logQ=1200, sigma=3.2, h=64), used as a sanity default
// (SPEC_FULL.md §5).
var DefaultParams = Params{LogN: 16, LogQ: 1200, Sigma: 3.2, H: 64}

// NewParams validates and returns a Params. Invariants (spec.md §3):
// logN >= 4, logq > 0, sigma > 0, 1 <= h <= N.
func NewParams(logN, logQ int, sigma float64, h int) (Params, error) {
	p := Params{LogN: logN, LogQ: logQ, Sigma: sigma, H: h}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks the Params invariants, returning ErrParameterInvalid
// wrapped with a description on failure.
func (p Params) Validate() error {
	if p.LogN < 4 {
		return fmt.Errorf("%w: logN must be >= 4, got %d", ErrParameterInvalid, p.LogN)
	}
	if p.LogQ <= 0 {
		return fmt.Errorf("%w: logQ must be > 0, got %d", ErrParameterInvalid, p.LogQ)
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("%w: sigma must be > 0, got %f", ErrParameterInvalid, p.Sigma)
	}
	if p.H < 1 || p.H > p.N() {
		return fmt.Errorf("%w: h must be in [1, N], got h=%d N=%d", ErrParameterInvalid, p.H, p.N())
	}
	return nil
}

// Equals reports whether p and other carry identical parameters, the way
// the teacher's Params/Parameters types compare themselves field-by-field
// via cmp.Equal rather than a hand-rolled comparison.
func (p Params) Equals(other Params) bool {
	return cmp.Equal(p, other)
}

// N returns the ring degree 2^logN.
func (p Params) N() int { return 1 << p.LogN }

// M returns 2N.
func (p Params) M() int { return 2 << p.LogN }

// Q returns 2^logQ as a big.Int.
func (p Params) Q() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(p.LogQ))
}

// securityTable is a small embedded (logQ bracket -> minimal logN) estimate
// table for RLWE security at given lambda, supplementing Params.suggestLogN
// which the original HEAAN source does not provide (SPEC_FULL.md §5). This
// is a coarse estimate, not a cryptographic guarantee; production use should
// consult the Lattice Estimator.
var securityTable = map[int]map[int]int{
	80:  {128: 10, 256: 11, 512: 12, 1024: 13, 2048: 14, 4096: 15},
	128: {128: 11, 256: 12, 512: 13, 1024: 14, 2048: 15, 4096: 16},
	192: {128: 12, 256: 13, 512: 14, 1024: 15, 2048: 16, 4096: 16},
	256: {128: 13, 256: 14, 512: 15, 1024: 16, 2048: 17, 4096: 17},
}

// SuggestLogN returns the minimum logN satisfying the embedded security
// estimate table for RLWE at the given adversarial time bound lambda (bits)
// and ciphertext modulus bit-length logq (spec.md §6
// Params.suggestLogN).
func SuggestLogN(lambda, logq int) (int, error) {
	brackets, ok := securityTable[lambda]
	if !ok {
		return 0, fmt.Errorf("%w: unsupported security level lambda=%d", ErrParameterInvalid, lambda)
	}

	bounds := []int{128, 256, 512, 1024, 2048, 4096}
	for _, b := range bounds {
		if logq <= b {
			return brackets[b], nil
		}
	}
	return brackets[4096], nil
}
