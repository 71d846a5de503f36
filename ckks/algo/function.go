package algo

import (
	"fmt"

	"github.com/ldsec/heaan/rlwe"
)

// FunctionName selects a precomputed Taylor polynomial for Function/
// FunctionLazy (spec.md §4.5 function: "coefficients for EXP, LOG,
// SIGMOID"). SIN is the odd-term sine series the bootstrapper's
// removeIpart step evaluates.
type FunctionName int

const (
	EXP FunctionName = iota
	LOG
	SIGMOID
	SIN
)

// taylorCoeffs returns the first (degree+1) Maclaurin coefficients of name,
// c[0] + c[1]*x + c[2]*x^2 + ....
//
// EXP and LOG have closed forms (1/k! and the alternating harmonic series
// for ln(1+x)); SIGMOID's Maclaurin series involves tangent numbers and has
// no simple closed form, so its coefficients up to x^9 are hardcoded from
// the standard expansion of the logistic function.
func taylorCoeffs(name FunctionName, degree int) ([]float64, error) {
	switch name {
	case EXP:
		c := make([]float64, degree+1)
		fact := 1.0
		for k := 0; k <= degree; k++ {
			if k > 0 {
				fact *= float64(k)
			}
			c[k] = 1.0 / fact
		}
		return c, nil
	case LOG:
		c := make([]float64, degree+1)
		for k := 1; k <= degree; k++ {
			sign := 1.0
			if k%2 == 0 {
				sign = -1.0
			}
			c[k] = sign / float64(k)
		}
		return c, nil
	case SIGMOID:
		full := []float64{
			0.5, 0.25, 0,
			-1.0 / 48, 0,
			1.0 / 480, 0,
			-17.0 / 80640, 0,
			31.0 / 1451520,
		}
		if degree+1 > len(full) {
			return nil, fmt.Errorf("%w: sigmoid table only covers degree <= %d", rlwe.ErrDomainError, len(full)-1)
		}
		return full[:degree+1], nil
	case SIN:
		c := make([]float64, degree+1)
		fact := 1.0
		for k := 0; k <= degree; k++ {
			if k > 0 {
				fact *= float64(k)
			}
			if k%2 == 0 {
				c[k] = 0
				continue
			}
			sign := 1.0
			if (k/2)%2 == 1 {
				sign = -1.0
			}
			c[k] = sign / fact
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown function", rlwe.ErrParameterInvalid)
	}
}

// Function evaluates the degree-term Taylor polynomial for name on c at
// scale logp, via Horner's method with a rescale after every multiply
// (spec.md §4.5 function).
func (a *SchemeAlgo) Function(c *rlwe.Ciphertext, name FunctionName, logp, degree int) (*rlwe.Ciphertext, error) {
	return a.evalPoly(c, name, logp, degree, true)
}

// FunctionLazy is Function without the final rescale (spec.md §4.5
// functionLazy).
func (a *SchemeAlgo) FunctionLazy(c *rlwe.Ciphertext, name FunctionName, logp, degree int) (*rlwe.Ciphertext, error) {
	return a.evalPoly(c, name, logp, degree, false)
}

func (a *SchemeAlgo) evalPoly(c *rlwe.Ciphertext, name FunctionName, logp, degree int, finalRescale bool) (*rlwe.Ciphertext, error) {
	coeffs, err := taylorCoeffs(name, degree)
	if err != nil {
		return nil, err
	}

	if degree < 1 {
		return nil, fmt.Errorf("%w: function degree must be >= 1, got %d", rlwe.ErrParameterInvalid, degree)
	}

	s := a.scheme

	// The first Horner step is coeffs[degree]*x, a constant multiplication;
	// every later step multiplies the running result by x.
	prod, err := s.MultByConst(c, complex(coeffs[degree], 0), logp)
	if err != nil {
		return nil, err
	}

	var result *rlwe.Ciphertext
	cCur := c
	for i := degree - 1; i >= 0; i-- {
		if i < degree-1 {
			var lc *rlwe.Ciphertext
			result, lc, err = matchLevel(s, result, cCur)
			if err != nil {
				return nil, err
			}
			cCur = lc

			prod, err = s.Mult(result, cCur, logp)
			if err != nil {
				return nil, err
			}
		}

		isLast := i == 0
		if isLast && !finalRescale {
			result = s.AddConst(prod, complex(coeffs[i], 0), 2*logp)
			continue
		}

		result, err = s.ReScaleBy(prod, logp)
		if err != nil {
			return nil, err
		}
		result = s.AddConst(result, complex(coeffs[i], 0), logp)
	}
	return result, nil
}
