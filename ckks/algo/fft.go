package algo

import (
	"math"
	"math/bits"
	"sync"

	"github.com/ldsec/heaan/rlwe"
	"github.com/ldsec/heaan/utils"
)

// FFT runs an in-place homomorphic FFT over cvec (length n, power of two),
// treating each ciphertext as one time sample: each butterfly combines a
// constant multiplication (the twiddle, baked in as a scaled plaintext
// constant) with an add, dispatched to the worker pool per butterfly
// (spec.md §4.5 fft). MultByConst raises a ciphertext's true encoded scale
// by 2^logp without touching its Cbits field, so leaving only the twiddled
// leg unrescaled would make the two legs of a butterfly share Cbits/Mod
// (pass CheckLevel) while actually sitting at different scales — the
// untouched leg would be ~2^logp too small relative to the twiddled one.
// fftRaw instead multiplies BOTH legs by a scale-matched constant (the
// twiddle on one, a unit constant on the other) every stage, so both legs'
// true scale grows by the same 2^logp while their Cbits stays equal; the accumulated
// log2(n) scale factors of logp bits each are then collapsed into one
// rescale at the end.
func (a *SchemeAlgo) FFT(cvec []*rlwe.Ciphertext, n, logp int) error {
	if err := a.fftRaw(cvec, n, logp, true); err != nil {
		return err
	}
	return a.rescaleAll(cvec, logp*log2(n))
}

// FFTInv is the inverse transform, dividing the final result by n
// (spec.md §4.5 fftInv).
func (a *SchemeAlgo) FFTInv(cvec []*rlwe.Ciphertext, n, logp int) error {
	if err := a.fftRaw(cvec, n, logp, false); err != nil {
		return err
	}
	if err := a.rescaleAll(cvec, logp*log2(n)); err != nil {
		return err
	}
	return a.scaleAll(cvec, 1.0/float64(n), logp)
}

// FFTInvLazy is FFTInv without the final division by n; the caller is
// expected to absorb the 1/n scale elsewhere (spec.md §4.5 fftInvLazy).
func (a *SchemeAlgo) FFTInvLazy(cvec []*rlwe.Ciphertext, n, logp int) error {
	if err := a.fftRaw(cvec, n, logp, false); err != nil {
		return err
	}
	return a.rescaleAll(cvec, logp*log2(n))
}

func log2(n int) int {
	return bits.Len(uint(n)) - 1
}

// forEach runs work(i) for every index in [0,len) across the worker pool,
// collecting the first error encountered.
func forEach(n int, work func(i int) error) error {
	var firstErr error
	var mu sync.Mutex
	utils.RunGoRoutines(n, func(start, end int) {
		for i := start; i < end; i++ {
			if err := work(i); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
		}
	})
	return firstErr
}

func (a *SchemeAlgo) rescaleAll(cvec []*rlwe.Ciphertext, delta int) error {
	if delta == 0 {
		return nil
	}
	s := a.scheme
	return forEach(len(cvec), func(i int) error {
		out, err := s.ReScaleBy(cvec[i], delta)
		if err != nil {
			return err
		}
		cvec[i] = out
		return nil
	})
}

func (a *SchemeAlgo) scaleAll(cvec []*rlwe.Ciphertext, factor float64, logp int) error {
	s := a.scheme
	return forEach(len(cvec), func(i int) error {
		out, err := s.MultByConst(cvec[i], complex(factor, 0), logp)
		if err != nil {
			return err
		}
		out, err = s.ReScaleBy(out, logp)
		if err != nil {
			return err
		}
		cvec[i] = out
		return nil
	})
}

// fftRaw runs the bit-reversed iterative Cooley-Tukey butterfly network over
// cvec, using a twiddle derived from the Context's M (spec.md §4.1's
// primitive 2M-th roots of unity, here in float64 since the ciphertext
// constant multiplication already carries its own fixed-point scale).
func (a *SchemeAlgo) fftRaw(cvec []*rlwe.Ciphertext, n, logp int, isForward bool) error {
	s := a.scheme
	ctx := s.Context()
	M := ctx.M

	logn := log2(n)
	for i := 0; i < n; i++ {
		j := int(utils.BitReverse64(uint64(i), logn))
		if i < j {
			cvec[i], cvec[j] = cvec[j], cvec[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		half := length / 2
		stride := M / length

		for i := 0; i < n; i += length {
			i := i
			err := forEach(half, func(j int) error {
				idx := j * stride
				if !isForward {
					idx = -idx
				}
				angle := 2 * math.Pi * float64(idx) / float64(M)
				w := complex(math.Cos(angle), math.Sin(angle))

				u := cvec[i+j]
				v := cvec[i+j+half]

				uScaled, err := s.MultByConst(u, complex(1, 0), logp)
				if err != nil {
					return err
				}
				t, err := s.MultByConst(v, w, logp)
				if err != nil {
					return err
				}

				sum, err := s.Add(uScaled, t)
				if err != nil {
					return err
				}
				diff, err := s.Sub(uScaled, t)
				if err != nil {
					return err
				}
				cvec[i+j] = sum
				cvec[i+j+half] = diff
				return nil
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
