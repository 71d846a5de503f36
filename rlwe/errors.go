package rlwe

import "errors"

// Error categories from spec.md §7. All errors surface to the caller; none
// are recovered internally.
var (
	// ErrParameterInvalid: nonsensical Params (negative sizes, non-power-of-
	// two N, sigma <= 0, h > N, rotation index out of range).
	ErrParameterInvalid = errors.New("rlwe: invalid parameter")

	// ErrLevelMismatch: arithmetic op invoked on operands with different
	// (mod, cbits).
	ErrLevelMismatch = errors.New("rlwe: ciphertext level mismatch")

	// ErrBudgetExhausted: rescale or mult requested when remaining cbits is
	// not large enough.
	ErrBudgetExhausted = errors.New("rlwe: modulus budget exhausted")

	// ErrMissingKey: rotation/conjugation/mult requested before the
	// corresponding evaluation key was generated.
	ErrMissingKey = errors.New("rlwe: evaluation key not generated")

	// ErrDomainError: Newton inverse outside its convergence ball, or a
	// Taylor function evaluated outside its tabulated range.
	ErrDomainError = errors.New("rlwe: input outside valid domain")

	// ErrInternal: an invariant was violated (e.g. a coefficient fell
	// outside its centered representative range after reduction). Indicates
	// a bug, not caller misuse.
	ErrInternal = errors.New("rlwe: internal invariant violated")
)
