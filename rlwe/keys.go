package rlwe

import (
	"fmt"

	"github.com/ldsec/heaan/ring"
	"github.com/ldsec/heaan/utils/sampling"
)

// SecretKey holds the ternary, Hamming-weight-h secret polynomial
// (spec.md §3 SecretKey). Created once at key generation, never mutated.
type SecretKey struct {
	Sx *ring.Poly
}

// NewSecretKey samples a fresh secret key under ctx's parameters.
func NewSecretKey(ctx *Context, source sampling.Source) *SecretKey {
	coeffs := sampling.SampleHWT(source, ctx.N, ctx.Params.H)
	return &SecretKey{Sx: ring.NewPolyFrom(coeffs)}
}

// EvaluationKey is an encryption of a multiple of a secret polynomial, used
// to linearize or permute ciphertexts (spec.md §3 EvaluationKey): the pair
// (Ax, Bx) satisfies Bx + Ax*s = P*s' + e (mod P*Q) for some target secret
// s'. Immutable after creation.
type EvaluationKey struct {
	Ax, Bx *ring.Poly
}

// KeyKind discriminates the operation an EvaluationKey was generated for
// (spec.md §9 "Key registry").
type KeyKind int

const (
	KeyMult KeyKind = iota
	KeyConj
	KeyLeftRot
	KeyRightRot
	KeyBootLin
)

// KeyTag is the explicit key used by the evaluation-key registry: an
// operation kind plus an integer parameter (rotation amount or bootstrap
// linear-transform index; unused for Mult/Conj).
type KeyTag struct {
	Kind  KeyKind
	Param int
}

func (t KeyTag) String() string {
	switch t.Kind {
	case KeyMult:
		return "Mult"
	case KeyConj:
		return "Conj"
	case KeyLeftRot:
		return fmt.Sprintf("LeftRot(%d)", t.Param)
	case KeyRightRot:
		return fmt.Sprintf("RightRot(%d)", t.Param)
	case KeyBootLin:
		return fmt.Sprintf("BootLin(%d)", t.Param)
	default:
		return "Unknown"
	}
}

// KeyStore is the explicit evaluation-key registry (spec.md §9): a map from
// KeyTag to EvaluationKey. Lookups fail with ErrMissingKey rather than
// returning a default, and the store is freely shareable for concurrent
// reads once keys are generated (spec.md §5).
type KeyStore struct {
	keys map[KeyTag]*EvaluationKey
}

// NewKeyStore returns an empty registry.
func NewKeyStore() *KeyStore {
	return &KeyStore{keys: make(map[KeyTag]*EvaluationKey)}
}

// Set registers an evaluation key under tag, overwriting any prior entry.
func (s *KeyStore) Set(tag KeyTag, ek *EvaluationKey) {
	s.keys[tag] = ek
}

// Get looks up the evaluation key for tag, returning ErrMissingKey if it has
// not been generated.
func (s *KeyStore) Get(tag KeyTag) (*EvaluationKey, error) {
	ek, ok := s.keys[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, tag)
	}
	return ek, nil
}

// Has reports whether tag has a registered key.
func (s *KeyStore) Has(tag KeyTag) bool {
	_, ok := s.keys[tag]
	return ok
}
