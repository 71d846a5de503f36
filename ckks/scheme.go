package ckks

import (
	"fmt"
	"math/big"

	"github.com/ldsec/heaan/ring"
	"github.com/ldsec/heaan/rlwe"
	"github.com/ldsec/heaan/utils/sampling"
)

// publicKey is the encryption-of-zero pair (Ax, Bx) used by Encrypt:
// Bx + Ax*s = e (mod Q), generated once per Scheme.
type publicKey struct {
	Ax, Bx *ring.Poly
}

// Scheme implements spec.md §4.4: encryption, decryption and the
// homomorphic arithmetic operators, plus the evaluation-key registry
// spec.md §9 calls out as "an explicit map ... on Scheme".
type Scheme struct {
	ctx    *rlwe.Context
	sk     *rlwe.SecretKey
	ks     *rlwe.KeySwitcher
	keys   *rlwe.KeyStore
	enc    *Encoder
	pk     *publicKey
	source sampling.Source
}

// NewScheme builds a Scheme bound to sk and ctx (spec.md §6 "Scheme(secretKey,
// context)"), using source as the randomness source for encryption and key
// generation.
func NewScheme(sk *rlwe.SecretKey, ctx *rlwe.Context, source sampling.Source) *Scheme {
	s := &Scheme{
		ctx:    ctx,
		sk:     sk,
		ks:     rlwe.NewKeySwitcher(ctx),
		keys:   rlwe.NewKeyStore(),
		enc:    NewEncoder(ctx),
		source: source,
	}
	s.pk = s.genPublicKey()
	return s
}

// genPublicKey builds an encryption of zero under sk: Bx = -Ax*s + e
// (mod Q), Ax uniform. Used by Encrypt so a fresh ciphertext's noise does
// not directly reveal the secret via a known-plaintext pair.
func (s *Scheme) genPublicKey() *publicKey {
	ctx := s.ctx
	ax := ring.NewPolyFrom(sampling.SampleUniform(s.source, ctx.N, ctx.Q))
	e := ring.NewPolyFrom(sampling.SampleGaussPoly(s.source, ctx.N, ctx.Params.Sigma))

	axs := ring.NewPoly(ctx.N)
	ctx.Ring.MulCoeffs(ax, s.sk.Sx, ctx.Q, axs)

	bx := ring.NewPoly(ctx.N)
	ctx.Ring.Neg(axs, ctx.Q, bx)
	ctx.Ring.Add(bx, e, ctx.Q, bx)

	return &publicKey{Ax: ax, Bx: bx}
}

// Encoder exposes the Scheme's bound Encoder.
func (s *Scheme) Encoder() *Encoder { return s.enc }

// Context exposes the Scheme's bound Context.
func (s *Scheme) Context() *rlwe.Context { return s.ctx }

// Keys exposes the Scheme's evaluation-key registry, for callers (e.g.
// bootstrapping) that need to register additional key tags.
func (s *Scheme) Keys() *rlwe.KeyStore { return s.keys }

// Encrypt encodes msg at scale logp and modulus logq, then encrypts it
// under the Scheme's public key (spec.md §4.4 encrypt): ax = vx*a_pk + e1,
// bx = vx*b_pk + e0 + v.mx (mod 2^logq), vx sampled ZO, e0/e1 sampled Gauss.
func (s *Scheme) Encrypt(msg []complex128, slots, logp, logq int) (*rlwe.Ciphertext, error) {
	pt, err := s.enc.Encode(msg, slots, logp, logq)
	if err != nil {
		return nil, err
	}

	ctx := s.ctx
	mod := pt.Mod

	vx := ring.NewPolyFrom(sampling.SampleZO(s.source, ctx.N))
	e0 := ring.NewPolyFrom(sampling.SampleGaussPoly(s.source, ctx.N, ctx.Params.Sigma))
	e1 := ring.NewPolyFrom(sampling.SampleGaussPoly(s.source, ctx.N, ctx.Params.Sigma))

	ax := ring.NewPoly(ctx.N)
	ctx.Ring.MulCoeffs(vx, s.pk.Ax, mod, ax)
	ctx.Ring.Add(ax, e1, mod, ax)

	bx := ring.NewPoly(ctx.N)
	ctx.Ring.MulCoeffs(vx, s.pk.Bx, mod, bx)
	ctx.Ring.Add(bx, e0, mod, bx)
	ctx.Ring.Add(bx, pt.Mx, mod, bx)

	return &rlwe.Ciphertext{Ax: ax, Bx: bx, Mod: mod, Cbits: logq, Slots: slots, IsComplex: pt.IsComplex}, nil
}

// DecryptMsg returns the plaintext polynomial without decoding
// (spec.md §4.4 decryptMsg, "used for diagnostics"):
// mx = c.bx + c.ax*sk (mod c.mod).
func (s *Scheme) DecryptMsg(c *rlwe.Ciphertext) *rlwe.Plaintext {
	ctx := s.ctx
	mx := ring.NewPoly(ctx.N)
	ctx.Ring.MulCoeffs(c.Ax, s.sk.Sx, c.Mod, mx)
	ctx.Ring.Add(mx, c.Bx, c.Mod, mx)
	return &rlwe.Plaintext{Mx: mx, Mod: c.Mod, Cbits: c.Cbits, Slots: c.Slots, IsComplex: c.IsComplex}
}

// Decrypt decrypts c and decodes at scale logp (spec.md §4.4 decrypt).
func (s *Scheme) Decrypt(c *rlwe.Ciphertext, logp int) ([]complex128, error) {
	pt := s.DecryptMsg(c)
	return s.enc.Decode(pt, logp)
}

// Add returns c1 + c2 coefficient-wise (spec.md §4.4).
func (s *Scheme) Add(c1, c2 *rlwe.Ciphertext) (*rlwe.Ciphertext, error) {
	if err := rlwe.CheckLevel(c1, c2); err != nil {
		return nil, err
	}
	ctx := s.ctx
	out := &rlwe.Ciphertext{Ax: ring.NewPoly(ctx.N), Bx: ring.NewPoly(ctx.N), Mod: c1.Mod, Cbits: c1.Cbits, Slots: c1.Slots, IsComplex: c1.IsComplex || c2.IsComplex}
	ctx.Ring.Add(c1.Ax, c2.Ax, c1.Mod, out.Ax)
	ctx.Ring.Add(c1.Bx, c2.Bx, c1.Mod, out.Bx)
	return out, nil
}

// Sub returns c1 - c2 coefficient-wise (spec.md §4.4).
func (s *Scheme) Sub(c1, c2 *rlwe.Ciphertext) (*rlwe.Ciphertext, error) {
	if err := rlwe.CheckLevel(c1, c2); err != nil {
		return nil, err
	}
	ctx := s.ctx
	out := &rlwe.Ciphertext{Ax: ring.NewPoly(ctx.N), Bx: ring.NewPoly(ctx.N), Mod: c1.Mod, Cbits: c1.Cbits, Slots: c1.Slots, IsComplex: c1.IsComplex || c2.IsComplex}
	ctx.Ring.Sub(c1.Ax, c2.Ax, c1.Mod, out.Ax)
	ctx.Ring.Sub(c1.Bx, c2.Bx, c1.Mod, out.Bx)
	return out, nil
}

// Neg returns -c coefficient-wise (spec.md §4.4).
func (s *Scheme) Neg(c *rlwe.Ciphertext) *rlwe.Ciphertext {
	ctx := s.ctx
	out := &rlwe.Ciphertext{Ax: ring.NewPoly(ctx.N), Bx: ring.NewPoly(ctx.N), Mod: c.Mod, Cbits: c.Cbits, Slots: c.Slots, IsComplex: c.IsComplex}
	ctx.Ring.Neg(c.Ax, c.Mod, out.Ax)
	ctx.Ring.Neg(c.Bx, c.Mod, out.Bx)
	return out
}

// AddConst adds a scaled constant to bx[0] (spec.md §4.4 addConst).
func (s *Scheme) AddConst(c *rlwe.Ciphertext, z complex128, logp int) *rlwe.Ciphertext {
	out := c.Copy()
	scaled := encodeScalar(z, logp)
	out.Bx.Coeffs[0].Add(out.Bx.Coeffs[0], scaled)
	s.ctx.Ring.Reduce(out.Bx, out.Mod, out.Bx)
	return out
}

// MultByConst multiplies both ax and bx by the constant z, scaled to logp
// bits (spec.md §4.4 multByConst). A real-only z is applied as a direct
// scalar multiply (correct because the canonical embedding is linear over
// the reals); a complex z is instead encoded as a constant plaintext
// polynomial across all of c's slots and applied via a ring multiplication,
// since multiplying every slot by a non-real constant does not correspond
// to scaling the coefficient polynomial by a single real number. Either way
// the result's scale is multiplied by 2^logp; a rescale by logp must follow.
func (s *Scheme) MultByConst(c *rlwe.Ciphertext, z complex128, logp int) (*rlwe.Ciphertext, error) {
	ctx := s.ctx

	if imag(z) == 0 {
		scaled := encodeScalar(z, logp)
		out := &rlwe.Ciphertext{Ax: ring.NewPoly(ctx.N), Bx: ring.NewPoly(ctx.N), Mod: c.Mod, Cbits: c.Cbits, Slots: c.Slots, IsComplex: c.IsComplex}
		ctx.Ring.MulScalarBigInt(c.Ax, scaled, c.Mod, out.Ax)
		ctx.Ring.MulScalarBigInt(c.Bx, scaled, c.Mod, out.Bx)
		return out, nil
	}

	constVec := make([]complex128, c.Slots)
	for i := range constVec {
		constVec[i] = z
	}
	zpt, err := s.enc.Encode(constVec, c.Slots, logp, c.Cbits)
	if err != nil {
		return nil, err
	}

	out := &rlwe.Ciphertext{Ax: ring.NewPoly(ctx.N), Bx: ring.NewPoly(ctx.N), Mod: c.Mod, Cbits: c.Cbits, Slots: c.Slots, IsComplex: true}
	ctx.Ring.MulCoeffs(c.Ax, zpt.Mx, c.Mod, out.Ax)
	ctx.Ring.MulCoeffs(c.Bx, zpt.Mx, c.Mod, out.Bx)
	return out, nil
}

// encodeScalar scales the real part of a constant by 2^logp and rounds it,
// for use as a plain big.Int multiplier; the imaginary part is ignored.
func encodeScalar(z complex128, logp int) *big.Int {
	r := real(z)
	return roundFloat(r * pow2(logp))
}

func pow2(logp int) float64 {
	if logp >= 0 {
		f := 1.0
		for i := 0; i < logp; i++ {
			f *= 2
		}
		return f
	}
	f := 1.0
	for i := 0; i < -logp; i++ {
		f /= 2
	}
	return f
}

// MultByVector multiplies c by a per-slot diagonal constant vector
// (length c.Slots), encoding vec as a plaintext and applying it via a ring
// multiplication. This generalizes MultByConst's complex-scalar path to a
// genuine per-slot constant, which the Halevi-Shoup diagonal method used by
// bootstrapping's linear transforms (spec.md §4.6) needs.
func (s *Scheme) MultByVector(c *rlwe.Ciphertext, vec []complex128, logp int) (*rlwe.Ciphertext, error) {
	if len(vec) != c.Slots {
		return nil, fmt.Errorf("%w: diagonal length %d != ciphertext slots %d", rlwe.ErrParameterInvalid, len(vec), c.Slots)
	}

	ctx := s.ctx
	zpt, err := s.enc.Encode(vec, c.Slots, logp, c.Cbits)
	if err != nil {
		return nil, err
	}

	out := &rlwe.Ciphertext{Ax: ring.NewPoly(ctx.N), Bx: ring.NewPoly(ctx.N), Mod: c.Mod, Cbits: c.Cbits, Slots: c.Slots, IsComplex: true}
	ctx.Ring.MulCoeffs(c.Ax, zpt.Mx, c.Mod, out.Ax)
	ctx.Ring.MulCoeffs(c.Bx, zpt.Mx, c.Mod, out.Bx)
	return out, nil
}

// MultByMonomial multiplies c by X^k modulo X^N+1 (spec.md §4.4
// multByMonomial).
func (s *Scheme) MultByMonomial(c *rlwe.Ciphertext, k int) *rlwe.Ciphertext {
	ctx := s.ctx
	out := &rlwe.Ciphertext{Ax: ring.NewPoly(ctx.N), Bx: ring.NewPoly(ctx.N), Mod: c.Mod, Cbits: c.Cbits, Slots: c.Slots, IsComplex: c.IsComplex}
	ctx.Ring.MulByMonomial(c.Ax, k, c.Mod, out.Ax)
	ctx.Ring.MulByMonomial(c.Bx, k, c.Mod, out.Bx)
	return out
}

// Imult multiplies both parts by the encoded constant i<<logp
// (spec.md §4.4 imult).
func (s *Scheme) Imult(c *rlwe.Ciphertext, logp int) (*rlwe.Ciphertext, error) {
	return s.MultByConst(c, complex(0, 1), logp)
}

// Mult multiplies c1 and c2 and relinearizes using the Mult evaluation key
// (spec.md §4.4 mult). The result's scale is doubled; callers must rescale
// by logp afterward.
func (s *Scheme) Mult(c1, c2 *rlwe.Ciphertext, logp int) (*rlwe.Ciphertext, error) {
	if err := rlwe.CheckLevel(c1, c2); err != nil {
		return nil, err
	}
	ek, err := s.keys.Get(rlwe.KeyTag{Kind: rlwe.KeyMult})
	if err != nil {
		return nil, err
	}

	ctx := s.ctx
	mod := c1.Mod

	d0 := ring.NewPoly(ctx.N) // b1*b2
	d1 := ring.NewPoly(ctx.N) // a1*b2 + a2*b1
	d2 := ring.NewPoly(ctx.N) // a1*a2

	ctx.Ring.MulCoeffs(c1.Bx, c2.Bx, mod, d0)
	ctx.Ring.MulCoeffs(c1.Ax, c2.Ax, mod, d2)

	t1 := ring.NewPoly(ctx.N)
	t2 := ring.NewPoly(ctx.N)
	ctx.Ring.MulCoeffs(c1.Ax, c2.Bx, mod, t1)
	ctx.Ring.MulCoeffs(c2.Ax, c1.Bx, mod, t2)
	ctx.Ring.Add(t1, t2, mod, d1)

	relinAx, relinBx := s.ks.Switch(d2, ek)

	ax := ring.NewPoly(ctx.N)
	bx := ring.NewPoly(ctx.N)
	ctx.Ring.Add(d1, relinAx, mod, ax)
	ctx.Ring.Add(d0, relinBx, mod, bx)

	return &rlwe.Ciphertext{Ax: ax, Bx: bx, Mod: mod, Cbits: c1.Cbits, Slots: c1.Slots, IsComplex: c1.IsComplex || c2.IsComplex}, nil
}

// ReScaleBy divides both polynomials by 2^delta with rounding, reducing
// cbits and mod by delta (spec.md §4.4 reScaleBy).
func (s *Scheme) ReScaleBy(c *rlwe.Ciphertext, delta int) (*rlwe.Ciphertext, error) {
	if err := rlwe.CheckBudget(c, delta); err != nil {
		return nil, err
	}
	ctx := s.ctx
	newMod := new(big.Int).Rsh(c.Mod, uint(delta))
	out := &rlwe.Ciphertext{Ax: ring.NewPoly(ctx.N), Bx: ring.NewPoly(ctx.N), Mod: newMod, Cbits: c.Cbits - delta, Slots: c.Slots, IsComplex: c.IsComplex}
	ctx.Ring.DivRoundBy(c.Ax, uint(delta), newMod, out.Ax)
	ctx.Ring.DivRoundBy(c.Bx, uint(delta), newMod, out.Bx)
	return out, nil
}

// ModDownBy reduces the modulus without scaling (spec.md §4.4 modDownBy).
func (s *Scheme) ModDownBy(c *rlwe.Ciphertext, delta int) (*rlwe.Ciphertext, error) {
	if err := rlwe.CheckBudget(c, delta); err != nil {
		return nil, err
	}
	ctx := s.ctx
	newMod := new(big.Int).Rsh(c.Mod, uint(delta))
	out := &rlwe.Ciphertext{Ax: ring.NewPoly(ctx.N), Bx: ring.NewPoly(ctx.N), Mod: newMod, Cbits: c.Cbits - delta, Slots: c.Slots, IsComplex: c.IsComplex}
	ctx.Ring.Reduce(c.Ax, newMod, out.Ax)
	ctx.Ring.Reduce(c.Bx, newMod, out.Bx)
	return out, nil
}

// galoisElement computes 5^r mod M via repeated squaring; rotations and
// rotation-key generation call it each time rather than reading RotGroup.
func galoisElement(M, r int) int {
	base, exp, mod := 5, ((r%M)+M)%M, M
	result := 1
	b := base % mod
	for exp > 0 {
		if exp&1 == 1 {
			result = (result * b) % mod
		}
		b = (b * b) % mod
		exp >>= 1
	}
	return result
}

// leftRotGalEl returns sigma's exponent for a left rotation by r slots.
func leftRotGalEl(ctx *rlwe.Context, r int) int {
	return galoisElement(ctx.M, r)
}

// rightRotGalEl returns sigma's exponent for a right rotation by r slots
// (the inverse automorphism of a left rotation by r).
func rightRotGalEl(ctx *rlwe.Context, r int) int {
	M := ctx.M
	g := galoisElement(M, r)
	// inverse of g modulo M via extended Euclid (g is always odd, coprime
	// to M which is a power of two).
	return modInverse(g, M)
}

func modInverse(a, m int) int {
	a = ((a % m) + m) % m
	g, x, _ := extGCD(a, m)
	if g != 1 {
		panic("rlwe: galois element not invertible")
	}
	return ((x % m) + m) % m
}

// extGCD returns (g, x, y) such that a*x + b*y = g = gcd(a, b).
func extGCD(a, b int) (int, int, int) {
	if b == 0 {
		return a, 1, 0
	}
	g, x1, y1 := extGCD(b, a%b)
	return g, y1, x1 - (a/b)*y1
}

// leftRotateByPo2 applies sigma_{5^{2^k}} then key-switches back to the
// Scheme's secret key, using the rotation key tagged LeftRot(2^k)
// (spec.md §4.4 leftRotateByPo2).
func (s *Scheme) leftRotateByPo2(c *rlwe.Ciphertext, logK int) (*rlwe.Ciphertext, error) {
	r := 1 << logK
	tag := rlwe.KeyTag{Kind: rlwe.KeyLeftRot, Param: r}
	ek, err := s.keys.Get(tag)
	if err != nil {
		return nil, err
	}
	return s.automorphismAndSwitch(c, galoisElement(s.ctx.M, r), ek)
}

// rightRotateByPo2 is the right-rotation counterpart of leftRotateByPo2.
func (s *Scheme) rightRotateByPo2(c *rlwe.Ciphertext, logK int) (*rlwe.Ciphertext, error) {
	r := 1 << logK
	tag := rlwe.KeyTag{Kind: rlwe.KeyRightRot, Param: r}
	ek, err := s.keys.Get(tag)
	if err != nil {
		return nil, err
	}
	return s.automorphismAndSwitch(c, rightRotGalEl(s.ctx, r), ek)
}

// LeftRotate performs a composite left rotation by r slots, decomposing r
// into nonzero bits and chaining leftRotateByPo2 calls (spec.md §4.4:
// "Composite rotations decompose into nonzero bits of the rotation count").
func (s *Scheme) LeftRotate(c *rlwe.Ciphertext, r int) (*rlwe.Ciphertext, error) {
	if c.Slots <= 0 {
		return nil, fmt.Errorf("%w: ciphertext has no slots", rlwe.ErrParameterInvalid)
	}
	r = ((r % c.Slots) + c.Slots) % c.Slots
	out := c
	for logK := 0; r > 0; logK, r = logK+1, r>>1 {
		if r&1 == 1 {
			var err error
			out, err = s.leftRotateByPo2(out, logK)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// RightRotate performs a composite right rotation by r slots.
func (s *Scheme) RightRotate(c *rlwe.Ciphertext, r int) (*rlwe.Ciphertext, error) {
	if c.Slots <= 0 {
		return nil, fmt.Errorf("%w: ciphertext has no slots", rlwe.ErrParameterInvalid)
	}
	r = ((r % c.Slots) + c.Slots) % c.Slots
	out := c
	for logK := 0; r > 0; logK, r = logK+1, r>>1 {
		if r&1 == 1 {
			var err error
			out, err = s.rightRotateByPo2(out, logK)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// Conjugate applies X -> X^{-1} (exponent 2N-1) then key-switches with the
// conjugation key (spec.md §4.4 conjugate).
func (s *Scheme) Conjugate(c *rlwe.Ciphertext) (*rlwe.Ciphertext, error) {
	ek, err := s.keys.Get(rlwe.KeyTag{Kind: rlwe.KeyConj})
	if err != nil {
		return nil, err
	}
	return s.automorphismAndSwitch(c, 2*s.ctx.N-1, ek)
}

// automorphismAndSwitch applies the Galois automorphism X -> X^galEl to both
// ax and bx, then key-switches the permuted ax component back under the
// Scheme's own secret key using ek.
func (s *Scheme) automorphismAndSwitch(c *rlwe.Ciphertext, galEl int, ek *rlwe.EvaluationKey) (*rlwe.Ciphertext, error) {
	ctx := s.ctx

	permAx := ring.NewPoly(ctx.N)
	permBx := ring.NewPoly(ctx.N)
	ctx.Ring.Automorphism(c.Ax, galEl, c.Mod, permAx)
	ctx.Ring.Automorphism(c.Bx, galEl, c.Mod, permBx)

	swAx, swBx := s.ks.Switch(permAx, ek)

	ax := ring.NewPoly(ctx.N)
	bx := ring.NewPoly(ctx.N)
	ctx.Ring.Reduce(swAx, c.Mod, ax)
	ctx.Ring.Add(permBx, swBx, c.Mod, bx)

	return &rlwe.Ciphertext{Ax: ax, Bx: bx, Mod: c.Mod, Cbits: c.Cbits, Slots: c.Slots, IsComplex: c.IsComplex}, nil
}

// NormalizeAndEqual centers every coefficient of c in the current modulus
// in place (spec.md §6 normalizeAndEqual).
func (s *Scheme) NormalizeAndEqual(c *rlwe.Ciphertext) {
	s.ctx.Ring.Reduce(c.Ax, c.Mod, c.Ax)
	s.ctx.Ring.Reduce(c.Bx, c.Mod, c.Bx)
}

// AddConjKey generates and registers the conjugation evaluation key.
func (s *Scheme) AddConjKey() {
	ctx := s.ctx
	sConj := ring.NewPoly(ctx.N)
	ctx.Ring.Automorphism(s.sk.Sx, 2*ctx.N-1, ctx.Q, sConj)
	ek := s.ks.GenEvaluationKey(s.sk, sConj, s.source)
	s.keys.Set(rlwe.KeyTag{Kind: rlwe.KeyConj}, ek)
}

// AddMultKey generates and registers the relinearization key (sPrime = s^2).
func (s *Scheme) AddMultKey() {
	ctx := s.ctx
	s2 := ring.NewPoly(ctx.N)
	ctx.Ring.MulCoeffs(s.sk.Sx, s.sk.Sx, ctx.Q, s2)
	ek := s.ks.GenEvaluationKey(s.sk, s2, s.source)
	s.keys.Set(rlwe.KeyTag{Kind: rlwe.KeyMult}, ek)
}

// AddLeftRotKeys generates and registers left-rotation keys for every
// power-of-two amount up to N/2 (spec.md §6 addLeftRotKeys).
func (s *Scheme) AddLeftRotKeys() {
	ctx := s.ctx
	for r := 1; r < ctx.N/2; r <<= 1 {
		sRot := ring.NewPoly(ctx.N)
		ctx.Ring.Automorphism(s.sk.Sx, galoisElement(ctx.M, r), ctx.Q, sRot)
		ek := s.ks.GenEvaluationKey(s.sk, sRot, s.source)
		s.keys.Set(rlwe.KeyTag{Kind: rlwe.KeyLeftRot, Param: r}, ek)
	}
}

// AddRightRotKeys generates and registers right-rotation keys for every
// power-of-two amount up to N/2 (spec.md §6 addRightRotKeys).
func (s *Scheme) AddRightRotKeys() {
	ctx := s.ctx
	for r := 1; r < ctx.N/2; r <<= 1 {
		sRot := ring.NewPoly(ctx.N)
		ctx.Ring.Automorphism(s.sk.Sx, rightRotGalEl(ctx, r), ctx.Q, sRot)
		ek := s.ks.GenEvaluationKey(s.sk, sRot, s.source)
		s.keys.Set(rlwe.KeyTag{Kind: rlwe.KeyRightRot, Param: r}, ek)
	}
}

// AddRotKey registers a single left-rotation key for an arbitrary amount r
// in [1, N/2), beyond the power-of-two set AddLeftRotKeys/AddRightRotKeys
// generate. LeftRotate and RightRotate only look up power-of-two keys, so a
// key registered here for a non-power-of-two r is not used by them.
func (s *Scheme) AddRotKey(r int) error {
	ctx := s.ctx
	if r <= 0 || r >= ctx.N/2 {
		return fmt.Errorf("%w: rotation index r=%d must be in [1, N/2)", rlwe.ErrParameterInvalid, r)
	}
	sRot := ring.NewPoly(ctx.N)
	ctx.Ring.Automorphism(s.sk.Sx, galoisElement(ctx.M, r), ctx.Q, sRot)
	ek := s.ks.GenEvaluationKey(s.sk, sRot, s.source)
	s.keys.Set(rlwe.KeyTag{Kind: rlwe.KeyLeftRot, Param: r}, ek)
	return nil
}
