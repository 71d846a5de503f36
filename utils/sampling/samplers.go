package sampling

import (
	"math"
	"math/big"
)

// GaussSampler draws polynomial coefficients from a discrete Gaussian,
// rounded from a continuous Normal(0, sigma) (spec.md §4.2 sampleGauss).
type GaussSampler struct {
	source Source
	sigma  float64
}

func NewGaussSampler(source Source, sigma float64) *GaussSampler {
	return &GaussSampler{source: source, sigma: sigma}
}

// Sample returns n coefficients, each round(Normal(0, sigma)).
func (g *GaussSampler) Sample(n int) []*big.Int {
	out := make([]*big.Int, n)
	for i := 0; i < n; i += 2 {
		z0, z1 := g.boxMuller()
		out[i] = roundToBigInt(z0 * g.sigma)
		if i+1 < n {
			out[i+1] = roundToBigInt(z1 * g.sigma)
		}
	}
	return out
}

// boxMuller draws two independent standard-Normal samples from the
// underlying CSPRNG source using the Box-Muller transform.
func (g *GaussSampler) boxMuller() (float64, float64) {
	u1 := g.uniformOpenUnit()
	u2 := g.uniformOpenUnit()
	r := math.Sqrt(-2 * math.Log(u1))
	theta := 2 * math.Pi * u2
	return r * math.Cos(theta), r * math.Sin(theta)
}

// uniformOpenUnit returns a uniform float64 in (0, 1), never exactly 0 (so
// log() in boxMuller never diverges).
func (g *GaussSampler) uniformOpenUnit() float64 {
	var buf [8]byte
	for {
		if _, err := g.source.Read(buf[:]); err != nil {
			panic(err)
		}
		v := uint64(0)
		for _, b := range buf {
			v = (v << 8) | uint64(b)
		}
		// 53 bits of mantissa, shifted into (0,1).
		f := float64(v>>11) / float64(1<<53)
		if f > 0 {
			return f
		}
	}
}

func roundToBigInt(f float64) *big.Int {
	return big.NewInt(int64(math.Round(f)))
}

// randomUint64 draws a uniform 64-bit value from source.
func randomUint64(source Source) uint64 {
	var buf [8]byte
	if _, err := source.Read(buf[:]); err != nil {
		panic(err)
	}
	v := uint64(0)
	for _, b := range buf {
		v = (v << 8) | uint64(b)
	}
	return v
}

// randomIntn draws a uniform integer in [0, n).
func randomIntn(source Source, n int) int {
	if n <= 0 {
		return 0
	}
	return int(randomUint64(source) % uint64(n))
}

// SampleGaussPoly is a convenience wrapper returning n Gaussian coefficients
// with standard deviation sigma, for callers that don't need to keep a
// GaussSampler around.
func SampleGaussPoly(source Source, n int, sigma float64) []*big.Int {
	return NewGaussSampler(source, sigma).Sample(n)
}

// SampleHWT produces n ternary coefficients with exactly h nonzero
// positions (uniformly chosen without replacement), each nonzero uniformly
// ±1 (spec.md §4.2 sampleHWT, used for the Hamming-weight secret key).
func SampleHWT(source Source, n, h int) []*big.Int {
	if h > n {
		h = n
	}
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = big.NewInt(0)
	}

	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	// Fisher-Yates partial shuffle: pick h distinct positions.
	for i := 0; i < h; i++ {
		j := i + randomIntn(source, n-i)
		positions[i], positions[j] = positions[j], positions[i]
		if randomIntn(source, 2) == 0 {
			out[positions[i]] = big.NewInt(1)
		} else {
			out[positions[i]] = big.NewInt(-1)
		}
	}
	return out
}

// SampleZO produces n coefficients, each independently 0 with probability
// 1/2 and ±1 each with probability 1/4 (spec.md §4.2 sampleZO).
func SampleZO(source Source, n int) []*big.Int {
	out := make([]*big.Int, n)
	for i := range out {
		switch randomIntn(source, 4) {
		case 0:
			out[i] = big.NewInt(1)
		case 1:
			out[i] = big.NewInt(-1)
		default:
			out[i] = big.NewInt(0)
		}
	}
	return out
}

// SampleBinary produces n coefficients in {0,1}. If h >= 0, exactly h of
// them are 1 (uniformly chosen positions); otherwise each is an independent
// fair coin (spec.md §4.2 sampleBinary).
func SampleBinary(source Source, n, h int) []*big.Int {
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = big.NewInt(0)
	}
	if h < 0 {
		for i := range out {
			out[i] = big.NewInt(int64(randomIntn(source, 2)))
		}
		return out
	}
	if h > n {
		h = n
	}
	positions := make([]int, n)
	for i := range positions {
		positions[i] = i
	}
	for i := 0; i < h; i++ {
		j := i + randomIntn(source, n-i)
		positions[i], positions[j] = positions[j], positions[i]
		out[positions[i]] = big.NewInt(1)
	}
	return out
}

// SampleUniform2 produces n coefficients, each uniform in [0, 2^logB)
// (spec.md §4.2 sampleUniform2).
func SampleUniform2(source Source, n, logB int) []*big.Int {
	out := make([]*big.Int, n)
	nbytes := (logB + 7) / 8
	buf := make([]byte, nbytes+1)
	for i := range out {
		if _, err := source.Read(buf); err != nil {
			panic(err)
		}
		v := new(big.Int).SetBytes(buf)
		mask := new(big.Int).Lsh(big.NewInt(1), uint(logB))
		mask.Sub(mask, big.NewInt(1))
		out[i] = v.And(v, mask)
	}
	return out
}

// SampleUniform produces n coefficients uniform modulo the given modulus,
// centered into (-mod/2, mod/2].
func SampleUniform(source Source, n int, mod *big.Int) []*big.Int {
	out := make([]*big.Int, n)
	nbytes := (mod.BitLen() + 7) / 8
	half := new(big.Int).Rsh(mod, 1)
	for i := range out {
		buf := make([]byte, nbytes+1)
		if _, err := source.Read(buf); err != nil {
			panic(err)
		}
		v := new(big.Int).SetBytes(buf)
		v.Mod(v, mod)
		if v.Cmp(half) > 0 {
			v.Sub(v, mod)
		}
		out[i] = v
	}
	return out
}
