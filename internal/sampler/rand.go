package sampler

import "hash/fnv"

// Rand is a stream of floats in [0, 1).
type Rand interface {
	Float64() float64
}

// RandFactory opens an independent stream for a seed string.
type RandFactory func(seed string) Rand

// HashSeed reduces a seed string to 32 bits with FNV-1a.
func HashSeed(seed string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return h.Sum32()
}

// NewRand is the default RandFactory: FNV-1a 32 of the seed feeds a mulberry32 generator.
func NewRand(seed string) Rand {
	return &mulberry32{state: HashSeed(seed)}
}

type mulberry32 struct {
	state uint32
}

// Uint32 advances the generator.
func (m *mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

func (m *mulberry32) Float64() float64 {
	return float64(m.Uint32()) / (1 << 32)
}

// shuffle is a Fisher-Yates pass driven by r.
func shuffle[T any](r Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := int(r.Float64() * float64(i+1))
		if j > i {
			j = i
		}
		s[i], s[j] = s[j], s[i]
	}
}

// Intn draws an integer in [0, n) from r.
func Intn(r Rand, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
