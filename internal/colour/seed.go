package colour

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"
)

// HashSeed derives a 32-bit seed from a string. Hex colours are
// normalised first so "#ABC" and "#aabbcc" seed identically.
func HashSeed(s string) uint32 {
	if norm, err := NormalizeHex(s); err == nil {
		s = norm
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.TrimSpace(s)))
	return h.Sum32()
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint32) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
