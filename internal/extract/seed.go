package extract

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
)

// contentSeed hashes the sampled pixels so the same image always seeds
// the clustering identically, regardless of where it was loaded from.
func contentSeed(samples []sample) uint64 {
	hasher := sha256.New()

	countBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(countBytes, uint64(len(samples)))
	hasher.Write(countBytes)

	pixelBytes := make([]byte, 3)
	for _, s := range samples {
		pixelBytes[0] = s.rgb.R
		pixelBytes[1] = s.rgb.G
		pixelBytes[2] = s.rgb.B
		hasher.Write(pixelBytes)
	}

	sum := hasher.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
