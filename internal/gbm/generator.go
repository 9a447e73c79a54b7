package gbm

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// NormalSource supplies independent standard-normal draws. A nil seed
// means "unseeded": draws must come from fresh system entropy, never from
// leftover state of a previous call.
type NormalSource interface {
	StandardNormals(count int, seed *int64) []float64
}

// Generator is the default NormalSource. It is stateless: every call
// builds its own RNG, so two calls with the same seed produce identical
// sequences and concurrent calls never interleave.
type Generator struct{}

// StandardNormals returns count independent N(0,1) draws. The caller is
// responsible for count >= 1.
func (Generator) StandardNormals(count int, seed *int64) []float64 {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		s = entropySeed()
	}

	rng := rand.New(rand.NewSource(s))
	draws := make([]float64, count)
	for i := range draws {
		draws[i] = rng.NormFloat64()
	}
	return draws
}

// entropySeed reads a seed from the system CSPRNG, falling back to the
// wall clock if the read fails.
func entropySeed() int64 {
	var b [8]byte
	if _, err := crypto_rand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
