package shapes

import (
	"math/rand"

	"particle-morph/internal/cloud"
)

// Generator produces goal clouds for the morph engine.
type Generator interface {
	Generate(kind Kind, count int, scale float32) (*cloud.Cloud, error)
}

// RandomGenerator is the default Generator. It owns its rand source and is not safe for
// concurrent use.
type RandomGenerator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed (0 = time-based).
func NewGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{rng: NewRand(seed)}
}

// NewGeneratorFromRand wraps an existing rand source.
func NewGeneratorFromRand(rng *rand.Rand) *RandomGenerator {
	return &RandomGenerator{rng: rng}
}

// Generate implements Generator.
func (g *RandomGenerator) Generate(kind Kind, count int, scale float32) (*cloud.Cloud, error) {
	return Generate(g.rng, kind, count, scale)
}

// Rand exposes the underlying source so other fields (e.g. the dust) can share the seed.
func (g *RandomGenerator) Rand() *rand.Rand {
	return g.rng
}
