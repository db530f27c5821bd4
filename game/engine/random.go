package engine

import (
	"math/rand/v2"
)

// Random is the only source of nondeterminism in the engine.
type Random interface {
	Intn(n int) int
}

type pcgRandom struct {
	r *rand.Rand
}

// NewRandom returns a seeded generator. Seed 0 picks a random seed.
func NewRandom(seed int64) Random {
	s := uint64(seed)
	if seed == 0 {
		s = rand.Uint64()
	}
	return &pcgRandom{r: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

func (p *pcgRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return p.r.IntN(n)
}

// between returns a value in [lo, hi].
func between(r Random, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// shuffle permutes dirs in place.
func shuffle(r Random, dirs []Direction) {
	for i := len(dirs) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
}
