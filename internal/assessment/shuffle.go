package assessment

import (
	"math/rand/v2"

	"github.com/abhisek/aura/internal/chakra"
)

// Shuffle returns a new slice holding qs in a uniformly random order
// (Fisher-Yates). qs is left untouched. A nil rng uses the global source.
func Shuffle(qs []chakra.Question, rng *rand.Rand) []chakra.Question {
	out := make([]chakra.Question, len(qs))
	copy(out, qs)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(out) - 1; i > 0; i-- {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
