package config

import "math/rand"

// buildBag replicates each tag proportionally to its weight into a flat
// slice, then shuffles it with the given RNG. Sampling the k-th element by
// index (bag[k % len(bag)]) then gives exact proportional sampling with no
// rejection, at the cost of a fixed cyclic pattern per run; the shuffle
// randomizes which pattern a given seed produces.
func buildBag(tags []string, weights []int, rng *rand.Rand) []string {
	total := 0
	for _, w := range weights {
		total += w
	}
	bag := make([]string, 0, total)
	for i, tag := range tags {
		for n := 0; n < weights[i]; n++ {
			bag = append(bag, tag)
		}
	}
	rng.Shuffle(len(bag), func(i, j int) {
		bag[i], bag[j] = bag[j], bag[i]
	})
	return bag
}
