package sim

import (
	"fmt"
	"math/rand"
)

// GenerateLayout assigns a random permutation of 1..maxLabel to dimZ lanes of
// capacity maxTier. Each value goes to a uniformly chosen lane; a full lane is
// rejected and redrawn. Occupancy is therefore not uniform: lanes that fill
// late absorb more of the tail.
//
// The result is bottom-to-top per lane. Panics if the values cannot fit.
func GenerateLayout(dimZ, maxTier, maxLabel int, rng *rand.Rand) [][]int {
	if dimZ <= 0 || maxTier <= 0 {
		panic(fmt.Sprintf("invalid bay dimensions dimZ=%d maxTier=%d", dimZ, maxTier))
	}
	if maxLabel < 1 || maxLabel > dimZ*maxTier {
		panic(fmt.Sprintf("maxLabel %d does not fit in %d lanes of %d tiers", maxLabel, dimZ, maxTier))
	}

	layout := make([][]int, dimZ)
	for z := range layout {
		layout[z] = make([]int, 0, maxTier)
	}
	for _, v := range rng.Perm(maxLabel) {
		for {
			z := rng.Intn(dimZ)
			if len(layout[z]) >= maxTier {
				continue
			}
			layout[z] = append(layout[z], v+1)
			break
		}
	}
	return layout
}
