// Package policy provides decision-makers that choose relocations for the
// bay controller. They only see a sim.Observation and never mutate the bay.
package policy

import (
	"fmt"
	"math/rand"

	"github.com/bay-sim/bay-sim/sim"
)

// ValidPolicies is the set of recognized policy names.
// Shared by config validation and NewPolicy to avoid duplication.
var ValidPolicies = map[string]bool{"": true, "random": true, "greedy": true, "unblock": true}

// IsValidPolicy returns true if name is a recognized policy name.
func IsValidPolicy(name string) bool {
	return ValidPolicies[name]
}

// NewPolicy creates a decision policy by name.
// An empty string defaults to Unblock (for CLI flag default compatibility).
// Panics on unrecognized names.
func NewPolicy(name string) sim.DecisionPolicy {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown policy %q", name))
	}
	switch name {
	case "random":
		return &Random{}
	case "greedy":
		return NewGreedy()
	case "", "unblock":
		return &Unblock{}
	default:
		panic(fmt.Sprintf("unhandled policy %q", name))
	}
}

// Factory returns a constructor for the named policy, one instance per episode.
func Factory(name string) func() sim.DecisionPolicy {
	if !IsValidPolicy(name) {
		panic(fmt.Sprintf("unknown policy %q", name))
	}
	return func() sim.DecisionPolicy { return NewPolicy(name) }
}

// Random picks both lanes uniformly, legal or not.
type Random struct{}

func (p *Random) Decide(obs *sim.Observation, rng *rand.Rand) (int, int) {
	return rng.Intn(obs.DimZ), rng.Intn(obs.DimZ)
}

// Greedy picks the legal move that leaves the lowest total blocking degree,
// never undoing its previous move unless nothing else is legal.
// Ties go to the lowest (z0, z1).
type Greedy struct {
	lastFrom, lastTo int
}

// NewGreedy creates a Greedy policy with no move history.
func NewGreedy() *Greedy {
	return &Greedy{lastFrom: sim.NoLane, lastTo: sim.NoLane}
}

func (p *Greedy) Decide(obs *sim.Observation, rng *rand.Rand) (int, int) {
	bestFrom, bestTo, best := sim.NoLane, sim.NoLane, 0
	undoFrom, undoTo := sim.NoLane, sim.NoLane
	for z0 := range obs.Lanes {
		for z1 := range obs.Lanes {
			if !legal(obs, z0, z1) {
				continue
			}
			if z0 == p.lastTo && z1 == p.lastFrom {
				undoFrom, undoTo = z0, z1
				continue
			}
			if score := degreeAfter(obs, z0, z1); bestFrom == sim.NoLane || score < best {
				bestFrom, bestTo, best = z0, z1, score
			}
		}
	}
	if bestFrom == sim.NoLane {
		bestFrom, bestTo = undoFrom, undoTo
	}
	if bestFrom == sim.NoLane {
		return fallback(obs, rng)
	}
	p.lastFrom, p.lastTo = bestFrom, bestTo
	return bestFrom, bestTo
}

// Unblock always digs out the lowest pending container: it moves the top of
// that container's lane to the other lane where it adds the least blocking.
// With at most (DimZ-1)*MaxTier+1 containers a destination always exists,
// so an episode needs at most MaxLabel*(MaxTier-1) relocations.
type Unblock struct{}

func (p *Unblock) Decide(obs *sim.Observation, rng *rand.Rand) (int, int) {
	_, src, ok := obs.MinPending()
	if !ok {
		return fallback(obs, rng)
	}
	dst, best := sim.NoLane, 0
	for z := range obs.Lanes {
		if !legal(obs, src, z) {
			continue
		}
		if score := degreeAfter(obs, src, z); dst == sim.NoLane || score < best {
			dst, best = z, score
		}
	}
	if dst == sim.NoLane {
		return fallback(obs, rng)
	}
	return src, dst
}

func legal(obs *sim.Observation, z0, z1 int) bool {
	return z0 != z1 && !obs.Lanes[z0].Empty && !obs.Lanes[z1].Full
}

// fallback draws only among lanes the controller still offers.
func fallback(obs *sim.Observation, rng *rand.Rand) (int, int) {
	var picks, stacks []int
	for _, l := range obs.Lanes {
		if l.CanPickup {
			picks = append(picks, l.Index)
		}
		if l.CanStack {
			stacks = append(stacks, l.Index)
		}
	}
	if len(picks) == 0 || len(stacks) == 0 {
		return rng.Intn(obs.DimZ), rng.Intn(obs.DimZ)
	}
	return picks[rng.Intn(len(picks))], stacks[rng.Intn(len(stacks))]
}

// degreeAfter returns the total blocking degree once the top of z0 sits on z1.
func degreeAfter(obs *sim.Observation, z0, z1 int) int {
	total := 0
	moved := obs.Lanes[z0].Priorities[0]
	for z, l := range obs.Lanes {
		bottomUp := reversed(l.Priorities)
		switch z {
		case z0:
			bottomUp = bottomUp[:len(bottomUp)-1]
		case z1:
			bottomUp = append(bottomUp, moved)
		}
		total += sim.BlockingDegree(bottomUp)
	}
	return total
}

func reversed(topFirst []int) []int {
	out := make([]int, len(topFirst), len(topFirst)+1)
	for i, p := range topFirst {
		out[len(topFirst)-1-i] = p
	}
	return out
}
