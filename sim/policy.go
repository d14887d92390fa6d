package sim

import "math/rand"

// DecisionPolicy chooses the next relocation when nothing is retrievable.
// Implementations live in sim/policy/. A policy instance serves one episode
// at a time and may keep per-episode state.
type DecisionPolicy interface {
	Decide(obs *Observation, rng *rand.Rand) (z0, z1 int)
}

// EpisodeListener is notified once per finished episode.
type EpisodeListener interface {
	EpisodeEnded(summary EpisodeSummary)
}
