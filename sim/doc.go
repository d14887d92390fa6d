// Package sim provides the storage and retrieval engine for a container bay.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - bay.go: lanes, relocation legality, retrieval of the lowest priority
//   - blocking.go: the blocking-degree metric for a single lane
//   - controller.go: the drain / await-decision loop of one episode
//
// # Architecture
//
// The sim package defines the engine and the DecisionPolicy interface;
// supporting code lives in sub-packages:
//   - sim/policy/: decision-makers selected by name (random, greedy, unblock)
//   - sim/trace/: per-episode decision trace recording
//   - sim/stats/: cross-episode evaluation and distributions
//
// # Determinism
//
// All randomness flows from a PartitionedRNG. A Runner derives one
// SimulationKey per episode, and each episode draws its layout and its policy
// decisions from separate streams of that key, so results do not depend on
// how episodes are scheduled across workers.
package sim
