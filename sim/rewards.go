package sim

// Rewards holds the scalar feedback emitted to the decision-maker.
type Rewards struct {
	StepCost       float64 `yaml:"step_cost"`      // added once per legal relocation
	RepeatPenalty  float64 `yaml:"repeat_penalty"` // multiplied by consecutive failures
	RetrievalBase  float64 `yaml:"retrieval_base"`
	RetrievalDecay float64 `yaml:"retrieval_decay"` // per unit of priority
}

// DefaultRewards returns the reward shape used for training runs.
func DefaultRewards() Rewards {
	return Rewards{
		StepCost:       -0.1,
		RepeatPenalty:  -1,
		RetrievalBase:  1,
		RetrievalDecay: 0.01,
	}
}

// failure is zero for a one-off illegal move and grows with each repeat.
func (r Rewards) failure(consecutive int) float64 {
	return r.RepeatPenalty * float64(consecutive)
}

func (r Rewards) retrieval(priority int) float64 {
	return r.RetrievalBase - r.RetrievalDecay*float64(priority)
}
