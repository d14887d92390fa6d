// Package trace provides decision-trace recording for bay episodes.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// RelocationRecord captures a single relocation decision.
type RelocationRecord struct {
	Step                int     `yaml:"step"`
	From                int     `yaml:"from"`
	To                  int     `yaml:"to"`
	Legal               bool    `yaml:"legal"`
	Reason              string  `yaml:"reason"`
	Priority            int     `yaml:"priority,omitempty"` // moved container; 0 when illegal
	ConsecutiveFailures int     `yaml:"consecutive_failures,omitempty"`
	Reward              float64 `yaml:"reward"`
}

// RetrievalRecord captures a container leaving the bay.
type RetrievalRecord struct {
	Step        int     `yaml:"step"`
	Priority    int     `yaml:"priority"`
	Lane        int     `yaml:"lane"`
	Relocations int     `yaml:"relocations"`
	Reward      float64 `yaml:"reward"`
}
