// Package stats aggregates finished episodes into run-level statistics.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/bay-sim/bay-sim/sim"
	"github.com/bay-sim/bay-sim/sim/trace"
)

// Evaluation accumulates totals across episodes. It implements
// sim.EpisodeListener and is safe for concurrent use.
// Abandoned episodes are counted but do not contribute to the totals.
type Evaluation struct {
	mu sync.Mutex

	TotalContainerOut int
	TotalRelocation   int
	Episodes          int
	Abandoned         int

	relocations []float64
	rewards     []float64
	traces      []*trace.EpisodeTrace
}

// NewEvaluation creates an empty Evaluation.
func NewEvaluation() *Evaluation {
	return &Evaluation{}
}

// EpisodeEnded records one finished episode.
func (e *Evaluation) EpisodeEnded(s sim.EpisodeSummary) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Episodes++
	if s.Trace != nil {
		e.traces = append(e.traces, s.Trace)
	}
	if !s.Completed {
		e.Abandoned++
		return
	}
	e.add(s.Totals.Retrieved, s.Totals.Relocations)
	e.relocations = append(e.relocations, float64(s.Totals.Relocations))
	e.rewards = append(e.rewards, s.Totals.Reward)
}

// UpdateValue adds retrieved containers and relocations to the totals
// without recording a per-episode sample.
func (e *Evaluation) UpdateValue(out, relocations int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.add(out, relocations)
}

func (e *Evaluation) add(out, relocations int) {
	e.TotalContainerOut += out
	e.TotalRelocation += relocations
}

// RelocationRatio is relocations per retrieved container, 0 before any retrieval.
func (e *Evaluation) RelocationRatio() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ratio()
}

func (e *Evaluation) ratio() float64 {
	if e.TotalContainerOut == 0 {
		return 0
	}
	return float64(e.TotalRelocation) / float64(e.TotalContainerOut)
}

// Traces returns the collected episode traces in recording order.
func (e *Evaluation) Traces() []*trace.EpisodeTrace {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*trace.EpisodeTrace(nil), e.traces...)
}

// EvaluationResult bundles all outputs of a run for reporting.
type EvaluationResult struct {
	Episodes          int                 `json:"episodes"`
	Abandoned         int                 `json:"abandoned"`
	TotalContainerOut int                 `json:"total_container_out"`
	TotalRelocation   int                 `json:"total_relocation"`
	RelocationRatio   float64             `json:"relocation_ratio"`
	Relocations       Distribution        `json:"relocations_per_episode"`
	Rewards           Distribution        `json:"reward_per_episode"`
	Summary           *trace.TraceSummary `json:"trace_summary,omitempty"` // nil when no traces were collected
	WallTime          time.Duration       `json:"wall_time_ns"`
}

// Result snapshots the evaluation. wallTime is the duration of the run.
func (e *Evaluation) Result(wallTime time.Duration) *EvaluationResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := &EvaluationResult{
		Episodes:          e.Episodes,
		Abandoned:         e.Abandoned,
		TotalContainerOut: e.TotalContainerOut,
		TotalRelocation:   e.TotalRelocation,
		RelocationRatio:   e.ratio(),
		Relocations:       NewDistribution(e.relocations),
		Rewards:           NewDistribution(e.rewards),
		WallTime:          wallTime,
	}
	if len(e.traces) > 0 {
		res.Summary = trace.Summarize(e.traces...)
	}
	return res
}

// Print writes a human-readable header followed by the result as JSON.
func (r *EvaluationResult) Print(w io.Writer) error {
	fmt.Fprintln(w, "=== Evaluation ===")
	fmt.Fprintf(w, "Episodes             : %d (%d abandoned)\n", r.Episodes, r.Abandoned)
	fmt.Fprintf(w, "TotalContainerOut    : %d\n", r.TotalContainerOut)
	fmt.Fprintf(w, "TotalRelocation      : %d\n", r.TotalRelocation)
	fmt.Fprintf(w, "Relocation Ratio     : %.4f\n", r.RelocationRatio)
	fmt.Fprintf(w, "Wall Time            : %s\n", r.WallTime)
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal evaluation: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
