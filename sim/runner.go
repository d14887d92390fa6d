package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bay-sim/bay-sim/sim/trace"
)

// EpisodeConfig describes the bay and feedback of a single episode.
type EpisodeConfig struct {
	DimZ       int
	MaxTier    int
	MaxLabel   int
	MaxSteps   int // decisions before an episode is abandoned; 0 = unlimited
	Rewards    Rewards
	TraceLevel trace.TraceLevel
}

// Validate checks dimensions and limits.
func (c EpisodeConfig) Validate() error {
	if c.DimZ <= 0 || c.MaxTier <= 0 {
		return fmt.Errorf("dim_z and max_tier must be positive, got %d and %d", c.DimZ, c.MaxTier)
	}
	if c.MaxLabel < 1 {
		return fmt.Errorf("max_label must be at least 1, got %d", c.MaxLabel)
	}
	if c.MaxLabel > c.DimZ*c.MaxTier {
		return fmt.Errorf("max_label %d exceeds bay capacity %d", c.MaxLabel, c.DimZ*c.MaxTier)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must be non-negative, got %d", c.MaxSteps)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return fmt.Errorf("unknown trace level %q", c.TraceLevel)
	}
	return nil
}

// RunConfig describes a batch of independent episodes.
type RunConfig struct {
	EpisodeConfig
	Episodes int
	Workers  int // concurrent episodes; values below 1 mean 1
	Seed     int64
}

// EpisodeSummary is reported to the EpisodeListener when an episode ends.
type EpisodeSummary struct {
	Episode   int
	Key       SimulationKey
	Completed bool // false when abandoned at MaxSteps or on cancellation
	Steps     int
	Totals    EpisodeTotals
	Trace     *trace.EpisodeTrace // nil unless tracing is enabled
}

// RunEpisode plays one episode to completion with policy.
// key seeds both the layout and the policy's RNG.
func RunEpisode(ctx context.Context, id int, cfg EpisodeConfig, key SimulationKey, policy DecisionPolicy) EpisodeSummary {
	rng := NewPartitionedRNG(key)
	bay := NewBay(cfg.DimZ, cfg.MaxTier, cfg.MaxLabel, rng.ForSubsystem(SubsystemLayout))

	var tr *trace.EpisodeTrace
	if cfg.TraceLevel.Enabled() {
		tr = trace.NewEpisodeTrace(id)
	}
	ctrl := NewController(bay, cfg.Rewards, tr)
	decider := rng.ForSubsystem(SubsystemPolicy)

	res := ctrl.Drain()
	for !res.Done {
		if ctx.Err() != nil || (cfg.MaxSteps > 0 && ctrl.Steps() >= cfg.MaxSteps) {
			logrus.Debugf("episode %d abandoned after %d steps with %d containers left", id, ctrl.Steps(), bay.Stored())
			break
		}
		z0, z1 := policy.Decide(ctrl.Observe(), decider)
		res = ctrl.Act(z0, z1)
	}

	summary := EpisodeSummary{
		Episode:   id,
		Key:       key,
		Completed: res.Done,
		Steps:     ctrl.Steps(),
		Totals:    ctrl.Totals(),
		Trace:     tr,
	}
	logrus.Debugf("episode %d: retrieved=%d relocations=%d steps=%d completed=%v",
		id, summary.Totals.Retrieved, summary.Totals.Relocations, summary.Steps, summary.Completed)
	return summary
}

// Runner plays RunConfig.Episodes episodes across a bounded worker pool.
type Runner struct {
	cfg       RunConfig
	newPolicy func() DecisionPolicy
}

// NewRunner creates a Runner. newPolicy is called once per episode.
// Panics on an invalid configuration.
func NewRunner(cfg RunConfig, newPolicy func() DecisionPolicy) *Runner {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid run config: %v", err))
	}
	if cfg.Episodes < 0 {
		panic(fmt.Sprintf("episodes must be non-negative, got %d", cfg.Episodes))
	}
	return &Runner{cfg: cfg, newPolicy: newPolicy}
}

// Run plays every episode and reports them to listener in episode order.
// Results do not depend on Workers. Returns ctx.Err() if cancelled before
// all episodes were scheduled; listener is not called in that case.
func (r *Runner) Run(ctx context.Context, listener EpisodeListener) ([]EpisodeSummary, error) {
	master := NewPartitionedRNG(NewSimulationKey(r.cfg.Seed))
	keys := make([]SimulationKey, r.cfg.Episodes)
	for i := range keys {
		keys[i] = master.EpisodeKey(i)
	}

	workers := max(r.cfg.Workers, 1)
	results := make([]EpisodeSummary, r.cfg.Episodes)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range results {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = RunEpisode(gctx, i, r.cfg.EpisodeConfig, keys[i], r.newPolicy())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if listener != nil {
		for _, s := range results {
			listener.EpisodeEnded(s)
		}
	}
	return results, nil
}
