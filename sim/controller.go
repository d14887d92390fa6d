package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bay-sim/bay-sim/sim/trace"
)

// ControllerState is the phase of the episode decision loop.
type ControllerState string

const (
	StateDraining         ControllerState = "draining"
	StateAwaitingDecision ControllerState = "awaiting-decision"
	StateTerminal         ControllerState = "terminal"
)

// EpisodeTotals are the cumulative counters of one episode.
type EpisodeTotals struct {
	Retrieved       int     // containers that left the bay
	Relocations     int     // sum of relocation counts of retrieved containers
	Moves           int     // legal relocations performed
	IllegalAttempts int     // rejected relocation requests
	Reward          float64 // sum of all emitted signals
}

// StepResult is the feedback for one Drain or Act call.
type StepResult struct {
	Reward    float64
	Retrieved int // containers retrieved during this call
	Check     RelocationCheck
	Done      bool
}

// Controller drives one episode: it drains every retrievable container, then
// waits for a relocation decision, validates it against the bay and resumes.
//
// Not thread-safe. One Controller owns one Bay.
type Controller struct {
	bay     *Bay
	rewards Rewards
	trace   *trace.EpisodeTrace // nil when tracing is off

	state  ControllerState
	last   LastOperation
	totals EpisodeTotals
	steps  int
}

// NewController starts an episode on bay in the draining state.
// tr may be nil.
func NewController(bay *Bay, rewards Rewards, tr *trace.EpisodeTrace) *Controller {
	return &Controller{
		bay:     bay,
		rewards: rewards,
		trace:   tr,
		state:   StateDraining,
		last:    NeutralOperation(),
	}
}

func (c *Controller) State() ControllerState { return c.state }
func (c *Controller) Last() LastOperation    { return c.last }
func (c *Controller) Totals() EpisodeTotals  { return c.totals }
func (c *Controller) Bay() *Bay              { return c.bay }

// Steps returns the number of Act calls so far.
func (c *Controller) Steps() int { return c.steps }

// Observe snapshots the bay with the current pickup/stack suppression.
func (c *Controller) Observe() *Observation {
	return c.bay.Observe(c.last)
}

// Drain retrieves containers while the lowest pending one is on top of its
// lane. It is a no-op when nothing is retrievable.
func (c *Controller) Drain() StepResult {
	var res StepResult
	if c.state == StateTerminal {
		res.Done = true
		return res
	}
	for c.bay.CanRetrieve() {
		_, z, _ := c.bay.MinPending()
		out := c.bay.Retrieve()
		reward := c.rewards.retrieval(out.Priority)
		c.totals.Retrieved++
		c.totals.Relocations += out.Relocations
		res.Retrieved++
		res.Reward += reward
		c.last = NeutralOperation()
		if c.trace != nil {
			c.trace.RecordRetrieval(trace.RetrievalRecord{
				Step:        c.steps,
				Priority:    out.Priority,
				Lane:        z,
				Relocations: out.Relocations,
				Reward:      reward,
			})
		}
	}
	c.totals.Reward += res.Reward
	if c.bay.IsEmpty() {
		c.state = StateTerminal
		res.Done = true
		return res
	}
	c.state = StateAwaitingDecision
	return res
}

// Act applies the relocation (z0, z1). An illegal pair leaves the bay
// untouched and returns a penalty that grows while the same pair is repeated.
// A legal pair is applied and followed by a drain.
// Panics if called outside the awaiting-decision state.
func (c *Controller) Act(z0, z1 int) StepResult {
	if c.state != StateAwaitingDecision {
		panic(fmt.Sprintf("action (%d, %d) received in state %s", z0, z1, c.state))
	}
	c.steps++

	check := c.bay.CanRelocate(z0, z1)
	if !check.OK {
		c.last = c.last.failed(z0, z1, check.Reason)
		penalty := c.rewards.failure(c.last.ConsecutiveFailures)
		c.totals.IllegalAttempts++
		c.totals.Reward += penalty
		logrus.Warnf("failed to relocate from %d to %d: %s (repeat %d)", z0, z1, check.Reason, c.last.ConsecutiveFailures)
		if c.trace != nil {
			c.trace.RecordRelocation(trace.RelocationRecord{
				Step:                c.steps,
				From:                z0,
				To:                  z1,
				Reason:              check.Reason.String(),
				ConsecutiveFailures: c.last.ConsecutiveFailures,
				Reward:              penalty,
			})
		}
		return StepResult{Reward: penalty, Check: check}
	}

	moved := c.bay.Relocate(z0, z1)
	c.last = NeutralOperation()
	c.totals.Moves++
	c.totals.Reward += c.rewards.StepCost
	if c.trace != nil {
		c.trace.RecordRelocation(trace.RelocationRecord{
			Step:     c.steps,
			From:     z0,
			To:       z1,
			Legal:    true,
			Reason:   check.Reason.String(),
			Priority: moved.Priority,
			Reward:   c.rewards.StepCost,
		})
	}

	c.state = StateDraining
	res := c.Drain()
	res.Reward += c.rewards.StepCost
	res.Check = check
	return res
}
