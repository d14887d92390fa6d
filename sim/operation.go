package sim

// NoLane marks an unset lane index in LastOperation.
const NoLane = -1

// LastOperation records the most recent relocation attempt of an episode.
// Source and Destination are the attempted pair; FailedSource and
// FailedDestination name the lanes that caused a failure.
type LastOperation struct {
	Success             bool
	Source              int
	Destination         int
	FailedSource        int
	FailedDestination   int
	ConsecutiveFailures int
}

// NeutralOperation is the state at episode start and after every legal move
// or retrieval.
func NeutralOperation() LastOperation {
	return LastOperation{
		Success:           true,
		Source:            NoLane,
		Destination:       NoLane,
		FailedSource:      NoLane,
		FailedDestination: NoLane,
	}
}

// Equal compares outcome and failing lanes, ignoring the repeat count.
func (o LastOperation) Equal(other LastOperation) bool {
	return o.Success == other.Success &&
		o.FailedSource == other.FailedSource &&
		o.FailedDestination == other.FailedDestination
}

// Repeats reports whether (z0, z1) is the pair that just failed.
func (o LastOperation) Repeats(z0, z1 int) bool {
	return !o.Success && o.Source == z0 && o.Destination == z1
}

// failed returns the state after (z0, z1) was rejected for reason.
func (o LastOperation) failed(z0, z1 int, reason RelocationReason) LastOperation {
	next := LastOperation{
		Source:            z0,
		Destination:       z1,
		FailedSource:      NoLane,
		FailedDestination: NoLane,
	}
	if o.Repeats(z0, z1) {
		next.ConsecutiveFailures = o.ConsecutiveFailures + 1
	}
	switch reason {
	case ReasonSourceEmpty:
		next.FailedSource = z0
	case ReasonDestFull:
		next.FailedDestination = z1
	case ReasonBoth, ReasonSameLane:
		next.FailedSource = z0
		next.FailedDestination = z1
	default:
		return NeutralOperation()
	}
	return next
}

func (o LastOperation) allowsPickup(z int) bool {
	return o.Success || o.FailedSource != z
}

func (o LastOperation) allowsStack(z int) bool {
	return o.Success || o.FailedDestination != z
}
