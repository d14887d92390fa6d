package sim

// LaneObservation is a read-only view of one lane.
type LaneObservation struct {
	Index          int
	Empty          bool
	Full           bool
	CanPickup      bool // not empty, and not the empty source of the last failed move
	CanStack       bool // not full, and not the full destination of the last failed move
	BlockingDegree int
	Priorities     []int // top first
}

// Observation is a snapshot of the bay handed to a DecisionPolicy.
type Observation struct {
	DimZ     int
	MaxTier  int
	MaxLabel int
	Lanes    []LaneObservation
}

// Observe snapshots the bay. last supplies the pickup/stack suppression.
func (b *Bay) Observe(last LastOperation) *Observation {
	obs := &Observation{
		DimZ:     b.DimZ,
		MaxTier:  b.MaxTier,
		MaxLabel: b.MaxLabel,
		Lanes:    make([]LaneObservation, b.DimZ),
	}
	for z, l := range b.lanes {
		contents := l.Contents()
		priorities := make([]int, len(contents))
		for i, c := range contents {
			priorities[i] = c.Priority
		}
		obs.Lanes[z] = LaneObservation{
			Index:          z,
			Empty:          l.IsEmpty(),
			Full:           l.IsFull(),
			CanPickup:      !l.IsEmpty() && last.allowsPickup(z),
			CanStack:       !l.IsFull() && last.allowsStack(z),
			BlockingDegree: BlockingDegree(l.Priorities()),
			Priorities:     priorities,
		}
	}
	return obs
}

// TotalBlockingDegree sums the blocking degree over all lanes.
func (o *Observation) TotalBlockingDegree() int {
	total := 0
	for _, l := range o.Lanes {
		total += l.BlockingDegree
	}
	return total
}

// MinPending returns the lowest pending priority and its lane, or ok=false
// when every lane is empty.
func (o *Observation) MinPending() (priority, lane int, ok bool) {
	for _, l := range o.Lanes {
		for _, p := range l.Priorities {
			if !ok || p < priority {
				priority, lane, ok = p, l.Index, true
			}
		}
	}
	return priority, lane, ok
}
