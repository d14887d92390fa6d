package sim

import (
	"fmt"
	"math/rand"
	"strings"
)

// RelocationReason explains the outcome of a relocation legality check.
type RelocationReason int

const (
	ReasonSourceEmpty RelocationReason = iota
	ReasonDestFull
	ReasonBoth
	ReasonSameLane
	ReasonOK
)

func (r RelocationReason) String() string {
	switch r {
	case ReasonSourceEmpty:
		return "source-empty"
	case ReasonDestFull:
		return "dest-full"
	case ReasonBoth:
		return "both"
	case ReasonSameLane:
		return "same-lane"
	case ReasonOK:
		return "ok"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// RelocationCheck is the result of Bay.CanRelocate.
type RelocationCheck struct {
	OK     bool
	Reason RelocationReason
}

// Bay is a fixed row of lanes, addressed 0..DimZ-1.
//
// Invariants: every stored priority is unique, stored priorities plus the
// retrieved count make up 1..MaxLabel, and no lane exceeds MaxTier.
type Bay struct {
	DimZ     int
	MaxTier  int
	MaxLabel int

	lanes     []*Lane
	retrieved int
}

// NewBay creates a bay filled with a random layout drawn from rng.
// Panics if maxLabel does not fit into dimZ*maxTier slots.
func NewBay(dimZ, maxTier, maxLabel int, rng *rand.Rand) *Bay {
	return mustBay(maxTier, maxLabel, GenerateLayout(dimZ, maxTier, maxLabel, rng))
}

// NewBayFromLayout creates a bay from an explicit layout, one bottom-to-top
// slice per lane. The priorities must be a permutation of 1..n.
func NewBayFromLayout(maxTier int, layout [][]int) (*Bay, error) {
	if len(layout) == 0 || maxTier <= 0 {
		return nil, fmt.Errorf("invalid bay dimensions dimZ=%d maxTier=%d", len(layout), maxTier)
	}
	seen := make(map[int]bool)
	for z, lane := range layout {
		if len(lane) > maxTier {
			return nil, fmt.Errorf("lane %d holds %d containers, capacity is %d", z, len(lane), maxTier)
		}
		for _, p := range lane {
			if seen[p] {
				return nil, fmt.Errorf("duplicate priority %d", p)
			}
			seen[p] = true
		}
	}
	for p := 1; p <= len(seen); p++ {
		if !seen[p] {
			return nil, fmt.Errorf("priorities must be 1..%d, missing %d", len(seen), p)
		}
	}
	return mustBay(maxTier, len(seen), layout), nil
}

func mustBay(maxTier, maxLabel int, layout [][]int) *Bay {
	b := &Bay{
		DimZ:     len(layout),
		MaxTier:  maxTier,
		MaxLabel: maxLabel,
		lanes:    make([]*Lane, len(layout)),
	}
	for z, priorities := range layout {
		b.lanes[z] = NewLane(maxTier)
		for _, p := range priorities {
			if err := b.lanes[z].Push(NewContainer(p)); err != nil {
				panic(fmt.Sprintf("stacking %d on lane %d: %v", p, z, err))
			}
		}
	}
	return b
}

func (b *Bay) lane(z int) *Lane {
	if z < 0 || z >= b.DimZ {
		panic(fmt.Sprintf("lane index %d out of range [0, %d)", z, b.DimZ))
	}
	return b.lanes[z]
}

// LaneEmpty reports whether lane z holds no containers.
func (b *Bay) LaneEmpty(z int) bool { return b.lane(z).IsEmpty() }

// LaneFull reports whether lane z is at MaxTier.
func (b *Bay) LaneFull(z int) bool { return b.lane(z).IsFull() }

// CanRelocate checks whether the top of z0 may move onto z1.
// A same-lane request wins over everything; an empty source together with a
// full destination is reported as ReasonBoth.
func (b *Bay) CanRelocate(z0, z1 int) RelocationCheck {
	empty, full := b.LaneEmpty(z0), b.LaneFull(z1)
	switch {
	case z0 == z1:
		return RelocationCheck{Reason: ReasonSameLane}
	case empty && full:
		return RelocationCheck{Reason: ReasonBoth}
	case empty:
		return RelocationCheck{Reason: ReasonSourceEmpty}
	case full:
		return RelocationCheck{Reason: ReasonDestFull}
	default:
		return RelocationCheck{OK: true, Reason: ReasonOK}
	}
}

// Relocate moves the top of z0 onto z1 and returns the moved container.
// The caller must have checked CanRelocate; an illegal move panics.
func (b *Bay) Relocate(z0, z1 int) Container {
	if check := b.CanRelocate(z0, z1); !check.OK {
		panic(fmt.Sprintf("relocate %d -> %d without a legal check: %s", z0, z1, check.Reason))
	}
	c, _ := b.lanes[z0].Pop()
	c.Relocations++
	_ = b.lanes[z1].Push(c)
	return c
}

// Stack pushes c onto lane z. It returns false if the lane is full.
func (b *Bay) Stack(z int, c Container) bool {
	return b.lane(z).Push(c) == nil
}

// IsEmpty reports whether every lane is empty.
func (b *Bay) IsEmpty() bool {
	for _, l := range b.lanes {
		if !l.IsEmpty() {
			return false
		}
	}
	return true
}

// MinPending returns the container with the globally lowest priority and the
// lane holding it. ok is false when the bay is empty.
func (b *Bay) MinPending() (c Container, z int, ok bool) {
	for i, l := range b.lanes {
		m, _, found := l.min()
		if found && (!ok || m.Less(c)) {
			c, z, ok = m, i, true
		}
	}
	return c, z, ok
}

// CanRetrieve reports whether the lowest-priority container is on top of its lane.
func (b *Bay) CanRetrieve() bool {
	c, z, ok := b.MinPending()
	if !ok {
		return false
	}
	top, _ := b.lanes[z].Peek()
	return top.Equal(c)
}

// Retrieve removes the lowest-priority container and returns it.
// Its Relocations field is the number of times it was moved.
// The caller must have checked CanRetrieve; otherwise Retrieve panics.
func (b *Bay) Retrieve() Container {
	if !b.CanRetrieve() {
		panic("retrieve called while the lowest priority container is blocked")
	}
	_, z, _ := b.MinPending()
	c, _ := b.lanes[z].Pop()
	b.retrieved++
	return c
}

// Retrieved returns the number of containers that have left the bay.
func (b *Bay) Retrieved() int { return b.retrieved }

// Stored returns the number of containers currently in the bay.
func (b *Bay) Stored() int {
	n := 0
	for _, l := range b.lanes {
		n += l.Len()
	}
	return n
}

// BlockingDegree returns the blocking degree of lane z.
func (b *Bay) BlockingDegree(z int) int {
	return BlockingDegree(b.lane(z).Priorities())
}

// BlockingDegrees returns the blocking degree of every lane.
func (b *Bay) BlockingDegrees() []int {
	out := make([]int, b.DimZ)
	for z := range b.lanes {
		out[z] = b.BlockingDegree(z)
	}
	return out
}

// Layout returns each lane's contents, top first.
func (b *Bay) Layout() [][]Container {
	out := make([][]Container, b.DimZ)
	for z, l := range b.lanes {
		out[z] = l.Contents()
	}
	return out
}

// Layout2D returns a DimZ x MaxTier grid of priorities with tier 0 at the top
// of each lane. Unused slots are 0.
func (b *Bay) Layout2D() [][]int {
	grid := make([][]int, b.DimZ)
	for z, l := range b.lanes {
		grid[z] = make([]int, b.MaxTier)
		for t, c := range l.Contents() {
			grid[z][t] = c.Priority
		}
	}
	return grid
}

// String prints one line per lane, bottom to top.
func (b *Bay) String() string {
	var sb strings.Builder
	for _, l := range b.lanes {
		parts := make([]string, 0, l.Len())
		for _, p := range l.Priorities() {
			parts = append(parts, fmt.Sprint(p))
		}
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}
