package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Lane 0 is full (1 under 2), lane 1 is empty, lane 2 holds 3.
var smallLayout = [][]int{{1, 2}, {}, {3}}

func TestNewBay_InvariantsHold(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		b := NewBay(3, 4, 9, rand.New(rand.NewSource(seed)))
		assert.Equal(t, 9, b.Stored())
		assert.Equal(t, 0, b.Retrieved())
		assertBayInvariants(t, b)
	}
}

func TestNewBayFromLayout_RejectsInvalidLayouts(t *testing.T) {
	tests := []struct {
		name    string
		maxTier int
		layout  [][]int
	}{
		{"no lanes", 2, nil},
		{"zero tier", 0, [][]int{{1}}},
		{"over capacity", 1, [][]int{{1, 2}}},
		{"duplicate", 2, [][]int{{1}, {1}}},
		{"gap", 2, [][]int{{1}, {3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBayFromLayout(tt.maxTier, tt.layout)
			assert.Error(t, err)
		})
	}
}

func TestBay_CanRelocate_ReasonPrecedence(t *testing.T) {
	b := fixtureBay(t, 2, smallLayout)

	tests := []struct {
		name   string
		z0, z1 int
		want   RelocationCheck
	}{
		{"empty source and full destination", 1, 0, RelocationCheck{Reason: ReasonBoth}},
		{"empty source", 1, 2, RelocationCheck{Reason: ReasonSourceEmpty}},
		{"full destination", 2, 0, RelocationCheck{Reason: ReasonDestFull}},
		{"same full lane", 0, 0, RelocationCheck{Reason: ReasonSameLane}},
		{"same empty lane", 1, 1, RelocationCheck{Reason: ReasonSameLane}},
		{"legal onto empty", 0, 1, RelocationCheck{OK: true, Reason: ReasonOK}},
		{"legal onto partial", 0, 2, RelocationCheck{OK: true, Reason: ReasonOK}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.CanRelocate(tt.z0, tt.z1))
		})
	}
}

func TestBay_Relocate_MovesTopAndCountsRelocation(t *testing.T) {
	b := fixtureBay(t, 2, smallLayout)

	moved := b.Relocate(0, 1)

	assert.Equal(t, Container{Priority: 2, Relocations: 1}, moved)
	assert.Equal(t, [][]int{{1, 0}, {2, 0}, {3, 0}}, b.Layout2D())
	assertBayInvariants(t, b)
}

func TestBay_Relocate_IllegalPanics(t *testing.T) {
	b := fixtureBay(t, 2, smallLayout)
	assert.Panics(t, func() { b.Relocate(1, 2) })
	assert.Panics(t, func() { b.Relocate(2, 0) })
	assert.Panics(t, func() { b.Relocate(2, 2) })
	assert.Equal(t, 3, b.Stored(), "failed relocate must not change the bay")
}

func TestBay_OutOfRangeLane_Panics(t *testing.T) {
	b := fixtureBay(t, 2, smallLayout)
	assert.Panics(t, func() { b.CanRelocate(0, 3) })
	assert.Panics(t, func() { b.LaneEmpty(-1) })
}

func TestBay_MinPendingAndCanRetrieve(t *testing.T) {
	b := fixtureBay(t, 2, smallLayout)

	c, z, ok := b.MinPending()
	require.True(t, ok)
	assert.Equal(t, 1, c.Priority)
	assert.Equal(t, 0, z)
	assert.False(t, b.CanRetrieve(), "1 is under 2")
	assert.Panics(t, func() { b.Retrieve() })

	b.Relocate(0, 2)
	assert.True(t, b.CanRetrieve())
	out := b.Retrieve()
	assert.Equal(t, 1, out.Priority)
	assert.Equal(t, 0, out.Relocations)
	assert.Equal(t, 1, b.Retrieved())
	assertBayInvariants(t, b)
}

func TestBay_Empty(t *testing.T) {
	b := fixtureBay(t, 1, [][]int{{1}, {}})
	assert.False(t, b.IsEmpty())
	require.True(t, b.CanRetrieve())
	b.Retrieve()
	assert.True(t, b.IsEmpty())
	assert.False(t, b.CanRetrieve(), "nothing to retrieve from an empty bay")
	_, _, ok := b.MinPending()
	assert.False(t, ok)
}

func TestBay_Stack_RespectsCapacity(t *testing.T) {
	b := fixtureBay(t, 2, [][]int{{1}, {}})
	assert.True(t, b.Stack(1, NewContainer(2)))
	assert.True(t, b.Stack(1, NewContainer(3)))
	assert.False(t, b.Stack(1, NewContainer(4)))
	assert.True(t, b.LaneFull(1))
}

func TestBay_BlockingDegrees(t *testing.T) {
	b := fixtureBay(t, 3, [][]int{{1, 2, 3}, {6, 5, 4}, {}})
	assert.Equal(t, []int{3, 0, 0}, b.BlockingDegrees())
	assert.Equal(t, 3, b.BlockingDegree(0))
}

func TestBay_Layout_TopFirst(t *testing.T) {
	b := fixtureBay(t, 2, smallLayout)
	layout := b.Layout()
	assert.Equal(t, []Container{{Priority: 2}, {Priority: 1}}, layout[0])
	assert.Empty(t, layout[1])
	assert.Equal(t, [][]int{{2, 1}, {0, 0}, {3, 0}}, b.Layout2D())
}

func TestBay_String_BottomToTop(t *testing.T) {
	b := fixtureBay(t, 2, smallLayout)
	assert.Equal(t, "1, 2\n\n3\n", b.String())
}

func TestBay_Observe_ReflectsLanes(t *testing.T) {
	b := fixtureBay(t, 2, smallLayout)

	obs := b.Observe(NeutralOperation())

	require.Len(t, obs.Lanes, 3)
	assert.Equal(t, LaneObservation{
		Index: 0, Full: true, CanPickup: true, BlockingDegree: 1, Priorities: []int{2, 1},
	}, obs.Lanes[0])
	assert.Equal(t, LaneObservation{
		Index: 1, Empty: true, CanStack: true, Priorities: []int{},
	}, obs.Lanes[1])
	assert.Equal(t, 1, obs.TotalBlockingDegree())
	p, lane, ok := obs.MinPending()
	assert.True(t, ok)
	assert.Equal(t, 1, p)
	assert.Equal(t, 0, lane)
}
