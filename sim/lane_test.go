package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLane_PushPopPeek_LIFO(t *testing.T) {
	l := NewLane(3)
	require.True(t, l.IsEmpty())

	require.NoError(t, l.Push(NewContainer(5)))
	require.NoError(t, l.Push(NewContainer(2)))

	top, err := l.Peek()
	require.NoError(t, err)
	assert.Equal(t, 2, top.Priority)
	assert.Equal(t, 2, l.Len())

	popped, err := l.Pop()
	require.NoError(t, err)
	assert.Equal(t, 2, popped.Priority)
	popped, err = l.Pop()
	require.NoError(t, err)
	assert.Equal(t, 5, popped.Priority)
	assert.True(t, l.IsEmpty())
}

func TestLane_PushFull_ReturnsErrLaneFull(t *testing.T) {
	l := NewLane(1)
	require.NoError(t, l.Push(NewContainer(1)))
	assert.True(t, l.IsFull())
	assert.ErrorIs(t, l.Push(NewContainer(2)), ErrLaneFull)
	assert.Equal(t, 1, l.Len(), "failed push must not change the lane")
}

func TestLane_PopPeekEmpty_ReturnErrLaneEmpty(t *testing.T) {
	l := NewLane(2)
	_, err := l.Pop()
	assert.ErrorIs(t, err, ErrLaneEmpty)
	_, err = l.Peek()
	assert.ErrorIs(t, err, ErrLaneEmpty)
}

func TestLane_ContentsTopFirst_PrioritiesBottomFirst(t *testing.T) {
	l := NewLane(4)
	for _, p := range []int{4, 1, 3} {
		require.NoError(t, l.Push(NewContainer(p)))
	}
	assert.Equal(t, []Container{{Priority: 3}, {Priority: 1}, {Priority: 4}}, l.Contents())
	assert.Equal(t, []int{4, 1, 3}, l.Priorities())

	// Contents is a copy
	c := l.Contents()
	c[0].Priority = 99
	top, _ := l.Peek()
	assert.Equal(t, 3, top.Priority)
}

func TestContainer_OrderingAndEquality(t *testing.T) {
	a := NewContainer(1)
	b := Container{Priority: 1, Relocations: 4}
	c := NewContainer(2)

	assert.True(t, a.Less(c))
	assert.False(t, c.Less(a))
	assert.True(t, a.Equal(b), "equality is by priority only")
	assert.False(t, a.Equal(c))
	assert.Equal(t, "2", c.String())
}
