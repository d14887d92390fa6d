package sim

import "errors"

var (
	// ErrLaneFull is returned by Lane.Push when the lane is at capacity.
	ErrLaneFull = errors.New("lane is full")
	// ErrLaneEmpty is returned by Lane.Pop and Lane.Peek on an empty lane.
	ErrLaneEmpty = errors.New("lane is empty")
)

// Lane is a bounded LIFO column of containers.
// items is stored bottom-to-top; the top is the last element.
type Lane struct {
	items    []Container
	capacity int
}

// NewLane creates an empty lane holding at most capacity containers.
func NewLane(capacity int) *Lane {
	return &Lane{
		items:    make([]Container, 0, capacity),
		capacity: capacity,
	}
}

func (l *Lane) Len() int      { return len(l.items) }
func (l *Lane) Capacity() int { return l.capacity }
func (l *Lane) IsEmpty() bool { return len(l.items) == 0 }
func (l *Lane) IsFull() bool  { return len(l.items) >= l.capacity }

// Push places c on top of the lane.
func (l *Lane) Push(c Container) error {
	if l.IsFull() {
		return ErrLaneFull
	}
	l.items = append(l.items, c)
	return nil
}

// Pop removes and returns the top container.
func (l *Lane) Pop() (Container, error) {
	if l.IsEmpty() {
		return Container{}, ErrLaneEmpty
	}
	top := l.items[len(l.items)-1]
	l.items = l.items[:len(l.items)-1]
	return top, nil
}

// Peek returns the top container without removing it.
func (l *Lane) Peek() (Container, error) {
	if l.IsEmpty() {
		return Container{}, ErrLaneEmpty
	}
	return l.items[len(l.items)-1], nil
}

// Contents returns a copy of the lane, top first.
func (l *Lane) Contents() []Container {
	out := make([]Container, len(l.items))
	for i, c := range l.items {
		out[len(l.items)-1-i] = c
	}
	return out
}

// Priorities returns the priorities in the lane, bottom first.
func (l *Lane) Priorities() []int {
	out := make([]int, len(l.items))
	for i, c := range l.items {
		out[i] = c.Priority
	}
	return out
}

// min returns the lowest-priority container and its depth from the top.
// ok is false for an empty lane.
func (l *Lane) min() (c Container, depth int, ok bool) {
	for i, item := range l.items {
		if !ok || item.Less(c) {
			c, depth, ok = item, len(l.items)-1-i, true
		}
	}
	return c, depth, ok
}
