package sim

import "strconv"

// Container is a retrieval token. Priority is fixed at creation; lower values
// leave the bay first. Relocations counts lane-to-lane moves and is reported
// when the container is retrieved.
type Container struct {
	Priority    int
	Relocations int
}

// NewContainer creates a container that has never been relocated.
func NewContainer(priority int) Container {
	return Container{Priority: priority}
}

// Less reports whether c must be retrieved before other.
func (c Container) Less(other Container) bool {
	return c.Priority < other.Priority
}

// Equal compares containers by priority only. Uniqueness of priorities is
// enforced by the Bay, not by the container.
func (c Container) Equal(other Container) bool {
	return c.Priority == other.Priority
}

func (c Container) String() string {
	return strconv.Itoa(c.Priority)
}
