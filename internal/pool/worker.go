// Package pool implements the tiered worker pool state machine and
// admission policy: a fixed set of workers per tier, with allocation
// preferring already-warm workers and activation preferring the
// cheapest tier.
package pool

// Status is a worker's position in its lifecycle. ACTIVATING is an
// explicit state beyond the nominal three-state lifecycle (IN_POOL,
// READY, BUSY): the source this pool is modeled on leaves an activating
// worker nominally IN_POOL and relies on the admission policy never
// re-offering the same seat. ACTIVATING makes that reservation visible
// and the tier-capacity invariant locally checkable without inspecting
// in-flight events.
type Status int

const (
	InPool Status = iota
	Activating
	Ready
	Busy
)

func (s Status) String() string {
	switch s {
	case InPool:
		return "IN_POOL"
	case Activating:
		return "ACTIVATING"
	case Ready:
		return "READY"
	case Busy:
		return "BUSY"
	default:
		return "UNKNOWN"
	}
}

// Worker is one pool member: a stable identifier unique across the whole
// pool (not just its tier), a tier tag, and a current status. Workers are
// created once at pool initialization and never destroyed during a run.
//
// ShutdownGen counts the worker's idle sessions: it increments every
// time the worker enters READY. A WORKER_TO_POOL timer scheduled during
// one idle session carries the generation it was scheduled under, so a
// stale timer from an idle session the worker has since left (reused,
// or already reclaimed by a newer timer) can be told apart from the
// current one and ignored instead of reclaiming the wrong session.
type Worker struct {
	ID          int
	Tier        string
	Status      Status
	ShutdownGen int
}
