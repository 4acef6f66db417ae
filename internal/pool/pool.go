package pool

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-foundations/jobsim/internal/config"
	"github.com/go-foundations/jobsim/internal/simerr"
	"github.com/go-foundations/jobsim/internal/simlog"
)

// Pool owns every worker for a run. Capacity per tier never changes once
// initialized; there is no creation or destruction after init.
type Pool struct {
	cfg     *config.Config
	workers []*Worker
	byTier  map[string][]*Worker // in tier-definition order, for lookups
	log     zerolog.Logger

	tiersByPriority []config.WorkerTier
}

// New initializes a pool with capacity workers per configured tier,
// every worker starting IN_POOL, with globally unique monotonic IDs
// assigned in tier-definition order.
func New(cfg *config.Config, log zerolog.Logger) *Pool {
	p := &Pool{
		cfg:             cfg,
		byTier:          make(map[string][]*Worker, len(cfg.Tiers)),
		log:             log,
		tiersByPriority: cfg.TiersByPriority(),
	}

	nextID := 0
	for _, t := range cfg.Tiers {
		for i := 0; i < t.Capacity; i++ {
			w := &Worker{ID: nextID, Tier: t.Tag, Status: InPool}
			p.workers = append(p.workers, w)
			p.byTier[t.Tag] = append(p.byTier[t.Tag], w)
			nextID++
		}
	}

	simlog.Full(p.log, fmt.Sprintf("pool initialized with %d workers across %d tiers", len(p.workers), len(cfg.Tiers)))
	return p
}

// tierDef looks up a tier's configured parameters by tag.
func (p *Pool) tierDef(tag string) config.WorkerTier {
	for _, t := range p.cfg.Tiers {
		if t.Tag == tag {
			return t
		}
	}
	simerr.Raise("pool.tierDef", fmt.Sprintf("unknown tier %q", tag))
	return config.WorkerTier{}
}

// StartupLatency returns the configured activation latency for a
// worker's tier.
func (p *Pool) StartupLatency(w *Worker) int {
	return p.tierDef(w.Tier).StartupLatency
}

// ShutdownLatency returns the configured shutdown-reclaim latency for a
// worker's tier.
func (p *Pool) ShutdownLatency(w *Worker) int {
	return p.tierDef(w.Tier).ShutdownLatency
}

// AllocateReady returns the first READY worker, transitioning it to
// BUSY, or false if none is READY. Ties among READY workers break by
// ascending worker ID (stable, test-friendly).
func (p *Pool) AllocateReady() (*Worker, bool) {
	var best *Worker
	for _, w := range p.workers {
		if w.Status == Ready && (best == nil || w.ID < best.ID) {
			best = w
		}
	}
	if best == nil {
		return nil, false
	}
	p.transition(best, Busy, "AllocateReady")
	return best, true
}

// InvokeFromPool returns the first IN_POOL worker chosen by tier
// priority (lowest priority number first), then ascending worker ID
// within the tier, transitioning it to ACTIVATING. Returns false if no
// IN_POOL worker exists across all tiers. Activation latency is read by
// the caller (the kernel) via StartupLatency to decide whether to treat
// this as a zero-latency hot activation or schedule a WORKER_READY event.
func (p *Pool) InvokeFromPool() (*Worker, bool) {
	for _, tier := range p.tiersByPriority {
		var best *Worker
		for _, w := range p.byTier[tier.Tag] {
			if w.Status == InPool && (best == nil || w.ID < best.ID) {
				best = w
			}
		}
		if best != nil {
			p.transition(best, Activating, "InvokeFromPool")
			return best, true
		}
	}
	return nil, false
}

// MarkReady transitions a freed worker to READY and starts a new idle
// session (see Worker.ShutdownGen). A worker reaches this call from
// ACTIVATING (its startup latency elapsed, or a hot tier's zero-latency
// activation) or from BUSY (it just completed a job); both predecessor
// events (WORKER_READY, WORKER_DONE) are handled identically once
// control reaches this point.
func (p *Pool) MarkReady(w *Worker) {
	if w.Status != Activating && w.Status != Busy {
		simerr.Raise("MarkReady", fmt.Sprintf("worker %d in unexpected status %s, want ACTIVATING or BUSY", w.ID, w.Status))
	}
	p.transition(w, Ready, "MarkReady")
	w.ShutdownGen++
}

// ReturnToPool transitions a worker back to IN_POOL if it is still idle
// under the idle session gen was scheduled for. A WORKER_TO_POOL timer
// is scheduled once per idle session; if the worker was reused (and is
// now BUSY or in a later idle session) or already reclaimed by a newer
// timer before this one fires, the timer is stale and is ignored rather
// than treated as an invariant violation. Returns whether the worker was
// actually reclaimed.
func (p *Pool) ReturnToPool(w *Worker, gen int) bool {
	if w.Status != Ready || w.ShutdownGen != gen {
		return false
	}
	p.transition(w, InPool, "ReturnToPool")
	return true
}

func (p *Pool) transition(w *Worker, to Status, op string) {
	from := w.Status
	w.Status = to
	simlog.Full(p.log, fmt.Sprintf("%s: worker %d (%s) %s -> %s", op, w.ID, w.Tier, from, to))
}

// Workers returns the full worker list, in initialization (ID) order.
// Callers must not mutate the returned slice's contents outside the
// pool's own transition methods.
func (p *Pool) Workers() []*Worker {
	return p.workers
}

// CapacityCheck verifies that, for every tier, the count of workers
// across all statuses equals the tier's configured capacity. It is a
// pure diagnostic used by tests; the pool's construction makes violation
// structurally impossible since workers are neither created nor
// destroyed after New.
func (p *Pool) CapacityCheck() error {
	for _, t := range p.cfg.Tiers {
		if len(p.byTier[t.Tag]) != t.Capacity {
			return fmt.Errorf("tier %q has %d workers, want capacity %d", t.Tag, len(p.byTier[t.Tag]), t.Capacity)
		}
	}
	return nil
}
