// Package kernel implements the simulation kernel: event dispatch, the
// pending-job FIFO, and the completed-job list. The kernel is the sole
// owner of the event queue, the worker pool, and the pending queue — it
// never shares them across goroutines, so no locking is required.
package kernel

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-foundations/jobsim/internal/config"
	"github.com/go-foundations/jobsim/internal/event"
	"github.com/go-foundations/jobsim/internal/job"
	"github.com/go-foundations/jobsim/internal/pool"
	"github.com/go-foundations/jobsim/internal/simerr"
	"github.com/go-foundations/jobsim/internal/simlog"
)

// Kernel drives virtual time forward over a seeded job stream.
type Kernel struct {
	cfg   *config.Config
	pool  *pool.Pool
	queue *event.Queue
	log   zerolog.Logger

	pending   []*job.Job
	completed []*job.Job

	now int // last-popped event timestamp, for the ordering invariant
}

// shutdownTimer is the WORKER_TO_POOL event payload: the worker plus the
// idle-session generation it was scheduled under, so a stale timer from
// an idle session the worker has since left can be recognized and
// ignored (see pool.Worker.ShutdownGen).
type shutdownTimer struct {
	worker *pool.Worker
	gen    int
}

// New builds a kernel bound to cfg and its own fresh worker pool.
func New(cfg *config.Config, log zerolog.Logger) *Kernel {
	return &Kernel{
		cfg:   cfg,
		pool:  pool.New(cfg, log),
		queue: event.New(),
		log:   log,
	}
}

// Pool exposes the kernel's worker pool, primarily so callers/tests can
// inspect post-run worker state.
func (k *Kernel) Pool() *pool.Pool {
	return k.pool
}

// Run seeds a JOB_SUBMITTED event for every job in jobs, drains the event
// queue, and returns the completed-job list. jobs need not be pre-sorted
// by submission time — the event queue enforces ordering.
func (k *Kernel) Run(jobs []job.Job) []job.Job {
	seeded := make([]*job.Job, len(jobs))
	for i := range jobs {
		seeded[i] = &jobs[i]
		k.queue.Push(jobs[i].Submission, event.JobSubmitted, seeded[i])
	}

	for {
		e, ok := k.queue.Pop()
		if !ok {
			break
		}
		if e.Timestamp < k.now {
			simerr.Raise("kernel.Run", fmt.Sprintf("event queue yielded timestamp %d after %d", e.Timestamp, k.now))
		}
		k.now = e.Timestamp

		switch e.Type {
		case event.JobSubmitted:
			k.handleJobSubmitted(e.Timestamp, e.Payload.(*job.Job))
		case event.WorkerReady, event.WorkerDone:
			// Retained as distinct tags for traceability only; both
			// trigger the same post-event handling.
			k.handleWorkerFreed(e.Timestamp, e.Payload.(*pool.Worker))
		case event.WorkerToPool:
			k.handleWorkerToPool(e.Timestamp, e.Payload.(shutdownTimer))
		default:
			simerr.Raise("kernel.Run", fmt.Sprintf("unknown event type %v", e.Type))
		}
	}

	if len(seeded) != len(k.completed) {
		simerr.Raise("kernel.Run", fmt.Sprintf("completed %d jobs, seeded %d", len(k.completed), len(seeded)))
	}

	out := make([]job.Job, len(k.completed))
	for i, j := range k.completed {
		out[i] = *j
	}
	return out
}

// handleJobSubmitted implements the JOB_SUBMITTED handler: try a warm
// worker first, else queue the job and try to invoke a cold/standby one.
func (k *Kernel) handleJobSubmitted(now int, j *job.Job) {
	if w, ok := k.pool.AllocateReady(); ok {
		k.dispatch(now, j, w)
		return
	}

	k.pending = append(k.pending, j)
	simlog.Trace(k.log, fmt.Sprintf("t=%d job %d queued (no ready worker)", now, j.ID))

	w, ok := k.pool.InvokeFromPool()
	if !ok {
		return
	}

	latency := k.pool.StartupLatency(w)
	if latency == 0 {
		// Hot tier: the worker is READY without an intervening event.
		// Dispatching in-line here (rather than enqueuing a zero-delay
		// WORKER_READY) is one of the kernel's two in-line paths, the
		// other being handleWorkerFreed's pending-job dispatch — virtual
		// time does not advance either way.
		// handleWorkerFreed performs the ACTIVATING->READY transition
		// itself; calling MarkReady here too would double-transition.
		k.handleWorkerFreed(now, w)
		return
	}
	k.queue.Push(now+latency, event.WorkerReady, w)
}

// dispatch assigns job j to worker w at time now and schedules its
// completion.
func (k *Kernel) dispatch(now int, j *job.Job, w *pool.Worker) {
	j.Start = now
	j.WorkerTier = w.Tier
	j.WorkerID = w.ID
	k.completed = append(k.completed, j)

	duration := k.cfg.ExecutionDuration(j.Class)
	k.queue.Push(now+duration, event.WorkerDone, w)
	simlog.Full(k.log, fmt.Sprintf("t=%d job %d -> worker %d (%s), done at %d", now, j.ID, w.ID, w.Tier, now+duration))
}

// handleWorkerFreed implements the WORKER_READY / WORKER_DONE handler:
// a freed worker either immediately picks up the oldest pending job, or
// starts its shutdown timer.
func (k *Kernel) handleWorkerFreed(now int, w *pool.Worker) {
	k.pool.MarkReady(w)

	if len(k.pending) > 0 {
		next := k.pending[0]
		k.pending = k.pending[1:]
		k.handleJobSubmitted(now, next)
		return
	}

	shutdown := k.pool.ShutdownLatency(w)
	k.queue.Push(now+shutdown, event.WorkerToPool, shutdownTimer{worker: w, gen: w.ShutdownGen})
}

// handleWorkerToPool implements the WORKER_TO_POOL handler: reclaim the
// worker's seat if it is still idle under the session the timer was
// scheduled for. A timer outlived by reuse or a newer timer is stale and
// is silently ignored, not an invariant violation.
func (k *Kernel) handleWorkerToPool(now int, t shutdownTimer) {
	if !k.pool.ReturnToPool(t.worker, t.gen) {
		simlog.Trace(k.log, fmt.Sprintf("t=%d worker %d (%s) stale shutdown timer ignored", now, t.worker.ID, t.worker.Tier))
		return
	}
	simlog.Full(k.log, fmt.Sprintf("t=%d worker %d (%s) returned to pool", now, t.worker.ID, t.worker.Tier))
}
