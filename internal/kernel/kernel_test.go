package kernel

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/go-foundations/jobsim/internal/config"
	"github.com/go-foundations/jobsim/internal/job"
	"github.com/go-foundations/jobsim/internal/pool"
)

type KernelTestSuite struct {
	suite.Suite
}

func TestKernelTestSuite(t *testing.T) {
	suite.Run(t, new(KernelTestSuite))
}

func mustConfig(ts *KernelTestSuite, raw string) *config.Config {
	cfg, err := config.LoadBytes([]byte(raw), 1)
	ts.Require().NoError(err)
	return cfg
}

func byID(jobs []job.Job, id int) job.Job {
	for _, j := range jobs {
		if j.ID == id {
			return j
		}
	}
	panic("job not found")
}

// S1: a single hot worker dispatches a single job with no wait.
func (ts *KernelTestSuite) TestSingleHotWorkerSingleJob() {
	cfg := mustConfig(ts, `{
		"job_definitions": [{"job_type": "S", "job_execution_duration": 60, "job_probability": 1}],
		"user_definitions": [{"user_type": "C", "user_probability": 1, "num_jobs": 1}],
		"worker_definitions": [
			{"worker_type": "H", "pool_size": 1, "pool_priority": 1, "worker_startup_time": 0, "worker_shutdown_time": 60}
		],
		"lambda_users_requests_per_hour": 100
	}`)

	jobs := []job.Job{{ID: 0, Class: "S", UserClass: "C", Submission: 0}}
	completed := New(cfg, zerolog.Nop()).Run(jobs)

	ts.Require().Len(completed, 1)
	j := completed[0]
	ts.Equal(0, j.Start)
	ts.Equal("H", j.WorkerTier)
	ts.Equal(0, j.WorkerID)
	ts.Equal(0, j.Wait())
}

// S2: a second job submitted while the sole worker is busy must wait and
// be dispatched to the same worker once it frees up.
func (ts *KernelTestSuite) TestQueueingOnASingleWorker() {
	cfg := mustConfig(ts, `{
		"job_definitions": [{"job_type": "S", "job_execution_duration": 60, "job_probability": 1}],
		"user_definitions": [{"user_type": "C", "user_probability": 1, "num_jobs": 1}],
		"worker_definitions": [
			{"worker_type": "H", "pool_size": 1, "pool_priority": 1, "worker_startup_time": 0, "worker_shutdown_time": 60}
		],
		"lambda_users_requests_per_hour": 100
	}`)

	jobs := []job.Job{
		{ID: 0, Class: "S", UserClass: "C", Submission: 0},
		{ID: 1, Class: "S", UserClass: "C", Submission: 10},
	}
	completed := New(cfg, zerolog.Nop()).Run(jobs)
	ts.Require().Len(completed, 2)

	first := byID(completed, 0)
	second := byID(completed, 1)
	ts.Equal(0, first.Start)
	ts.Equal(60, second.Start)
	ts.Equal("H", second.WorkerTier)
	ts.Equal(first.WorkerID, second.WorkerID)
	ts.Equal(50, second.Wait())
}

// S3: with no hot capacity, a job waits out the cold tier's activation
// latency before dispatch.
func (ts *KernelTestSuite) TestColdActivation() {
	cfg := mustConfig(ts, `{
		"job_definitions": [{"job_type": "S", "job_execution_duration": 60, "job_probability": 1}],
		"user_definitions": [{"user_type": "C", "user_probability": 1, "num_jobs": 1}],
		"worker_definitions": [
			{"worker_type": "C", "pool_size": 1, "pool_priority": 1, "worker_startup_time": 300, "worker_shutdown_time": 60}
		],
		"lambda_users_requests_per_hour": 100
	}`)

	jobs := []job.Job{{ID: 0, Class: "S", UserClass: "C", Submission: 0}}
	completed := New(cfg, zerolog.Nop()).Run(jobs)

	ts.Require().Len(completed, 1)
	j := completed[0]
	ts.Equal(300, j.Start)
	ts.Equal("C", j.WorkerTier)
	ts.Equal(300, j.Wait())
}

// S4: jobs prefer the hot tier; once it is saturated, a concurrent job
// activates the cold tier, and later traffic returns to the hot tier
// after it frees up.
func (ts *KernelTestSuite) TestTierPriority() {
	cfg := mustConfig(ts, `{
		"job_definitions": [{"job_type": "S", "job_execution_duration": 400, "job_probability": 1}],
		"user_definitions": [{"user_type": "C", "user_probability": 1, "num_jobs": 1}],
		"worker_definitions": [
			{"worker_type": "H", "pool_size": 1, "pool_priority": 1, "worker_startup_time": 0, "worker_shutdown_time": 1000},
			{"worker_type": "C", "pool_size": 1, "pool_priority": 2, "worker_startup_time": 300, "worker_shutdown_time": 60}
		],
		"lambda_users_requests_per_hour": 100
	}`)

	jobs := []job.Job{
		{ID: 0, Class: "S", UserClass: "C", Submission: 0},
		{ID: 1, Class: "S", UserClass: "C", Submission: 0},
		{ID: 2, Class: "S", UserClass: "C", Submission: 450},
	}
	completed := New(cfg, zerolog.Nop()).Run(jobs)
	ts.Require().Len(completed, 3)

	j0 := byID(completed, 0)
	j1 := byID(completed, 1)
	j2 := byID(completed, 2)

	ts.Equal(0, j0.Start)
	ts.Equal("H", j0.WorkerTier)

	ts.Equal(300, j1.Start)
	ts.Equal("C", j1.WorkerTier)

	ts.Equal(450, j2.Start)
	ts.Equal("H", j2.WorkerTier)
	ts.Equal(j0.WorkerID, j2.WorkerID)
}

// S5: a worker with no further pending work returns to the pool only
// after its shutdown latency elapses, and is available for reuse once
// it does.
func (ts *KernelTestSuite) TestShutdownReclamation() {
	cfg := mustConfig(ts, `{
		"job_definitions": [{"job_type": "S", "job_execution_duration": 60, "job_probability": 1}],
		"user_definitions": [{"user_type": "C", "user_probability": 1, "num_jobs": 1}],
		"worker_definitions": [
			{"worker_type": "H", "pool_size": 1, "pool_priority": 1, "worker_startup_time": 0, "worker_shutdown_time": 120}
		],
		"lambda_users_requests_per_hour": 100
	}`)

	jobs := []job.Job{{ID: 0, Class: "S", UserClass: "C", Submission: 0}}
	k := New(cfg, zerolog.Nop())
	completed := k.Run(jobs)
	ts.Require().Len(completed, 1)

	workers := k.Pool().Workers()
	ts.Require().Len(workers, 1)
	ts.Equal(pool.InPool, workers[0].Status)
}

// TestStaleShutdownTimerIsIgnored reproduces a worker reused during its
// own shutdown-latency window: the original WORKER_TO_POOL timer must
// not reclaim a worker that has been reused since it was scheduled (busy
// again, idle in a newer session, or already reclaimed by a newer timer)
// by the time it fires.
func (ts *KernelTestSuite) TestStaleShutdownTimerIsIgnored() {
	cfg := mustConfig(ts, `{
		"job_definitions": [{"job_type": "S", "job_execution_duration": 60, "job_probability": 1}],
		"user_definitions": [{"user_type": "C", "user_probability": 1, "num_jobs": 1}],
		"worker_definitions": [
			{"worker_type": "H", "pool_size": 1, "pool_priority": 1, "worker_startup_time": 0, "worker_shutdown_time": 120}
		],
		"lambda_users_requests_per_hour": 100
	}`)

	jobs := []job.Job{
		{ID: 0, Class: "S", UserClass: "C", Submission: 0},
		{ID: 1, Class: "S", UserClass: "C", Submission: 70},
	}
	// job 0 finishes at t=60 and schedules a WORKER_TO_POOL at t=180.
	// job 1 reuses the same worker at t=70, finishing at t=130, and
	// schedules its own WORKER_TO_POOL at t=250. The stale t=180 timer
	// fires during that newer idle session and must not panic or reclaim
	// the worker; the t=250 timer does.
	k := New(cfg, zerolog.Nop())
	completed := k.Run(jobs)
	ts.Require().Len(completed, 2)

	j0 := byID(completed, 0)
	j1 := byID(completed, 1)
	ts.Equal(0, j0.Start)
	ts.Equal(70, j1.Start)
	ts.Equal(j0.WorkerID, j1.WorkerID)

	workers := k.Pool().Workers()
	ts.Require().Len(workers, 1)
	ts.Equal(pool.InPool, workers[0].Status)
}

// TestEventOrderingInvariantHolds exercises out-of-submission-order input:
// the kernel must still process events in timestamp order regardless of
// input slice order.
func (ts *KernelTestSuite) TestEventOrderingInvariantHolds() {
	cfg := mustConfig(ts, `{
		"job_definitions": [{"job_type": "S", "job_execution_duration": 10, "job_probability": 1}],
		"user_definitions": [{"user_type": "C", "user_probability": 1, "num_jobs": 1}],
		"worker_definitions": [
			{"worker_type": "H", "pool_size": 2, "pool_priority": 1, "worker_startup_time": 0, "worker_shutdown_time": 10}
		],
		"lambda_users_requests_per_hour": 100
	}`)

	jobs := []job.Job{
		{ID: 0, Class: "S", UserClass: "C", Submission: 50},
		{ID: 1, Class: "S", UserClass: "C", Submission: 0},
	}
	completed := New(cfg, zerolog.Nop()).Run(jobs)
	ts.Require().Len(completed, 2)
	ts.Equal(0, byID(completed, 1).Start)
	ts.Equal(50, byID(completed, 0).Start)
}

// TestCompletedCountMatchesSeededCount checks the closing invariant over
// a slightly larger mixed scenario.
func (ts *KernelTestSuite) TestCompletedCountMatchesSeededCount() {
	cfg := mustConfig(ts, `{
		"job_definitions": [
			{"job_type": "S", "job_execution_duration": 10, "job_probability": 1},
			{"job_type": "M", "job_execution_duration": 30, "job_probability": 1}
		],
		"user_definitions": [{"user_type": "C", "user_probability": 1, "num_jobs": 1}],
		"worker_definitions": [
			{"worker_type": "H", "pool_size": 2, "pool_priority": 1, "worker_startup_time": 0, "worker_shutdown_time": 10},
			{"worker_type": "C", "pool_size": 2, "pool_priority": 2, "worker_startup_time": 120, "worker_shutdown_time": 60}
		],
		"lambda_users_requests_per_hour": 100
	}`)

	jobs := []job.Job{
		{ID: 0, Class: "S", UserClass: "C", Submission: 0},
		{ID: 1, Class: "M", UserClass: "C", Submission: 0},
		{ID: 2, Class: "S", UserClass: "C", Submission: 0},
		{ID: 3, Class: "M", UserClass: "C", Submission: 5},
		{ID: 4, Class: "S", UserClass: "C", Submission: 5},
	}
	completed := New(cfg, zerolog.Nop()).Run(jobs)
	ts.Len(completed, len(jobs))
}
