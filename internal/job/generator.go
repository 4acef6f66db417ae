package job

import (
	"math"
	"math/rand"

	"github.com/go-foundations/jobsim/internal/config"
)

// Generator produces the complete job-arrival stream for a simulation
// time window. It owns its RNG exclusively: no other component samples
// randomness during generation.
type Generator struct {
	cfg *config.Config
	rng *rand.Rand

	userIdx int
	jobIdx  int
	nextID  int
}

// NewGenerator builds a Generator against cfg, seeded from cfg.Seed. The
// bag-derivation RNG used when cfg was built is a separate stream from
// this one: the documented contract is "determinism is a function of the
// configured RNG seed only," and reusing the same seed for a distinct
// math/rand.Rand instance still satisfies that — two runs built from the
// same seed reproduce byte-identical output.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate produces the full job list submitted in [start, end) by
// repeatedly sampling an interarrival gap, a user class, a per-request
// job count, and a job class per job. A zero interarrival gap is legal
// (simultaneous request batches); if start >= end, the result is empty.
func (g *Generator) Generate(start, end int) []Job {
	var jobs []Job
	t := start

	for t < end {
		gap := g.interarrivalGap()
		t += gap
		if t >= end {
			break
		}

		userClass := g.cfg.UserClassBag[g.userIdx%len(g.cfg.UserClassBag)]
		g.userIdx++

		maxJobs := g.cfg.MaxJobsPerRequest(userClass)
		n := 1
		if maxJobs > 1 {
			n = 1 + g.rng.Intn(maxJobs)
		}

		for i := 0; i < n; i++ {
			jobClass := g.cfg.JobClassBag[g.jobIdx%len(g.cfg.JobClassBag)]
			g.jobIdx++
			jobs = append(jobs, Job{
				ID:         g.nextID,
				Class:      jobClass,
				UserClass:  userClass,
				Submission: t,
			})
			g.nextID++
		}
	}

	return jobs
}

// interarrivalGap samples a non-negative integer interarrival gap from an
// exponential distribution with rate lambda/3600 per second, truncating
// toward zero (not rounding) as the original tool does — a zero gap at
// high lambda is an accepted modeling choice, documented alongside the
// RNG seed rather than special-cased away.
func (g *Generator) interarrivalGap() int {
	rate := float64(g.cfg.LambdaPerHour) / config.Hour
	return int(math.Floor(g.rng.ExpFloat64() / rate))
}
