package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-foundations/jobsim/internal/config"
	"github.com/go-foundations/jobsim/internal/job"
)

// ClassCount is one job class's share of the completed-job list.
type ClassCount struct {
	Class string
	Count int
	Share float64 // fraction of total, in [0, 1]
}

// WaitStats summarizes wait = start - submission over all completed jobs.
type WaitStats struct {
	Min, Mean, Max int
	Histogram      Histogram
}

// TierUtilization summarizes one tier's usage: how many distinct worker
// instances actually ran a job, and the total execution time assigned to
// the tier.
type TierUtilization struct {
	Tier          string
	WorkersUsed   int
	TotalDuration int
}

// Report is the full reduction of a completed-job list. A Report over
// an empty job list reports zeros explicitly rather than omitting
// fields.
type Report struct {
	TotalJobs            int
	ClassCounts          []ClassCount
	SubmissionHistogram  StackedHistogram
	Wait                 WaitStats
	TierUtilization      []TierUtilization
	TotalExecutionTime   int
	WorkerUsageHistogram StackedHistogram // keyed by "tier#id"
}

// Reduce computes the full statistics report over completed. cfg
// supplies per-job-class execution durations for the worker-utilization
// sums.
func Reduce(cfg *config.Config, completed []job.Job) Report {
	var r Report
	r.TotalJobs = len(completed)
	if len(completed) == 0 {
		return r
	}

	r.ClassCounts = classCounts(completed)

	submissions := make([]int, len(completed))
	submissionKeys := make([]string, len(completed))
	waits := make([]int, len(completed))
	for i, j := range completed {
		submissions[i] = j.Submission
		submissionKeys[i] = j.Class
		waits[i] = j.Wait()
	}
	r.SubmissionHistogram = NewStackedHistogram(submissions, submissionKeys, 10)

	r.Wait = waitStats(waits)

	tierUsage := map[string]*TierUtilization{}
	usageValues := []int{}
	usageKeys := []string{}
	for _, j := range completed {
		tu, ok := tierUsage[j.WorkerTier]
		if !ok {
			tu = &TierUtilization{Tier: j.WorkerTier}
			tierUsage[j.WorkerTier] = tu
		}
		duration := cfg.ExecutionDuration(j.Class)
		tu.TotalDuration += duration
		r.TotalExecutionTime += duration

		usageValues = append(usageValues, j.Start)
		usageKeys = append(usageKeys, fmt.Sprintf("%s#%d", j.WorkerTier, j.WorkerID))
	}

	workersSeen := map[string]map[int]bool{}
	for _, j := range completed {
		if workersSeen[j.WorkerTier] == nil {
			workersSeen[j.WorkerTier] = map[int]bool{}
		}
		workersSeen[j.WorkerTier][j.WorkerID] = true
	}
	for tier, tu := range tierUsage {
		tu.WorkersUsed = len(workersSeen[tier])
	}

	tiers := make([]string, 0, len(tierUsage))
	for t := range tierUsage {
		tiers = append(tiers, t)
	}
	sort.Strings(tiers)
	for _, t := range tiers {
		r.TierUtilization = append(r.TierUtilization, *tierUsage[t])
	}

	r.WorkerUsageHistogram = NewStackedHistogram(usageValues, usageKeys, 10)

	return r
}

func classCounts(completed []job.Job) []ClassCount {
	counts := map[string]int{}
	var order []string
	for _, j := range completed {
		if _, ok := counts[j.Class]; !ok {
			order = append(order, j.Class)
		}
		counts[j.Class]++
	}
	sort.Strings(order)

	total := len(completed)
	out := make([]ClassCount, len(order))
	for i, c := range order {
		out[i] = ClassCount{
			Class: c,
			Count: counts[c],
			Share: float64(counts[c]) / float64(total),
		}
	}
	return out
}

func waitStats(waits []int) WaitStats {
	if len(waits) == 0 {
		return WaitStats{}
	}
	min, max, sum := waits[0], waits[0], 0
	for _, w := range waits {
		if w < min {
			min = w
		}
		if w > max {
			max = w
		}
		sum += w
	}
	return WaitStats{
		Min:       min,
		Mean:      sum / len(waits),
		Max:       max,
		Histogram: NewHistogram(waits, 10),
	}
}

// Render produces the textual report written to standard output by the
// CLI: submitted-jobs distribution, wait-time distribution, and
// worker-usage summary and histogram.
func Render(r Report) string {
	var b strings.Builder

	if r.TotalJobs == 0 {
		b.WriteString("No jobs completed.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Completed jobs: %d\n\n", r.TotalJobs)

	b.WriteString("Job class distribution:\n")
	for _, c := range r.ClassCounts {
		fmt.Fprintf(&b, "  %s: %d (%.1f%%)\n", c.Class, c.Count, c.Share*100)
	}

	b.WriteString("\nSubmission-time distribution:\n")
	for _, bin := range r.SubmissionHistogram.Bins {
		fmt.Fprintf(&b, "  %s\n", bin)
	}

	fmt.Fprintf(&b, "\nWait-time distribution: min=%d mean=%d max=%d\n", r.Wait.Min, r.Wait.Mean, r.Wait.Max)
	for _, bin := range r.Wait.Histogram.Bins {
		fmt.Fprintf(&b, "  %s\n", bin)
	}

	b.WriteString("\nWorker utilization:\n")
	for _, tu := range r.TierUtilization {
		fmt.Fprintf(&b, "  %s: %d workers used, %d seconds assigned\n", tu.Tier, tu.WorkersUsed, tu.TotalDuration)
	}
	fmt.Fprintf(&b, "  total: %d seconds assigned across all tiers\n", r.TotalExecutionTime)

	b.WriteString("\nWorker usage over time:\n")
	for _, bin := range r.WorkerUsageHistogram.Bins {
		fmt.Fprintf(&b, "  %s\n", bin)
	}

	return b.String()
}
