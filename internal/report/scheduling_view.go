// Package report renders a per-time-slot ASCII job-scheduling view, in
// the spirit of a standalone job_scheduling_view tool that renders a
// finished job list as a Gantt-style grid. This package has no
// dependency on internal/kernel and is wired only behind the CLI's
// --debug full flag, consuming a finished job list the same way the
// original standalone script consumed a scenario file.
package report

import (
	"fmt"
	"strings"

	"github.com/go-foundations/jobsim/internal/config"
	"github.com/go-foundations/jobsim/internal/job"
)

// step is one time slot's slot markers across concurrently-live jobs.
type step struct {
	timestamp int
	slots     []byte
}

const (
	slotEmpty      = ' '
	slotOccupied   = ':'
	slotSubmit     = 'L'
	slotStart      = 'S'
	slotProcessing = '*'
	slotFinish     = 'F'
)

// SchedulingView lays out completed jobs on a time-sliced grid: each
// job occupies one column slot from its submission through its
// completion, marked with a one-character code at each step.
type SchedulingView struct {
	steps     []step
	stepWidth int
	initTime  int
}

// BuildSchedulingView lays out jobs on a grid with the given step width
// (virtual seconds per column). cfg supplies execution durations so each
// job's completion time can be derived from its start time.
func BuildSchedulingView(cfg *config.Config, jobs []job.Job, stepWidth int) SchedulingView {
	v := SchedulingView{stepWidth: stepWidth}
	if len(jobs) == 0 || stepWidth <= 0 {
		return v
	}

	minSubmission := jobs[0].Submission
	maxCompletion := jobs[0].Start + cfg.ExecutionDuration(jobs[0].Class)
	for _, j := range jobs {
		if j.Submission < minSubmission {
			minSubmission = j.Submission
		}
		completion := j.Start + cfg.ExecutionDuration(j.Class)
		if completion > maxCompletion {
			maxCompletion = completion
		}
	}
	v.initTime = minSubmission

	numSteps := (maxCompletion-minSubmission)/stepWidth + 1
	v.steps = make([]step, numSteps)
	for i := range v.steps {
		v.steps[i] = step{timestamp: minSubmission + i*stepWidth}
	}

	for _, j := range jobs {
		completion := j.Start + cfg.ExecutionDuration(j.Class)
		v.addJob(j, completion)
	}
	return v
}

func (v *SchedulingView) addJob(j job.Job, completion int) {
	firstIdx := (j.Submission - v.initTime) / v.stepWidth
	startIdx := firstIdx + (j.Start-j.Submission)/v.stepWidth
	finishIdx := firstIdx + (completion-j.Submission)/v.stepWidth

	if firstIdx < 0 || firstIdx >= len(v.steps) || finishIdx < 0 || finishIdx >= len(v.steps) {
		return
	}

	slotIdx := v.findAvailableSlot(firstIdx)
	for i := firstIdx; i <= finishIdx; i++ {
		v.ensureSlot(i, slotIdx)
		v.steps[i].slots[slotIdx] = slotOccupied
	}
	v.steps[firstIdx].slots[slotIdx] = slotSubmit
	for i := startIdx; i < finishIdx; i++ {
		v.steps[i].slots[slotIdx] = slotProcessing
	}
	v.steps[startIdx].slots[slotIdx] = slotStart
	v.steps[finishIdx].slots[slotIdx] = slotFinish
}

func (v *SchedulingView) findAvailableSlot(stepIdx int) int {
	for i, s := range v.steps[stepIdx].slots {
		if s == slotEmpty {
			return i
		}
	}
	v.ensureSlot(stepIdx, len(v.steps[stepIdx].slots))
	return len(v.steps[stepIdx].slots) - 1
}

func (v *SchedulingView) ensureSlot(stepIdx, slotIdx int) {
	for slotIdx >= len(v.steps[stepIdx].slots) {
		v.steps[stepIdx].slots = append(v.steps[stepIdx].slots, slotEmpty)
	}
}

// Render draws the grid as one line per time step.
func (v SchedulingView) Render() string {
	var b strings.Builder
	b.WriteString("Job Scheduling View:\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	for _, s := range v.steps {
		slots := make([]string, len(s.slots))
		for i, c := range s.slots {
			slots[i] = string(c)
		}
		fmt.Fprintf(&b, "Time %6ds| %s\n", s.timestamp, strings.Join(slots, " "))
	}
	b.WriteString(strings.Repeat("=", 50) + "\n")
	return b.String()
}
