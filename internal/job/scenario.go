package job

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-foundations/jobsim/internal/simerr"
)

// scenarioJob is the on-disk shape of a scenario file entry: only the
// fields relevant to constructing a Job, independent of the
// kernel-assigned dispatch fields.
type scenarioJob struct {
	ID         int    `json:"id"`
	Type       string `json:"type"`
	UserType   string `json:"user_type"`
	Submission int    `json:"submission_time"`
}

// LoadScenario reads a reproducible job scenario file, used instead of
// the stochastic generator when deterministic input is required. Jobs
// are returned in file order; callers that need submission order should
// sort explicitly, since a hand-authored scenario file is not guaranteed
// sorted.
func LoadScenario(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading scenario file %q: %v", simerr.ErrInput, path, err)
	}

	var raw []scenarioJob
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: invalid scenario JSON in %q: %v", simerr.ErrInput, path, err)
	}

	jobs := make([]Job, len(raw))
	for i, r := range raw {
		jobs[i] = Job{
			ID:         r.ID,
			Class:      r.Type,
			UserClass:  r.UserType,
			Submission: r.Submission,
		}
	}
	return jobs, nil
}

// SaveScenario writes a job list to path in the scenario-file format,
// including only the constructor-relevant fields (mirrors the original
// generator's print_jobs, which emits the same restricted shape so a
// generated run can be replayed deterministically).
func SaveScenario(path string, jobs []Job) error {
	raw := make([]scenarioJob, len(jobs))
	for i, j := range jobs {
		raw[i] = scenarioJob{
			ID:         j.ID,
			Type:       j.Class,
			UserType:   j.UserClass,
			Submission: j.Submission,
		}
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding scenario: %v", simerr.ErrInput, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing scenario file %q: %v", simerr.ErrInput, path, err)
	}
	return nil
}
