package job

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/go-foundations/jobsim/internal/config"
)

type GeneratorTestSuite struct {
	suite.Suite
}

func TestGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func (ts *GeneratorTestSuite) TestEmptyWindowProducesNoJobs() {
	cfg := config.Default(42)
	jobs := NewGenerator(cfg).Generate(100, 100)
	ts.Empty(jobs)

	jobs = NewGenerator(cfg).Generate(100, 0)
	ts.Empty(jobs)
}

func (ts *GeneratorTestSuite) TestSubmissionOrderNondecreasing() {
	cfg := config.Default(7)
	jobs := NewGenerator(cfg).Generate(0, 3600)
	for i := 1; i < len(jobs); i++ {
		ts.LessOrEqual(jobs[i-1].Submission, jobs[i].Submission)
	}
}

func (ts *GeneratorTestSuite) TestIDsAreMonotonicAndUnique() {
	cfg := config.Default(7)
	jobs := NewGenerator(cfg).Generate(0, 3600)
	for i, j := range jobs {
		ts.Equal(i, j.ID)
	}
}

func (ts *GeneratorTestSuite) TestDeterministicGivenSeed() {
	cfg1 := config.Default(99)
	cfg2 := config.Default(99)

	jobsA := NewGenerator(cfg1).Generate(0, 3600)
	jobsB := NewGenerator(cfg2).Generate(0, 3600)

	ts.Require().Equal(len(jobsA), len(jobsB))
	for i := range jobsA {
		ts.Equal(jobsA[i], jobsB[i])
	}
}

func (ts *GeneratorTestSuite) TestDifferentSeedsCanDiffer() {
	jobsA := NewGenerator(config.Default(1)).Generate(0, 3600)
	jobsB := NewGenerator(config.Default(2)).Generate(0, 3600)

	same := len(jobsA) == len(jobsB)
	if same {
		for i := range jobsA {
			if jobsA[i] != jobsB[i] {
				same = false
				break
			}
		}
	}
	ts.False(same, "expected different seeds to produce different job streams")
}

func (ts *GeneratorTestSuite) TestAllJobsUseConfiguredClasses() {
	cfg := config.Default(3)
	jobs := NewGenerator(cfg).Generate(0, 3600)

	validJobClasses := map[string]bool{}
	for _, jc := range cfg.JobClasses {
		validJobClasses[jc.Tag] = true
	}
	validUserClasses := map[string]bool{}
	for _, uc := range cfg.UserClasses {
		validUserClasses[uc.Tag] = true
	}

	for _, j := range jobs {
		ts.True(validJobClasses[j.Class], "unexpected job class %q", j.Class)
		ts.True(validUserClasses[j.UserClass], "unexpected user class %q", j.UserClass)
	}
}
