package job

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ScenarioTestSuite struct {
	suite.Suite
}

func TestScenarioTestSuite(t *testing.T) {
	suite.Run(t, new(ScenarioTestSuite))
}

func (ts *ScenarioTestSuite) TestSaveAndLoadRoundTrip() {
	jobs := []Job{
		{ID: 0, Class: "S", UserClass: "C", Submission: 0},
		{ID: 1, Class: "M", UserClass: "F", Submission: 10},
	}

	path := filepath.Join(ts.T().TempDir(), "scenario.json")
	ts.Require().NoError(SaveScenario(path, jobs))

	loaded, err := LoadScenario(path)
	ts.Require().NoError(err)
	ts.Require().Len(loaded, 2)
	ts.Equal(jobs[0].ID, loaded[0].ID)
	ts.Equal(jobs[0].Class, loaded[0].Class)
	ts.Equal(jobs[0].UserClass, loaded[0].UserClass)
	ts.Equal(jobs[0].Submission, loaded[0].Submission)
	// Dispatch fields are not part of the scenario shape.
	ts.Equal(0, loaded[0].Start)
	ts.Equal("", loaded[0].WorkerTier)
}

func (ts *ScenarioTestSuite) TestLoadMissingFileIsInputError() {
	_, err := LoadScenario(filepath.Join(ts.T().TempDir(), "missing.json"))
	ts.Require().Error(err)
}

func (ts *ScenarioTestSuite) TestLoadInvalidJSONIsInputError() {
	path := filepath.Join(ts.T().TempDir(), "bad.json")
	ts.Require().NoError(os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := LoadScenario(path)
	ts.Require().Error(err)
}
