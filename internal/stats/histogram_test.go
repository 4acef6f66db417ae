package stats

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type HistogramTestSuite struct {
	suite.Suite
}

func TestHistogramTestSuite(t *testing.T) {
	suite.Run(t, new(HistogramTestSuite))
}

func (ts *HistogramTestSuite) TestEmptyDataYieldsZeroValue() {
	h := NewHistogram(nil, 10)
	ts.Empty(h.Bins)
}

func (ts *HistogramTestSuite) TestBinCountAndCoverage() {
	data := []int{0, 1, 2, 10, 20, 30, 40, 50, 60, 70, 80, 90, 99}
	h := NewHistogram(data, 10)
	ts.Len(h.Bins, 10)

	total := 0
	for _, b := range h.Bins {
		total += b.Total
	}
	ts.Equal(len(data), total)
}

func (ts *HistogramTestSuite) TestStackedTracksKeys() {
	values := []int{1, 1, 50, 99}
	keys := []string{"S", "S", "M", "L"}
	h := NewStackedHistogram(values, keys, 10)

	total := 0
	for _, b := range h.Bins {
		total += b.Total
	}
	ts.Equal(len(values), total)
}

func (ts *HistogramTestSuite) TestStackedEmptyYieldsZeroValue() {
	h := NewStackedHistogram(nil, nil, 10)
	ts.Empty(h.Bins)
}
