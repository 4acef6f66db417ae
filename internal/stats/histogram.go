// Package stats reduces a completed-job list into summary distributions:
// per-class counts, a submission-time histogram stacked by job class, a
// wait-time histogram, and per-tier worker utilization. The histogram
// type is a pure fold over data with no dependency on virtual time or
// events, so it is testable in isolation from the kernel.
package stats

import "fmt"

// Bin is one histogram bucket: an inclusive [Min, Max] range, a total
// count, and (for stacked histograms) a per-key breakdown.
type Bin struct {
	Min, Max   int
	Total      int
	ByKey      map[string]int
	dataPoints int // total data points across the whole histogram, for %
}

func (b Bin) String() string {
	pct := 0.0
	if b.dataPoints > 0 {
		pct = float64(b.Total) / float64(b.dataPoints) * 100
	}
	bar := barString(b.Total, b.dataPoints)
	label := fmt.Sprintf("%d-%d: %d (%.0f%%)", b.Min, b.Max, b.Total, pct)
	if len(b.ByKey) > 0 {
		for _, k := range sortedKeys(b.ByKey) {
			label += fmt.Sprintf(" (%s %d)", k, b.ByKey[k])
		}
	}
	return fmt.Sprintf("|%s %s", bar, label)
}

const barPrintMax = 20

func barString(total, dataPoints int) string {
	if dataPoints == 0 {
		return ""
	}
	n := int(float64(total) * float64(barPrintMax) / float64(dataPoints))
	out := make([]byte, 0, n*len("█"))
	for i := 0; i < n; i++ {
		out = append(out, []byte("█")...)
	}
	return string(out)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Simple insertion sort: histogram key sets are always small (a
	// handful of job/user classes or worker instances).
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// Histogram is a simple, unstacked fixed-bin-count histogram over a set
// of integer values.
type Histogram struct {
	Min, Max int
	Bins     []Bin
}

// NewHistogram builds a binCount-bin histogram spanning [min(data),
// max(data)]. Returns a zero-value Histogram if data is empty.
func NewHistogram(data []int, binCount int) Histogram {
	if len(data) == 0 {
		return Histogram{}
	}
	min, max := data[0], data[0]
	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	width := (max-min)/binCount + 1

	h := Histogram{Min: min, Max: max}
	h.Bins = make([]Bin, binCount)
	for i := range h.Bins {
		h.Bins[i] = Bin{
			Min:        min + i*width,
			Max:        min + (i+1)*width - 1,
			dataPoints: len(data),
		}
	}
	for _, v := range data {
		idx := (v - min) / width
		if idx >= binCount {
			idx = binCount - 1
		}
		h.Bins[idx].Total++
	}
	return h
}

// StackedHistogram is a histogram over (value, key) pairs, tracking a
// per-key breakdown within each bin (used for the per-job-class
// submission-time distribution and per-worker-instance usage).
type StackedHistogram struct {
	Min, Max int
	Bins     []Bin
}

// NewStackedHistogram builds a binCount-bin stacked histogram over
// (value, key) pairs. Returns a zero-value StackedHistogram if data is
// empty.
func NewStackedHistogram(values []int, keys []string, binCount int) StackedHistogram {
	if len(values) == 0 {
		return StackedHistogram{}
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	width := (max-min)/binCount + 1

	h := StackedHistogram{Min: min, Max: max}
	h.Bins = make([]Bin, binCount)
	for i := range h.Bins {
		h.Bins[i] = Bin{
			Min:        min + i*width,
			Max:        min + (i+1)*width - 1,
			ByKey:      make(map[string]int),
			dataPoints: len(values),
		}
	}
	for i, v := range values {
		idx := (v - min) / width
		if idx >= binCount {
			idx = binCount - 1
		}
		h.Bins[idx].Total++
		h.Bins[idx].ByKey[keys[i]]++
	}
	return h
}
