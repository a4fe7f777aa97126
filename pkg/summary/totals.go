package summary

import (
	"github.com/montanaflynn/stats"

	v1 "github.com/openshift-eng/report-summary/pkg/apis/report/v1"
)

// Totals aggregates all run summaries of a report directory.
type Totals struct {
	Runs           int      `json:"runs" yaml:"runs"`
	Stats          v1.Stats `json:"stats" yaml:"stats"`
	Duration       int64    `json:"duration" yaml:"duration"`
	MedianDuration int64    `json:"medianDuration" yaml:"medianDuration"`
	New            int      `json:"new" yaml:"new"`
	Flaky          int      `json:"flaky" yaml:"flaky"`
	Retry          int      `json:"retry" yaml:"retry"`
}

// Aggregate sums every stat key (canonical statuses always present) and the run durations.
func Aggregate(summaries []v1.RunSummary) Totals {
	totals := Totals{Runs: len(summaries), Stats: v1.Stats{}}
	for _, status := range v1.CanonicalStatuses {
		totals.Stats[string(status)] = 0
	}

	durations := make(stats.Float64Data, 0, len(summaries))
	for _, summary := range summaries {
		for key, count := range summary.Stats {
			totals.Stats[key] += count
		}
		durations = append(durations, float64(max(summary.Duration, 0)))
		totals.New += len(summary.NewTests)
		totals.Flaky += len(summary.FlakyTests)
		totals.Retry += len(summary.RetryTests)
	}

	if len(durations) == 0 {
		return totals
	}

	// errors only occur on empty input, handled above
	sum, _ := stats.Sum(durations)
	median, _ := stats.Median(durations)
	totals.Duration = int64(sum)
	totals.MedianDuration = int64(median)

	return totals
}
