package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/openshift-eng/report-summary/pkg/apis/report/v1"
)

func TestAggregate(t *testing.T) {
	totals := Aggregate([]v1.RunSummary{
		{Name: "a", Stats: v1.Stats{"passed": 10, "failed": 2, "total": 12}, Duration: 1000, NewTests: makeTests("new", 2)},
		{Name: "b", Stats: v1.Stats{"passed": 5, "broken": 1}, Duration: 4000, FlakyTests: makeTests("flaky", 1)},
		{Name: "c", Duration: -50, RetryTests: makeTests("retry", 3)},
	})

	assert.Equal(t, 3, totals.Runs)
	assert.Equal(t, v1.Stats{"passed": 15, "failed": 2, "broken": 1, "skipped": 0, "unknown": 0, "total": 12}, totals.Stats)
	assert.Equal(t, int64(5000), totals.Duration)
	assert.Equal(t, int64(1000), totals.MedianDuration)
	assert.Equal(t, 2, totals.New)
	assert.Equal(t, 1, totals.Flaky)
	assert.Equal(t, 3, totals.Retry)
}

func TestAggregateEmpty(t *testing.T) {
	totals := Aggregate(nil)
	assert.Equal(t, 0, totals.Runs)
	assert.Equal(t, int64(0), totals.Duration)
	assert.Equal(t, int64(0), totals.MedianDuration)
	assert.Len(t, totals.Stats, len(v1.CanonicalStatuses))
}
