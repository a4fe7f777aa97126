package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/openshift-eng/report-summary/pkg/apis/report/v1"
	"github.com/openshift-eng/report-summary/pkg/reportloader"
)

func TestRender(t *testing.T) {
	disabled := false
	reports := &reportloader.Reports{
		Summaries: []v1.RunSummary{
			{
				Name:       "first",
				Stats:      v1.Stats{"passed": 2, "failed": 1},
				Duration:   1000,
				RemoteHref: "https://example.com/first/",
				FlakyTests: []v1.TestResult{{ID: "f1", Name: "flaky one", Status: v1.TestStatusPassed}},
			},
			{
				Name:       "second",
				Stats:      v1.Stats{"passed": 1},
				Duration:   3000,
				RemoteHref: "https://example.com/second/",
				FlakyTests: []v1.TestResult{{ID: "f2", Name: "flaky two", Status: v1.TestStatusFailed}},
				RetryTests: []v1.TestResult{{ID: "r1", Name: "retried", Status: v1.TestStatusBroken}},
				Meta:       &v1.RunSummaryMeta{WithTestResultsLinks: &disabled},
			},
		},
		QualityGate: v1.NewQualityGateByEnvironment(v1.EnvironmentViolations{Environment: "chrome", Violations: []v1.QualityGateViolation{}}),
	}

	rendered := Render(reports, 0)

	assert.Equal(t, "summary", rendered.Summary.Section)
	assert.Equal(t, "<!-- report-summary:summary -->", rendered.Summary.Marker)
	assert.Contains(t, rendered.Summary.Body, "| first |")
	assert.Contains(t, rendered.Summary.Body, "| second |")

	require.Len(t, rendered.Sections, 2)
	assert.Equal(t, "flaky-tests", rendered.Sections[0].Section)
	assert.Equal(t, "<!-- report-summary:flaky-tests:1 -->", rendered.Sections[0].Marker)
	assert.Contains(t, rendered.Sections[0].Body, "Flaky tests (2)")
	assert.Contains(t, rendered.Sections[0].Body, "[flaky one](https://example.com/first/#f1)")
	assert.Contains(t, rendered.Sections[0].Body, "| flaky two |")
	assert.Equal(t, "retry-tests", rendered.Sections[1].Section)
	assert.Contains(t, rendered.Sections[1].Body, "Retry tests (1)")

	assert.Equal(t, 2, rendered.Totals.Runs)
	assert.Equal(t, 3, rendered.Totals.Stats.Count("passed"))
	assert.Equal(t, int64(4000), rendered.Totals.Duration)
	assert.Equal(t, 2, rendered.Totals.Flaky)
	assert.Equal(t, "success", rendered.QualityGate)

	markdown := rendered.Markdown()
	assert.Contains(t, markdown, rendered.Summary.Body+"\n\n"+rendered.Sections[0].Body)
}

func TestRender_NoQualityGate(t *testing.T) {
	rendered := Render(&reportloader.Reports{}, 10)
	assert.Empty(t, rendered.QualityGate)
	assert.Empty(t, rendered.Sections)
	assert.Equal(t, 0, rendered.Totals.Runs)
	assert.Equal(t, rendered.Summary.Body, rendered.Markdown())
}

func TestQualityGateCheckRun(t *testing.T) {
	failed := &reportloader.Reports{QualityGate: v1.NewQualityGateList(v1.QualityGateViolation{Rule: "minTestsCount", Message: "expected 10"})}
	run := QualityGateCheckRun(failed, "sha")
	assert.Equal(t, "failure", run.Conclusion)
	assert.Equal(t, "Quality Gate", run.Title)
	assert.Equal(t, "**minTestsCount** has failed:\n```shell\nexpected 10\n```\n", run.Summary)

	passed := &reportloader.Reports{QualityGate: v1.NewQualityGateList()}
	run = QualityGateCheckRun(passed, "sha")
	assert.Equal(t, "success", run.Conclusion)
	assert.Empty(t, run.Title)
	assert.Empty(t, run.Summary)
}
