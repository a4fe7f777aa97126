package v1

// TestStatus is the outcome of a single test result.
type TestStatus string

const (
	TestStatusPassed  TestStatus = "passed"
	TestStatusFailed  TestStatus = "failed"
	TestStatusBroken  TestStatus = "broken"
	TestStatusSkipped TestStatus = "skipped"
	TestStatusUnknown TestStatus = "unknown"
)

// CanonicalStatuses lists the statuses always shown in a summary row, in display order.
var CanonicalStatuses = []TestStatus{
	TestStatusPassed,
	TestStatusFailed,
	TestStatusBroken,
	TestStatusSkipped,
	TestStatusUnknown,
}

// TestResult describes one test from a run summary's new/flaky/retry lists.
type TestResult struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Status   TestStatus `json:"status"`
	Duration int64      `json:"duration,omitempty"`
	// RemoteHref is a direct link to this test result. When empty, links are built
	// from the owning report's remoteHref and the test id.
	RemoteHref string `json:"remoteHref,omitempty"`
}

// Stats holds per-status counts plus any extra named counters a report produced (e.g. total).
// Missing keys read as 0.
type Stats map[string]int

// Count returns the counter for the given key, 0 when absent.
func (s Stats) Count(key string) int {
	if s == nil {
		return 0
	}
	return s[key]
}

// RunSummaryMeta carries rendering hints written by the report generator.
type RunSummaryMeta struct {
	WithTestResultsLinks *bool `json:"withTestResultsLinks,omitempty"`
}

// RunSummary is the content of one summary.json file, one per generated report.
type RunSummary struct {
	Name       string          `json:"name"`
	Stats      Stats           `json:"stats"`
	Duration   int64           `json:"duration"`
	RemoteHref string          `json:"remoteHref,omitempty"`
	NewTests   []TestResult    `json:"newTests,omitempty"`
	FlakyTests []TestResult    `json:"flakyTests,omitempty"`
	RetryTests []TestResult    `json:"retryTests,omitempty"`
	Meta       *RunSummaryMeta `json:"meta,omitempty"`
}

// TestLinksEnabled reports whether tests of this run may be rendered as links. Links are on
// unless the report explicitly disabled them.
func (r RunSummary) TestLinksEnabled() bool {
	if r.Meta == nil || r.Meta.WithTestResultsLinks == nil {
		return true
	}
	return *r.Meta.WithTestResultsLinks
}
