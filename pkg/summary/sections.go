package summary

import (
	"fmt"
	"strings"

	v1 "github.com/openshift-eng/report-summary/pkg/apis/report/v1"
)

// DefaultSectionLimit bounds the tests listed in one section. GitHub rejects comment bodies
// above ~65k characters; 200 rows stays well below that.
const DefaultSectionLimit = 200

// TestsCategory is one of the categorized test lists a run summary carries.
type TestsCategory struct {
	// Key identifies the category in comment markers.
	Key   string
	Title string
	Pick  func(v1.RunSummary) []v1.TestResult
}

var TestsCategories = []TestsCategory{
	{Key: "new-tests", Title: "New tests", Pick: func(s v1.RunSummary) []v1.TestResult { return s.NewTests }},
	{Key: "flaky-tests", Title: "Flaky tests", Pick: func(s v1.RunSummary) []v1.TestResult { return s.FlakyTests }},
	{Key: "retry-tests", Title: "Retry tests", Pick: func(s v1.RunSummary) []v1.TestResult { return s.RetryTests }},
}

// CollectTests flattens one category across all runs, keeping run order then test order.
// Each test gets a direct link into its own run's report unless the run disabled links.
func CollectTests(summaries []v1.RunSummary, category TestsCategory) []v1.TestResult {
	tests := []v1.TestResult{}
	for _, run := range summaries {
		linksEnabled := run.TestLinksEnabled()
		for _, test := range category.Pick(run) {
			switch {
			case !linksEnabled:
				test.RemoteHref = ""
			case test.RemoteHref == "" && run.RemoteHref != "":
				test.RemoteHref = run.RemoteHref + "#" + test.ID
			}
			tests = append(tests, test)
		}
	}
	return tests
}

// TestsSection describes a collapsible comment section listing tests.
type TestsSection struct {
	Title string
	Tests []v1.TestResult
	// RemoteHref is the report link used for tests that carry no link of their own.
	RemoteHref string
	// SectionLimit is the maximum number of tests per block, DefaultSectionLimit when <= 0.
	SectionLimit int
}

// GenerateTestsSectionComment splits the tests into consecutive chunks of at most
// SectionLimit and renders each as a <details> block. With more than one chunk the block
// titles get a 1-based "#n" suffix. No tests yields no blocks at all.
func GenerateTestsSectionComment(section TestsSection) []string {
	if len(section.Tests) == 0 {
		return []string{}
	}

	limit := section.SectionLimit
	if limit <= 0 {
		limit = DefaultSectionLimit
	}

	chunks := make([][]v1.TestResult, 0, (len(section.Tests)+limit-1)/limit)
	for start := 0; start < len(section.Tests); start += limit {
		end := min(start+limit, len(section.Tests))
		chunks = append(chunks, section.Tests[start:end])
	}

	title := fmt.Sprintf("%s (%d)", section.Title, len(section.Tests))
	comments := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		chunkTitle := title
		if len(chunks) > 1 {
			chunkTitle = fmt.Sprintf("%s #%d", title, i+1)
		}

		lines := []string{
			"<details>",
			fmt.Sprintf("<summary><b>%s</b></summary>\n", chunkTitle),
			FormatSummaryTests(chunk, section.RemoteHref),
			"\n</details>\n",
		}
		comments = append(comments, strings.Join(lines, "\n"))
	}

	return comments
}
