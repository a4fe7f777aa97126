package summary

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	v1 "github.com/openshift-eng/report-summary/pkg/apis/report/v1"
)

const (
	chartsURL = "https://allurecharts.qameta.workers.dev"

	// SummaryTitle heads the summary table comment.
	SummaryTitle = "# Allure Report Summary"

	summaryHeader    = "|  | Name | Duration | Stats | New | Flaky | Retry | Report |"
	summaryDelimiter = "|-|-|-|-|-|-|-|-|"

	testsHeader    = "| Status | Test Name | Duration |"
	testsDelimiter = "|--------|-----------|----------|"

	statsSeparator = "&nbsp;&nbsp;&nbsp;"
)

var canonicalStatusKeys = func() sets.Set[string] {
	keys := sets.New[string]()
	for _, status := range v1.CanonicalStatuses {
		keys.Insert(string(status))
	}
	return keys
}()

// escapeCell keeps user provided text from breaking the table layout.
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "|", `\|`)
}

func statusDot(status string) string {
	return fmt.Sprintf(`<img src="%s/dot?type=%s&size=8" />`, chartsURL, status)
}

func statusPie(stats v1.Stats) string {
	return fmt.Sprintf(`<img src="%s/pie?passed=%d&failed=%d&broken=%d&skipped=%d&unknown=%d&size=32" width="28px" height="28px" />`,
		chartsURL,
		stats.Count(string(v1.TestStatusPassed)),
		stats.Count(string(v1.TestStatusFailed)),
		stats.Count(string(v1.TestStatusBroken)),
		stats.Count(string(v1.TestStatusSkipped)),
		stats.Count(string(v1.TestStatusUnknown)))
}

// extraStatKeys returns the non canonical stat keys in sorted order.
func extraStatKeys(stats v1.Stats) []string {
	extras := []string{}
	for key := range stats {
		if !canonicalStatusKeys.Has(key) {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	return extras
}

func statsLabels(stats v1.Stats) string {
	labels := make([]string, 0, len(v1.CanonicalStatuses))
	for _, status := range v1.CanonicalStatuses {
		s := string(status)
		labels = append(labels, fmt.Sprintf(`<img alt="%s tests" src="%s/dot?type=%s&size=8" />&nbsp;<span>%d</span>`,
			strings.ToUpper(s[:1])+s[1:], chartsURL, s, stats.Count(s)))
	}
	for _, key := range extraStatKeys(stats) {
		labels = append(labels, fmt.Sprintf(`<span>%s:&nbsp;%d</span>`, escapeCell(key), stats[key]))
	}
	return strings.Join(labels, statsSeparator)
}

// countCell links a non zero count to the filtered report view; zero counts are never links.
func countCell(count int, remoteHref, filter string) string {
	if remoteHref == "" || count == 0 {
		return fmt.Sprintf("%d", count)
	}
	return fmt.Sprintf(`<a href="%s?filter=%s" target="_blank">%d</a>`, remoteHref, filter, count)
}

func summaryRow(summary v1.RunSummary) string {
	report := ""
	if summary.RemoteHref != "" {
		report = fmt.Sprintf(`<a href="%s" target="_blank">View</a>`, summary.RemoteHref)
	}

	return fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %s |",
		statusPie(summary.Stats),
		escapeCell(summary.Name),
		FormatDuration(summary.Duration),
		statsLabels(summary.Stats),
		countCell(len(summary.NewTests), summary.RemoteHref, "new"),
		countCell(len(summary.FlakyTests), summary.RemoteHref, "flaky"),
		countCell(len(summary.RetryTests), summary.RemoteHref, "retry"),
		report)
}

// GenerateSummaryMarkdownTable renders one table row per run summary, in input order, under a
// title line. An empty input still yields the title, header and delimiter.
func GenerateSummaryMarkdownTable(summaries []v1.RunSummary) string {
	lines := make([]string, 0, len(summaries)+3)
	lines = append(lines, SummaryTitle, summaryHeader, summaryDelimiter)
	for _, summary := range summaries {
		lines = append(lines, summaryRow(summary))
	}
	return strings.Join(lines, "\n")
}

func testLink(test v1.TestResult, remoteHref string) string {
	if test.RemoteHref != "" {
		return test.RemoteHref
	}
	if remoteHref == "" {
		return ""
	}
	return remoteHref + "#" + test.ID
}

// FormatSummaryTests renders the given tests as a status/name/duration table. Names link to
// the test inside the report when a link can be built. No tests yields the header only.
func FormatSummaryTests(tests []v1.TestResult, remoteHref string) string {
	lines := make([]string, 0, len(tests)+2)
	lines = append(lines, testsHeader, testsDelimiter)

	for _, test := range tests {
		status := string(test.Status)
		if status == "" {
			status = string(v1.TestStatusUnknown)
		}
		name := escapeCell(test.Name)
		if href := testLink(test, remoteHref); href != "" {
			name = fmt.Sprintf("[%s](%s)", name, href)
		}
		lines = append(lines, fmt.Sprintf("| %s %s | %s | %s |", statusDot(status), status, name, FormatDuration(test.Duration)))
	}

	return strings.Join(lines, "\n")
}
