package action

import (
	"github.com/openshift-eng/report-summary/pkg/github/commenter"
	"github.com/openshift-eng/report-summary/pkg/reportloader"
	"github.com/openshift-eng/report-summary/pkg/summary"
)

const (
	conclusionSuccess = "success"
	conclusionFailure = "failure"
)

// Comment is one pull request comment, identified across runs by its marker.
type Comment struct {
	Section string `json:"section" yaml:"section"`
	Marker  string `json:"marker" yaml:"marker"`
	Body    string `json:"body" yaml:"body"`
}

// Rendered is everything published for a report directory.
type Rendered struct {
	// Summary is the run summary table, always published first.
	Summary Comment `json:"summary" yaml:"summary"`
	// Sections holds one comment per chunk of new, flaky and retried tests, in that order.
	Sections []Comment     `json:"sections" yaml:"sections"`
	Totals   summary.Totals `json:"totals" yaml:"totals"`
	// QualityGate is the check run conclusion, empty when the report has no quality gate data.
	QualityGate string `json:"qualityGate,omitempty" yaml:"qualityGate,omitempty"`
}

// Render builds the comments for the loaded reports. sectionLimit bounds the tests listed in
// a single section comment.
func Render(reports *reportloader.Reports, sectionLimit int) *Rendered {
	rendered := &Rendered{
		Summary: Comment{
			Section: "summary",
			Marker:  commenter.SummaryMarker,
			Body:    summary.GenerateSummaryMarkdownTable(reports.Summaries),
		},
		Sections: []Comment{},
		Totals:   summary.Aggregate(reports.Summaries),
	}

	for _, category := range summary.TestsCategories {
		blocks := summary.GenerateTestsSectionComment(summary.TestsSection{
			Title:        category.Title,
			Tests:        summary.CollectTests(reports.Summaries, category),
			SectionLimit: sectionLimit,
		})
		for i, block := range blocks {
			rendered.Sections = append(rendered.Sections, Comment{
				Section: category.Key,
				Marker:  commenter.SectionMarker(category.Key, i+1),
				Body:    block,
			})
		}
	}

	if reports.QualityGate != nil {
		rendered.QualityGate = conclusionSuccess
		if summary.IsQualityGateFailed(reports.QualityGate) {
			rendered.QualityGate = conclusionFailure
		}
	}

	return rendered
}

// Markdown joins all comments into a single document.
func (r *Rendered) Markdown() string {
	markdown := r.Summary.Body
	for _, section := range r.Sections {
		markdown += "\n\n" + section.Body
	}
	return markdown
}
