package action

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/openshift-eng/report-summary/pkg/github"
	"github.com/openshift-eng/report-summary/pkg/github/commenter"
	"github.com/openshift-eng/report-summary/pkg/reportloader"
	"github.com/openshift-eng/report-summary/pkg/summary"
)

const (
	QualityGateCheckName  = "Allure Quality Gate"
	QualityGateCheckTitle = "Quality Gate"
)

// Client is the part of the GitHub API used for publishing.
type Client interface {
	commenter.CommentClient
	CreateCheckRun(owner, repo string, run github.CheckRun) error
}

// Publisher posts the summary of a report directory to the pull request that triggered the
// workflow.
type Publisher struct {
	Credentials github.Credentials
	Event       *github.EventContext
	// ReportDirectory resolves the report directory, only called once the gates pass.
	ReportDirectory func() (string, error)
	SectionLimit    int
	DryRun          bool
	Outputs         *StepOutputs

	// NewClient builds the GitHub client, github.New unless replaced.
	NewClient func(ctx context.Context, creds github.Credentials) Client
}

func defaultClient(ctx context.Context, creds github.Credentials) Client {
	return github.New(ctx, creds)
}

// Run publishes the report summary. Missing credentials, a non pull request event and an
// empty report directory all end the run early without an error.
func (p *Publisher) Run(ctx context.Context) error {
	if !p.Credentials.Present() && !p.DryRun {
		log.Info("No GitHub credentials provided, nothing to publish")
		return nil
	}
	if p.Event == nil || p.Event.EventName != github.PullRequestEventName || p.Event.PullRequest == nil {
		log.Info("Not running for a pull request, nothing to publish")
		return nil
	}

	logger := log.WithField("owner", p.Event.Owner).
		WithField("repo", p.Event.Repo).
		WithField("number", p.Event.PullRequest.Number)

	reportDir, err := p.ReportDirectory()
	if err != nil {
		return err
	}
	logger = logger.WithField("reportDir", reportDir)

	reports, err := reportloader.Load(ctx, reportDir)
	if err != nil {
		return err
	}

	var client Client
	if !p.DryRun {
		newClient := p.NewClient
		if newClient == nil {
			newClient = defaultClient
		}
		client = newClient(ctx, p.Credentials)
	}

	if reports.QualityGate != nil {
		if err := p.reportQualityGate(client, reports); err != nil {
			return errors.WithMessage(err, "could not create quality gate check run")
		}
	}

	if len(reports.Summaries) == 0 {
		logger.Info("No published reports found")
		return nil
	}

	rendered := Render(reports, p.SectionLimit)
	logger.WithField("runs", rendered.Totals.Runs).
		WithField("duration", summary.FormatDuration(rendered.Totals.Duration)).
		WithField("new", rendered.Totals.New).
		WithField("flaky", rendered.Totals.Flaky).
		WithField("retry", rendered.Totals.Retry).
		Infof("rendered %d report summaries", len(reports.Summaries))

	if err := p.writeOutputs(rendered); err != nil {
		return err
	}

	ghc := commenter.NewGitHubCommenter(client, p.DryRun)
	for _, comment := range append([]Comment{rendered.Summary}, rendered.Sections...) {
		if err := ghc.PublishComment(p.Event.Owner, p.Event.Repo, p.Event.PullRequest.Number, comment.Marker, comment.Body); err != nil {
			return errors.WithMessagef(err, "could not publish %s comment", comment.Section)
		}
	}

	return nil
}

func (p *Publisher) reportQualityGate(client Client, reports *reportloader.Reports) error {
	run := QualityGateCheckRun(reports, p.Event.PullRequest.HeadSHA)
	if client == nil {
		log.WithField("conclusion", run.Conclusion).Infof("Dry run check run %q:\n%s", run.Name, run.Summary)
		return nil
	}
	return client.CreateCheckRun(p.Event.Owner, p.Event.Repo, run)
}

// QualityGateCheckRun describes the check run reporting the quality gate of the reports on
// headSHA. Only failures carry a title and the formatted violations.
func QualityGateCheckRun(reports *reportloader.Reports, headSHA string) github.CheckRun {
	run := github.CheckRun{
		Name:       QualityGateCheckName,
		HeadSHA:    headSHA,
		Conclusion: conclusionSuccess,
	}
	if summary.IsQualityGateFailed(reports.QualityGate) {
		run.Conclusion = conclusionFailure
		run.Title = QualityGateCheckTitle
		run.Summary = summary.FormatQualityGateResults(reports.QualityGate)
	}
	return run
}

func (p *Publisher) writeOutputs(rendered *Rendered) error {
	if p.Outputs == nil {
		return nil
	}
	if err := p.Outputs.SetOutput(MarkdownOutput, rendered.Summary.Body); err != nil {
		return err
	}
	return p.Outputs.AppendSummary(rendered.Markdown())
}
