package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openshift-eng/report-summary/pkg/action"
	"github.com/openshift-eng/report-summary/pkg/flags"
	"github.com/openshift-eng/report-summary/pkg/github"
)

const publishTimeout = 10 * time.Minute

type PublishFlags struct {
	GitHubFlags *flags.GitHubFlags
	ReportFlags *flags.ReportFlags

	// Repository, PullRequest and HeadSHA replace the workflow event, for running outside of Actions.
	Repository  string
	PullRequest int
	HeadSHA     string
}

func NewPublishFlags() *PublishFlags {
	return &PublishFlags{
		GitHubFlags: flags.NewGitHubFlags(),
		ReportFlags: flags.NewReportFlags(),
	}
}

func (f *PublishFlags) BindFlags(fs *pflag.FlagSet) {
	f.GitHubFlags.BindFlags(fs)
	f.ReportFlags.BindFlags(fs)
	fs.StringVar(&f.Repository, "repository", f.Repository, "Repository (owner/repo) to publish to instead of the one from the workflow event")
	fs.IntVar(&f.PullRequest, "pull-request", f.PullRequest, "Pull request number to publish to instead of the one from the workflow event")
	fs.StringVar(&f.HeadSHA, "head-sha", f.HeadSHA, "Commit the quality gate check run is reported on when --pull-request is used")
}

func (f *PublishFlags) InputNames() []string {
	return append(f.GitHubFlags.InputNames(), f.ReportFlags.InputNames()...)
}

// EventContext reads the workflow event and applies the overrides given on the command line.
func (f *PublishFlags) EventContext() (*github.EventContext, error) {
	ec, err := github.LoadEventContext(os.Getenv)
	if err != nil {
		return nil, errors.WithMessage(err, "could not load workflow event")
	}

	if f.Repository != "" {
		owner, repo, ok := strings.Cut(f.Repository, "/")
		if !ok || owner == "" || repo == "" {
			return nil, errors.Errorf("--repository %s is in wrong format, expected owner/repo", f.Repository)
		}
		ec.Owner, ec.Repo = owner, repo
	}
	if f.PullRequest > 0 {
		ec.EventName = github.PullRequestEventName
		ec.PullRequest = &github.PullRequestRef{Number: f.PullRequest, HeadSHA: f.HeadSHA}
	}

	return ec, nil
}

func NewPublishCommand() *cobra.Command {
	f := NewPublishFlags()

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the report summary to the pull request",
		Long: `Publish the summary of every report found in the report directory as a pull request
comment, updating the comments left by previous runs. Every flag listed as an action input can
also be set through its INPUT_<NAME> environment variable, e.g. INPUT_GITHUB-TOKEN.

Nothing is published unless a GitHub credential is available and the workflow runs for a pull
request.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()

			in, err := flags.NewInputs(cmd.Flags(), f.InputNames()...)
			if err != nil {
				return err
			}
			f.GitHubFlags.Load(in)
			f.ReportFlags.Load(in)

			creds, err := f.GitHubFlags.GetCredentials()
			if err != nil {
				return err
			}
			event, err := f.EventContext()
			if err != nil {
				return err
			}

			publisher := &action.Publisher{
				Credentials:     creds,
				Event:           event,
				ReportDirectory: f.ReportFlags.GetReportDirectory,
				SectionLimit:    f.ReportFlags.SectionLimit,
				DryRun:          f.GitHubFlags.DryRun,
				Outputs:         action.NewStepOutputs(os.Getenv),
			}
			return publisher.Run(ctx)
		},
	}

	f.BindFlags(cmd.Flags())

	return cmd
}
