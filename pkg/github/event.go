package github

import (
	"os"
	"strings"

	gh "github.com/google/go-github/v45/github"
	"github.com/pkg/errors"
)

// PullRequestEventName is the GITHUB_EVENT_NAME of pull request workflows.
const PullRequestEventName = "pull_request"

// PullRequestRef identifies the pull request a workflow runs for.
type PullRequestRef struct {
	Number  int
	HeadSHA string
}

// EventContext is the subset of the GitHub Actions workflow context we act on.
type EventContext struct {
	EventName string
	Owner     string
	Repo      string
	// PullRequest is nil unless the event is a pull request event carrying a pull request payload.
	PullRequest *PullRequestRef
}

// LoadEventContext reads GITHUB_EVENT_NAME, GITHUB_REPOSITORY and the event payload at
// GITHUB_EVENT_PATH through getenv (os.Getenv outside of tests).
func LoadEventContext(getenv func(string) string) (*EventContext, error) {
	ec := &EventContext{EventName: getenv("GITHUB_EVENT_NAME")}

	if repository := getenv("GITHUB_REPOSITORY"); repository != "" {
		owner, repo, ok := strings.Cut(repository, "/")
		if !ok || owner == "" || repo == "" {
			return nil, errors.Errorf("invalid GITHUB_REPOSITORY %q, expected owner/repo", repository)
		}
		ec.Owner, ec.Repo = owner, repo
	}

	if ec.EventName != PullRequestEventName {
		return ec, nil
	}

	eventPath := getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return ec, nil
	}
	payload, err := os.ReadFile(eventPath)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read event payload %s", eventPath)
	}

	event, err := gh.ParseWebHook(ec.EventName, payload)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't parse pull request event payload")
	}
	prEvent, ok := event.(*gh.PullRequestEvent)
	if !ok || prEvent.PullRequest == nil {
		return ec, nil
	}

	ec.PullRequest = &PullRequestRef{
		Number:  prEvent.PullRequest.GetNumber(),
		HeadSHA: prEvent.PullRequest.GetHead().GetSHA(),
	}
	if prEvent.Number != nil && ec.PullRequest.Number == 0 {
		ec.PullRequest.Number = prEvent.GetNumber()
	}
	if ec.Owner == "" && prEvent.Repo != nil {
		ec.Owner = prEvent.Repo.GetOwner().GetLogin()
		ec.Repo = prEvent.Repo.GetName()
	}

	return ec, nil
}
