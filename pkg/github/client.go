package github

import (
	"context"
	"net/http"
	"strconv"

	gh "github.com/google/go-github/v45/github"
	ghauth "github.com/jferrl/go-githubauth"
	log "github.com/sirupsen/logrus"
	"github.com/tcnksm/go-gitconfig"
	"golang.org/x/oauth2"
)

// larger page size fewer requests counting against our api rate
const commentsPageSize = 100

// Credentials selects how the client authenticates. A GitHub App (AppID, InstallationID and
// PrivateKey all set) is preferred over Token.
type Credentials struct {
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKey     []byte
	// GitConfigFallback allows Resolve to read github.token from git config.
	GitConfigFallback bool
}

// CheckRun is the result of a check reported against a commit.
type CheckRun struct {
	Name       string
	HeadSHA    string
	Conclusion string
	Title      string
	Summary    string
}

func (c Credentials) hasApp() bool {
	return c.AppID != 0 && c.InstallationID != 0 && len(c.PrivateKey) > 0
}

// Present reports whether any credential is configured.
func (c Credentials) Present() bool {
	return c.Token != "" || c.hasApp()
}

// Resolve fills Token from git config when the fallback is enabled and nothing else is set.
func (c Credentials) Resolve() Credentials {
	if c.Present() || !c.GitConfigFallback {
		return c
	}

	log.Infof("No GitHub token provided, checking git config")
	token, err := gitconfig.GithubToken()
	if err != nil {
		log.WithError(err).Warningf("unable to retrieve GitHub token from git config")
		return c
	}
	c.Token = token
	return c
}

type Client struct {
	ctx            context.Context
	commentsFetch  func(owner, repo string, number int, opts *gh.IssueListCommentsOptions) ([]*gh.IssueComment, *gh.Response, error)
	commentCreate  func(owner, repo string, number int, body string) (*gh.IssueComment, error)
	commentUpdate  func(owner, repo string, commentID int64, body string) (*gh.IssueComment, error)
	checkRunCreate func(owner, repo string, opts gh.CreateCheckRunOptions) (*gh.CheckRun, error)
}

func New(ctx context.Context, creds Credentials) *Client {
	return NewWithHTTPClient(ctx, newGHAuthClient(ctx, creds))
}

// NewWithHTTPClient wires the client to an already authenticated http client, or to an
// unauthenticated one when httpClient is nil.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client) *Client {
	client := &Client{ctx: ctx}
	ghc := gh.NewClient(httpClient)

	client.commentsFetch = func(owner, repo string, number int, opts *gh.IssueListCommentsOptions) ([]*gh.IssueComment, *gh.Response, error) {
		return ghc.Issues.ListComments(client.ctx, owner, repo, number, opts)
	}

	client.commentCreate = func(owner, repo string, number int, body string) (*gh.IssueComment, error) {
		comment, _, err := ghc.Issues.CreateComment(client.ctx, owner, repo, number, &gh.IssueComment{Body: &body})
		return comment, err
	}

	client.commentUpdate = func(owner, repo string, commentID int64, body string) (*gh.IssueComment, error) {
		comment, _, err := ghc.Issues.EditComment(client.ctx, owner, repo, commentID, &gh.IssueComment{Body: &body})
		return comment, err
	}

	client.checkRunCreate = func(owner, repo string, opts gh.CreateCheckRunOptions) (*gh.CheckRun, error) {
		checkRun, _, err := ghc.Checks.CreateCheckRun(client.ctx, owner, repo, opts)
		return checkRun, err
	}

	return client
}

func newGHAuthClient(ctx context.Context, creds Credentials) *http.Client {
	if creds.hasApp() {
		appTokenSource, err := ghauth.NewApplicationTokenSource(creds.AppID, creds.PrivateKey)
		if err != nil {
			log.WithError(err).Error("error creating application token source, falling back to token")
		} else {
			installationTokenSource := ghauth.NewInstallationTokenSource(creds.InstallationID, appTokenSource, ghauth.WithContext(ctx))
			log.Infof("using GitHub App credentials for installation %d", creds.InstallationID)
			return oauth2.NewClient(ctx, installationTokenSource)
		}
	}

	if creds.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: creds.Token},
		)
		return oauth2.NewClient(ctx, ts)
	}

	// make a no-auth client if no token is available
	log.Warningf("using unathenticated GitHub client, requests will be rate-limited")
	return nil
}

// ListComments returns every comment on the issue or pull request, following pagination.
func (c *Client) ListComments(owner, repo string, number int) ([]*gh.IssueComment, error) {
	opts := &gh.IssueListCommentsOptions{ListOptions: gh.ListOptions{PerPage: commentsPageSize}}
	var all []*gh.IssueComment

	for {
		comments, resp, err := c.commentsFetch(owner, repo, number, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, comments...)

		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) CreateComment(owner, repo string, number int, body string) error {
	_, err := c.commentCreate(owner, repo, number, body)
	return err
}

func (c *Client) UpdateComment(owner, repo string, commentID int64, body string) error {
	_, err := c.commentUpdate(owner, repo, commentID, body)
	return err
}

// CreateCheckRun reports a completed check. Title and Summary are only sent when Summary is set.
func (c *Client) CreateCheckRun(owner, repo string, run CheckRun) error {
	opts := gh.CreateCheckRunOptions{
		Name:       run.Name,
		HeadSHA:    run.HeadSHA,
		Status:     gh.String("completed"),
		Conclusion: gh.String(run.Conclusion),
	}
	if run.Summary != "" {
		opts.Output = &gh.CheckRunOutput{
			Title:   gh.String(run.Title),
			Summary: gh.String(run.Summary),
		}
	}

	checkRun, err := c.checkRunCreate(owner, repo, opts)
	if err != nil {
		return err
	}

	log.WithField("owner", owner).
		WithField("repo", repo).
		WithField("sha", run.HeadSHA).
		WithField("conclusion", run.Conclusion).
		Infof("created check run %s", checkRunID(checkRun))
	return nil
}

func checkRunID(checkRun *gh.CheckRun) string {
	if checkRun == nil || checkRun.ID == nil {
		return "<unknown>"
	}
	return strconv.FormatInt(*checkRun.ID, 10)
}
