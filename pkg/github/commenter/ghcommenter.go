package commenter

import (
	"fmt"
	"strings"

	gh "github.com/google/go-github/v45/github"
	log "github.com/sirupsen/logrus"
)

const markerKey = "report-summary"

// SummaryMarker identifies the summary table comment.
var SummaryMarker = Marker("summary")

// Marker builds the hidden html comment that identifies a comment across runs. The closing
// "-->" is part of the marker so one marker is never a substring of another.
func Marker(section string) string {
	return fmt.Sprintf("<!-- %s:%s -->", markerKey, section)
}

// SectionMarker identifies one part of a multi-part section, part is 1-based.
func SectionMarker(section string, part int) string {
	return Marker(fmt.Sprintf("%s:%d", section, part))
}

// CommentClient is the subset of the GitHub issues API the commenter needs.
type CommentClient interface {
	ListComments(owner, repo string, number int) ([]*gh.IssueComment, error)
	CreateComment(owner, repo string, number int, body string) error
	UpdateComment(owner, repo string, commentID int64, body string) error
}

// ComposeBody places the marker on the first line of the comment body.
func ComposeBody(marker, body string) string {
	return marker + "\n" + body
}

// FindOrCreateComment lists the comments of the issue and rewrites the first one containing
// marker, or creates a new comment when none does. Exactly one write follows the listing.
// Errors from GitHub are returned as is.
func FindOrCreateComment(client CommentClient, owner, repo string, number int, marker, body string) error {
	comments, err := client.ListComments(owner, repo, number)
	if err != nil {
		return err
	}

	composed := ComposeBody(marker, body)
	for _, cmt := range comments {
		if cmt == nil || !strings.Contains(cmt.GetBody(), marker) {
			continue
		}
		return client.UpdateComment(owner, repo, cmt.GetID(), composed)
	}

	return client.CreateComment(owner, repo, number, composed)
}

type GitHubCommenter struct {
	client CommentClient
	dryRun bool
}

// NewGitHubCommenter returns a commenter publishing through client. In dry run mode comments
// are only logged.
func NewGitHubCommenter(client CommentClient, dryRun bool) *GitHubCommenter {
	return &GitHubCommenter{client: client, dryRun: dryRun}
}

// PublishComment creates or refreshes the comment identified by marker on the pull request.
func (ghc *GitHubCommenter) PublishComment(owner, repo string, number int, marker, body string) error {
	logger := log.WithField("owner", owner).
		WithField("repo", repo).
		WithField("number", number).
		WithField("marker", marker)

	// when running in dryRun mode we do everything up until writing to GitHub
	// this allows for local testing / debugging without actually modifying PRs
	if ghc.dryRun || ghc.client == nil {
		logger.Infof("Dry run comment:\n%s", ComposeBody(marker, body))
		return nil
	}

	if err := FindOrCreateComment(ghc.client, owner, repo, number, marker, body); err != nil {
		logger.WithError(err).Error("Failed to publish comment")
		return err
	}

	logger.Info("Published comment")
	return nil
}
