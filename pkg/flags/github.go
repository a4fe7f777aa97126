package flags

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/openshift-eng/report-summary/pkg/github"
)

const (
	githubTokenFlag             = "github-token"
	githubAppIDFlag             = "github-app-id"
	githubAppInstallationIDFlag = "github-app-installation-id"
	githubAppPrivateKeyFlag     = "github-app-private-key"
	gitConfigTokenFlag          = "git-config-token"
	dryRunFlag                  = "dry-run"
	pemPrefix                   = "-----BEGIN"
)

// GitHubFlags holds the credentials and behaviour of GitHub interaction.
type GitHubFlags struct {
	Token             string
	AppID             int64
	AppInstallationID int64
	// AppPrivateKey is either the PEM encoded key itself or a path to it.
	AppPrivateKey  string
	GitConfigToken bool
	DryRun         bool
}

func NewGitHubFlags() *GitHubFlags {
	return &GitHubFlags{}
}

func (f *GitHubFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Token, githubTokenFlag, f.Token, "GitHub token used to comment on the pull request (env INPUT_GITHUB-TOKEN)")
	fs.Int64Var(&f.AppID, githubAppIDFlag, f.AppID, "GitHub App id, used instead of a token together with the installation id and private key")
	fs.Int64Var(&f.AppInstallationID, githubAppInstallationIDFlag, f.AppInstallationID, "GitHub App installation id")
	fs.StringVar(&f.AppPrivateKey, githubAppPrivateKeyFlag, f.AppPrivateKey, "GitHub App private key, PEM content or path to a PEM file")
	fs.BoolVar(&f.GitConfigToken, gitConfigTokenFlag, f.GitConfigToken, "Read the GitHub token from git config (github.token) when no credential is given")
	fs.BoolVar(&f.DryRun, dryRunFlag, f.DryRun, "Log comments and check runs instead of writing them to GitHub")
}

// InputNames lists the flags that may also be provided as action inputs.
func (f *GitHubFlags) InputNames() []string {
	return []string{githubTokenFlag, githubAppIDFlag, githubAppInstallationIDFlag, githubAppPrivateKeyFlag, dryRunFlag}
}

// Load overrides unset flags with the matching action inputs.
func (f *GitHubFlags) Load(in *Inputs) {
	f.Token = in.GetString(githubTokenFlag)
	f.AppID = in.GetInt64(githubAppIDFlag)
	f.AppInstallationID = in.GetInt64(githubAppInstallationIDFlag)
	f.AppPrivateKey = in.GetString(githubAppPrivateKeyFlag)
	f.DryRun = in.GetBool(dryRunFlag)
}

// GetCredentials resolves the configured credentials, reading the private key file if needed.
func (f *GitHubFlags) GetCredentials() (github.Credentials, error) {
	creds := github.Credentials{
		Token:             f.Token,
		AppID:             f.AppID,
		InstallationID:    f.AppInstallationID,
		GitConfigFallback: f.GitConfigToken,
	}

	switch {
	case f.AppPrivateKey == "":
	case strings.HasPrefix(strings.TrimSpace(f.AppPrivateKey), pemPrefix):
		creds.PrivateKey = []byte(f.AppPrivateKey)
	default:
		key, err := os.ReadFile(f.AppPrivateKey)
		if err != nil {
			return creds, errors.WithMessage(err, "could not read GitHub App private key")
		}
		creds.PrivateKey = key
	}

	return creds.Resolve(), nil
}
