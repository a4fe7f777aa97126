package action

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	githubOutputEnv      = "GITHUB_OUTPUT"
	githubStepSummaryEnv = "GITHUB_STEP_SUMMARY"

	// MarkdownOutput is the step output holding the summary table.
	MarkdownOutput = "markdown"
)

// StepOutputs writes to the files the Actions runner collects step outputs and the job summary
// from. Empty paths turn the matching writes into no-ops, as when running outside of Actions.
type StepOutputs struct {
	OutputPath  string
	SummaryPath string
}

func NewStepOutputs(getenv func(string) string) *StepOutputs {
	return &StepOutputs{
		OutputPath:  getenv(githubOutputEnv),
		SummaryPath: getenv(githubStepSummaryEnv),
	}
}

// SetOutput records a possibly multi-line output value using the runner's heredoc syntax.
func (o *StepOutputs) SetOutput(name, value string) error {
	if o.OutputPath == "" {
		log.Debugf("%s not set, skipping output %s", githubOutputEnv, name)
		return nil
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return errors.Errorf("output %s contains the delimiter %s", name, delimiter)
	}

	return appendFile(o.OutputPath, fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter))
}

// AppendSummary adds markdown to the job summary.
func (o *StepOutputs) AppendSummary(markdown string) error {
	if o.SummaryPath == "" {
		log.Debugf("%s not set, skipping job summary", githubStepSummaryEnv)
		return nil
	}
	return appendFile(o.SummaryPath, markdown+"\n")
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.Wrapf(err, "error opening %s", path)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return errors.Wrapf(err, "error writing %s", path)
	}
	return errors.Wrapf(f.Close(), "error closing %s", path)
}
