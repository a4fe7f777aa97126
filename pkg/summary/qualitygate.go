package summary

import (
	"fmt"
	"strings"

	v1 "github.com/openshift-eng/report-summary/pkg/apis/report/v1"
)

const environmentSeparator = "\n---\n\n"

// FormatQualityGateResultsList renders each violation as a bold rule name followed by a
// fenced block holding the message without color codes. No violations renders as "".
func FormatQualityGateResultsList(violations []v1.QualityGateViolation) string {
	lines := []string{}
	for _, violation := range violations {
		lines = append(lines,
			fmt.Sprintf("**%s** has failed:", violation.Rule),
			"```shell",
			StripANSICodes(violation.Message),
			"```",
			"",
		)
	}
	return strings.Join(lines, "\n")
}

// FormatQualityGateResults renders list-shaped results directly and environment-keyed results
// as one labeled section per environment, separated by horizontal rules. An environment with
// no violations keeps its label over an empty body.
func FormatQualityGateResults(results *v1.QualityGateResults) string {
	if results == nil {
		return ""
	}

	switch results.Kind {
	case v1.QualityGateResultsList:
		return FormatQualityGateResultsList(results.Violations)
	case v1.QualityGateResultsByEnvironment:
		sections := make([]string, 0, len(results.Environments))
		for _, env := range results.Environments {
			sections = append(sections, fmt.Sprintf("**Environment**: %q\n\n%s", env.Environment, FormatQualityGateResultsList(env.Violations)))
		}
		return strings.Join(sections, environmentSeparator)
	default:
		return ""
	}
}

// IsQualityGateFailed reports whether any violation exists, in any environment.
func IsQualityGateFailed(results *v1.QualityGateResults) bool {
	if results == nil {
		return false
	}

	switch results.Kind {
	case v1.QualityGateResultsList:
		return len(results.Violations) > 0
	case v1.QualityGateResultsByEnvironment:
		for _, env := range results.Environments {
			if len(env.Violations) > 0 {
				return true
			}
		}
	}
	return false
}
