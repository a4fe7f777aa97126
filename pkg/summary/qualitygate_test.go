package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	v1 "github.com/openshift-eng/report-summary/pkg/apis/report/v1"
)

var (
	failedViolation = v1.QualityGateViolation{Rule: "Failed tests threshold", Message: "Failed tests: 2 exceeds threshold of 0"}
	brokenViolation = v1.QualityGateViolation{Rule: "Broken tests threshold", Message: "Broken tests: 1 exceeds threshold of 0"}
)

func TestIsQualityGateFailed(t *testing.T) {
	tests := []struct {
		name     string
		results  *v1.QualityGateResults
		expected bool
	}{
		{name: "nil", results: nil, expected: false},
		{name: "empty list", results: v1.NewQualityGateList(), expected: false},
		{name: "empty mapping", results: v1.NewQualityGateByEnvironment(), expected: false},
		{name: "one violation", results: v1.NewQualityGateList(failedViolation), expected: true},
		{
			name: "environments without violations",
			results: v1.NewQualityGateByEnvironment(
				v1.EnvironmentViolations{Environment: "chrome", Violations: []v1.QualityGateViolation{}},
				v1.EnvironmentViolations{Environment: "firefox", Violations: []v1.QualityGateViolation{}},
			),
			expected: false,
		},
		{
			name: "one environment with a violation",
			results: v1.NewQualityGateByEnvironment(
				v1.EnvironmentViolations{Environment: "chrome", Violations: []v1.QualityGateViolation{failedViolation}},
				v1.EnvironmentViolations{Environment: "firefox", Violations: []v1.QualityGateViolation{}},
			),
			expected: true,
		},
		{
			name: "several environments with violations",
			results: v1.NewQualityGateByEnvironment(
				v1.EnvironmentViolations{Environment: "chrome", Violations: []v1.QualityGateViolation{failedViolation}},
				v1.EnvironmentViolations{Environment: "firefox", Violations: []v1.QualityGateViolation{brokenViolation}},
			),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsQualityGateFailed(tc.results))
		})
	}
}

func TestFormatQualityGateResultsList(t *testing.T) {
	assert.Equal(t, "", FormatQualityGateResultsList(nil))
	assert.Equal(t, "", FormatQualityGateResultsList([]v1.QualityGateViolation{}))

	assert.Equal(t,
		"**Failed tests threshold** has failed:\n```shell\nFailed tests: 2 exceeds threshold of 0\n```\n",
		FormatQualityGateResultsList([]v1.QualityGateViolation{failedViolation}))

	assert.Equal(t,
		"**Failed tests threshold** has failed:\n```shell\nFailed tests: 2 exceeds threshold of 0\n```\n\n"+
			"**Broken tests threshold** has failed:\n```shell\nBroken tests: 1 exceeds threshold of 0\n```\n",
		FormatQualityGateResultsList([]v1.QualityGateViolation{failedViolation, brokenViolation}))

	colored := FormatQualityGateResultsList([]v1.QualityGateViolation{
		{Rule: "Failed tests threshold", Message: "\u001b[31mFailed tests: 2 exceeds threshold of 0\u001b[0m"},
	})
	assert.NotContains(t, colored, "\u001b[31m")
	assert.NotContains(t, colored, "\u001b[0m")
	assert.Contains(t, colored, "Failed tests: 2 exceeds threshold of 0")
}

func TestFormatQualityGateResults(t *testing.T) {
	tests := []struct {
		name     string
		results  *v1.QualityGateResults
		expected string
	}{
		{
			name:     "nil",
			expected: "",
		},
		{
			name:     "empty list",
			results:  v1.NewQualityGateList(),
			expected: "",
		},
		{
			name:     "empty mapping",
			results:  v1.NewQualityGateByEnvironment(),
			expected: "",
		},
		{
			name:     "list",
			results:  v1.NewQualityGateList(failedViolation),
			expected: FormatQualityGateResultsList([]v1.QualityGateViolation{failedViolation}),
		},
		{
			name: "single environment",
			results: v1.NewQualityGateByEnvironment(
				v1.EnvironmentViolations{Environment: "chrome", Violations: []v1.QualityGateViolation{failedViolation}},
			),
			expected: "**Environment**: \"chrome\"\n\n**Failed tests threshold** has failed:\n```shell\nFailed tests: 2 exceeds threshold of 0\n```\n",
		},
		{
			name: "multiple environments",
			results: v1.NewQualityGateByEnvironment(
				v1.EnvironmentViolations{Environment: "chrome", Violations: []v1.QualityGateViolation{failedViolation}},
				v1.EnvironmentViolations{Environment: "firefox", Violations: []v1.QualityGateViolation{brokenViolation}},
			),
			expected: "**Environment**: \"chrome\"\n\n**Failed tests threshold** has failed:\n```shell\nFailed tests: 2 exceeds threshold of 0\n```\n" +
				"\n---\n\n" +
				"**Environment**: \"firefox\"\n\n**Broken tests threshold** has failed:\n```shell\nBroken tests: 1 exceeds threshold of 0\n```\n",
		},
		{
			name: "environment without violations keeps its header",
			results: v1.NewQualityGateByEnvironment(
				v1.EnvironmentViolations{Environment: "chrome", Violations: []v1.QualityGateViolation{}},
				v1.EnvironmentViolations{Environment: "firefox", Violations: []v1.QualityGateViolation{brokenViolation}},
			),
			expected: "**Environment**: \"chrome\"\n\n" +
				"\n---\n\n" +
				"**Environment**: \"firefox\"\n\n**Broken tests threshold** has failed:\n```shell\nBroken tests: 1 exceeds threshold of 0\n```\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatQualityGateResults(tc.results))
		})
	}
}
