package v1

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityGateResults_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    *QualityGateResults
		expectedErr bool
	}{
		{
			name:     "empty list",
			input:    `[]`,
			expected: &QualityGateResults{Kind: QualityGateResultsList, Violations: []QualityGateViolation{}},
		},
		{
			name:  "flat list",
			input: `[{"rule":"maxFailures","message":"Failed tests: 2 exceeds threshold of 0","success":false}]`,
			expected: NewQualityGateList(
				QualityGateViolation{Rule: "maxFailures", Message: "Failed tests: 2 exceeds threshold of 0"},
			),
		},
		{
			name:     "empty object",
			input:    `{}`,
			expected: &QualityGateResults{Kind: QualityGateResultsByEnvironment, Environments: []EnvironmentViolations{}},
		},
		{
			name:  "environments keep document order",
			input: `{"firefox":[{"rule":"b","message":"m2"}],"chrome":[],"edge":[{"rule":"a","message":"m1"}]}`,
			expected: NewQualityGateByEnvironment(
				EnvironmentViolations{Environment: "firefox", Violations: []QualityGateViolation{{Rule: "b", Message: "m2"}}},
				EnvironmentViolations{Environment: "chrome", Violations: []QualityGateViolation{}},
				EnvironmentViolations{Environment: "edge", Violations: []QualityGateViolation{{Rule: "a", Message: "m1"}}},
			),
		},
		{
			name:        "environment value is not a list",
			input:       `{"chrome":{"rule":"a"}}`,
			expectedErr: true,
		},
		{
			name:        "scalar document",
			input:       `"failed"`,
			expectedErr: true,
		},
		{
			name:        "malformed",
			input:       `[{"rule":`,
			expectedErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got QualityGateResults
			err := json.Unmarshal([]byte(tc.input), &got)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tc.expected, got)
		})
	}
}

func TestQualityGateResults_MarshalJSONKeepsShape(t *testing.T) {
	byEnv := NewQualityGateByEnvironment(
		EnvironmentViolations{Environment: "firefox", Violations: []QualityGateViolation{{Rule: "b", Message: "m"}}},
		EnvironmentViolations{Environment: "chrome"},
	)
	data, err := json.Marshal(byEnv)
	require.NoError(t, err)
	assert.Equal(t, `{"firefox":[{"rule":"b","message":"m"}],"chrome":[]}`, string(data))

	data, err = json.Marshal(NewQualityGateList())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestRunSummary_TestLinksEnabled(t *testing.T) {
	disabled := false
	enabled := true

	assert.True(t, RunSummary{}.TestLinksEnabled())
	assert.True(t, RunSummary{Meta: &RunSummaryMeta{}}.TestLinksEnabled())
	assert.True(t, RunSummary{Meta: &RunSummaryMeta{WithTestResultsLinks: &enabled}}.TestLinksEnabled())
	assert.False(t, RunSummary{Meta: &RunSummaryMeta{WithTestResultsLinks: &disabled}}.TestLinksEnabled())
}

func TestStats_Count(t *testing.T) {
	var nilStats Stats
	assert.Equal(t, 0, nilStats.Count("passed"))
	assert.Equal(t, 3, Stats{"passed": 3}.Count("passed"))
	assert.Equal(t, 0, Stats{"passed": 3}.Count("failed"))
}
