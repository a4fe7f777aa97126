package v1

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// QualityGateViolation is one failed quality gate rule. Message may contain terminal color codes.
type QualityGateViolation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// QualityGateResultsKind discriminates the two shapes quality-gate.json may take.
type QualityGateResultsKind int

const (
	// QualityGateResultsList is a flat array of violations.
	QualityGateResultsList QualityGateResultsKind = iota
	// QualityGateResultsByEnvironment is an object keyed by environment name.
	QualityGateResultsByEnvironment
)

// EnvironmentViolations holds the violations reported for a single environment.
type EnvironmentViolations struct {
	Environment string
	Violations  []QualityGateViolation
}

// QualityGateResults is the parsed content of quality-gate.json. Exactly one of Violations
// (Kind == QualityGateResultsList) or Environments (Kind == QualityGateResultsByEnvironment)
// is meaningful. Environments keep the key order of the source document.
type QualityGateResults struct {
	Kind         QualityGateResultsKind
	Violations   []QualityGateViolation
	Environments []EnvironmentViolations
}

// NewQualityGateList builds list-shaped results.
func NewQualityGateList(violations ...QualityGateViolation) *QualityGateResults {
	return &QualityGateResults{Kind: QualityGateResultsList, Violations: violations}
}

// NewQualityGateByEnvironment builds environment-keyed results.
func NewQualityGateByEnvironment(envs ...EnvironmentViolations) *QualityGateResults {
	return &QualityGateResults{Kind: QualityGateResultsByEnvironment, Environments: envs}
}

// UnmarshalJSON branches on the document shape: arrays become a list, objects become
// per-environment lists in document key order. Anything else is an error.
func (q *QualityGateResults) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid quality gate json")
	}

	doc := gjson.ParseBytes(data)
	switch {
	case doc.IsArray():
		violations, err := parseViolations(doc)
		if err != nil {
			return err
		}
		*q = QualityGateResults{Kind: QualityGateResultsList, Violations: violations}
	case doc.IsObject():
		envs := []EnvironmentViolations{}
		var parseErr error
		doc.ForEach(func(key, value gjson.Result) bool {
			if !value.IsArray() {
				parseErr = errors.Errorf("quality gate results for environment %q are not a list", key.String())
				return false
			}
			violations, err := parseViolations(value)
			if err != nil {
				parseErr = errors.WithMessagef(err, "environment %q", key.String())
				return false
			}
			envs = append(envs, EnvironmentViolations{Environment: key.String(), Violations: violations})
			return true
		})
		if parseErr != nil {
			return parseErr
		}
		*q = QualityGateResults{Kind: QualityGateResultsByEnvironment, Environments: envs}
	default:
		return errors.Errorf("unexpected quality gate json type %s", doc.Type)
	}

	return nil
}

// MarshalJSON writes the results back in their original shape.
func (q QualityGateResults) MarshalJSON() ([]byte, error) {
	if q.Kind == QualityGateResultsList {
		violations := q.Violations
		if violations == nil {
			violations = []QualityGateViolation{}
		}
		return json.Marshal(violations)
	}

	// built by hand to keep environment order
	out := []byte{'{'}
	for i, env := range q.Environments {
		if i > 0 {
			out = append(out, ',')
		}
		key, err := json.Marshal(env.Environment)
		if err != nil {
			return nil, err
		}
		violations := env.Violations
		if violations == nil {
			violations = []QualityGateViolation{}
		}
		value, err := json.Marshal(violations)
		if err != nil {
			return nil, err
		}
		out = append(out, key...)
		out = append(out, ':')
		out = append(out, value...)
	}
	return append(out, '}'), nil
}

func parseViolations(list gjson.Result) ([]QualityGateViolation, error) {
	violations := []QualityGateViolation{}
	for _, item := range list.Array() {
		var v QualityGateViolation
		if err := json.Unmarshal([]byte(item.Raw), &v); err != nil {
			return nil, errors.Wrap(err, "couldn't unmarshal quality gate violation")
		}
		violations = append(violations, v)
	}
	return violations, nil
}
