package rules

import (
	"fmt"

	dErrors "saku/pkg/domain-errors"
)

// EvaluationError reports a rule whose value has an unexpected type or shape.
// It is always returned wrapped in a dErrors.CodeRuleEvaluation error; use
// errors.As to recover the rule name.
type EvaluationError struct {
	Rule   string
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("rule %q: %s", e.Rule, e.Reason)
}

// NewEvaluationError builds a coded RuleEvaluationError naming rule.
func NewEvaluationError(rule, reason string) error {
	return dErrors.Wrap(&EvaluationError{Rule: rule, Reason: reason}, dErrors.CodeRuleEvaluation, "rule evaluation failed")
}

// NewConfigParseError builds a coded ConfigParseError for a rule document.
func NewConfigParseError(source string, err error) error {
	return dErrors.Wrap(err, dErrors.CodeConfigParse, fmt.Sprintf("parse rule document %s", source))
}
