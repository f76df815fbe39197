package eligibility

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"saku/internal/rules"
)

// subRule evaluates one eligibility entry whose value is present.
type subRule struct {
	name     string
	evaluate func(in Input, value any) (Outcome, string, error)
}

// subRules run in this order; the order is part of the verdict format.
var subRules = []subRule{
	{name: rules.RuleYearMin, evaluate: evaluateYearMin},
	{name: rules.RuleGPAMin, evaluate: evaluateGPAMin},
	{name: rules.RuleDisciplinaryClear, evaluate: evaluateDisciplinaryClear},
}

// Validate applies the eligibility rules in rs to in.
// This is pure domain logic: no I/O, and rs is never modified.
//
// A missing eligibility rule yields an empty check list that passes.
// A rule value of the wrong type or shape is a RuleEvaluationError.
func Validate(in Input, rs rules.RuleSet) (Verdict, error) {
	verdict := Verdict{Checks: []Check{}, OverallPassed: true}

	elig, ok, err := rs.Entry(rules.KeyEligibility)
	if err != nil {
		return Verdict{}, rules.NewEvaluationError(rules.KeyEligibility, err.Error())
	}
	if !ok {
		return verdict, nil
	}

	for _, sr := range subRules {
		raw, present := elig[sr.name]
		if !present || raw == nil {
			continue
		}
		entry, ok := rules.AsMapping(raw)
		if !ok {
			return Verdict{}, rules.NewEvaluationError(sr.name, fmt.Sprintf("expected a mapping, got %T", raw))
		}
		value, hasValue := entry["value"]
		if !hasValue {
			continue
		}

		outcome, detail, err := sr.evaluate(in, value)
		if err != nil {
			return Verdict{}, rules.NewEvaluationError(sr.name, err.Error())
		}
		verdict.Checks = append(verdict.Checks, Check{
			Rule:     sr.name,
			Passed:   outcome != OutcomeFailed,
			Outcome:  outcome,
			Detail:   detail,
			Citation: rules.Citation(entry),
		})
		if outcome == OutcomeFailed {
			verdict.OverallPassed = false
		}
	}

	return verdict, nil
}

func evaluateYearMin(in Input, value any) (Outcome, string, error) {
	minYear, err := rules.AsInt(value)
	if err != nil {
		return "", "", err
	}
	detail := "Year >= " + renderValue(value)
	if in.YearOfStudy >= minYear {
		return OutcomePassed, detail, nil
	}
	return OutcomeFailed, detail, nil
}

// evaluateGPAMin checks the value is numeric. GPA is not on the candidate
// record, so the check is recorded as not applicable.
func evaluateGPAMin(_ Input, value any) (Outcome, string, error) {
	if _, err := rules.AsFloat(value); err != nil {
		return "", "", err
	}
	return OutcomeNotApplicable, "GPA >= " + renderValue(value) + " (not tracked)", nil
}

func evaluateDisciplinaryClear(_ Input, value any) (Outcome, string, error) {
	if _, err := rules.AsBool(value); err != nil {
		return "", "", err
	}
	return OutcomeNotApplicable, "No disciplinary record (not tracked)", nil
}

// renderValue prints a rule value the way it appears in the document.
func renderValue(v any) string {
	switch n := v.(type) {
	case float64:
		return rules.FormatDecimal(n)
	case float32:
		return rules.FormatDecimal(float64(n))
	case string:
		return strings.TrimSpace(n)
	case int:
		return strconv.Itoa(n)
	case json.Number:
		return n.String()
	default:
		return fmt.Sprint(v)
	}
}
