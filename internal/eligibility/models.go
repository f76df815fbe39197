// Package eligibility decides whether a candidate meets the eligibility
// sub-rules of a RuleSet and explains each decision.
package eligibility

// Outcome tags how a single check was decided.
type Outcome string

const (
	OutcomePassed Outcome = "passed"
	OutcomeFailed Outcome = "failed"
	// OutcomeNotApplicable marks a rule over a field the candidate record
	// does not track. The check is reported but never fails the verdict.
	OutcomeNotApplicable Outcome = "not_applicable"
)

// Decided reports whether the outcome took part in the overall verdict.
func (o Outcome) Decided() bool {
	return o == OutcomePassed || o == OutcomeFailed
}

// Input is the subset of a candidate record the validator reads.
type Input struct {
	YearOfStudy int
}

// Check is one evaluated sub-rule.
type Check struct {
	Rule     string  `json:"rule"`
	Passed   bool    `json:"passed"`
	Outcome  Outcome `json:"outcome"`
	Detail   string  `json:"detail"`
	Citation string  `json:"citation"`
}

// Verdict is the stored explanation of an eligibility decision.
type Verdict struct {
	Checks        []Check `json:"eligibility_checks"`
	OverallPassed bool    `json:"overall_passed"`
}

// Failed returns the checks with a failed outcome.
func (v Verdict) Failed() []Check {
	var out []Check
	for _, c := range v.Checks {
		if c.Outcome == OutcomeFailed {
			out = append(out, c)
		}
	}
	return out
}
