package constitution

import (
	"regexp"
	"strconv"
	"strings"

	"saku/internal/rules"
)

// Finding is one value a matcher extracted from a clause.
type Finding struct {
	Key      string `json:"key"`
	Value    any    `json:"value"`
	Citation string `json:"citation"`
}

// Matcher inspects one clause for one rule.
type Matcher struct {
	Key string
	// Match receives the lower-cased heading and body joined by a newline.
	Match func(text string) (any, bool)
}

var (
	minDelegatesPattern = regexp.MustCompile(`minimum\s+(?:of\s+)?(\d+)\s+delegate`)
	femalePctPattern    = regexp.MustCompile(`(\d{1,2})\s*%\s+(?:female|women)`)
	yearPattern         = regexp.MustCompile(`year\s*(?:of\s*study)?\s*(\d)`)
	gpaPattern          = regexp.MustCompile(`gpa\s*(?:of\s*at\s*least\s*)?(\d(?:\.\d)?)`)
)

// DefaultMatchers returns the matchers in application order.
func DefaultMatchers() []Matcher {
	return []Matcher{
		{Key: rules.KeyMinPerDepartment, Match: matchMinPerDepartment},
		{Key: rules.KeyGenderBalance, Match: matchGenderBalance},
		{Key: rules.RuleYearMin, Match: matchYearMin},
		{Key: rules.RuleGPAMin, Match: matchGPAMin},
		{Key: rules.RuleDisciplinaryClear, Match: matchDisciplinaryClear},
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func matchMinPerDepartment(text string) (any, bool) {
	if !containsAny(text, "delegate", "representation", "representative") {
		return nil, false
	}
	m := minDelegatesPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	return n, true
}

// matchGenderBalance yields the female minimum as a fraction.
func matchGenderBalance(text string) (any, bool) {
	if !containsAny(text, "gender", "balance", "equity", "equality") {
		return nil, false
	}
	m := femalePctPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	return float64(pct) / 100.0, true
}

func matchYearMin(text string) (any, bool) {
	if !strings.Contains(text, "year") || !containsAny(text, "eligib", "candidate", "delegate") {
		return nil, false
	}
	m := yearPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	return n, true
}

func matchGPAMin(text string) (any, bool) {
	if !containsAny(text, "gpa", "grade point") {
		return nil, false
	}
	m := gpaPattern.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}
	return f, true
}

func matchDisciplinaryClear(text string) (any, bool) {
	if !containsAny(text, "disciplinary", "integrity") {
		return nil, false
	}
	return true, true
}
