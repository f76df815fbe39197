package coverage

import (
	"saku/internal/rules"
)

// TargetSource records where a coverage target came from.
type TargetSource string

const (
	SourceRules   TargetSource = "rules"
	SourceDefault TargetSource = "default"
)

// Targets are the per-department thresholds coverage is measured against.
type Targets struct {
	MinPerDepartment int          `json:"target_min"`
	MinSource        TargetSource `json:"target_min_source"`
	FemaleMin        float64      `json:"gender_target_female"`
	FemaleSource     TargetSource `json:"gender_target_female_source"`
}

// DefaultTargets returns the thresholds used when no rule sets them.
func DefaultTargets() Targets {
	return Targets{
		MinPerDepartment: rules.DefaultMinPerDepartment,
		MinSource:        SourceDefault,
		FemaleMin:        rules.DefaultFemaleMin,
		FemaleSource:     SourceDefault,
	}
}

// TargetsFromRules reads min_per_department.value and
// gender_balance.target.female_min from rs. Each target falls back to its
// default independently when absent or malformed; this never fails.
func TargetsFromRules(rs rules.RuleSet) Targets {
	t := DefaultTargets()

	if entry, ok, err := rs.Entry(rules.KeyMinPerDepartment); err == nil && ok {
		if v, err := rules.AsInt(entry["value"]); err == nil && v >= 0 {
			t.MinPerDepartment = v
			t.MinSource = SourceRules
		}
	}

	if entry, ok, err := rs.Entry(rules.KeyGenderBalance); err == nil && ok {
		if target, ok := rules.AsMapping(entry["target"]); ok {
			if v, err := rules.AsFloat(target["female_min"]); err == nil && v >= 0 && v <= 1 {
				t.FemaleMin = v
				t.FemaleSource = SourceRules
			}
		}
	}

	return t
}
