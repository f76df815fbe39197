// Package rules holds the rule-set shapes shared by the document extractor,
// the eligibility validator and the coverage aggregator.
//
// A RuleSet is the loosely typed mapping read from storage. It is never
// mutated after loading; consumers pick the entries they understand and
// ignore the rest so new rule names can be added to the document without
// code changes.
package rules

// Top-level rule names.
const (
	KeyMinPerDepartment = "min_per_department"
	KeyGenderBalance    = "gender_balance"
	KeyEligibility      = "eligibility"
)

// Eligibility sub-rule names, in evaluation order.
const (
	RuleYearMin           = "year_min"
	RuleGPAMin            = "gpa_min"
	RuleDisciplinaryClear = "disciplinary_clear"
)

// Defaults seeded before a source document is scanned.
const (
	DefaultMinPerDepartment = 3
	DefaultFemaleMin        = 0.33
	DefaultTolerance        = 0.05

	ScopeDepartment = "department"
	MetricRatio     = "ratio"
)

// RuleSet maps rule name to its decoded definition.
type RuleSet map[string]any

// Document is the typed, ordered rule definition written by the extractor.
// Field order is the order keys appear in the persisted document.
type Document struct {
	MinPerDepartment MinPerDepartment `yaml:"min_per_department" json:"min_per_department"`
	GenderBalance    GenderBalance    `yaml:"gender_balance" json:"gender_balance"`
	Eligibility      Eligibility      `yaml:"eligibility" json:"eligibility"`
}

type MinPerDepartment struct {
	Value    int    `yaml:"value" json:"value"`
	Scope    string `yaml:"scope" json:"scope"`
	Citation string `yaml:"citation" json:"citation"`
	Editable bool   `yaml:"editable" json:"editable"`
}

type GenderBalance struct {
	Metric    string       `yaml:"metric" json:"metric"`
	Target    GenderTarget `yaml:"target" json:"target"`
	Tolerance float64      `yaml:"tolerance" json:"tolerance"`
	Scope     string       `yaml:"scope" json:"scope"`
	Citation  string       `yaml:"citation" json:"citation"`
	Editable  bool         `yaml:"editable" json:"editable"`
}

type GenderTarget struct {
	FemaleMin float64 `yaml:"female_min" json:"female_min"`
}

// Eligibility holds the optional candidate sub-rules. A nil entry is omitted
// from the persisted document.
type Eligibility struct {
	YearMin           *IntRule     `yaml:"year_min,omitempty" json:"year_min,omitempty"`
	GPAMin            *DecimalRule `yaml:"gpa_min,omitempty" json:"gpa_min,omitempty"`
	DisciplinaryClear *BoolRule    `yaml:"disciplinary_clear,omitempty" json:"disciplinary_clear,omitempty"`
}

type IntRule struct {
	Value    int    `yaml:"value" json:"value"`
	Citation string `yaml:"citation" json:"citation"`
}

type DecimalRule struct {
	Value    Decimal `yaml:"value" json:"value"`
	Citation string  `yaml:"citation" json:"citation"`
}

type BoolRule struct {
	Value    bool   `yaml:"value" json:"value"`
	Citation string `yaml:"citation" json:"citation"`
}

// DefaultDocument returns the document an extractor starts from: usable
// thresholds with empty citations, meaning "not sourced from a document".
func DefaultDocument() Document {
	return Document{
		MinPerDepartment: MinPerDepartment{
			Value:    DefaultMinPerDepartment,
			Scope:    ScopeDepartment,
			Editable: true,
		},
		GenderBalance: GenderBalance{
			Metric:    MetricRatio,
			Target:    GenderTarget{FemaleMin: DefaultFemaleMin},
			Tolerance: DefaultTolerance,
			Scope:     ScopeDepartment,
			Editable:  true,
		},
	}
}

// RuleSet converts the document to the generic mapping consumers read.
func (d Document) RuleSet() RuleSet {
	eligibility := map[string]any{}
	if r := d.Eligibility.YearMin; r != nil {
		eligibility[RuleYearMin] = map[string]any{"value": r.Value, "citation": r.Citation}
	}
	if r := d.Eligibility.GPAMin; r != nil {
		eligibility[RuleGPAMin] = map[string]any{"value": float64(r.Value), "citation": r.Citation}
	}
	if r := d.Eligibility.DisciplinaryClear; r != nil {
		eligibility[RuleDisciplinaryClear] = map[string]any{"value": r.Value, "citation": r.Citation}
	}
	return RuleSet{
		KeyMinPerDepartment: map[string]any{
			"value":    d.MinPerDepartment.Value,
			"scope":    d.MinPerDepartment.Scope,
			"citation": d.MinPerDepartment.Citation,
			"editable": d.MinPerDepartment.Editable,
		},
		KeyGenderBalance: map[string]any{
			"metric":    d.GenderBalance.Metric,
			"target":    map[string]any{"female_min": d.GenderBalance.Target.FemaleMin},
			"tolerance": d.GenderBalance.Tolerance,
			"scope":     d.GenderBalance.Scope,
			"citation":  d.GenderBalance.Citation,
			"editable":  d.GenderBalance.Editable,
		},
		KeyEligibility: eligibility,
	}
}
