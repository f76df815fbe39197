// Package coverage measures how well qualified candidates cover each
// department against the minimum-count and gender-balance targets.
//
// Everything here is recomputed from its inputs on each call; nothing is
// cached or stored.
package coverage

import (
	"math"

	"saku/internal/candidate/models"
	"saku/internal/department"
)

// Scoring weights. Buffer is reported but not yet applied.
const (
	WeightMinGap    = 5.0
	WeightGenderGap = 20.0
	WeightBuffer    = 2.0
)

// Candidate is the part of a record coverage counts.
type Candidate struct {
	Qualified bool
	Gender    models.Gender
}

// Group is one department and the candidates registered to it.
type Group struct {
	Name       string
	Code       string
	Candidates []Candidate
}

type DepartmentMetrics struct {
	Department         string  `json:"department"`
	Code               string  `json:"code"`
	TotalCandidates    int     `json:"total_candidates"`
	Qualified          int     `json:"qualified"`
	TargetMin          int     `json:"target_min"`
	GapToMin           int     `json:"gap_to_min"`
	Female             int     `json:"female"`
	Male               int     `json:"male"`
	GenderRatioFemale  float64 `json:"gender_ratio_female"`
	GenderTargetFemale float64 `json:"gender_target_female"`
	GenderGap          float64 `json:"gender_gap"`
}

type Weights struct {
	MinGap    float64 `json:"w_min_gap"`
	GenderGap float64 `json:"w_gender_gap"`
	Buffer    float64 `json:"w_buffer"`
}

type Components struct {
	MinGapSum    int     `json:"min_gap_sum"`
	GenderGapSum float64 `json:"gender_gap_sum"`
	BufferSum    float64 `json:"buffer_sum"`
	Weights      Weights `json:"weights"`
}

type Score struct {
	Score      float64    `json:"score"`
	Components Components `json:"components"`
}

// Report is the full coverage result for a set of departments.
type Report struct {
	Departments []DepartmentMetrics `json:"departments"`
	Score       Score               `json:"score"`
	Targets     Targets             `json:"targets"`
}

// DefaultWeights returns the scoring weights.
func DefaultWeights() Weights {
	return Weights{MinGap: WeightMinGap, GenderGap: WeightGenderGap, Buffer: WeightBuffer}
}

// GroupByDepartment assigns records to departments in listing order. A
// listed department without records yields an empty group. Records naming
// an unlisted department are grouped after the listing, in first-seen order.
func GroupByDepartment(departments []department.Department, records []*models.Record) []Group {
	groups := make([]Group, len(departments))
	for i, d := range departments {
		groups[i] = Group{Name: d.Name, Code: d.Code, Candidates: []Candidate{}}
	}

	extra := map[string]int{}
	for _, rec := range records {
		idx := -1
		for i, d := range departments {
			if d.Matches(rec.Department) {
				idx = i
				break
			}
		}
		if idx < 0 {
			key := department.Slug(rec.Department)
			pos, seen := extra[key]
			if !seen {
				pos = len(groups)
				extra[key] = pos
				groups = append(groups, Group{Name: rec.Department, Code: key, Candidates: []Candidate{}})
			}
			idx = pos
		}
		groups[idx].Candidates = append(groups[idx].Candidates, Candidate{
			Qualified: rec.IsQualified,
			Gender:    rec.Gender,
		})
	}
	return groups
}

// Measure computes the metrics for one group.
func Measure(g Group, targets Targets) DepartmentMetrics {
	m := DepartmentMetrics{
		Department:         g.Name,
		Code:               g.Code,
		TotalCandidates:    len(g.Candidates),
		TargetMin:          targets.MinPerDepartment,
		GenderTargetFemale: targets.FemaleMin,
	}
	for _, c := range g.Candidates {
		if c.Qualified {
			m.Qualified++
		}
		switch c.Gender {
		case models.GenderFemale:
			m.Female++
		case models.GenderMale:
			m.Male++
		}
	}
	m.GapToMin = max(0, m.TargetMin-m.Qualified)
	m.GenderRatioFemale = float64(m.Female) / float64(max(1, m.TotalCandidates))
	m.GenderGap = math.Max(0, m.GenderTargetFemale-m.GenderRatioFemale)
	return m
}

// ComputeScore folds department gaps into the weighted score, floored at 0.
func ComputeScore(departments []DepartmentMetrics) Score {
	var c Components
	c.Weights = DefaultWeights()
	for _, d := range departments {
		c.MinGapSum += d.GapToMin
		c.GenderGapSum += d.GenderGap
	}
	score := 100 - float64(c.MinGapSum)*c.Weights.MinGap - c.GenderGapSum*c.Weights.GenderGap
	return Score{Score: math.Max(0, score), Components: c}
}

// Aggregate measures every group and scores the result.
func Aggregate(groups []Group, targets Targets) Report {
	departments := make([]DepartmentMetrics, 0, len(groups))
	for _, g := range groups {
		departments = append(departments, Measure(g, targets))
	}
	return Report{
		Departments: departments,
		Score:       ComputeScore(departments),
		Targets:     targets,
	}
}
