package coverage

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"saku/internal/candidate/models"
)

func genCandidate() gopter.Gen {
	return gopter.CombineGens(
		gen.Bool(),
		gen.OneConstOf(models.GenderMale, models.GenderFemale, models.GenderOther),
	).Map(func(vals []any) Candidate {
		return Candidate{Qualified: vals[0].(bool), Gender: vals[1].(models.Gender)}
	})
}

func genGroups() gopter.Gen {
	return gen.SliceOfN(6, gen.SliceOf(genCandidate())).Map(func(sets [][]Candidate) []Group {
		groups := make([]Group, len(sets))
		for i, cs := range sets {
			groups[i] = Group{Name: "dept", Candidates: cs}
		}
		return groups
	})
}

func TestCoverageProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("gaps are never negative and ratio is defined", prop.ForAll(
		func(groups []Group, targetMin int, femaleMin float64) bool {
			report := Aggregate(groups, Targets{MinPerDepartment: targetMin, FemaleMin: femaleMin})
			for _, d := range report.Departments {
				if d.GapToMin < 0 || d.GenderGap < 0 {
					return false
				}
				if d.GenderRatioFemale < 0 || d.GenderRatioFemale > 1 {
					return false
				}
			}
			return report.Score.Score >= 0 && report.Score.Score <= 100
		},
		genGroups(),
		gen.IntRange(0, 10),
		gen.Float64Range(0, 1),
	))

	properties.Property("adding a qualified candidate never lowers the score", prop.ForAll(
		func(groups []Group) bool {
			if len(groups) == 0 {
				return true
			}
			before := Aggregate(groups, DefaultTargets()).Score.Score

			grown := make([]Group, len(groups))
			copy(grown, groups)
			grown[0].Candidates = append(append([]Candidate{}, groups[0].Candidates...),
				Candidate{Qualified: true, Gender: models.GenderFemale})
			after := Aggregate(grown, DefaultTargets()).Score.Score
			return after >= before-1e-9
		},
		genGroups(),
	))

	properties.TestingRun(t)
}
