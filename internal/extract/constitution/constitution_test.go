package constitution

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saku/internal/rules"
)

const sampleConstitution = `KCA UNIVERSITY STUDENTS ASSOCIATION
Adopted by the general assembly.

Article I — Name
The association shall be known as SAKU.

Article IV — Delegates
Each department shall nominate a minimum of 5 delegates.

Section 2 Gender Balance
The council shall ensure at least 40% female representation, and 40% women on every committee.

Section 3 Eligibility
A candidate must be in year of study 2 or above and hold a GPA of at least 2.5.

Section 4 Conduct
Candidates shall have no disciplinary record.
Article V — Amendments
`

func TestSplitClauses(t *testing.T) {
	t.Run("preamble and headings own their text", func(t *testing.T) {
		clauses := SplitClauses(sampleConstitution)
		require.Len(t, clauses, 7)

		assert.Equal(t, PreambleHeading, clauses[0].Heading)
		assert.Equal(t, "KCA UNIVERSITY STUDENTS ASSOCIATION\nAdopted by the general assembly.", clauses[0].Body)
		assert.Equal(t, "Article I — Name", clauses[1].Heading)
		assert.Equal(t, "The association shall be known as SAKU.", clauses[1].Body)
		assert.Equal(t, "Article IV — Delegates", clauses[2].Heading)
		assert.Equal(t, "Section 4 Conduct", clauses[5].Heading)
		assert.Equal(t, "Candidates shall have no disciplinary record.", clauses[5].Body)
		assert.Equal(t, "Article V — Amendments", clauses[6].Heading)
		assert.Equal(t, "", clauses[6].Body)
	})

	t.Run("no preamble when text starts with a heading", func(t *testing.T) {
		clauses := SplitClauses("Article I\nBody one\nSection 1 Scope\nBody two")
		require.Len(t, clauses, 2)
		assert.Equal(t, "Article I", clauses[0].Heading)
		assert.Equal(t, "Body one", clauses[0].Body)
		assert.Equal(t, "Section 1 Scope", clauses[1].Heading)
		assert.Equal(t, "Body two", clauses[1].Body)
	})

	t.Run("headings are case insensitive", func(t *testing.T) {
		clauses := SplitClauses("ARTICLE II Membership\nAll students.\nsection 7\nFees.")
		require.Len(t, clauses, 2)
		assert.Equal(t, "ARTICLE II Membership", clauses[0].Heading)
		assert.Equal(t, "section 7", clauses[1].Heading)
	})

	t.Run("headings must start a line", func(t *testing.T) {
		clauses := SplitClauses("As described in Article IV the council meets.")
		require.Len(t, clauses, 1)
		assert.Equal(t, PreambleHeading, clauses[0].Heading)
	})

	t.Run("blank text has no clauses", func(t *testing.T) {
		assert.Empty(t, SplitClauses("  \n\n "))
	})
}

func TestExtractArticleIV(t *testing.T) {
	res := Extract("Article IV — Delegates\nEach department shall nominate a minimum of 5 delegates.")

	assert.Equal(t, 5, res.Document.MinPerDepartment.Value)
	assert.Equal(t, "Article IV — Delegates", res.Document.MinPerDepartment.Citation)
	assert.Equal(t, rules.ScopeDepartment, res.Document.MinPerDepartment.Scope)
	assert.True(t, res.Document.MinPerDepartment.Editable)

	// Untouched defaults keep empty citations.
	assert.Equal(t, rules.DefaultFemaleMin, res.Document.GenderBalance.Target.FemaleMin)
	assert.Empty(t, res.Document.GenderBalance.Citation)
	assert.Nil(t, res.Document.Eligibility.YearMin)
}

func TestExtractFullDocument(t *testing.T) {
	res := Extract(sampleConstitution)
	doc := res.Document

	assert.Equal(t, 5, doc.MinPerDepartment.Value)
	assert.InDelta(t, 0.40, doc.GenderBalance.Target.FemaleMin, 1e-9)
	assert.Equal(t, "Section 2 Gender Balance", doc.GenderBalance.Citation)
	require.NotNil(t, doc.Eligibility.YearMin)
	assert.Equal(t, 2, doc.Eligibility.YearMin.Value)
	assert.Equal(t, "Section 3 Eligibility", doc.Eligibility.YearMin.Citation)
	require.NotNil(t, doc.Eligibility.GPAMin)
	assert.Equal(t, rules.Decimal(2.5), doc.Eligibility.GPAMin.Value)
	require.NotNil(t, doc.Eligibility.DisciplinaryClear)
	assert.True(t, doc.Eligibility.DisciplinaryClear.Value)
	assert.Equal(t, "Section 4 Conduct", doc.Eligibility.DisciplinaryClear.Citation)

	var keys []string
	for _, f := range res.Findings {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{
		rules.KeyMinPerDepartment,
		rules.KeyGenderBalance,
		rules.RuleYearMin,
		rules.RuleGPAMin,
		rules.RuleDisciplinaryClear,
	}, keys)
}

func TestExtractLastMatchWins(t *testing.T) {
	text := "Article II Delegates\nA minimum of 4 delegates.\n" +
		"Article III Delegates Revised\nA minimum of 6 delegates per department."
	res := Extract(text)

	assert.Equal(t, 6, res.Document.MinPerDepartment.Value)
	assert.Equal(t, "Article III Delegates Revised", res.Document.MinPerDepartment.Citation)
	require.Len(t, res.Findings, 2)
	assert.Equal(t, 4, res.Findings[0].Value)
	assert.Equal(t, 6, res.Findings[1].Value)
}

func TestExtractWithoutMatchesKeepsDefaults(t *testing.T) {
	res := Extract("Article I\nNothing relevant here.")
	assert.Equal(t, rules.DefaultDocument(), res.Document)
	assert.Empty(t, res.Findings)
}

func TestMatchers(t *testing.T) {
	tests := []struct {
		name   string
		match  func(string) (any, bool)
		text   string
		want   any
		wantOK bool
	}{
		{"min without keyword context", matchMinPerDepartment, "minimum of 5 members", nil, false},
		{"min with of omitted", matchMinPerDepartment, "representation: minimum 7 delegates", 7, true},
		{"gender percent", matchGenderBalance, "gender: 30 % women", 0.3, true},
		{"gender without keyword", matchGenderBalance, "30% female", nil, false},
		{"year requires context", matchYearMin, "academic year 2", nil, false},
		{"year of study", matchYearMin, "candidate in year of study 3", 3, true},
		{"gpa integer", matchGPAMin, "gpa 3 or better", 3.0, true},
		{"grade point without number", matchGPAMin, "grade point average", nil, false},
		{"integrity", matchDisciplinaryClear, "of high integrity", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.match(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestWriteExtract(t *testing.T) {
	clauses := []Clause{
		{Heading: PreambleHeading, Body: "Intro"},
		{Heading: "Article I", Body: "   "},
		{Heading: "Article II", Body: "Members\n"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteExtract(&buf, clauses))

	assert.Equal(t, "# Constitution Extract (auto-generated)\n\n"+
		"## Preamble\n\nIntro\n\n"+
		"## Article II\n\nMembers\n\n", buf.String())
	assert.False(t, strings.Contains(buf.String(), "Article I\n"))
}

func TestExtractedDocumentValidates(t *testing.T) {
	res := Extract(sampleConstitution)
	data, err := rules.Encode(res.Document)
	require.NoError(t, err)
	_, err = rules.Decode(data, "extract")
	require.NoError(t, err)
}
