package departments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `KCA University Prospectus 2026
Admissions open in January.

School of Computing and Information Technology
- BSc Software Development
• BSc Information Technology
Diploma in Business Information Technology

Faculty: Education
1. Bachelor of Education (Arts)
2) Bachelor of Education (Science)
Entry requirements apply.

BUSINESS & ECONOMICS
* Bachelor of Commerce
Certificate in Accounting

Department - Law
`

func TestParse(t *testing.T) {
	got := Parse(sampleListing)
	require.Len(t, got, 4)

	assert.Equal(t, "School of Computing and Information Technology", got[0].Name)
	assert.Equal(t, []string{
		"BSc Software Development",
		"BSc Information Technology",
		"Diploma in Business Information Technology",
	}, got[0].Courses)

	assert.Equal(t, "Education", got[1].Name)
	assert.Equal(t, "education", got[1].Code)
	assert.Equal(t, []string{"Bachelor of Education (Arts)", "Bachelor of Education (Science)"}, got[1].Courses)

	assert.Equal(t, "Business & Economics", got[2].Name)
	assert.Equal(t, "business-economics", got[2].Code)
	assert.Equal(t, []string{"Bachelor of Commerce", "Certificate in Accounting"}, got[2].Courses)

	assert.Equal(t, "Law", got[3].Name)
	assert.Empty(t, got[3].Courses)
}

func TestParseEdgeCases(t *testing.T) {
	t.Run("lines before the first department are ignored", func(t *testing.T) {
		got := Parse("- orphan course\nBachelor of Nothing\n")
		assert.Empty(t, got)
	})

	t.Run("duplicate departments stay separate", func(t *testing.T) {
		got := Parse("Faculty: Law\n- LLB\nFaculty: Law\n- LLM\n")
		require.Len(t, got, 2)
		assert.Equal(t, got[0].Code, got[1].Code)
		assert.Equal(t, []string{"LLB"}, got[0].Courses)
		assert.Equal(t, []string{"LLM"}, got[1].Courses)
	})

	t.Run("all caps header keyword is title cased", func(t *testing.T) {
		got := Parse("SCHOOL OF NURSING\n")
		require.Len(t, got, 1)
		assert.Equal(t, "School Of Nursing", got[0].Name)
	})

	t.Run("long all caps lines are not headings", func(t *testing.T) {
		got := Parse("Faculty: Arts\nTHE QUICK BROWN FOX JUMPS OVER THE LAZY DOG AGAIN\n")
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Courses)
	})

	t.Run("remainder after a space", func(t *testing.T) {
		got := Parse("Department Mathematics\n")
		require.Len(t, got, 1)
		assert.Equal(t, "Mathematics", got[0].Name)
	})
}
