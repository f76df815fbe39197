package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "saku/pkg/domain-errors"
)

func TestDecode(t *testing.T) {
	t.Run("empty document yields empty rule set", func(t *testing.T) {
		rs, err := Decode([]byte(""), "rules.yaml")
		require.NoError(t, err)
		assert.Empty(t, rs)
	})

	t.Run("nested mappings are normalized", func(t *testing.T) {
		doc := []byte(`
eligibility:
  year_min:
    value: 2
    citation: "Article IV, Section 3"
`)
		rs, err := Decode(doc, "rules.yaml")
		require.NoError(t, err)

		entry, ok, err := rs.Entry(KeyEligibility)
		require.NoError(t, err)
		require.True(t, ok)
		yearMin, ok := AsMapping(entry[RuleYearMin])
		require.True(t, ok)
		assert.Equal(t, 2, yearMin["value"])
		assert.Equal(t, "Article IV, Section 3", Citation(yearMin))
	})

	t.Run("non-mapping top level is a parse error", func(t *testing.T) {
		_, err := Decode([]byte("- a\n- b\n"), "rules.yaml")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConfigParse))
	})

	t.Run("malformed yaml is a parse error", func(t *testing.T) {
		_, err := Decode([]byte("eligibility: [unclosed"), "rules.yaml")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConfigParse))
		assert.Contains(t, err.Error(), "rules.yaml")
	})

	t.Run("entry shape is left to evaluation", func(t *testing.T) {
		rs, err := Decode([]byte("eligibility: 4\nmin_per_department:\n  value: 3\n"), "rules.yaml")
		require.NoError(t, err)
		_, _, err = rs.Entry(KeyEligibility)
		assert.Error(t, err)
		_, ok, err := rs.Entry(KeyMinPerDepartment)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("null rules are allowed", func(t *testing.T) {
		rs, err := Decode([]byte("eligibility:\nmin_per_department:\n"), "rules.yaml")
		require.NoError(t, err)
		_, ok, err := rs.Entry(KeyEligibility)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("unknown keys are preserved", func(t *testing.T) {
		rs, err := Decode([]byte("term_limit:\n  value: 2\n"), "rules.yaml")
		require.NoError(t, err)
		assert.Contains(t, rs, "term_limit")
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := DefaultDocument()
	doc.MinPerDepartment.Citation = "Article III, Section 2"
	doc.Eligibility.YearMin = &IntRule{Value: 2, Citation: "Article IV"}
	doc.Eligibility.GPAMin = &DecimalRule{Value: 3, Citation: "Article IV"}

	data, err := Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "value: 3.0")
	assert.NotContains(t, string(data), "disciplinary_clear")

	rs, err := Decode(data, "roundtrip")
	require.NoError(t, err)
	assert.Equal(t, doc.RuleSet(), rs)
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "3.0", FormatDecimal(3))
	assert.Equal(t, "2.75", FormatDecimal(2.75))
	assert.Equal(t, "0.33", Decimal(0.33).String())
}
