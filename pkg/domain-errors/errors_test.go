package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeConfigParse, "bad yaml")
		assert.True(t, HasCode(err, CodeConfigParse))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load: %w", New(CodeRuleEvaluation, "year_min"))
		assert.True(t, HasCode(err, CodeRuleEvaluation))
	})

	t.Run("matches inner code of nested coded errors", func(t *testing.T) {
		inner := New(CodeNotFound, "candidate")
		outer := Wrap(inner, CodeInternal, "vet")
		assert.True(t, HasCode(outer, CodeInternal))
		assert.True(t, HasCode(outer, CodeNotFound))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(cause, CodeConfigParse, "parse rules.yaml")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "parse rules.yaml: unexpected EOF", err.Error())
	assert.Equal(t, CodeConfigParse, CodeOf(err))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(Newf(CodeValidation, "field %s", "gender")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}
