package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSchemasLoad(t *testing.T) {
	for _, name := range []string{
		CandidateProfile, FitResult, BatchFitResults, DiscoverySelection, RankingReport,
	} {
		if _, err := Get(name); err != nil {
			t.Errorf("Get(%q): %v", name, err)
		}
	}
}

func TestValidateCandidateProfile(t *testing.T) {
	valid := `{
		"summary": "Backend engineer",
		"skills": [{"name": "Go", "category": "programming_language"}],
		"total_years_experience": 6
	}`
	require.NoError(t, Validate(CandidateProfile, valid))

	// Empty skills array violates minItems.
	noSkills := `{"summary": "Engineer", "skills": []}`
	err := Validate(CandidateProfile, noSkills)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, CandidateProfile, ve.Schema)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateFitResultRanges(t *testing.T) {
	valid := `{
		"overall_fit_score": 82,
		"skill_match_score": 48,
		"experience_match_score": 25,
		"recommendation": "Strong Match - Recommend Interview"
	}`
	require.NoError(t, Validate(FitResult, valid))

	overCap := `{
		"overall_fit_score": 82,
		"skill_match_score": 70,
		"experience_match_score": 25,
		"recommendation": "x"
	}`
	assert.Error(t, Validate(FitResult, overCap), "skill score above 60 must fail")

	missing := `{"overall_fit_score": 82}`
	assert.Error(t, Validate(FitResult, missing))
}

func TestValidateBatchIndexes(t *testing.T) {
	valid := `{"results": [{"job_index": 0, "overall_fit_score": 55}]}`
	require.NoError(t, Validate(BatchFitResults, valid))

	negative := `{"results": [{"job_index": -1, "overall_fit_score": 55}]}`
	assert.Error(t, Validate(BatchFitResults, negative))
}

func TestValidateRejectsNonJSONDocument(t *testing.T) {
	err := Validate(CandidateProfile, "{not json at all")
	require.Error(t, err)

	// Not a schema problem: the document itself is unparseable.
	var de *DocumentError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, CandidateProfile, de.Schema)

	var le *SchemaLoadError
	assert.False(t, errors.As(err, &le))
}

func TestValidateUnknownSchema(t *testing.T) {
	err := Validate("does_not_exist", `{}`)
	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
}

func TestMustGetPanicsOnMiss(t *testing.T) {
	assert.Panics(t, func() { MustGet("missing") })
}
