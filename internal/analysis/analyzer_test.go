package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-search-agent/internal/extraction"
	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/types"
)

type stubClient struct {
	response string
	err      error
	prompt   string
}

func (s *stubClient) GenerateText(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompt = prompt
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

const resumeText = "Jane Doe. Backend engineer, 7 years. Go, PostgreSQL, Kubernetes."

func TestExtractProfile(t *testing.T) {
	stub := &stubClient{response: `{
		"name": "Jane Doe",
		"summary": "Backend engineer with 7 years of experience.",
		"skills": [
			{"name": "Go", "category": "Programming"},
			{"name": "PostgreSQL", "category": "database"},
			{"name": "Kubernetes", "category": "orchestration"}
		],
		"total_years_experience": 7,
		"experience_level": "senior"
	}`}

	profile, err := NewAnalyzer(stub).ExtractProfile(context.Background(), resumeText)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", profile.Name)
	assert.Equal(t, types.LevelSenior, profile.ExperienceLevel)
	assert.Equal(t, resumeText, profile.RawResumeText)
	require.Len(t, profile.Skills, 3)
	// Free-text categories are normalized into the closed set.
	assert.Equal(t, types.CategoryProgrammingLanguage, profile.Skills[0].Category)
	assert.Equal(t, types.CategoryDevOps, profile.Skills[2].Category)
	assert.Contains(t, stub.prompt, resumeText)
}

func TestExtractProfileDerivesLevelFromYears(t *testing.T) {
	stub := &stubClient{response: `{
		"summary": "Engineer",
		"skills": [{"name": "Go"}],
		"total_years_experience": 3
	}`}

	profile, err := NewAnalyzer(stub).ExtractProfile(context.Background(), resumeText)
	require.NoError(t, err)
	assert.Equal(t, types.LevelMid, profile.ExperienceLevel)
}

func TestExtractProfileEmptyInput(t *testing.T) {
	_, err := NewAnalyzer(&stubClient{}).ExtractProfile(context.Background(), "   ")
	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
}

func TestExtractProfileGenerationFailure(t *testing.T) {
	stub := &stubClient{err: errors.New("rate limited")}
	_, err := NewAnalyzer(stub).ExtractProfile(context.Background(), resumeText)

	var ae *AnalysisError
	require.True(t, errors.As(err, &ae))
	assert.ErrorContains(t, err, "rate limited")
}

func TestExtractProfileNoFallbackOnBadOutput(t *testing.T) {
	// Valid JSON, but violates the schema (no skills). Must propagate as
	// a typed extraction error, never a synthesized profile.
	stub := &stubClient{response: `{"summary": "Engineer", "skills": []}`}
	_, err := NewAnalyzer(stub).ExtractProfile(context.Background(), resumeText)

	var sve *extraction.SchemaValidationError
	require.True(t, errors.As(err, &sve))
}

func TestExtractProfileNonJSONResponse(t *testing.T) {
	stub := &stubClient{response: "I am unable to process this resume."}
	_, err := NewAnalyzer(stub).ExtractProfile(context.Background(), resumeText)

	var nde *extraction.NoStructuredDataError
	require.True(t, errors.As(err, &nde))
}
