package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/types"
)

type stubClient struct {
	response string
	err      error
	calls    int
}

func (s *stubClient) GenerateText(context.Context, string, llm.ModelTier) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

func fit(title, company string, score float64) *types.FitResult {
	return &types.FitResult{
		Opportunity:     &types.JobOpportunity{Title: title, Company: company},
		OverallFitScore: score,
	}
}

func testProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		Name:            "Jane Doe",
		Summary:         "Engineer",
		Skills:          []types.Skill{{Name: "Go"}},
		ExperienceLevel: types.LevelSenior,
	}
}

func TestRankEmptyInput(t *testing.T) {
	stub := &stubClient{}
	result := NewRanker(stub).Rank(context.Background(), testProfile(), nil)

	require.NotNil(t, result.Report)
	assert.Empty(t, result.Report.RankedJobs)
	assert.NotEmpty(t, result.Report.OverallStrategy)
	assert.Zero(t, stub.calls, "no generation call for empty input")
}

func TestRankSingleInput(t *testing.T) {
	stub := &stubClient{}

	result := NewRanker(stub).Rank(context.Background(), testProfile(),
		[]*types.FitResult{fit("SWE", "Acme", 72)})
	require.Len(t, result.Report.RankedJobs, 1)
	job := result.Report.RankedJobs[0]
	assert.Equal(t, types.Tier1, job.Tier, "score 72 is at or above the single-input threshold")
	assert.Equal(t, types.ActionApplyImmediately, job.Action)
	assert.Equal(t, "Start with SWE at Acme", result.Report.TopRecommendation)
	assert.Zero(t, stub.calls, "no generation call for single input")

	result = NewRanker(stub).Rank(context.Background(), testProfile(),
		[]*types.FitResult{fit("SWE", "Acme", 69)})
	assert.Equal(t, types.Tier2, result.Report.RankedJobs[0].Tier)
}

func TestRankUsesModelReport(t *testing.T) {
	stub := &stubClient{response: `{
		"ranked_jobs": [
			{"rank": 1, "job_title": "Platform Engineer", "company": "Initech", "tier": "TIER 1", "final_score": 88, "ranking_rationale": "best growth", "action_recommendation": "Apply immediately"},
			{"rank": 2, "job_title": "SWE", "company": "Acme", "tier": "TIER 2", "final_score": 71, "ranking_rationale": "solid", "action_recommendation": "Apply this week"}
		],
		"overall_strategy": "Focus on platform roles.",
		"top_recommendation": "Start with Platform Engineer at Initech"
	}`}

	fits := []*types.FitResult{fit("SWE", "Acme", 71), fit("Platform Engineer", "Initech", 88)}
	result := NewRanker(stub).Rank(context.Background(), testProfile(), fits)

	assert.Empty(t, result.Notes)
	require.Len(t, result.Report.RankedJobs, 2)
	assert.Equal(t, "Initech", result.Report.RankedJobs[0].Company)
	assert.Equal(t, 1, stub.calls)
}

func TestRankFallsBackOnUnparseableResponse(t *testing.T) {
	stub := &stubClient{response: "here is my ranking in prose form"}

	fits := []*types.FitResult{
		fit("Backup", "D Corp", 42),
		fit("Best", "A Corp", 80),
		fit("Weekly", "B Corp", 65),
		fit("Maybe", "C Corp", 55),
	}
	result := NewRanker(stub).Rank(context.Background(), testProfile(), fits)

	require.Len(t, result.Notes, 1)
	require.Len(t, result.Report.RankedJobs, 4)

	jobs := result.Report.RankedJobs
	assert.Equal(t, []string{"Best", "Weekly", "Maybe", "Backup"},
		[]string{jobs[0].JobTitle, jobs[1].JobTitle, jobs[2].JobTitle, jobs[3].JobTitle})
	assert.Equal(t, types.Tier1, jobs[0].Tier)
	assert.Equal(t, types.Tier2, jobs[1].Tier)
	assert.Equal(t, types.Tier3, jobs[2].Tier)
	assert.Equal(t, types.Tier4, jobs[3].Tier)
	assert.Equal(t, types.ActionApplyThisWeek, jobs[1].Action)
	assert.Equal(t, "Ranked by match score (80/100)", jobs[0].Rationale)
	assert.Equal(t, "Start with Best at A Corp", result.Report.TopRecommendation)
	for i, job := range jobs {
		assert.Equal(t, i+1, job.Rank)
	}
}

func TestRankFallsBackOnGenerationError(t *testing.T) {
	stub := &stubClient{err: errors.New("deadline exceeded")}
	fits := []*types.FitResult{fit("A", "A", 80), fit("B", "B", 60)}

	result := NewRanker(stub).Rank(context.Background(), testProfile(), fits)
	require.Len(t, result.Report.RankedJobs, 2)
	assert.NotEmpty(t, result.Notes)
}

func TestRankFallsBackOnEmptyModelRanking(t *testing.T) {
	stub := &stubClient{response: `{"ranked_jobs": []}`}
	fits := []*types.FitResult{fit("A", "A", 80), fit("B", "B", 60)}

	result := NewRanker(stub).Rank(context.Background(), testProfile(), fits)
	require.Len(t, result.Report.RankedJobs, 2)
	assert.NotEmpty(t, result.Notes)
}
