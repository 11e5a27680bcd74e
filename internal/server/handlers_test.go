package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-search-agent/internal/analysis"
	appconfig "github.com/jonathan/job-search-agent/internal/config"
	"github.com/jonathan/job-search-agent/internal/discovery"
	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/matching"
	"github.com/jonathan/job-search-agent/internal/pipeline"
	"github.com/jonathan/job-search-agent/internal/ranking"
	"github.com/jonathan/job-search-agent/internal/types"
)

type stubClient struct{ response string }

func (s *stubClient) GenerateText(context.Context, string, llm.ModelTier) (string, error) {
	return s.response, nil
}

func (s *stubClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return s.response, nil
}

func (s *stubClient) Close() error { return nil }

type stubSearcher struct{}

func (stubSearcher) Search(context.Context, string, int) ([]types.JobOpportunity, error) {
	return []types.JobOpportunity{
		{OpportunityID: "a", Title: "Backend Engineer", Company: "Acme"},
		{OpportunityID: "b", Title: "Platform Engineer", Company: "Initech"},
		{OpportunityID: "c", Title: "SRE", Company: "Hooli"},
	}, nil
}

func testFactory() PipelineFactory {
	profileClient := &stubClient{response: `{
		"name": "Jane Doe",
		"summary": "Backend engineer.",
		"skills": [{"name": "Go", "category": "programming_language"}],
		"total_years_experience": 7,
		"experience_level": "senior"
	}`}
	selectionClient := &stubClient{response: `{"recommended_jobs": [
		{"opportunity_id": "a"},
		{"opportunity_id": "b"},
		{"opportunity_id": "c"}
	]}`}
	batchClient := &stubClient{response: `{"results": [
		{"job_index": 0, "overall_fit_score": 80, "skill_match_score": 50, "experience_match_score": 25, "recommendation": "x"},
		{"job_index": 1, "overall_fit_score": 64, "skill_match_score": 40, "experience_match_score": 20, "recommendation": "x"},
		{"job_index": 2, "overall_fit_score": 45, "skill_match_score": 25, "experience_match_score": 15, "recommendation": "x"}
	]}`}
	rankClient := &stubClient{response: `{"ranked_jobs": [
		{"rank": 1, "job_title": "Backend Engineer", "company": "Acme", "tier": "TIER 1", "final_score": 80, "ranking_rationale": "best", "action_recommendation": "Apply immediately"},
		{"rank": 2, "job_title": "Platform Engineer", "company": "Initech", "tier": "TIER 2", "final_score": 64, "ranking_rationale": "good", "action_recommendation": "Apply this week"},
		{"rank": 3, "job_title": "SRE", "company": "Hooli", "tier": "TIER 4", "final_score": 45, "ranking_rationale": "backup", "action_recommendation": "Keep as backup"}
	], "overall_strategy": "s", "top_recommendation": "t"}`}

	return func() *pipeline.Pipeline {
		return pipeline.New(
			analysis.NewAnalyzer(profileClient),
			discovery.NewDiscoverer(selectionClient, stubSearcher{}),
			matching.NewMatcher(batchClient),
			ranking.NewRanker(rankClient),
		)
	}
}

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	srv, err := New(Config{
		Addr:        ":0",
		JWT:         &appconfig.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
		NewPipeline: testFactory(),
	})
	require.NoError(t, err)

	token, err := srv.jwtService.GenerateToken("test")
	require.NoError(t, err)
	return srv, token
}

func TestHealthNoAuth(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRunRequiresAuth(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"resume_text": "x"}`))
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRunExecutesPipeline(t *testing.T) {
	srv, token := testServer(t)

	body := `{"resume_text": "Jane Doe, backend engineer, 7 years of Go.", "target_role": "backend engineer"}`
	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report pipeline.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "Jane Doe", report.CandidateName)
	assert.Equal(t, 3, report.JobsMatched)
	require.NotNil(t, report.Ranking)
	assert.Len(t, report.Ranking.RankedJobs, 3)
}

func TestRunRejectsEmptyResume(t *testing.T) {
	srv, token := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"target_role": "x"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListRunsWithoutStore(t *testing.T) {
	srv, token := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
