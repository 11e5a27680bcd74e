// Package matching implements the fit scoring stage: the rubric-driven
// evaluation of a candidate against one job, or against a set of jobs
// in a single batched generation call.
package matching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/job-search-agent/internal/extraction"
	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/prompts"
	"github.com/jonathan/job-search-agent/internal/schemas"
	"github.com/jonathan/job-search-agent/internal/types"
)

// Matcher runs fit scoring.
type Matcher struct {
	client llm.Client
}

// NewMatcher returns a Matcher backed by the given generation client.
func NewMatcher(client llm.Client) *Matcher {
	return &Matcher{client: client}
}

// MatchError wraps failures of the fit scoring stage. Scoring has no
// fallback: a job that cannot be scored is an error the caller decides
// about.
type MatchError struct {
	Op      string
	Message string
	Cause   error
}

func (e *MatchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("matching %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("matching %s: %s", e.Op, e.Message)
}

func (e *MatchError) Unwrap() error { return e.Cause }

// ScoreFit evaluates the candidate against a single job.
func (m *Matcher) ScoreFit(ctx context.Context, profile *types.CandidateProfile, job *types.JobOpportunity) (*types.FitResult, error) {
	candidateJSON, jobJSON, err := encodePair(profile, job)
	if err != nil {
		return nil, err
	}

	prompt := prompts.Format(prompts.MustGet("matching.json", "score_fit"), map[string]string{
		"CandidateJSON": candidateJSON,
		"JobJSON":       jobJSON,
		"Rubric":        prompts.MustGet("matching.json", "rubric"),
	})

	response, err := m.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &MatchError{Op: "score_fit", Message: "generation call failed", Cause: err}
	}

	var result types.FitResult
	if err := extraction.Extract(response, schemas.FitResult, &result); err != nil {
		return nil, err
	}

	result.Candidate = profile
	result.Opportunity = job
	if note := finalizeResult(&result); note != "" {
		result.Explanation += " [" + note + "]"
	}
	return &result, nil
}

// BatchResult is the outcome of a batched scoring call. Dropped counts
// result entries whose job index referenced no input job; a non-zero
// value means the model mishandled the index tagging.
type BatchResult struct {
	Results []*types.FitResult
	Dropped int
	Notes   []string
}

// indexedJob tags a job with its 0-based position for the batch prompt.
type indexedJob struct {
	JobIndex int `json:"job_index"`
	types.JobOpportunity
}

type batchItem struct {
	JobIndex             int      `json:"job_index"`
	OverallFitScore      float64  `json:"overall_fit_score"`
	SkillMatchScore      float64  `json:"skill_match_score"`
	ExperienceMatchScore float64  `json:"experience_match_score"`
	Strengths            []string `json:"strengths"`
	Gaps                 []string `json:"gaps"`
	Recommendation       string   `json:"recommendation"`
	Explanation          string   `json:"explanation"`
}

// ScoreFitBatch evaluates the candidate against all jobs in one
// generation call. Results come back keyed by the 0-based index each
// job was tagged with; entries with an index outside the input range
// are dropped and counted.
func (m *Matcher) ScoreFitBatch(ctx context.Context, profile *types.CandidateProfile, jobs []types.JobOpportunity) (*BatchResult, error) {
	if len(jobs) == 0 {
		return &BatchResult{}, nil
	}

	indexed := make([]indexedJob, len(jobs))
	for i, job := range jobs {
		indexed[i] = indexedJob{JobIndex: i, JobOpportunity: job}
	}

	candidateJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, &MatchError{Op: "score_fit_batch", Message: "failed to encode candidate", Cause: err}
	}
	jobsJSON, err := json.Marshal(indexed)
	if err != nil {
		return nil, &MatchError{Op: "score_fit_batch", Message: "failed to encode jobs", Cause: err}
	}

	prompt := prompts.Format(prompts.MustGet("matching.json", "score_fit_batch"), map[string]string{
		"CandidateJSON": string(candidateJSON),
		"JobsJSON":      string(jobsJSON),
		"Rubric":        prompts.MustGet("matching.json", "rubric"),
	})

	response, err := m.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &MatchError{Op: "score_fit_batch", Message: "generation call failed", Cause: err}
	}

	var payload struct {
		Results []batchItem `json:"results"`
	}
	if err := extraction.Extract(response, schemas.BatchFitResults, &payload); err != nil {
		return nil, err
	}

	batch := &BatchResult{}
	byIndex := make(map[int]*types.FitResult, len(jobs))
	for _, item := range payload.Results {
		if item.JobIndex < 0 || item.JobIndex >= len(jobs) {
			batch.Dropped++
			continue
		}
		if _, dup := byIndex[item.JobIndex]; dup {
			batch.Dropped++
			continue
		}
		result := &types.FitResult{
			Candidate:            profile,
			Opportunity:          &jobs[item.JobIndex],
			OverallFitScore:      item.OverallFitScore,
			SkillMatchScore:      item.SkillMatchScore,
			ExperienceMatchScore: item.ExperienceMatchScore,
			Strengths:            item.Strengths,
			Gaps:                 item.Gaps,
			Recommendation:       item.Recommendation,
			Explanation:          item.Explanation,
		}
		if note := finalizeResult(result); note != "" {
			batch.Notes = append(batch.Notes, fmt.Sprintf("job %d: %s", item.JobIndex, note))
		}
		byIndex[item.JobIndex] = result
	}
	if batch.Dropped > 0 {
		batch.Notes = append(batch.Notes,
			fmt.Sprintf("dropped %d result(s) with out-of-range or duplicate job index", batch.Dropped))
	}

	for i := range jobs {
		if result, ok := byIndex[i]; ok {
			batch.Results = append(batch.Results, result)
		}
	}
	return batch, nil
}

// finalizeResult reconciles the reported scores and stamps the result.
// The rubric is the contract: when the reported overall disagrees with
// the component scores by more than the 10-point profile-strength
// allowance, the component-derived value wins. The recommendation label
// is always recomputed from the final overall score. Returns a note
// describing any correction, or "".
func finalizeResult(r *types.FitResult) string {
	var note string

	r.OverallFitScore = clamp(r.OverallFitScore, 0, 100)
	componentSum := r.SkillMatchScore + r.ExperienceMatchScore
	if r.OverallFitScore < componentSum || r.OverallFitScore > componentSum+10 {
		corrected := clamp(componentSum, 0, 100)
		note = fmt.Sprintf("overall score %.1f inconsistent with components (%.1f + %.1f), corrected to %.1f",
			r.OverallFitScore, r.SkillMatchScore, r.ExperienceMatchScore, corrected)
		r.OverallFitScore = corrected
	}

	r.Recommendation = types.RecommendationForScore(r.OverallFitScore)
	r.EvaluatedAt = time.Now().UTC()
	return note
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func encodePair(profile *types.CandidateProfile, job *types.JobOpportunity) (string, string, error) {
	candidateJSON, err := json.Marshal(profile)
	if err != nil {
		return "", "", &MatchError{Op: "score_fit", Message: "failed to encode candidate", Cause: err}
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return "", "", &MatchError{Op: "score_fit", Message: "failed to encode job", Cause: err}
	}
	return string(candidateJSON), string(jobJSON), nil
}
